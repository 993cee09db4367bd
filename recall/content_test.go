package recall

import (
	"context"
	"testing"

	"github.com/eventrec/eventrec/core"
)

func TestContentRecallRanksByOverlap(t *testing.T) {
	events := &stubEvents{events: []*core.Event{
		upcomingEvent("e1", "Beach Cleanup",
			[]string{"environment"}, []string{"teamwork"}, nil),
		upcomingEvent("e2", "Park Restoration",
			[]string{"environment"}, []string{"gardening"}, nil),
		upcomingEvent("e3", "Soup Kitchen",
			[]string{"cooking"}, []string{"catering"}, nil),
	}}
	users := &stubUsers{users: map[string]*core.UserProfile{
		"u1": {UserID: "u1", Preferences: []string{"environment"}, Skills: []string{"teamwork"}},
	}}

	r := &ContentRecall{Events: events, Users: users}
	items, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if !sameIDs(itemIDs(items), []string{"e1", "e2", "e3"}) {
		t.Fatalf("unexpected order: %v", itemIDs(items))
	}
	// scores are min-max normalized over the selected list
	if items[0].Score != 1 {
		t.Errorf("top score = %v, want 1", items[0].Score)
	}
	if items[len(items)-1].Score != 0 {
		t.Errorf("bottom score = %v, want 0", items[len(items)-1].Score)
	}
	if lbl, ok := items[0].Labels["recall_source"]; !ok || lbl.Value != "content" {
		t.Errorf("recall_source label = %+v", lbl)
	}
}

func TestContentRecallSkipsHistoricalEvents(t *testing.T) {
	// the closed event matches the user perfectly but must never be scored
	events := &stubEvents{events: []*core.Event{
		{ID: "closed", Title: "Old Drive", Preferences: []string{"environment"}, Status: "completed"},
		upcomingEvent("open", "New Drive", []string{"environment"}, nil, nil),
	}}
	users := &stubUsers{users: map[string]*core.UserProfile{
		"u1": {UserID: "u1", Preferences: []string{"environment"}},
	}}

	r := &ContentRecall{Events: events, Users: users}
	items, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if !sameIDs(itemIDs(items), []string{"open"}) {
		t.Fatalf("got %v, want only the upcoming event", itemIDs(items))
	}
}

func TestContentRecallZeroSimilarityReturnsEmpty(t *testing.T) {
	events := &stubEvents{events: []*core.Event{
		upcomingEvent("e1", "Soup Kitchen", []string{"cooking"}, nil, nil),
	}}
	users := &stubUsers{users: map[string]*core.UserProfile{
		"u1": {UserID: "u1", Preferences: []string{"astronomy"}},
	}}

	r := &ContentRecall{Events: events, Users: users}
	items, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("want empty result for zero similarity, got %v", itemIDs(items))
	}
}

func TestContentRecallUserNotFound(t *testing.T) {
	events := &stubEvents{events: []*core.Event{
		upcomingEvent("e1", "Beach Cleanup", []string{"environment"}, nil, nil),
	}}
	r := &ContentRecall{Events: events, Users: &stubUsers{}}
	_, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "missing"})
	if !core.IsUserNotFound(err) {
		t.Fatalf("err = %v, want USER_NOT_FOUND", err)
	}
}

func TestContentRecallUsesResolvedProfile(t *testing.T) {
	events := &stubEvents{events: []*core.Event{
		upcomingEvent("e1", "Beach Cleanup", []string{"environment"}, nil, nil),
	}}
	// no user in the source: the profile on the context must win
	r := &ContentRecall{Events: events, Users: &stubUsers{}}
	rctx := &core.RecommendContext{
		UserID: "u1",
		User:   &core.UserProfile{UserID: "u1", Preferences: []string{"environment"}},
	}
	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if !sameIDs(itemIDs(items), []string{"e1"}) {
		t.Fatalf("got %v", itemIDs(items))
	}
}

func TestContentRecallTopK(t *testing.T) {
	events := &stubEvents{events: []*core.Event{
		upcomingEvent("e1", "A", []string{"environment", "teamwork"}, nil, nil),
		upcomingEvent("e2", "B", []string{"environment"}, nil, nil),
		upcomingEvent("e3", "C", []string{"environment"}, nil, nil),
	}}
	users := &stubUsers{users: map[string]*core.UserProfile{
		"u1": {UserID: "u1", Preferences: []string{"environment"}},
	}}
	r := &ContentRecall{Events: events, Users: users, TopK: 2}
	items, err := r.Recall(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
}
