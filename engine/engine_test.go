package engine

import (
	"context"
	"testing"
	"time"

	"github.com/eventrec/eventrec/config"
	"github.com/eventrec/eventrec/core"
)

type stubEvents struct {
	events []*core.Event
}

func (s *stubEvents) ListEvents(_ context.Context) ([]*core.Event, error) {
	return s.events, nil
}

type stubUsers struct {
	users map[string]*core.UserProfile
}

func (s *stubUsers) GetUser(_ context.Context, userID string) (*core.UserProfile, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUserNotFound, "user not found")
}

// blockingUsers hangs until the context is cancelled, simulating a stuck backend.
type blockingUsers struct{}

func (s *blockingUsers) GetUser(ctx context.Context, _ string) (*core.UserProfile, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type stubInteractions struct {
	interactions []*core.Interaction
}

func (s *stubInteractions) ListInteractions(_ context.Context) ([]*core.Interaction, error) {
	return s.interactions, nil
}

func recentTimestamp() string {
	return time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
}

func testEvents() *stubEvents {
	return &stubEvents{events: []*core.Event{
		{ID: "e1", Title: "Beach Cleanup", Preferences: []string{"environment"}, Status: core.StatusUpcoming},
		{ID: "e2", Title: "Soup Kitchen", Preferences: []string{"cooking"}, Status: core.StatusUpcoming},
	}}
}

func testUsers() *stubUsers {
	return &stubUsers{users: map[string]*core.UserProfile{
		"u1":   {UserID: "u1", Preferences: []string{"environment"}},
		"cold": {UserID: "cold", Preferences: []string{"astronomy"}},
	}}
}

func itemIDs(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestHybridFusesBothBranches(t *testing.T) {
	ts := recentTimestamp()
	e := New(Options{
		Events: testEvents(),
		Users:  testUsers(),
		Interactions: &stubInteractions{interactions: []*core.Interaction{
			{UserID: "u1", EventID: "e1", Type: core.InteractionApply, Timestamp: ts},
			{UserID: "u2", EventID: "e1", Type: core.InteractionApply, Timestamp: ts},
			{UserID: "u2", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
		}},
	})

	items, err := e.RecommendHybrid(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("RecommendHybrid: %v", err)
	}
	if len(items) != 2 || items[0].ID != "e1" {
		t.Fatalf("got %v, want e1 first", itemIDs(items))
	}
	if lbl, ok := items[0].Labels["rank_strategy"]; !ok || lbl.Value != "hybrid" {
		t.Errorf("rank_strategy label = %+v, want hybrid", lbl)
	}
}

func TestHybridFallsBackToContent(t *testing.T) {
	// no interactions at all: the collaborative branch yields nothing
	e := New(Options{
		Events:       testEvents(),
		Users:        testUsers(),
		Interactions: &stubInteractions{},
	})
	ctx := context.Background()

	hybrid, err := e.RecommendHybrid(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("RecommendHybrid: %v", err)
	}
	content, err := e.RecommendContent(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("RecommendContent: %v", err)
	}

	hybridIDs, contentIDs := itemIDs(hybrid), itemIDs(content)
	if len(hybridIDs) == 0 || len(hybridIDs) != len(contentIDs) {
		t.Fatalf("hybrid %v vs content %v", hybridIDs, contentIDs)
	}
	for i := range hybridIDs {
		if hybridIDs[i] != contentIDs[i] {
			t.Fatalf("hybrid %v must match content ranking %v", hybridIDs, contentIDs)
		}
	}
}

func TestHybridFusesCollaborativeWhenContentEmpty(t *testing.T) {
	// "cold" overlaps no event tags, so the content branch comes back empty —
	// but it shares an apply on e1 with neighbor u2, a strong collaborative
	// signal. The views piled on e2 would put popularity in the opposite order,
	// so falling back here would discard the collaborative result.
	ts := recentTimestamp()
	e := New(Options{
		Events: testEvents(),
		Users:  testUsers(),
		Interactions: &stubInteractions{interactions: []*core.Interaction{
			{UserID: "cold", EventID: "e1", Type: core.InteractionApply, Timestamp: ts},
			{UserID: "u2", EventID: "e1", Type: core.InteractionApply, Timestamp: ts},
			{UserID: "u2", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
			{UserID: "u3", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
			{UserID: "u4", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
		}},
	})

	items, err := e.RecommendHybrid(context.Background(), "cold", 0)
	if err != nil {
		t.Fatalf("RecommendHybrid: %v", err)
	}
	if len(items) != 2 || items[0].ID != "e1" {
		t.Fatalf("got %v, want collaborative order [e1 e2]", itemIDs(items))
	}
	if lbl, ok := items[0].Labels["rank_strategy"]; !ok || lbl.Value != "hybrid" {
		t.Errorf("rank_strategy label = %+v, want hybrid", lbl)
	}
	// only the collaborative side contributes: 0.8 * 1
	if items[0].Score != 0.8 {
		t.Errorf("top score = %v, want 0.8", items[0].Score)
	}
}

func TestHybridFallsBackToPopularity(t *testing.T) {
	// cold user: no tag overlap with any event and no own interactions
	ts := recentTimestamp()
	e := New(Options{
		Events: testEvents(),
		Users:  testUsers(),
		Interactions: &stubInteractions{interactions: []*core.Interaction{
			{UserID: "u2", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
			{UserID: "u3", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
			{UserID: "u3", EventID: "e1", Type: core.InteractionView, Timestamp: ts},
		}},
	})

	items, err := e.RecommendHybrid(context.Background(), "cold", 0)
	if err != nil {
		t.Fatalf("RecommendHybrid: %v", err)
	}
	if len(items) != 2 || items[0].ID != "e2" {
		t.Fatalf("got %v, want popularity order [e2 e1]", itemIDs(items))
	}
	if lbl, ok := items[0].Labels["recall_source"]; !ok || lbl.Value != "hot" {
		t.Errorf("recall_source label = %+v, want hot", lbl)
	}
}

func TestHybridNeverFailsForKnownUser(t *testing.T) {
	// empty world: no events, no interactions
	e := New(Options{
		Events:       &stubEvents{},
		Users:        testUsers(),
		Interactions: &stubInteractions{},
	})

	items, err := e.RecommendHybrid(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("RecommendHybrid: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %v, want empty result", itemIDs(items))
	}
}

func TestHybridUnknownUserIsTerminal(t *testing.T) {
	e := New(Options{
		Events:       testEvents(),
		Users:        testUsers(),
		Interactions: &stubInteractions{},
	})

	_, err := e.RecommendHybrid(context.Background(), "ghost", 0)
	if !core.IsUserNotFound(err) {
		t.Fatalf("err = %v, want USER_NOT_FOUND", err)
	}
}

func TestHybridTimeoutIsUnavailable(t *testing.T) {
	e := New(Options{
		Events:       testEvents(),
		Users:        &blockingUsers{},
		Interactions: &stubInteractions{},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.RecommendHybrid(ctx, "u1", 0)
	if !core.IsUnavailable(err) {
		t.Fatalf("err = %v, want UNAVAILABLE", err)
	}
}

func TestRecommendPopularityIgnoresUser(t *testing.T) {
	ts := recentTimestamp()
	e := New(Options{
		Events: testEvents(),
		Users:  testUsers(),
		Interactions: &stubInteractions{interactions: []*core.Interaction{
			{UserID: "u2", EventID: "e1", Type: core.InteractionView, Timestamp: ts},
			{UserID: "u3", EventID: "e1", Type: core.InteractionView, Timestamp: ts},
			{UserID: "u2", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
		}},
	})

	items, err := e.RecommendPopularity(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecommendPopularity: %v", err)
	}
	if len(items) != 2 || items[0].ID != "e1" || items[0].Score != 2 {
		t.Fatalf("got %v, want [e1(2) e2(1)]", itemIDs(items))
	}
}

func TestRecommendCollaborativeSurfacesNoData(t *testing.T) {
	e := New(Options{
		Events:       testEvents(),
		Users:        testUsers(),
		Interactions: &stubInteractions{},
	})

	_, err := e.RecommendCollaborative(context.Background(), "u1", 0)
	if !core.IsNoData(err) {
		t.Fatalf("err = %v, want NO_DATA", err)
	}
}

func TestConfigWeightsFlowIntoFusion(t *testing.T) {
	ts := recentTimestamp()
	cfg := &config.EngineConfig{CFWeight: 0.5, ContentWeight: 0.5}
	e := New(Options{
		Events: testEvents(),
		Users:  testUsers(),
		Config: cfg,
		Interactions: &stubInteractions{interactions: []*core.Interaction{
			{UserID: "u1", EventID: "e1", Type: core.InteractionApply, Timestamp: ts},
			{UserID: "u2", EventID: "e1", Type: core.InteractionApply, Timestamp: ts},
			{UserID: "u2", EventID: "e2", Type: core.InteractionView, Timestamp: ts},
		}},
	})

	items, err := e.RecommendHybrid(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("RecommendHybrid: %v", err)
	}
	// e1 leads both branches: 0.5*1 + 0.5*1 = 1
	if items[0].ID != "e1" || items[0].Score != 1 {
		t.Fatalf("top = %s(%v), want e1(1)", items[0].ID, items[0].Score)
	}
}
