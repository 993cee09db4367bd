package recall

import (
	"context"
	"fmt"

	"github.com/eventrec/eventrec/core"
)

// in-memory fakes shared by the recall tests

type stubEvents struct {
	events []*core.Event
	err    error
}

func (s *stubEvents) ListEvents(_ context.Context) ([]*core.Event, error) {
	return s.events, s.err
}

type stubUsers struct {
	users map[string]*core.UserProfile
}

func (s *stubUsers) GetUser(_ context.Context, userID string) (*core.UserProfile, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUserNotFound,
		fmt.Sprintf("user %s not found", userID))
}

type stubInteractions struct {
	interactions []*core.Interaction
	err          error
}

func (s *stubInteractions) ListInteractions(_ context.Context) ([]*core.Interaction, error) {
	return s.interactions, s.err
}

func upcomingEvent(id, title string, prefs, skills, locs []string) *core.Event {
	return &core.Event{
		ID:          id,
		Title:       title,
		Preferences: prefs,
		Skills:      skills,
		Locations:   locs,
		Status:      core.StatusUpcoming,
	}
}

func itemIDs(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sameIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
