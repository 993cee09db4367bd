package feature

import (
	"testing"

	"github.com/eventrec/eventrec/core"
)

func TestBuildText(t *testing.T) {
	tests := []struct {
		name   string
		fields [][]string
		want   string
	}{
		{
			name:   "plain tags joined by space",
			fields: [][]string{{"teaching", "mentoring"}, {"kuala lumpur"}},
			want:   "teaching mentoring kuala lumpur",
		},
		{
			name:   "semicolon lists expand to tokens",
			fields: [][]string{{"teaching;mentoring"}, {"first aid;logistics"}},
			want:   "teaching mentoring first aid logistics",
		},
		{
			name:   "missing fields are empty strings",
			fields: [][]string{nil, {}, {"penang"}},
			want:   "penang",
		},
		{
			name:   "all empty",
			fields: [][]string{nil, nil},
			want:   "",
		},
		{
			name:   "whitespace entries dropped",
			fields: [][]string{{" ; ;teaching; "}},
			want:   "teaching",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildText(tt.fields...); got != tt.want {
				t.Errorf("BuildText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventAndUserText(t *testing.T) {
	ev := &core.Event{
		ID:          "EV001",
		Preferences: []string{"environment"},
		Skills:      []string{"gardening;composting"},
		Locations:   []string{"penang"},
	}
	if got := EventText(ev); got != "environment gardening composting penang" {
		t.Errorf("EventText() = %q", got)
	}
	if got := EventText(nil); got != "" {
		t.Errorf("EventText(nil) = %q, want empty", got)
	}

	u := core.NewUserProfile("VL00001")
	if got := UserText(u); got != "" {
		t.Errorf("user without attributes should yield empty feature string, got %q", got)
	}
	u.Skills = []string{"gardening"}
	if got := UserText(u); got != "gardening" {
		t.Errorf("UserText() = %q", got)
	}
}
