package gui

import (
	"slices"
	"testing"

	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/input"
)

func TestActionMenuCursor(t *testing.T) {
	left := &input.Input{Left: true}
	right := &input.Input{Right: true}
	down := &input.Input{Down: true}
	up := &input.Input{Up: true}

	tests := []struct {
		name   string
		keys   []*input.Input
		cursor int
		labels []string
	}{
		{"starts on the first move", nil, 0, []string{"> TACKLE", "GROWL", "RUN"}},
		{"right", []*input.Input{right}, 1, []string{"TACKLE", "> GROWL", "RUN"}},
		{"down behaves like right", []*input.Input{down, down}, 2, []string{"TACKLE", "GROWL", "> RUN"}},
		{"left wraps to RUN", []*input.Input{left}, 2, []string{"TACKLE", "GROWL", "> RUN"}},
		{"up wraps to RUN", []*input.Input{up}, 2, []string{"TACKLE", "GROWL", "> RUN"}},
		{"right wraps past RUN", []*input.Input{right, right, right}, 0, []string{"> TACKLE", "GROWL", "RUN"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewActionMenu()
			m.SetMoves([]string{"TACKLE", "GROWL"})
			m.Start()
			for _, in := range tt.keys {
				m.Update(in, 0.125)
			}
			if m.Cursor() != tt.cursor {
				t.Fatalf("cursor = %d, want %d", m.Cursor(), tt.cursor)
			}
			if got := m.Labels(); !slices.Equal(got, tt.labels) {
				t.Fatalf("labels = %q, want %q", got, tt.labels)
			}
		})
	}
}

func TestActionMenuConfirmSubmitsHighlighted(t *testing.T) {
	confirm := &input.Input{ConfirmPressed: true}
	tests := []struct {
		name string
		keys []*input.Input
		want encounter.Action
	}{
		{"first move", nil, encounter.Action{Kind: encounter.ActionMove, Move: 0}},
		{"second move", []*input.Input{{Right: true}}, encounter.Action{Kind: encounter.ActionMove, Move: 1}},
		{"run after wrapping", []*input.Input{{Left: true}}, encounter.Action{Kind: encounter.ActionRun}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewActionMenu()
			m.SetMoves([]string{"TACKLE", "GROWL"})
			m.Start()
			for _, in := range tt.keys {
				m.Update(in, 0.125)
			}
			m.Update(confirm, 0.125)
			got := m.Actions()
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("actions = %+v, want [%+v]", got, tt.want)
			}
			if len(m.Actions()) != 0 {
				t.Fatalf("actions must drain")
			}
		})
	}
}

func TestActionMenuInactive(t *testing.T) {
	m := NewActionMenu()
	m.SetMoves([]string{"TACKLE"})
	m.Update(&input.Input{Right: true}, 0.125)
	m.Update(&input.Input{ConfirmPressed: true}, 0.125)
	if m.Cursor() != 0 || len(m.Actions()) != 0 {
		t.Fatalf("a menu that was never started must ignore input")
	}

	m.Start()
	m.Update(&input.Input{Right: true}, 0.125)
	m.Reset()
	if m.Cursor() != 0 || m.Labels()[0] != "> TACKLE" {
		t.Fatalf("reset must return the highlight to the first entry")
	}
}
