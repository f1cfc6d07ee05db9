package views

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func labels(bs []DockButton) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Label
	}
	return out
}

func TestDockButtonsIdle(t *testing.T) {
	bs := DockButtons(DockState{HasDeleter: true, Count: 3})
	assert.Equal(t, []string{"Select"}, labels(bs))
	assert.Empty(t, DockChip(DockState{Count: 3}))
}

func TestDockButtonsSelectMode(t *testing.T) {
	tests := []struct {
		name      string
		state     DockState
		labels    []string
		actionsOn bool
	}{
		{"empty selection", DockState{Expanded: true, HasDeleter: true}, []string{"Share", "Delete", "Cancel"}, false},
		{"picked", DockState{Expanded: true, HasDeleter: true, Count: 2}, []string{"Share", "Delete", "Cancel"}, true},
		{"busy", DockState{Expanded: true, HasDeleter: true, Count: 2, Busy: true}, []string{"Share", "Delete", "Cancel"}, false},
		{"no deleter", DockState{Expanded: true, Count: 1}, []string{"Share", "Cancel"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := DockButtons(tt.state)
			assert.Equal(t, tt.labels, labels(bs))
			for _, b := range bs[:len(bs)-1] {
				assert.Equal(t, tt.actionsOn, b.Enabled, b.Label)
			}
			assert.True(t, bs[len(bs)-1].Enabled, "cancel is always available")
		})
	}
}

func TestDockChip(t *testing.T) {
	assert.Equal(t, "0 selected", DockChip(DockState{Expanded: true}))
	assert.Equal(t, "4 selected", DockChip(DockState{Expanded: true, Count: 4}))
	assert.Equal(t, "Deleting 2/4", DockChip(DockState{Expanded: true, Count: 4, Busy: true, StatusText: "Deleting 2/4"}))
}

func TestDockRender(t *testing.T) {
	d := NewDockRenderer(NewStyles())

	out := ansi.Strip(d.Render(DockState{Expanded: true, Count: 2, HasDeleter: true}, 80))

	assert.Contains(t, out, "2 selected")
	assert.Contains(t, out, "S Share")
	assert.Contains(t, out, "d Delete")
	assert.Contains(t, out, "esc Cancel")
}
