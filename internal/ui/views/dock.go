package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DockState is the action dock as the renderer sees it
type DockState struct {
	Expanded   bool // select mode and not collapsing
	Busy       bool
	StatusText string
	Count      int
	HasDeleter bool // delete is offered for the current list
}

// DockButton is one action of the dock
type DockButton struct {
	Key     string
	Label   string
	Enabled bool
	Danger  bool
}

// DockButtons returns the buttons drawn for state, left to right
func DockButtons(s DockState) []DockButton {
	if !s.Expanded {
		return []DockButton{{Key: "s", Label: "Select", Enabled: true}}
	}
	active := !s.Busy && s.Count > 0
	buttons := []DockButton{
		{Key: "S", Label: "Share", Enabled: active},
	}
	if s.HasDeleter {
		buttons = append(buttons, DockButton{Key: "d", Label: "Delete", Enabled: active, Danger: true})
	}
	return append(buttons, DockButton{Key: "esc", Label: "Cancel", Enabled: true})
}

// DockChip is the text beside the buttons: progress while busy, else the count
func DockChip(s DockState) string {
	if !s.Expanded {
		return ""
	}
	if s.Busy && s.StatusText != "" {
		return s.StatusText
	}
	return fmt.Sprintf("%d selected", s.Count)
}

// DockRenderer draws the action dock
type DockRenderer struct {
	styles *Styles
}

// NewDockRenderer creates a new dock renderer
func NewDockRenderer(styles *Styles) *DockRenderer {
	return &DockRenderer{styles: styles}
}

// Render draws the dock centred in width
func (d *DockRenderer) Render(s DockState, width int) string {
	var parts []string
	if chip := DockChip(s); chip != "" {
		parts = append(parts, d.styles.Chip.Render(chip))
	}
	for _, b := range DockButtons(s) {
		text := fmt.Sprintf("%s %s", b.Key, b.Label)
		switch {
		case !b.Enabled:
			parts = append(parts, d.styles.DockButtonOff.Render(text))
		case b.Danger:
			parts = append(parts, d.styles.DockDanger.Render(text))
		default:
			parts = append(parts, d.styles.DockButton.Render(text))
		}
	}
	dock := d.styles.Dock.Render(strings.Join(parts, "  "))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, dock)
}
