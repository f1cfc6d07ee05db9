package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	"photogrip/internal/domain"
)

// PeopleState is the find people screen as the renderer sees it
type PeopleState struct {
	Persons []domain.Person // already filtered
	Cursor  int
	Filter  string
	Loaded  bool
	Height  int
}

// PeopleRenderer draws the list of recognised people
type PeopleRenderer struct {
	styles *Styles
}

// NewPeopleRenderer creates a new people renderer
func NewPeopleRenderer(styles *Styles) *PeopleRenderer {
	return &PeopleRenderer{styles: styles}
}

// Render draws the list, scrolled so that the cursor is visible
func (p *PeopleRenderer) Render(s PeopleState, width int) string {
	var header string
	if s.Filter != "" {
		header = p.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", s.Filter)) + "\n"
	}

	switch {
	case !s.Loaded:
		return header + p.styles.Dim.Render("Looking for faces…")
	case len(s.Persons) == 0 && s.Filter != "":
		return header + p.styles.Dim.Render("Nobody matches the filter.")
	case len(s.Persons) == 0:
		return header + p.styles.Dim.Render("No people found yet.")
	}

	nameWidth := 0
	for _, person := range s.Persons {
		nameWidth = max(nameWidth, ansi.StringWidth(person.DisplayName()))
	}
	nameWidth = min(nameWidth, max(8, width-20))

	lines := make([]string, len(s.Persons))
	for i, person := range s.Persons {
		name := ansi.Truncate(person.DisplayName(), nameWidth, "…")
		name += strings.Repeat(" ", nameWidth-ansi.StringWidth(name))
		line := fmt.Sprintf("  ☺ %s  %s", name, p.styles.Dim.Render(person.PhotosLabel()))
		if i == s.Cursor {
			line = p.styles.PersonSelected.Render(fmt.Sprintf("▸ ☺ %s  %s", name, person.PhotosLabel()))
		}
		lines[i] = line
	}

	height := s.Height
	if s.Filter != "" {
		height--
	}
	height = max(1, height)

	vp := viewport.New(width, height)
	vp.SetContent(strings.Join(lines, "\n"))
	if s.Cursor >= height {
		vp.SetYOffset(s.Cursor - height + 1)
	}
	return header + vp.View()
}
