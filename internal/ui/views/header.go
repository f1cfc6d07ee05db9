package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"photogrip/internal/domain"
)

// HeaderState is the top bar as the renderer sees it
type HeaderState struct {
	Tab             domain.Tab
	PhotoCount      int
	GuestCount      int
	GuestCountKnown bool
	User            string
	SignedIn        bool
	Stale           bool
	Loading         string
	Person          string // person whose photos are shown on the find tab
}

// TabLabels are the tab titles in display order
var TabLabels = []struct {
	Tab   domain.Tab
	Label string
}{
	{domain.TabAll, "All photos"},
	{domain.TabMine, "My photos"},
	{domain.TabFind, "Find people"},
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// HeaderRenderer draws the title, tabs and counters
type HeaderRenderer struct {
	styles *Styles
	now    func() time.Time
}

// NewHeaderRenderer creates a new header renderer
func NewHeaderRenderer(styles *Styles) *HeaderRenderer {
	return &HeaderRenderer{styles: styles, now: time.Now}
}

// Render draws the header width columns wide
func (h *HeaderRenderer) Render(s HeaderState, width int) string {
	left := []string{h.styles.Title.Render("photogrip")}
	for _, t := range TabLabels {
		style := h.styles.Tab
		if t.Tab == s.Tab {
			style = h.styles.TabActive
		}
		left = append(left, style.Render(t.Label))
	}
	leftText := strings.Join(left, " ")

	var right []string
	if s.Loading != "" {
		frame := int(h.now().UnixMilli()/80) % len(spinnerFrames)
		right = append(right, h.styles.Dim.Render(spinnerFrames[frame]+" "+s.Loading))
	}
	if s.Stale {
		right = append(right, h.styles.StatusWarning.Render("offline"))
	}
	right = append(right, h.styles.Counter.Render(plural(s.PhotoCount, "photo", "photos")))
	if s.GuestCountKnown {
		right = append(right, h.styles.Counter.Render("👥 "+plural(s.GuestCount, "guest", "guests")))
	}
	user := s.User
	if !s.SignedIn {
		user = "Guest"
	}
	right = append(right, h.styles.Dim.Render(user))
	rightText := strings.Join(right, h.styles.Dim.Render(" · "))

	if width <= 0 {
		width = 80
	}
	pad := width - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if pad < 2 {
		return leftText + "\n" + rightText
	}
	return leftText + strings.Repeat(" ", pad) + rightText
}

// Breadcrumb is the line under the header on the find tab
func (h *HeaderRenderer) Breadcrumb(s HeaderState) string {
	if s.Tab != domain.TabFind || s.Person == "" {
		return ""
	}
	return h.styles.Filter.Render(fmt.Sprintf("Photos of %s", s.Person)) + h.styles.Dim.Render("  (esc: back to people)")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
