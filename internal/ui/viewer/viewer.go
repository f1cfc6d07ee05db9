// Package viewer is the full-screen single photo view opened from the gallery.
package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"photogrip/internal/domain"
	"photogrip/internal/ui/services/actions"
	"photogrip/internal/ui/views"
)

// DetailsMsg asks the host to show the photo details in a pager
type DetailsMsg struct {
	Content string
}

// CopyMsg asks the host to copy the photo link
type CopyMsg struct {
	URL string
}

// Viewer shows one photo of a list at a time
type Viewer struct {
	images []domain.Photo
	index  int
	open   bool
	onBack func(finalIndex int)
	styles *views.Styles
}

// New creates a closed viewer. onBack runs when the viewer is left, with the
// index it was showing.
func New(styles *views.Styles, onBack func(finalIndex int)) *Viewer {
	if styles == nil {
		styles = views.NewStyles()
	}
	return &Viewer{styles: styles, onBack: onBack}
}

// Open shows images starting at start, clamped to the list
func (v *Viewer) Open(images []domain.Photo, start int) {
	v.images = append([]domain.Photo(nil), images...)
	v.index = clamp(start, len(v.images))
	v.open = len(v.images) > 0
}

// IsOpen reports whether the viewer owns the screen
func (v *Viewer) IsOpen() bool {
	return v.open
}

// Index returns the shown index
func (v *Viewer) Index() int {
	return v.index
}

// Current returns the shown photo
func (v *Viewer) Current() (domain.Photo, bool) {
	if !v.open || v.index >= len(v.images) {
		return domain.Photo{}, false
	}
	return v.images[v.index], true
}

// Next moves right, stopping at the last photo
func (v *Viewer) Next() {
	v.index = clamp(v.index+1, len(v.images))
}

// Prev moves left, stopping at the first photo
func (v *Viewer) Prev() {
	v.index = clamp(v.index-1, len(v.images))
}

// Close leaves the viewer and reports the final index
func (v *Viewer) Close() {
	if !v.open {
		return
	}
	v.open = false
	if v.onBack != nil {
		v.onBack(v.index)
	}
}

// HandleKey processes a key while the viewer is open
func (v *Viewer) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if !v.open {
		return nil
	}
	switch msg.String() {
	case "left", "h":
		v.Prev()
	case "right", "l":
		v.Next()
	case "home", "g":
		v.index = 0
	case "end", "G":
		v.index = clamp(len(v.images)-1, len(v.images))
	case "esc", "q", "backspace":
		v.Close()
	case "i":
		content := Details(v.images, v.index)
		return func() tea.Msg { return DetailsMsg{Content: content} }
	case "y":
		if p, ok := v.Current(); ok {
			return func() tea.Msg { return CopyMsg{URL: p.URL} }
		}
	}
	return nil
}

// Details is the plain text shown in the details pager
func Details(images []domain.Photo, index int) string {
	if index < 0 || index >= len(images) {
		return ""
	}
	p := images[index]
	var b strings.Builder
	fmt.Fprintf(&b, "Photo %d of %d\n\n", index+1, len(images))
	fmt.Fprintf(&b, "File:  %s\n", actions.FileName(p.URL, index))
	fmt.Fprintf(&b, "ID:    %s\n", p.ID)
	fmt.Fprintf(&b, "Link:  %s\n", p.URL)
	return b.String()
}

// View renders the viewer filling width x height
func (v *Viewer) View(width, height int) string {
	p, ok := v.Current()
	if !ok {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 8 {
		height = 8
	}

	inner := width - 4
	name := ansi.Truncate(actions.FileName(p.URL, v.index), inner-4, "…")
	art := lipgloss.Place(inner, height-6, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			"▧",
			"",
			name,
			v.styles.Dim.Render(ansi.Truncate(p.URL, inner-4, "…")),
		))
	frame := v.styles.ViewerFrame.Width(inner).Render(art)

	var nav []string
	if v.index > 0 {
		nav = append(nav, "← prev")
	}
	nav = append(nav, fmt.Sprintf("%d / %d", v.index+1, len(v.images)))
	if v.index < len(v.images)-1 {
		nav = append(nav, "next →")
	}
	caption := v.styles.ViewerCaption.Render(strings.Join(nav, "   "))
	hint := v.styles.Help.Render("i details · y copy link · esc back")

	return lipgloss.JoinVertical(lipgloss.Center,
		frame,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, caption),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, hint),
	)
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
