package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centred on top of main content. The
// content around the popup stays visible but greyed out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")
	modalW := lipgloss.Width(styledPopup)

	base := strings.Split(desaturate(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	x := max(0, (width-modalW)/2)
	y := max(0, (height-len(popupLines))/2)

	for i, line := range popupLines {
		row := y + i
		if row >= len(base) {
			base = append(base, "")
		}
		base[row] = splice(base[row], line, x, modalW)
	}
	return strings.Join(base, "\n")
}

// splice replaces w columns of line starting at column x with insert
func splice(line, insert string, x, w int) string {
	left := ansi.Truncate(line, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	right := ansi.TruncateLeft(line, x+w, "")
	return left + insert + right
}

var greyed = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// desaturate strips styles and recolors text dim gray
func desaturate(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = greyed.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
