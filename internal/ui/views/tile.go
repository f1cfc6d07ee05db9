package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"photogrip/internal/domain"
	"photogrip/internal/ui/services/actions"
)

// TileHeight is the number of rows a tile occupies including its border
const TileHeight = 6

// TileState is everything needed to draw one photo tile
type TileState struct {
	Index      int
	Photo      domain.Photo
	Revealed   bool // tile has been on screen; content may load
	Selected   bool
	Badge      int // 1-based pick position, 0 when not picked
	Focused    bool
	SelectMode bool
}

// TileRenderer renders gallery tiles
type TileRenderer struct {
	styles *Styles
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(styles *Styles) *TileRenderer {
	return &TileRenderer{styles: styles}
}

// RenderTile renders a tile width columns wide
func (r *TileRenderer) RenderTile(t TileState, width int) string {
	inner := width - 2
	if inner < 4 {
		inner = 4
	}

	var marker string
	switch {
	case t.Selected && t.Badge > 0:
		marker = r.styles.Badge.Render(fmt.Sprintf(" %d ", t.Badge))
	case t.SelectMode:
		marker = r.styles.Dim.Render("○")
	}
	number := r.styles.Dim.Render(fmt.Sprintf("#%d", t.Index+1))
	gap := inner - ansi.StringWidth(marker) - ansi.StringWidth(number)
	if gap < 1 {
		gap = 1
	}
	top := marker + strings.Repeat(" ", gap) + number

	var body []string
	if t.Revealed {
		body = []string{
			ansi.Truncate("▧ "+actions.FileName(t.Photo.URL, t.Index), inner, "…"),
			r.styles.Dim.Render(ansi.Truncate(t.Photo.ID, inner, "…")),
		}
	} else {
		body = []string{
			r.styles.Placeholder.Render(strings.Repeat("░", inner)),
			r.styles.Placeholder.Render(strings.Repeat("░", inner)),
		}
	}

	lines := append([]string{top}, body...)
	for len(lines) < TileHeight-2 {
		lines = append(lines, "")
	}

	style := r.styles.Tile
	switch {
	case t.Focused:
		style = r.styles.TileFocused
	case t.Selected:
		style = r.styles.TileSelected
	}
	return style.Width(inner).Height(TileHeight - 2).Render(strings.Join(lines, "\n"))
}
