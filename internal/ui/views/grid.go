package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"photogrip/internal/domain"
	"photogrip/internal/ui/logic"
)

// GridState is the gallery as the renderer sees it
type GridState struct {
	Photos     []domain.Photo
	Layout     logic.Grid
	RowOffset  int
	Height     int // rows available to the grid
	Cursor     int
	SelectMode bool
	Revealed   func(id string) bool
	Selected   func(index int) bool
	Badge      func(index int) int
}

// GridRenderer lays tiles out in rows
type GridRenderer struct {
	styles *Styles
	tiles  *TileRenderer
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles, tiles: NewTileRenderer(styles)}
}

// Render draws the rows of the grid that fit in state.Height
func (g *GridRenderer) Render(state GridState) string {
	if len(state.Photos) == 0 {
		return g.styles.Dim.Render("No photos yet.")
	}

	layout := state.Layout
	cols := layout.Columns()
	tileRows := 1
	if layout.TileHeight > 0 {
		tileRows = state.Height / layout.TileHeight
	}
	if tileRows < 1 {
		tileRows = 1
	}

	var rows []string
	if state.RowOffset > 0 {
		rows = append(rows, g.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.RowOffset*cols)))
	}

	for r := state.RowOffset; r < state.RowOffset+tileRows && r < layout.Rows(); r++ {
		cells := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			i := layout.Index(r, c)
			if i < 0 || i >= len(state.Photos) {
				break
			}
			cells = append(cells, g.tiles.RenderTile(g.tileState(state, i), layout.TileWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if last := (state.RowOffset + tileRows) * cols; last < len(state.Photos) {
		rows = append(rows, g.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(state.Photos)-last)))
	}

	return strings.Join(rows, "\n")
}

func (g *GridRenderer) tileState(state GridState, i int) TileState {
	p := state.Photos[i]
	t := TileState{
		Index:      i,
		Photo:      p,
		Focused:    i == state.Cursor,
		SelectMode: state.SelectMode,
	}
	if state.Revealed != nil {
		t.Revealed = state.Revealed(p.ID)
	}
	if state.Selected != nil {
		t.Selected = state.Selected(i)
	}
	if state.Badge != nil {
		t.Badge = state.Badge(i)
	}
	return t
}
