// Package logic holds the pure layout and lookup helpers behind the views.
package logic

import "photogrip/internal/ui/services/visibility"

// Grid lays a photo sequence out in rows of fixed-size tiles
type Grid struct {
	Count      int
	Width      int // terminal columns available
	TileWidth  int // columns per tile including its gap
	TileHeight int // rows per tile including its gap
}

// Columns returns how many tiles fit in one row, at least one
func (g Grid) Columns() int {
	if g.TileWidth <= 0 {
		return 1
	}
	cols := g.Width / g.TileWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// Rows returns the number of tile rows the sequence occupies
func (g Grid) Rows() int {
	cols := g.Columns()
	return (g.Count + cols - 1) / cols
}

// Cell returns the row and column of index
func (g Grid) Cell(index int) (row, col int) {
	cols := g.Columns()
	return index / cols, index % cols
}

// Index returns the sequence index at row, col or -1 when there is none
func (g Grid) Index(row, col int) int {
	cols := g.Columns()
	if row < 0 || col < 0 || col >= cols {
		return -1
	}
	i := row*cols + col
	if i >= g.Count {
		return -1
	}
	return i
}

// TileRect places index in cell coordinates, row 0 at the top of the grid
func (g Grid) TileRect(index int) visibility.Rect {
	row, col := g.Cell(index)
	return visibility.Rect{X: col * g.TileWidth, Y: row * g.TileHeight, W: g.TileWidth, H: g.TileHeight}
}

// Viewport is the visible band of the grid: rowOffset tile rows scrolled
// away and heightRows terminal rows tall.
func (g Grid) Viewport(rowOffset, height int) visibility.Rect {
	return visibility.Rect{X: 0, Y: rowOffset * g.TileHeight, W: g.Columns() * g.TileWidth, H: height}
}

// VisibleRange returns the half-open index range drawn for a viewport
func (g Grid) VisibleRange(rowOffset, height int) (start, end int) {
	cols := g.Columns()
	rows := 1
	if g.TileHeight > 0 {
		rows = (height + g.TileHeight - 1) / g.TileHeight
	}
	start = rowOffset * cols
	end = start + rows*cols
	if start > g.Count {
		start = g.Count
	}
	if end > g.Count {
		end = g.Count
	}
	return start, end
}

// Tiles returns the rects of the range drawn for a viewport, keyed by id
func (g Grid) Tiles(ids []string, rowOffset, height int) []visibility.TileRect {
	start, end := g.VisibleRange(rowOffset, height)
	out := make([]visibility.TileRect, 0, end-start)
	for i := start; i < end && i < len(ids); i++ {
		out = append(out, visibility.TileRect{ID: ids[i], Rect: g.TileRect(i)})
	}
	return out
}
