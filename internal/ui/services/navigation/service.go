// Package navigation moves the gallery cursor over a grid of tiles and keeps
// it inside the scrolled viewport.
package navigation

import "photogrip/internal/ui/logic"

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionLeft     Direction = "left"
	DirectionRight    Direction = "right"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// State holds all navigation-related state
type State struct {
	Cursor    int
	RowOffset int // tile rows scrolled off the top
	Height    int // terminal rows available to the grid
}

// Service handles cursor movement for one grid
type Service struct {
	state State
	grid  logic.Grid
}

// NewService creates a navigation service at the top of an empty grid
func NewService() *Service {
	return &Service{state: State{Height: 1}}
}

// State returns a copy of the navigation state
func (s *Service) State() State {
	return s.state
}

// Cursor returns the focused index
func (s *Service) Cursor() int {
	return s.state.Cursor
}

// RowOffset returns the number of tile rows scrolled away
func (s *Service) RowOffset() int {
	return s.state.RowOffset
}

// Grid returns the layout the service navigates
func (s *Service) Grid() logic.Grid {
	return s.grid
}

// SetGrid updates the layout, for a resize or a new sequence
func (s *Service) SetGrid(g logic.Grid, height int) {
	s.grid = g
	if height < 1 {
		height = 1
	}
	s.state.Height = height
	s.state.Cursor = s.clampIndex(s.state.Cursor)
	s.ensureVisible()
}

// Reset moves back to the first tile
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.RowOffset = 0
}

// Navigate moves the cursor and reports whether it changed
func (s *Service) Navigate(direction Direction) bool {
	old := s.state.Cursor
	cols := s.grid.Columns()

	switch direction {
	case DirectionUp:
		if s.state.Cursor-cols >= 0 {
			s.state.Cursor -= cols
		}
	case DirectionDown:
		if s.state.Cursor+cols < s.grid.Count {
			s.state.Cursor += cols
		} else if s.grid.Count > 0 {
			// jump into a short last row
			row, _ := s.grid.Cell(s.state.Cursor)
			if row < s.grid.Rows()-1 {
				s.state.Cursor = s.grid.Count - 1
			}
		}
	case DirectionLeft:
		if s.state.Cursor > 0 {
			s.state.Cursor--
		}
	case DirectionRight:
		if s.state.Cursor < s.grid.Count-1 {
			s.state.Cursor++
		}
	case DirectionPageUp:
		s.state.Cursor = s.clampIndex(s.state.Cursor - s.pageRows()*cols)
		s.state.RowOffset = max(0, s.state.RowOffset-s.pageRows())
	case DirectionPageDown:
		s.state.Cursor = s.clampIndex(s.state.Cursor + s.pageRows()*cols)
	case DirectionHome:
		s.state.Cursor = 0
		s.state.RowOffset = 0
	case DirectionEnd:
		s.state.Cursor = s.clampIndex(s.grid.Count - 1)
	}

	s.ensureVisible()
	return old != s.state.Cursor
}

// MoveToIndex focuses index and scrolls it into view
func (s *Service) MoveToIndex(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

// visibleRows is the number of whole tile rows that fit
func (s *Service) visibleRows() int {
	if s.grid.TileHeight <= 0 {
		return 1
	}
	return max(1, s.state.Height/s.grid.TileHeight)
}

func (s *Service) pageRows() int {
	return max(1, s.visibleRows()-1)
}

func (s *Service) clampIndex(index int) int {
	if index < 0 || s.grid.Count == 0 {
		return 0
	}
	if index >= s.grid.Count {
		return s.grid.Count - 1
	}
	return index
}

func (s *Service) ensureVisible() {
	row, _ := s.grid.Cell(s.state.Cursor)
	rows := s.visibleRows()

	if row < s.state.RowOffset {
		s.state.RowOffset = row
	} else if row >= s.state.RowOffset+rows {
		s.state.RowOffset = row - rows + 1
	}

	maxOffset := max(0, s.grid.Rows()-rows)
	if s.state.RowOffset > maxOffset {
		s.state.RowOffset = maxOffset
	}
	if s.state.RowOffset < 0 {
		s.state.RowOffset = 0
	}
}
