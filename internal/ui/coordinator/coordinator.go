// Package coordinator ties the gallery services together: cursor navigation,
// the action controller, the dock state machine and the visibility tracker
// all follow the same photo sequence.
package coordinator

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/domain"
	"photogrip/internal/ui/logic"
	"photogrip/internal/ui/services/actions"
	"photogrip/internal/ui/services/dock"
	"photogrip/internal/ui/services/navigation"
	"photogrip/internal/ui/services/visibility"
	"photogrip/internal/ui/state"
)

const (
	DefaultTileWidth = 22
	MinTileWidth     = 10
)

// Options tunes the gallery layout and timers
type Options struct {
	TileWidth           int
	TileHeight          int
	CollapseDelay       time.Duration
	VisibilityThreshold float64
	VisibilityMargin    float64
}

// Coordinator manages the gallery services and their interactions
type Coordinator struct {
	Navigation *navigation.Service
	Actions    *actions.Controller
	Dock       *dock.Dock
	Visibility *visibility.Tracker

	state      *state.AppState
	tileWidth  int
	tileHeight int
	width      int
	height     int
}

// NewCoordinator creates a coordinator over ctrl for the photos held in st
func NewCoordinator(st *state.AppState, ctrl *actions.Controller, opts Options) *Coordinator {
	tw := opts.TileWidth
	if tw == 0 {
		tw = DefaultTileWidth
	}
	if tw < MinTileWidth {
		tw = MinTileWidth
	}
	th := opts.TileHeight
	if th <= 0 {
		th = 6
	}

	tracker := visibility.NewTracker()
	if opts.VisibilityThreshold > 0 {
		tracker.Threshold = opts.VisibilityThreshold
	}
	if opts.VisibilityMargin != 0 {
		tracker.BottomMargin = opts.VisibilityMargin
	}

	return &Coordinator{
		Navigation: navigation.NewService(),
		Actions:    ctrl,
		Dock:       dock.New(opts.CollapseDelay),
		Visibility: tracker,
		state:      st,
		tileWidth:  tw,
		tileHeight: th,
	}
}

// Layout returns the grid for the current sequence and size
func (c *Coordinator) Layout() logic.Grid {
	return logic.Grid{
		Count:      len(c.state.Photos),
		Width:      c.width,
		TileWidth:  c.tileWidth,
		TileHeight: c.tileHeight,
	}
}

// Height is the number of terminal rows the grid may use
func (c *Coordinator) Height() int {
	return c.height
}

// Resize lays the grid out again and observes the new viewport
func (c *Coordinator) Resize(width, height int) tea.Cmd {
	c.width = width
	c.height = height
	c.Navigation.SetGrid(c.Layout(), height)
	return c.Observe()
}

// PhotosReplaced pushes a new sequence into every service. Picks follow
// their photo ids; the revealed set starts over for the new revision.
func (c *Coordinator) PhotosReplaced(canDelete bool) tea.Cmd {
	c.Actions.SetPhotos(c.state.Photos)
	c.Actions.SetDeletePolicy(canDelete)
	c.Visibility.Reset(c.state.Revision)
	c.Navigation.SetGrid(c.Layout(), c.height)
	return c.Observe()
}

// TabChanged leaves select mode and scrolls back to the top
func (c *Coordinator) TabChanged() {
	c.Actions.ExitSelectMode()
	c.Dock.SetOpen(false)
	c.Navigation.Reset()
}

// Observe snapshots the visible tiles for the visibility tracker
func (c *Coordinator) Observe() tea.Cmd {
	if len(c.state.Photos) == 0 || c.height <= 0 {
		return nil
	}
	g := c.Layout()
	off := c.Navigation.RowOffset()
	ids := make([]string, len(c.state.Photos))
	for i, p := range c.state.Photos {
		ids[i] = p.ID
	}
	return visibility.Cmd(c.state.Revision, g.Viewport(off, c.height), g.Tiles(ids, off, c.height))
}

// Navigate moves the cursor; a scroll schedules an observation
func (c *Coordinator) Navigate(dir navigation.Direction) tea.Cmd {
	off := c.Navigation.RowOffset()
	if !c.Navigation.Navigate(dir) && off == c.Navigation.RowOffset() {
		return nil
	}
	return c.Observe()
}

// RangeNavigate moves the cursor and, in select mode, picks the range from
// the anchor to the new position
func (c *Coordinator) RangeNavigate(dir navigation.Direction) tea.Cmd {
	cmd := c.Navigate(dir)
	if c.Actions.SelectMode() {
		c.pickRange(c.Navigation.Cursor())
	}
	return cmd
}

// MoveTo focuses index, used when the viewer closes
func (c *Coordinator) MoveTo(index int) tea.Cmd {
	c.Navigation.MoveToIndex(index)
	return c.Observe()
}

// Gesture applies a tile gesture to the focused tile. It returns the index
// to open in the viewer, or -1.
func (c *Coordinator) Gesture(g logic.Gesture) int {
	if len(c.state.Photos) == 0 {
		return -1
	}
	cursor := c.Navigation.Cursor()
	switch logic.RouteTile(c.Actions.SelectMode(), g) {
	case logic.TileOpenViewer:
		return cursor
	case logic.TileToggle:
		c.Actions.TogglePick(cursor, nil)
	case logic.TileRange:
		c.pickRange(cursor)
	case logic.TileEnterSelectAndToggle:
		c.OpenSelect()
		c.Actions.TogglePick(cursor, nil)
	}
	return -1
}

func (c *Coordinator) pickRange(index int) {
	c.Actions.TogglePick(index, c.Actions.RangeTo(index))
}

// OpenSelect enters select mode with the dock expanded
func (c *Coordinator) OpenSelect() {
	c.Actions.EnterSelectMode()
	c.Dock.Open()
}

// CancelSelect starts the dock collapse; select mode ends when it elapses
func (c *Coordinator) CancelSelect() tea.Cmd {
	gen := c.Dock.RequestCancel()
	if gen == 0 {
		c.Actions.ExitSelectMode()
		return nil
	}
	return c.Dock.Tick(gen)
}

// Collapsed finishes a collapse started by CancelSelect
func (c *Coordinator) Collapsed(msg dock.CollapsedMsg) {
	if c.Dock.Elapsed(msg.Gen) {
		c.Actions.ExitSelectMode()
	}
}

// SelectAll picks every photo of the sequence in order
func (c *Coordinator) SelectAll() {
	n := len(c.state.Photos)
	if n == 0 {
		return
	}
	if !c.Actions.SelectMode() {
		c.OpenSelect()
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	c.Actions.TogglePick(0, all)
}

// SyncDock mirrors select mode changes made by bulk operations
func (c *Coordinator) SyncDock() {
	if c.Dock.State() == dock.Collapsing {
		return
	}
	c.Dock.SetOpen(c.Actions.SelectMode())
}

// Revealed reports whether the tile for id may show its content
func (c *Coordinator) Revealed(id string) bool {
	return c.Visibility.Revealed(id)
}

// Focused returns the photo under the cursor
func (c *Coordinator) Focused() (domain.Photo, bool) {
	i := c.Navigation.Cursor()
	if i < 0 || i >= len(c.state.Photos) {
		return domain.Photo{}, false
	}
	return c.state.Photos[i], true
}
