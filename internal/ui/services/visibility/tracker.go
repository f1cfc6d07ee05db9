// Package visibility records which gallery tiles have been on screen at least
// once for the current photo sequence. Tiles that were never revealed render
// a placeholder instead of loading their content.
package visibility

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultThreshold    = 0.10
	DefaultBottomMargin = -0.10
)

// Rect is a cell rectangle in grid coordinates
type Rect struct {
	X, Y, W, H int
}

// Area returns the cell count of r
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o, empty when they do not overlap
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// TileRect places one photo of the sequence
type TileRect struct {
	ID   string
	Rect Rect
}

// Tracker holds the revealed set for one sequence revision.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Tracker struct {
	Threshold    float64
	BottomMargin float64

	rev      uint64
	revealed map[string]struct{}
}

// NewTracker returns a tracker with the default threshold and margin
func NewTracker() *Tracker {
	return &Tracker{
		Threshold:    DefaultThreshold,
		BottomMargin: DefaultBottomMargin,
		revealed:     make(map[string]struct{}),
	}
}

// Revision returns the sequence revision the revealed set belongs to
func (t *Tracker) Revision() uint64 {
	return t.rev
}

// Reset empties the revealed set and binds it to rev
func (t *Tracker) Reset(rev uint64) {
	t.rev = rev
	t.revealed = make(map[string]struct{})
}

// Observe reveals every tile whose visible share of its own area inside the
// margin-adjusted viewport reaches the threshold. A revision other than the
// current one resets the set first. It returns the IDs newly revealed.
func (t *Tracker) Observe(rev uint64, viewport Rect, tiles []TileRect) []string {
	if t.revealed == nil || rev != t.rev {
		t.Reset(rev)
	}

	root := viewport
	root.H += int(math.Round(t.BottomMargin * float64(viewport.H)))
	if root.H <= 0 {
		return nil
	}

	var added []string
	for _, tile := range tiles {
		if _, ok := t.revealed[tile.ID]; ok {
			continue
		}
		area := tile.Rect.Area()
		if area == 0 {
			continue
		}
		visible := tile.Rect.Intersect(root).Area()
		if visible == 0 {
			continue
		}
		if float64(visible)/float64(area) >= t.Threshold {
			t.revealed[tile.ID] = struct{}{}
			added = append(added, tile.ID)
		}
	}
	return added
}

// Revealed reports whether id may load its content
func (t *Tracker) Revealed(id string) bool {
	_, ok := t.revealed[id]
	return ok
}

// Len returns the size of the revealed set
func (t *Tracker) Len() int {
	return len(t.revealed)
}

// ObservedMsg carries a viewport snapshot taken for a sequence revision
type ObservedMsg struct {
	Revision uint64
	Viewport Rect
	Tiles    []TileRect
}

// Cmd schedules an observation. The model applies it with Apply once the
// message arrives; snapshots of a replaced revision are dropped there.
func Cmd(rev uint64, viewport Rect, tiles []TileRect) tea.Cmd {
	return func() tea.Msg {
		return ObservedMsg{Revision: rev, Viewport: viewport, Tiles: tiles}
	}
}

// Apply observes msg unless it belongs to a revision the tracker has moved
// past. It reports whether anything new was revealed.
func (t *Tracker) Apply(msg ObservedMsg) bool {
	if msg.Revision != t.rev {
		return false
	}
	return len(t.Observe(msg.Revision, msg.Viewport, msg.Tiles)) > 0
}
