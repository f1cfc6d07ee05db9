// Package dock is the state machine behind the gallery's action dock.
//
// The dock opens instantly and closes in two steps: a cancel request starts a
// collapse, and only when the collapse delay has elapsed is select mode left.
// Timers are owned by the caller; the dock hands out a generation per
// collapse so that a stale tick can be recognised and ignored.
package dock

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultCollapseDelay matches the collapse animation length
const DefaultCollapseDelay = 260 * time.Millisecond

// State of the dock
type State int

const (
	Collapsed State = iota
	Expanded
	Collapsing
)

func (s State) String() string {
	switch s {
	case Expanded:
		return "expanded"
	case Collapsing:
		return "collapsing"
	default:
		return "collapsed"
	}
}

// Dock tracks the open/closed state. Not safe for concurrent use.
type Dock struct {
	state State
	gen   uint64
	delay time.Duration
}

// New returns a collapsed dock; a non-positive delay uses the default
func New(delay time.Duration) *Dock {
	if delay <= 0 {
		delay = DefaultCollapseDelay
	}
	return &Dock{delay: delay}
}

// State returns the current state
func (d *Dock) State() State {
	return d.state
}

// Expanded reports whether the dock is drawn open. A collapsing dock already
// looks closed.
func (d *Dock) Expanded() bool {
	return d.state == Expanded
}

// Delay returns the collapse delay
func (d *Dock) Delay() time.Duration {
	return d.delay
}

// Open expands the dock immediately and cancels a pending collapse
func (d *Dock) Open() {
	d.gen++
	d.state = Expanded
}

// RequestCancel starts a collapse and returns its generation. Calling it on
// a dock that is not expanded returns 0 and changes nothing.
func (d *Dock) RequestCancel() uint64 {
	if d.state != Expanded {
		return 0
	}
	d.gen++
	d.state = Collapsing
	return d.gen
}

// Elapsed finishes the collapse started with gen. It returns true exactly
// once per collapse; the caller then leaves select mode.
func (d *Dock) Elapsed(gen uint64) bool {
	if gen == 0 || gen != d.gen || d.state != Collapsing {
		return false
	}
	d.state = Collapsed
	return true
}

// SetOpen mirrors a select mode change made elsewhere. Closing snaps the dock
// shut without a delay and invalidates any pending collapse.
func (d *Dock) SetOpen(open bool) {
	if open {
		if d.state != Expanded {
			d.Open()
		}
		return
	}
	d.gen++
	d.state = Collapsed
}

// CollapsedMsg is delivered when a collapse delay has elapsed
type CollapsedMsg struct {
	Gen uint64
}

// Tick schedules the CollapsedMsg for gen
func (d *Dock) Tick(gen uint64) tea.Cmd {
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return CollapsedMsg{Gen: gen}
	})
}
