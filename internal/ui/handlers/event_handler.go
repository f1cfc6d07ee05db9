package handlers

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/eventbus"
	"photogrip/internal/ui/services/actions"
	"photogrip/internal/ui/state"
)

// StatusTTL is how long a status message stays on screen
const StatusTTL = 3 * time.Second

// ClearStatusMsg clears the status line if it still shows message Gen
type ClearStatusMsg struct {
	Gen uint64
}

// ClearStatusAfter schedules the clear of status message gen
func ClearStatusAfter(gen uint64) tea.Cmd {
	return tea.Tick(StatusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Gen: gen}
	})
}

// Hooks are called when an event changes what the gallery must rebuild
type Hooks struct {
	PhotosReplaced func() tea.Cmd
	SessionChanged func() tea.Cmd
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
	hooks Hooks
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, hooks Hooks) *EventHandler {
	return &EventHandler{state: appState, hooks: hooks}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.PhotosLoadedEvent:
		if !h.state.Accepts(e.Tab, e.PersonID) {
			return nil
		}
		h.state.ReplacePhotos(e.Photos, e.Revision, e.Stale)
		var cmds []tea.Cmd
		if h.hooks.PhotosReplaced != nil {
			cmds = append(cmds, h.hooks.PhotosReplaced())
		}
		if e.Stale {
			cmds = append(cmds, h.status("Offline: showing saved photos", state.StatusWarning))
		}
		return tea.Batch(cmds...)

	case eventbus.PersonsLoadedEvent:
		h.state.PersonsLoaded = true
		if e.Err != nil {
			return h.status(fmt.Sprintf("Could not load people: %v", e.Err), state.StatusError)
		}
		h.state.Persons = e.Persons
		h.state.ClampPersonCursor()

	case eventbus.GuestCountUpdatedEvent:
		h.state.GuestCount = e.Count
		h.state.GuestCountKnown = true

	case eventbus.BulkProgressEvent:
		// redraw only; the dock reads progress from the controller

	case eventbus.BulkCompletedEvent:
		return h.bulkCompleted(e)

	case eventbus.UploadCompletedEvent:
		h.state.LoadingState = ""
		if e.Err != nil {
			return h.status(fmt.Sprintf("Upload failed: %v", e.Err), state.StatusError)
		}
		if msg := e.Result.Message(); msg != "" {
			return h.status(msg, state.StatusSuccess)
		}

	case eventbus.SessionChangedEvent:
		h.state.User = e.User
		var cmds []tea.Cmd
		if h.hooks.SessionChanged != nil {
			cmds = append(cmds, h.hooks.SessionChanged())
		}
		if e.User.SignedIn() {
			cmds = append(cmds, h.status("Signed in as "+e.User.Username, state.StatusSuccess))
		} else {
			cmds = append(cmds, h.status("Signed out", state.StatusInfo))
		}
		return tea.Batch(cmds...)

	case eventbus.ErrorEvent:
		h.state.LoadingState = ""
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return h.status("Error: "+msg, state.StatusError)
	}

	return nil
}

func (h *EventHandler) bulkCompleted(e eventbus.BulkCompletedEvent) tea.Cmd {
	switch {
	case errors.Is(e.Err, actions.ErrBusy):
		return h.status("Another action is still running", state.StatusWarning)
	case e.Err != nil && e.Op == "delete":
		return h.status(fmt.Sprintf("Delete failed: %v", e.Err), state.StatusError)
	case e.Err != nil:
		return h.status(fmt.Sprintf("Share failed: %v", e.Err), state.StatusError)
	case e.Count == 0:
		return nil
	case e.Op == "delete":
		return h.status(fmt.Sprintf("Deleted %s", photos(e.Count)), state.StatusSuccess)
	case e.Copied:
		return h.status("Links copied to clipboard", state.StatusSuccess)
	default:
		return h.status(fmt.Sprintf("Shared %s", photos(e.Count)), state.StatusSuccess)
	}
}

func (h *EventHandler) status(msg string, level state.StatusLevel) tea.Cmd {
	return ClearStatusAfter(h.state.SetStatus(msg, level))
}

func photos(n int) string {
	if n == 1 {
		return "1 photo"
	}
	return fmt.Sprintf("%d photos", n)
}
