package input

import (
	"photogrip/internal/domain"
	"photogrip/internal/ui/services/actions"
	"photogrip/internal/ui/services/navigation"
	"photogrip/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State      *state.AppState
	Navigation *navigation.Service
	Actions    *actions.Controller
}

// CurrentIndex returns the focused photo index
func (c *ModelContext) CurrentIndex() int {
	return c.Navigation.Cursor()
}

// TotalItems returns the number of photos in the grid
func (c *ModelContext) TotalItems() int {
	return len(c.State.Photos)
}

// SelectMode reports whether the dock is in select mode
func (c *ModelContext) SelectMode() bool {
	return c.Actions.SelectMode()
}

// SelectedCount returns the number of picked photos
func (c *ModelContext) SelectedCount() int {
	return c.Actions.Count()
}

// CanDelete reports whether the current user may delete from this list
func (c *ModelContext) CanDelete() bool {
	return c.Actions.CanDelete()
}

// Busy reports whether a share or delete is running
func (c *ModelContext) Busy() bool {
	return c.Actions.Busy().Busy
}

// SignedIn reports whether a session is stored
func (c *ModelContext) SignedIn() bool {
	return c.State.User.SignedIn()
}

// Tab returns the active tab
func (c *ModelContext) Tab() domain.Tab {
	return c.State.Tab
}

// PersonFilter returns the active people filter
func (c *ModelContext) PersonFilter() string {
	return c.State.PersonFilter
}
