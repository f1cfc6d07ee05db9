package types

import (
	"photogrip/internal/domain"
	"photogrip/internal/ui/logic"
)

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// GestureAction is a tile gesture on the focused photo
type GestureAction struct {
	Gesture logic.Gesture
}

func (a GestureAction) Type() string { return "gesture" }

// RangeNavigateAction moves the cursor and extends the range to it
type RangeNavigateAction struct {
	Direction string
}

func (a RangeNavigateAction) Type() string { return "range_navigate" }

// Selection actions
type OpenSelectAction struct{}

func (a OpenSelectAction) Type() string { return "open_select" }

type CancelSelectAction struct{}

func (a CancelSelectAction) Type() string { return "cancel_select" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

// Bulk actions
type ShareAction struct{}

func (a ShareAction) Type() string { return "share" }

type DeleteAction struct{}

func (a DeleteAction) Type() string { return "delete" }

// Tabs and lists
type SwitchTabAction struct {
	Tab domain.Tab
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

type NextTabAction struct{}

func (a NextTabAction) Type() string { return "next_tab" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

// Find people
type PersonNavigateAction struct {
	Delta int
}

func (a PersonNavigateAction) Type() string { return "person_navigate" }

type OpenPersonAction struct{}

func (a OpenPersonAction) Type() string { return "open_person" }

type BackToPeopleAction struct{}

func (a BackToPeopleAction) Type() string { return "back_to_people" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Session
type LogoutAction struct{}

func (a LogoutAction) Type() string { return "logout" }

// Other
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
