package state

import (
	"photogrip/internal/domain"
	"photogrip/internal/ui/logic"
)

// Screen is the top level view shown below the header
type Screen int

const (
	ScreenGallery Screen = iota
	ScreenPeople
)

// StatusLevel picks the style of the status line
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// AppState contains all the application state
type AppState struct {
	// Gallery data
	Tab      domain.Tab
	Screen   Screen
	Photos   []domain.Photo // sequence shown by the grid
	Revision uint64         // bumps whenever Photos is replaced
	Stale    bool           // Photos came from the local cache

	// Find people
	Persons        []domain.Person
	PersonsLoaded  bool
	PersonFilter   string
	PersonCursor   int
	SelectedPerson domain.Person

	// Header
	User            domain.User
	GuestCount      int
	GuestCountKnown bool

	// UI state
	StatusMessage string
	StatusLevel   StatusLevel
	StatusGen     uint64 // invalidates pending clears of an older message
	LoadingState  string // current loading description, empty when idle
}

// NewAppState creates a new application state on the all photos tab
func NewAppState() *AppState {
	return &AppState{
		Tab:    domain.TabAll,
		Screen: ScreenGallery,
		User:   domain.User{Username: "Guest", IsGuest: true},
	}
}

// SetStatus shows msg and returns the generation a clear must match
func (s *AppState) SetStatus(msg string, level StatusLevel) uint64 {
	s.StatusGen++
	s.StatusMessage = msg
	s.StatusLevel = level
	return s.StatusGen
}

// ClearStatus clears the status line if gen is still the latest message
func (s *AppState) ClearStatus(gen uint64) {
	if gen == s.StatusGen {
		s.StatusMessage = ""
		s.StatusLevel = StatusInfo
	}
}

// Accepts reports whether a loaded list belongs on screen
func (s *AppState) Accepts(tab domain.Tab, personID string) bool {
	if tab != s.Tab {
		return false
	}
	if tab == domain.TabFind {
		return personID != "" && personID == s.SelectedPerson.ID
	}
	return true
}

// ReplacePhotos swaps the shown sequence
func (s *AppState) ReplacePhotos(photos []domain.Photo, revision uint64, stale bool) {
	s.Photos = append([]domain.Photo(nil), photos...)
	s.Revision = revision
	s.Stale = stale
	s.LoadingState = ""
}

// SwitchTab moves to tab and forgets the previous list. The find tab starts
// on the people screen.
func (s *AppState) SwitchTab(tab domain.Tab) {
	s.Tab = tab
	s.Photos = nil
	s.Stale = false
	s.Screen = ScreenGallery
	if tab == domain.TabFind {
		s.Screen = ScreenPeople
		s.SelectedPerson = domain.Person{}
	}
}

// FilteredPersons returns the persons matching the current filter
func (s *AppState) FilteredPersons() []domain.Person {
	return logic.FilterPersons(s.Persons, s.PersonFilter)
}

// PersonAtCursor returns the focused person of the filtered list
func (s *AppState) PersonAtCursor() (domain.Person, bool) {
	persons := s.FilteredPersons()
	if s.PersonCursor < 0 || s.PersonCursor >= len(persons) {
		return domain.Person{}, false
	}
	return persons[s.PersonCursor], true
}

// MovePersonCursor moves the people cursor by delta, clamped to the list
func (s *AppState) MovePersonCursor(delta int) {
	s.PersonCursor += delta
	s.ClampPersonCursor()
}

// ClampPersonCursor keeps the people cursor inside the filtered list
func (s *AppState) ClampPersonCursor() {
	n := len(s.FilteredPersons())
	if s.PersonCursor >= n {
		s.PersonCursor = n - 1
	}
	if s.PersonCursor < 0 {
		s.PersonCursor = 0
	}
}

// SetPersonFilter applies a new filter and resets the cursor
func (s *AppState) SetPersonFilter(query string) {
	s.PersonFilter = query
	s.PersonCursor = 0
}
