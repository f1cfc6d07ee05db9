package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"photogrip/internal/domain"
	"photogrip/internal/ui/coordinator"
	"photogrip/internal/ui/input/types"
	"photogrip/internal/ui/state"
	"photogrip/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	gallery          *coordinator.Coordinator
	width            int
	height           int
	help             help.Model
	keys             views.KeyMap
	inputTransformer *InputTransformer
	loginButton      func(width int) string
	viewer           func(width, height int) string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, gallery *coordinator.Coordinator) *ViewModel {
	return &ViewModel{
		state:            appState,
		gallery:          gallery,
		help:             help.New(),
		keys:             views.DefaultKeyMap(),
		inputTransformer: NewInputTransformer(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// GridWidth is the number of columns the grid may use
func (vm *ViewModel) GridWidth() int {
	return max(1, vm.width-2)
}

// GridHeight is the number of rows the grid may use
func (vm *ViewModel) GridHeight() int {
	return max(views.TileHeight, vm.height-views.ChromeHeight)
}

// SetHelp sets the help model
func (vm *ViewModel) SetHelp(helpModel help.Model) {
	vm.help = helpModel
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode types.Mode) {
	vm.inputTransformer.SetMode(mode)
}

// UpdateTextInput sets the text field of the active text mode
func (vm *ViewModel) UpdateTextInput(textInput *textinput.Model, prompt string) {
	vm.inputTransformer.SetTextInput(textInput, prompt)
}

// SetConfirmCount sets the count shown by the delete prompt
func (vm *ViewModel) SetConfirmCount(n int) {
	vm.inputTransformer.SetConfirmCount(n)
}

// SetLoginButton sets the renderer of the sign in call to action
func (vm *ViewModel) SetLoginButton(render func(width int) string) {
	vm.loginButton = render
}

// SetViewer sets the renderer of the open photo viewer; it returns "" when
// the viewer is closed
func (vm *ViewModel) SetViewer(render func(width, height int) string) {
	vm.viewer = render
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	st := vm.state
	people := st.Tab == domain.TabFind && st.Screen == state.ScreenPeople

	vs := views.ViewState{
		Width:  vm.width,
		Height: vm.height,
		Header: views.HeaderState{
			Tab:             st.Tab,
			PhotoCount:      len(st.Photos),
			GuestCount:      st.GuestCount,
			GuestCountKnown: st.GuestCountKnown,
			User:            st.User.Username,
			SignedIn:        st.User.SignedIn(),
			Stale:           st.Stale,
			Loading:         st.LoadingState,
		},
		ShowPeople:    people,
		StatusMessage: st.StatusMessage,
		StatusLevel:   statusLevel(st.StatusLevel),
		InputMode:     vm.inputTransformer.GetInputModeString(),
		TextInput:     vm.inputTransformer.GetInputText(),
		HelpModel:     vm.help,
		Keys:          vm.keys.ForPeople(people),
	}
	if st.SelectedPerson.ID != "" {
		vs.Header.Person = st.SelectedPerson.DisplayName()
	}

	if vm.viewer != nil {
		vs.Viewer = vm.viewer(vm.width, vm.height)
	}
	if vs.InputMode == "login" && vm.loginButton != nil {
		vs.LoginButton = vm.loginButton(40)
	}

	if people {
		vs.People = views.PeopleState{
			Persons: st.FilteredPersons(),
			Cursor:  st.PersonCursor,
			Filter:  st.PersonFilter,
			Loaded:  st.PersonsLoaded,
			Height:  max(1, vm.height-views.ChromeHeight+3),
		}
		return vs
	}

	g := vm.gallery
	ctrl := g.Actions
	busy := ctrl.Busy()
	vs.Grid = views.GridState{
		Photos:     st.Photos,
		Layout:     g.Layout(),
		RowOffset:  g.Navigation.RowOffset(),
		Height:     g.Height(),
		Cursor:     g.Navigation.Cursor(),
		SelectMode: ctrl.SelectMode(),
		Revealed:   g.Revealed,
		Selected:   ctrl.IsSelected,
		Badge:      ctrl.Badge,
	}
	vs.Dock = views.DockState{
		Expanded:   g.Dock.Expanded(),
		Busy:       busy.Busy,
		StatusText: busy.StatusText,
		Count:      ctrl.Count(),
		HasDeleter: ctrl.CanDelete(),
	}
	return vs
}

func statusLevel(l state.StatusLevel) string {
	switch l {
	case state.StatusSuccess:
		return views.StatusSuccess
	case state.StatusWarning:
		return views.StatusWarning
	case state.StatusError:
		return views.StatusError
	default:
		return views.StatusInfo
	}
}
