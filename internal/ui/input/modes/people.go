package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/ui/input/types"
)

// PeopleMode browses the recognised persons of the find tab
type PeopleMode struct{}

func NewPeopleMode() *PeopleMode {
	return &PeopleMode{}
}

func (m *PeopleMode) Name() string {
	return "people"
}

func (m *PeopleMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PeopleMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PeopleMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()
	if actions, ok := tabKey(key); ok {
		return actions, true
	}

	switch key {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	case "up", "k":
		return []types.Action{types.PersonNavigateAction{Delta: -1}}, true
	case "down", "j":
		return []types.Action{types.PersonNavigateAction{Delta: 1}}, true
	case "pgup":
		return []types.Action{types.PersonNavigateAction{Delta: -10}}, true
	case "pgdown":
		return []types.Action{types.PersonNavigateAction{Delta: 10}}, true
	case "enter", " ":
		return []types.Action{types.OpenPersonAction{}}, true
	case "/", "f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true
	case "esc":
		if ctx.PersonFilter() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return nil, true
	case "r":
		return []types.Action{types.RefreshAction{}}, true
	case "L":
		if ctx.SignedIn() {
			return []types.Action{types.LogoutAction{}}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLogin}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}
