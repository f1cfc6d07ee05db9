package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/domain"
	"photogrip/internal/ui/input/types"
	"photogrip/internal/ui/logic"
)

// NormalMode drives the photo grid
type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	if actions, ok := tabKey(key); ok {
		return actions, true
	}

	switch key {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "up", "k":
		return navigate("up"), true
	case "down", "j":
		return navigate("down"), true
	case "left", "h":
		return navigate("left"), true
	case "right", "l":
		return navigate("right"), true
	case "pgup", "ctrl+u":
		return navigate("pageup"), true
	case "pgdown", "ctrl+d":
		return navigate("pagedown"), true
	case "home":
		return navigate("home"), true
	case "end", "G":
		return navigate("end"), true

	case "shift+up", "K":
		return []types.Action{types.RangeNavigateAction{Direction: "up"}}, true
	case "shift+down", "J":
		return []types.Action{types.RangeNavigateAction{Direction: "down"}}, true
	case "shift+left", "H":
		return []types.Action{types.RangeNavigateAction{Direction: "left"}}, true
	case "shift+right":
		return []types.Action{types.RangeNavigateAction{Direction: "right"}}, true

	case "enter", " ":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.GestureAction{Gesture: logic.GestureActivate}}, true
	case "v":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.GestureAction{Gesture: logic.GestureLongPress}}, true
	case "V":
		if !ctx.SelectMode() {
			return nil, true
		}
		return []types.Action{types.GestureAction{Gesture: logic.GestureRange}}, true

	case "s":
		if ctx.SelectMode() {
			return []types.Action{types.CancelSelectAction{}}, true
		}
		return []types.Action{types.OpenSelectAction{}}, true
	case "a":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.SelectAllAction{}}, true
	case "S":
		if ctx.SelectMode() && ctx.SelectedCount() > 0 && !ctx.Busy() {
			return []types.Action{types.ShareAction{}}, true
		}
		return nil, true
	case "d", "delete":
		if ctx.SelectMode() && ctx.SelectedCount() > 0 && ctx.CanDelete() && !ctx.Busy() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm}}, true
		}
		return nil, true
	case "esc":
		if ctx.SelectMode() {
			return []types.Action{types.CancelSelectAction{}}, true
		}
		if ctx.Tab() == domain.TabFind {
			return []types.Action{types.BackToPeopleAction{}}, true
		}
		return nil, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true
	case "u":
		if ctx.SignedIn() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeUpload}}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLogin}}, true
	case "L":
		if ctx.SignedIn() {
			return []types.Action{types.LogoutAction{}}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLogin}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return navigate("home"), true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}

	return nil, false
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}

// tabKey maps the keys shared by the gallery and the people list
func tabKey(key string) ([]types.Action, bool) {
	switch key {
	case "1":
		return []types.Action{types.SwitchTabAction{Tab: domain.TabAll}}, true
	case "2":
		return []types.Action{types.SwitchTabAction{Tab: domain.TabMine}}, true
	case "3":
		return []types.Action{types.SwitchTabAction{Tab: domain.TabFind}}, true
	case "tab":
		return []types.Action{types.NextTabAction{}}, true
	}
	return nil, false
}
