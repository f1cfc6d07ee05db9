package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/ui/input/types"
)

// ConfirmMode asks before deleting the picked photos
type ConfirmMode struct {
	count int
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

// Count is the number of photos the prompt is about
func (m *ConfirmMode) Count() int {
	return m.count
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	m.count = ctx.SelectedCount()
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y":
		return []types.Action{
			types.DeleteAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "n", "N", "esc", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	// Swallow everything else while the prompt is up
	return nil, true
}
