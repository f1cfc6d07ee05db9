package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/ui/input/types"
)

type UploadMode struct {
	textInputMode TextInputMode
}

func NewUploadMode(ti *textinput.Model) *UploadMode {
	return &UploadMode{
		textInputMode: NewTextInputMode(types.ModeUpload, types.ModeNormal, "upload", "Upload files or folders: ", ti),
	}
}

func (m *UploadMode) Name() string {
	return m.textInputMode.Name()
}

func (m *UploadMode) Enter(ctx types.Context) []types.Action {
	actions := m.textInputMode.Enter(ctx)
	if ti := m.textInputMode.textInput; ti != nil {
		ti.Placeholder = "~/Pictures/wedding, ./best.jpg"
	}
	return actions
}

func (m *UploadMode) Exit(ctx types.Context) []types.Action {
	return m.textInputMode.Exit(ctx)
}

func (m *UploadMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// Enter submits an empty path list too; the model ignores it
	return m.textInputMode.HandleKey(msg, ctx)
}

func (m *UploadMode) Prompt() string {
	return m.textInputMode.Prompt()
}
