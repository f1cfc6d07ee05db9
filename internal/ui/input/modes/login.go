package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/ui/input/types"
)

// LoginMode takes a Google ID token. An empty submit falls back to the
// token from the environment.
type LoginMode struct {
	textInputMode TextInputMode
}

func NewLoginMode(ti *textinput.Model) *LoginMode {
	return &LoginMode{
		textInputMode: NewTextInputMode(types.ModeLogin, types.ModeNormal, "login", "Google ID token: ", ti),
	}
}

func (m *LoginMode) Name() string {
	return m.textInputMode.Name()
}

func (m *LoginMode) Enter(ctx types.Context) []types.Action {
	actions := m.textInputMode.Enter(ctx)
	if ti := m.textInputMode.textInput; ti != nil {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		ti.Placeholder = "paste token, or enter to use PHOTOGRIP_GOOGLE_ID_TOKEN"
	}
	return actions
}

func (m *LoginMode) Exit(ctx types.Context) []types.Action {
	return m.textInputMode.Exit(ctx)
}

func (m *LoginMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	return m.textInputMode.HandleKey(msg, ctx)
}

func (m *LoginMode) Prompt() string {
	return m.textInputMode.Prompt()
}
