package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"photogrip/internal/ui/input/types"
)

// FilterMode narrows the people list while typing
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, types.ModePeople, "filter", "Filter people: ", ti),
	}
}

// Enter keeps editing the active filter
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	if m.textInput != nil {
		m.textInput.Placeholder = "name or photos:N"
		if q := ctx.PersonFilter(); q != "" {
			m.textInput.SetValue(q)
			m.textInput.CursorEnd()
		}
	}
	return actions
}
