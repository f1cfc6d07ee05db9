package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/ui/input/modes"
	"photogrip/internal/ui/input/types"
)

// Prompter is a mode that labels its text field
type Prompter interface {
	Prompt() string
}

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
	confirm     *modes.ConfirmMode
}

func New() *Handler {
	ti := textinput.New()

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
		confirm:     modes.NewConfirmMode(),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModePeople] = modes.NewPeopleMode()
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)
	h.modes[types.ModeLogin] = modes.NewLoginMode(h.textInput)
	h.modes[types.ModeUpload] = modes.NewUploadMode(h.textInput)
	h.modes[types.ModeDeleteConfirm] = h.confirm

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
			continue
		}
		allActions = append(allActions, action)
	}

	// Keys a text mode did not handle go to the text field
	if h.isTextMode(h.currentMode) && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// switchMode runs the exit and enter hooks around a mode change
func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if old := h.modes[h.currentMode]; old != nil {
		out = append(out, old.Exit(ctx)...)
	}
	if h.isTextMode(mode) {
		h.textInput.Reset()
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// Prompt returns the label of the active text mode
func (h *Handler) Prompt() string {
	if p, ok := h.modes[h.currentMode].(Prompter); ok {
		return p.Prompt()
	}
	return ""
}

// ConfirmCount is the number of photos the delete prompt is about
func (h *Handler) ConfirmCount() int {
	return h.confirm.Count()
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeFilter, types.ModeLogin, types.ModeUpload:
		return true
	default:
		return false
	}
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

// ChangeMode changes the current input mode from outside a key press
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) tea.Cmd {
	if mode == h.currentMode {
		return nil
	}
	h.switchMode(mode, ctx)
	if h.isTextMode(mode) {
		return textinput.Blink
	}
	return nil
}
