package viewmodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"

	"photogrip/internal/ui/input/types"
)

// InputTransformer turns the input mode into the prompt line of the view
type InputTransformer struct {
	mode         types.Mode
	textInput    *textinput.Model
	prompt       string
	confirmCount int
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer() *InputTransformer {
	return &InputTransformer{mode: types.ModeNormal}
}

// SetMode sets the current input mode
func (it *InputTransformer) SetMode(mode types.Mode) {
	it.mode = mode
}

// SetTextInput sets the field shown by text modes, nil outside them
func (it *InputTransformer) SetTextInput(ti *textinput.Model, prompt string) {
	it.textInput = ti
	it.prompt = prompt
}

// SetConfirmCount sets the number of photos the delete prompt is about
func (it *InputTransformer) SetConfirmCount(n int) {
	it.confirmCount = n
}

// GetInputText returns the current text input string for the view
func (it *InputTransformer) GetInputText() string {
	switch it.mode {
	case types.ModeNormal, types.ModePeople:
		return ""
	case types.ModeDeleteConfirm:
		if it.confirmCount == 1 {
			return "Delete 1 photo? (y/n): "
		}
		return fmt.Sprintf("Delete %d photos? (y/n): ", it.confirmCount)
	}
	if it.textInput == nil {
		return it.prompt
	}
	return it.prompt + it.textInput.View()
}

// GetInputModeString returns the string representation of the input mode
func (it *InputTransformer) GetInputModeString() string {
	switch it.mode {
	case types.ModeFilter:
		return "filter"
	case types.ModeLogin:
		return "login"
	case types.ModeUpload:
		return "upload"
	case types.ModeDeleteConfirm:
		return "delete-confirm"
	default:
		return ""
	}
}
