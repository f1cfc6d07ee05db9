package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/domain"
	"photogrip/internal/eventbus"
	"photogrip/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, bus eventbus.EventBus, services Services) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State:    state,
			Bus:      bus,
			Services: services,
		},
	}
}

// ExecuteRefresh creates and executes a refresh command
func (e *Executor) ExecuteRefresh(tab domain.Tab) tea.Cmd {
	return NewRefreshCommand(e.ctx, tab).Execute()
}

// ExecuteLoadPersons creates and executes a load persons command
func (e *Executor) ExecuteLoadPersons() tea.Cmd {
	return NewLoadPersonsCommand(e.ctx).Execute()
}

// ExecuteSelectPerson creates and executes a select person command
func (e *Executor) ExecuteSelectPerson(person domain.Person) tea.Cmd {
	return NewSelectPersonCommand(e.ctx, person).Execute()
}

// ExecuteShare creates and executes a share command
func (e *Executor) ExecuteShare() tea.Cmd {
	return NewShareCommand(e.ctx).Execute()
}

// ExecuteDelete creates and executes a delete command
func (e *Executor) ExecuteDelete() tea.Cmd {
	return NewDeleteCommand(e.ctx).Execute()
}

// ExecuteUpload creates and executes an upload command
func (e *Executor) ExecuteUpload(paths []string) tea.Cmd {
	return NewUploadCommand(e.ctx, paths).Execute()
}

// ExecuteLogin creates and executes a login command
func (e *Executor) ExecuteLogin(token string) tea.Cmd {
	return NewLoginCommand(e.ctx, token).Execute()
}

// ExecuteLogout creates and executes a logout command
func (e *Executor) ExecuteLogout() tea.Cmd {
	return NewLogoutCommand(e.ctx).Execute()
}
