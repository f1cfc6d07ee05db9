package commands

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/api"
	"photogrip/internal/domain"
	"photogrip/internal/eventbus"
	"photogrip/internal/identity"
	"photogrip/internal/ui/services/actions"
	"photogrip/internal/ui/state"
	"photogrip/internal/upload"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// PhotoService loads the photo lists and persons
type PhotoService interface {
	Refresh(ctx context.Context, tab domain.Tab) error
	SelectPerson(ctx context.Context, personID string) error
	Persons(ctx context.Context) ([]domain.Person, error)
}

// BulkActions runs the bulk operations on the picked photos
type BulkActions interface {
	ShareSelected(ctx context.Context) (actions.ShareResult, error)
	DeleteSelected(ctx context.Context) (actions.DeleteResult, error)
}

// Uploader sends local images to the server
type Uploader interface {
	Upload(ctx context.Context, files []api.UploadFile) (domain.UploadResult, error)
}

// Sessions persists the signed in user
type Sessions interface {
	identity.SessionSaver
	Clear() error
}

// TokenSupplier accepts an ID token typed into the login prompt
type TokenSupplier interface {
	Supply(idToken string)
}

// Services are the collaborators commands run against. Ctx is the program
// lifetime; cancelling it aborts running work.
type Services struct {
	Ctx      context.Context
	Photos   PhotoService
	Actions  BulkActions
	Uploader Uploader
	Identity identity.Provider
	Sessions Sessions
}

// CommandContext provides context for command execution
type CommandContext struct {
	State    *state.AppState
	Bus      eventbus.EventBus
	Services Services
}

func (c *CommandContext) ctx() context.Context {
	if c.Services.Ctx == nil {
		return context.Background()
	}
	return c.Services.Ctx
}

func (c *CommandContext) publish(event eventbus.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(event)
	}
}

// RefreshCommand refetches the photo list of a tab
type RefreshCommand struct {
	ctx *CommandContext
	tab domain.Tab
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(ctx *CommandContext, tab domain.Tab) *RefreshCommand {
	return &RefreshCommand{ctx: ctx, tab: tab}
}

// Execute performs the refresh in the background
func (c *RefreshCommand) Execute() tea.Cmd {
	if c.ctx.Services.Photos == nil {
		return nil
	}
	c.ctx.State.LoadingState = "Loading photos…"
	tab := c.tab
	return func() tea.Msg {
		if err := c.ctx.Services.Photos.Refresh(c.ctx.ctx(), tab); err != nil && !errors.Is(err, context.Canceled) {
			c.ctx.publish(eventbus.ErrorEvent{Message: "Could not refresh photos", Err: err})
		}
		return nil
	}
}

// LoadPersonsCommand fetches the people list
type LoadPersonsCommand struct {
	ctx *CommandContext
}

// NewLoadPersonsCommand creates a new load persons command
func NewLoadPersonsCommand(ctx *CommandContext) *LoadPersonsCommand {
	return &LoadPersonsCommand{ctx: ctx}
}

// Execute loads persons; the photo service publishes the result
func (c *LoadPersonsCommand) Execute() tea.Cmd {
	if c.ctx.Services.Photos == nil {
		return nil
	}
	c.ctx.State.PersonsLoaded = false
	return func() tea.Msg {
		_, _ = c.ctx.Services.Photos.Persons(c.ctx.ctx())
		return nil
	}
}

// SelectPersonCommand shows the photos of one person
type SelectPersonCommand struct {
	ctx    *CommandContext
	person domain.Person
}

// NewSelectPersonCommand creates a new select person command
func NewSelectPersonCommand(ctx *CommandContext, person domain.Person) *SelectPersonCommand {
	return &SelectPersonCommand{ctx: ctx, person: person}
}

// Execute switches to the gallery and loads the person's photos
func (c *SelectPersonCommand) Execute() tea.Cmd {
	c.ctx.State.SelectedPerson = c.person
	c.ctx.State.Screen = state.ScreenGallery
	c.ctx.State.Photos = nil
	if c.ctx.Services.Photos == nil {
		return nil
	}
	c.ctx.State.LoadingState = "Loading photos of " + c.person.DisplayName() + "…"
	id := c.person.ID
	return func() tea.Msg {
		if err := c.ctx.Services.Photos.SelectPerson(c.ctx.ctx(), id); err != nil && !errors.Is(err, context.Canceled) {
			c.ctx.publish(eventbus.ErrorEvent{Message: "Could not load photos", Err: err})
		}
		return nil
	}
}

// ShareCommand shares the picked photos
type ShareCommand struct {
	ctx *CommandContext
}

// NewShareCommand creates a new share command
func NewShareCommand(ctx *CommandContext) *ShareCommand {
	return &ShareCommand{ctx: ctx}
}

// Execute runs the share in the background
func (c *ShareCommand) Execute() tea.Cmd {
	if c.ctx.Services.Actions == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := c.ctx.Services.Actions.ShareSelected(c.ctx.ctx())
		c.ctx.publish(eventbus.BulkCompletedEvent{Op: "share", Count: res.Count, Copied: res.Copied, Err: err})
		return nil
	}
}

// DeleteCommand deletes the picked photos
type DeleteCommand struct {
	ctx *CommandContext
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(ctx *CommandContext) *DeleteCommand {
	return &DeleteCommand{ctx: ctx}
}

// Execute runs the delete in the background
func (c *DeleteCommand) Execute() tea.Cmd {
	if c.ctx.Services.Actions == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := c.ctx.Services.Actions.DeleteSelected(c.ctx.ctx())
		c.ctx.publish(eventbus.BulkCompletedEvent{Op: "delete", Count: res.Requested - res.Failed, Err: err})
		return nil
	}
}

// UploadCommand uploads the images found at paths
type UploadCommand struct {
	ctx   *CommandContext
	paths []string
}

// NewUploadCommand creates a new upload command
func NewUploadCommand(ctx *CommandContext, paths []string) *UploadCommand {
	return &UploadCommand{ctx: ctx, paths: paths}
}

// Execute reads the files and uploads them, then refreshes the lists
func (c *UploadCommand) Execute() tea.Cmd {
	if len(c.paths) == 0 || c.ctx.Services.Uploader == nil {
		return nil
	}
	c.ctx.State.LoadingState = "Uploading…"
	paths := c.paths
	return func() tea.Msg {
		files, err := upload.Collect(paths)
		if err != nil {
			c.ctx.publish(eventbus.UploadCompletedEvent{Err: err})
			return nil
		}
		res, err := c.ctx.Services.Uploader.Upload(c.ctx.ctx(), files)
		c.ctx.publish(eventbus.UploadCompletedEvent{Result: res, Err: err})
		if err == nil {
			c.ctx.publish(eventbus.RefreshRequestedEvent{Tab: domain.TabAll})
			c.ctx.publish(eventbus.RefreshRequestedEvent{Tab: domain.TabMine})
		}
		return nil
	}
}

// LoginCommand signs in with the identity provider
type LoginCommand struct {
	ctx   *CommandContext
	token string
}

// NewLoginCommand creates a new login command. token is what the user typed
// into the login prompt and may be empty.
func NewLoginCommand(ctx *CommandContext, token string) *LoginCommand {
	return &LoginCommand{ctx: ctx, token: token}
}

// Execute exchanges the credential for a session in the background
func (c *LoginCommand) Execute() tea.Cmd {
	p := c.ctx.Services.Identity
	if p == nil || c.ctx.Services.Sessions == nil {
		return nil
	}
	if s, ok := p.(TokenSupplier); ok && c.token != "" {
		s.Supply(c.token)
	}
	c.ctx.State.LoadingState = "Signing in…"
	return func() tea.Msg {
		user, err := identity.SignIn(c.ctx.ctx(), p, c.ctx.Services.Sessions)
		if err != nil {
			c.ctx.publish(eventbus.ErrorEvent{Message: "Sign in failed", Err: err})
			return nil
		}
		c.ctx.publish(eventbus.SessionChangedEvent{User: user})
		c.ctx.publish(eventbus.RefreshRequestedEvent{Tab: domain.TabMine})
		return nil
	}
}

// LogoutCommand forgets the stored session
type LogoutCommand struct {
	ctx *CommandContext
}

// NewLogoutCommand creates a new logout command
func NewLogoutCommand(ctx *CommandContext) *LogoutCommand {
	return &LogoutCommand{ctx: ctx}
}

// Execute clears the session and announces the guest user
func (c *LogoutCommand) Execute() tea.Cmd {
	if c.ctx.Services.Sessions != nil {
		if err := c.ctx.Services.Sessions.Clear(); err != nil {
			c.ctx.publish(eventbus.ErrorEvent{Message: "Sign out failed", Err: err})
			return nil
		}
	}
	c.ctx.publish(eventbus.SessionChangedEvent{User: domain.User{Username: "Guest", IsGuest: true}})
	return nil
}
