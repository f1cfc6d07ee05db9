package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/config"
	"photogrip/internal/domain"
	"photogrip/internal/eventbus"
	"photogrip/internal/logging"
	"photogrip/internal/ui/commands"
	"photogrip/internal/ui/coordinator"
	"photogrip/internal/ui/handlers"
	"photogrip/internal/ui/input"
	inputtypes "photogrip/internal/ui/input/types"
	"photogrip/internal/ui/services/actions"
	"photogrip/internal/ui/services/dock"
	"photogrip/internal/ui/services/navigation"
	"photogrip/internal/ui/services/visibility"
	"photogrip/internal/ui/state"
	"photogrip/internal/ui/viewer"
	"photogrip/internal/ui/viewmodels"
	"photogrip/internal/ui/views"
	"photogrip/internal/upload"
)

// tabOrder is the cycle followed by tab
var tabOrder = []domain.Tab{domain.TabAll, domain.TabMine, domain.TabFind}

// DeletePolicy decides whether the user may delete photos on a tab
type DeletePolicy interface {
	CanDelete(tab domain.Tab, user domain.User) bool
}

// Deps are the collaborators the model drives
type Deps struct {
	Services  commands.Services
	Actions   *actions.Controller
	Policy    DeletePolicy
	Clipboard actions.Clipboard
	Session   domain.User // restored session, zero for a guest
	Logger    logging.Logger
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        views.KeyMap
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	gallery      *coordinator.Coordinator // grid, selection, dock and visibility
	viewer       *viewer.Viewer           // full screen photo viewer
	renderer     *views.Renderer          // view renderer
	eventHandler *handlers.EventHandler   // event processing handler
	viewModel    *viewmodels.ViewModel    // view model for rendering
	cmdExecutor  *commands.Executor       // command executor
	inputHandler *input.Handler           // input handling
	pager        *Pager                   // ov pager for help and details

	policy    DeletePolicy
	clipboard actions.Clipboard
	log       logging.Logger
	afterBack tea.Cmd // focus change queued when the viewer closes

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, deps Deps) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}
	ctrl := deps.Actions
	if ctrl == nil {
		ctrl = actions.NewController(actions.Options{Logger: log})
	}
	if deps.Services.Actions == nil {
		deps.Services.Actions = ctrl
	}

	appState := state.NewAppState()
	if deps.Session.Username != "" {
		appState.User = deps.Session
	}

	renderer := views.NewRenderer(nil)
	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		help:         help.New(),
		keys:         views.DefaultKeyMap(),
		renderer:     renderer,
		inputHandler: input.New(),
		pager:        &Pager{},
		policy:       deps.Policy,
		clipboard:    deps.Clipboard,
		log:          log.With("component", "ui"),
	}

	m.gallery = coordinator.NewCoordinator(appState, ctrl, coordinator.Options{
		TileWidth:           cfg.UI.TileWidth,
		TileHeight:          views.TileHeight,
		CollapseDelay:       cfg.UI.CollapseDelay.Duration,
		VisibilityThreshold: cfg.UI.VisibilityThreshold,
		VisibilityMargin:    cfg.UI.VisibilityMargin,
	})
	m.gallery.Actions.SetDeletePolicy(m.canDelete())

	m.viewer = viewer.New(renderer.Styles(), func(index int) {
		m.afterBack = m.gallery.MoveTo(index)
	})

	m.eventHandler = handlers.NewEventHandler(appState, handlers.Hooks{
		PhotosReplaced: func() tea.Cmd {
			return m.gallery.PhotosReplaced(m.canDelete())
		},
		SessionChanged: m.sessionChanged,
	})

	m.cmdExecutor = commands.NewExecutor(appState, bus, deps.Services)

	m.viewModel = viewmodels.NewViewModel(appState, m.gallery)
	m.viewModel.SetHelp(m.help)
	m.viewModel.SetViewer(func(width, height int) string {
		if !m.viewer.IsOpen() {
			return ""
		}
		return m.viewer.View(width-2, height)
	})
	if p := deps.Services.Identity; p != nil {
		m.viewModel.SetLoginButton(p.RenderButton)
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tick(),
		m.cmdExecutor.ExecuteRefresh(m.state.Tab),
		m.cmdExecutor.ExecuteLoadPersons(),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		return m, m.gallery.Resize(m.viewModel.GridWidth(), m.viewModel.GridHeight())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The viewer owns the keyboard while it is open
		if m.viewer.IsOpen() {
			cmd := m.viewer.HandleKey(msg)
			back := m.afterBack
			m.afterBack = nil
			return m, tea.Batch(cmd, back)
		}

		ctx := &input.ModelContext{
			State:      m.state,
			Navigation: m.gallery.Navigation,
			Actions:    m.gallery.Actions,
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		if modeCmd := m.syncInputMode(ctx); modeCmd != nil {
			cmds = append(cmds, modeCmd)
		}

		return m, tea.Batch(cmds...)

	default:
		// Text inputs blink; everything else is ours
		inputCmd := m.inputHandler.Update(msg)
		model, cmd := m.handleNonKeyboardMsg(msg)
		return model, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetInputMode(m.inputHandler.CurrentMode())
	m.viewModel.UpdateTextInput(m.inputHandler.TextInput(), m.inputHandler.Prompt())
	m.viewModel.SetConfirmCount(m.inputHandler.ConfirmCount())

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// canDelete asks the delete policy about the current tab and user
func (m *Model) canDelete() bool {
	if m.policy == nil {
		return false
	}
	return m.policy.CanDelete(m.state.Tab, m.state.User)
}

// sessionChanged re-evaluates what the new user may do
func (m *Model) sessionChanged() tea.Cmd {
	m.gallery.Actions.SetDeletePolicy(m.canDelete())
	if m.state.Tab == domain.TabMine && !m.state.User.SignedIn() {
		m.state.ReplacePhotos(nil, m.state.Revision+1, false)
		return m.gallery.PhotosReplaced(false)
	}
	return nil
}

// syncInputMode keeps the normal and people modes in step with the screen
func (m *Model) syncInputMode(ctx inputtypes.Context) tea.Cmd {
	people := m.state.Tab == domain.TabFind && m.state.Screen == state.ScreenPeople
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeNormal:
		if people {
			return m.inputHandler.ChangeMode(inputtypes.ModePeople, ctx)
		}
	case inputtypes.ModePeople:
		if !people {
			return m.inputHandler.ChangeMode(inputtypes.ModeNormal, ctx)
		}
	}
	return nil
}

// switchTab moves to tab and starts loading it
func (m *Model) switchTab(tab domain.Tab) tea.Cmd {
	if m.gallery.Actions.Busy().Busy {
		return m.status("Wait for the current operation to finish", state.StatusWarning)
	}
	m.state.SwitchTab(tab)
	m.gallery.TabChanged()
	cmds := []tea.Cmd{m.gallery.PhotosReplaced(m.canDelete())}
	if tab == domain.TabFind {
		if !m.state.PersonsLoaded {
			cmds = append(cmds, m.cmdExecutor.ExecuteLoadPersons())
		}
	} else {
		cmds = append(cmds, m.cmdExecutor.ExecuteRefresh(tab))
	}
	return tea.Batch(cmds...)
}

func (m *Model) nextTab() domain.Tab {
	for i, t := range tabOrder {
		if t == m.state.Tab {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return domain.TabAll
}

func (m *Model) status(msg string, level state.StatusLevel) tea.Cmd {
	return handlers.ClearStatusAfter(m.state.SetStatus(msg, level))
}

// showHelpPager returns a command that shows help using ov pager
func (m *Model) showHelpPager() tea.Cmd {
	content := NewHelpRenderer(m.keys).RenderHelpContent()
	return m.runPager(content, func(err error) tea.Msg { return helpPagerMsg{err: err} })
}

// showDetailsPager returns a command that shows photo details using ov pager
func (m *Model) showDetailsPager(content string) tea.Cmd {
	return m.runPager(content, func(err error) tea.Msg { return detailsPagerMsg{err: err} })
}

func (m *Model) runPager(content string, done func(error) tea.Msg) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return done(fmt.Errorf("program not set")) }
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return done(err)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		return m.gallery.Navigate(navigation.Direction(a.Direction))

	case inputtypes.RangeNavigateAction:
		return m.gallery.RangeNavigate(navigation.Direction(a.Direction))

	case inputtypes.GestureAction:
		if index := m.gallery.Gesture(a.Gesture); index >= 0 {
			m.viewer.Open(m.state.Photos, index)
		}
		return nil

	case inputtypes.OpenSelectAction:
		m.gallery.OpenSelect()
		return nil

	case inputtypes.CancelSelectAction:
		return m.gallery.CancelSelect()

	case inputtypes.SelectAllAction:
		m.gallery.SelectAll()
		return nil

	case inputtypes.ShareAction:
		return m.cmdExecutor.ExecuteShare()

	case inputtypes.DeleteAction:
		return m.cmdExecutor.ExecuteDelete()

	case inputtypes.SwitchTabAction:
		return m.switchTab(a.Tab)

	case inputtypes.NextTabAction:
		return m.switchTab(m.nextTab())

	case inputtypes.RefreshAction:
		if m.state.Tab == domain.TabFind && m.state.Screen == state.ScreenPeople {
			return m.cmdExecutor.ExecuteLoadPersons()
		}
		return m.cmdExecutor.ExecuteRefresh(m.state.Tab)

	case inputtypes.PersonNavigateAction:
		m.state.MovePersonCursor(a.Delta)
		return nil

	case inputtypes.OpenPersonAction:
		person, ok := m.state.PersonAtCursor()
		if !ok {
			return nil
		}
		m.gallery.TabChanged()
		cmd := m.cmdExecutor.ExecuteSelectPerson(person)
		return tea.Batch(cmd, m.gallery.PhotosReplaced(m.canDelete()))

	case inputtypes.BackToPeopleAction:
		m.state.Screen = state.ScreenPeople
		m.state.SelectedPerson = domain.Person{}
		m.state.ReplacePhotos(nil, m.state.Revision+1, false)
		m.gallery.TabChanged()
		return m.gallery.PhotosReplaced(m.canDelete())

	case inputtypes.ClearFilterAction:
		m.state.SetPersonFilter("")
		return nil

	case inputtypes.UpdateTextAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModeFilter {
			m.state.SetPersonFilter(a.Text)
		}
		return nil

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeFilter:
			m.state.SetPersonFilter(a.Text)
		case inputtypes.ModeLogin:
			return m.cmdExecutor.ExecuteLogin(a.Text)
		case inputtypes.ModeUpload:
			paths := upload.SplitPaths(a.Text)
			if len(paths) == 0 {
				return m.status("No files given", state.StatusWarning)
			}
			return m.cmdExecutor.ExecuteUpload(paths)
		}
		return nil

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.state.SetPersonFilter("")
		}
		return nil

	case inputtypes.LogoutAction:
		return m.cmdExecutor.ExecuteLogout()

	case inputtypes.ToggleHelpAction:
		return m.showHelpPager()

	case inputtypes.QuitAction:
		return tea.Quit

	default:
		return nil
	}
}

// handleNonKeyboardMsg processes non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.eventHandler.HandleEvent(msg.Event)
		m.gallery.SyncDock()
		return m, cmd

	case dock.CollapsedMsg:
		m.gallery.Collapsed(msg)
		return m, nil

	case visibility.ObservedMsg:
		m.gallery.Visibility.Apply(msg)
		return m, nil

	case handlers.ClearStatusMsg:
		m.state.ClearStatus(msg.Gen)
		return m, nil

	case viewer.DetailsMsg:
		return m, m.showDetailsPager(msg.Content)

	case viewer.CopyMsg:
		if m.clipboard == nil {
			return m, m.status("Clipboard unavailable", state.StatusWarning)
		}
		if err := m.clipboard.WriteText(msg.URL); err != nil {
			m.log.Warn("Copy to clipboard failed", "error", err)
			return m, m.status("Could not copy the link", state.StatusError)
		}
		return m, m.status("Link copied", state.StatusSuccess)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Error("Help pager failed", "error", msg.err)
		}
		return m, tick()

	case detailsPagerMsg:
		if msg.err != nil {
			m.log.Error("Details pager failed", "error", msg.err)
		}
		return m, tick()

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		return m, nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
