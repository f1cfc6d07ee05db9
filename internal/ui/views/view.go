package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// ChromeHeight is the number of rows around the grid: header, breadcrumb or
// input line, the two scroll indicators, the dock, status and footer
const ChromeHeight = 10

// Status levels understood by the renderer
const (
	StatusInfo    = "info"
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Header     HeaderState
	ShowPeople bool
	Grid       GridState
	Dock       DockState
	People     PeopleState
	Viewer     string // full screen photo view, replaces everything else

	StatusMessage string
	StatusLevel   string

	InputMode   string
	TextInput   string
	LoginButton string // shown in a popup while the token prompt is open

	HelpModel help.Model
	Keys      KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	headerRender *HeaderRenderer
	gridRender   *GridRenderer
	dockRender   *DockRenderer
	peopleRender *PeopleRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{
		styles:       styles,
		headerRender: NewHeaderRenderer(styles),
		gridRender:   NewGridRenderer(styles),
		dockRender:   NewDockRenderer(styles),
		peopleRender: NewPeopleRenderer(styles),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Styles returns the styles the renderer draws with
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Viewer != "" {
		return r.styles.Main.MaxHeight(state.Height).Render(state.Viewer)
	}

	width := state.Width - 2 // main container padding
	if width <= 0 {
		width = 78
	}

	content := &strings.Builder{}
	content.WriteString(r.headerRender.Render(state.Header, width))
	content.WriteString("\n")

	// One line for the prompt, the breadcrumb, or nothing
	switch {
	case state.InputMode == "delete-confirm":
		content.WriteString(r.styles.Confirm.Render(state.TextInput))
	case state.TextInput != "" && state.LoginButton == "":
		content.WriteString(state.TextInput)
	default:
		content.WriteString(r.headerRender.Breadcrumb(state.Header))
	}
	content.WriteString("\n")

	if state.ShowPeople {
		content.WriteString(r.peopleRender.Render(state.People, width))
	} else {
		content.WriteString(r.gridRender.Render(state.Grid))
	}

	var bottom []string
	if !state.ShowPeople {
		bottom = append(bottom, r.dockRender.Render(state.Dock, width))
	}
	bottom = append(bottom, r.renderStatus(state))
	bottom = append(bottom, state.HelpModel.View(state.Keys))
	footer := strings.Join(bottom, "\n")

	// Push the dock, status and footer to the bottom
	height := state.Height
	if height <= 0 {
		height = 24
	}
	used := lipgloss.Height(content.String()) + lipgloss.Height(footer)
	if pad := height - used; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	finalContent := r.styles.Main.MaxHeight(height).Render(content.String())

	if state.LoginButton != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, r.loginPopup(state), height, state.Width, r.styles.InfoBox)
	}
	return finalContent
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage == "" {
		return ""
	}
	switch state.StatusLevel {
	case StatusError:
		return r.styles.StatusError.Render(state.StatusMessage)
	case StatusWarning:
		return r.styles.StatusWarning.Render(state.StatusMessage)
	case StatusSuccess:
		return r.styles.Toast.Render(state.StatusMessage)
	default:
		return r.styles.Status.Render(state.StatusMessage)
	}
}

func (r *Renderer) loginPopup(state ViewState) string {
	lines := []string{
		r.styles.Title.Render("Sign in to upload your photos"),
		"",
		state.LoginButton,
		"",
		state.TextInput,
		"",
		r.styles.Dim.Render("enter to sign in · esc to cancel"),
	}
	return strings.Join(lines, "\n")
}
