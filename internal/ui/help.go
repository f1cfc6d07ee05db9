package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"photogrip/internal/ui/views"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys views.KeyMap
}

// NewHelpRenderer creates a help renderer for keys
func NewHelpRenderer(keys views.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates the help page shown in the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("PhotoGrip Help"))
	help.WriteString("\n")

	groups := r.keys.FullHelp()
	width := 0
	for _, group := range groups {
		for _, b := range group {
			width = max(width, lipgloss.Width(b.Help().Key))
		}
	}

	for i, group := range groups {
		name := "Other"
		if i < len(views.HelpSections) {
			name = views.HelpSections[i]
		}
		help.WriteString(sectionStyle.Render(name))
		help.WriteString("\n")
		for _, b := range group {
			h := b.Help()
			pad := strings.Repeat(" ", width-lipgloss.Width(h.Key))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(h.Key), pad, descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  In the photo viewer: ←/→ browse, i details, y copy link, esc back"))
	help.WriteString("\n")

	return help.String()
}

// Pager shows text in ov, handing the terminal over while it runs
type Pager struct {
	program *tea.Program
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show runs ov over content until the user quits it
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
