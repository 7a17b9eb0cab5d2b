// Package tui provides the Bubble Tea pager used to review a finished
// report, and the Lip Gloss summary it displays.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lukemcguire/lycheereport/result"
)

// footerHeight is the number of lines reserved below the viewport.
const footerHeight = 1

// Model is the Bubble Tea model for the report pager.
type Model struct {
	viewport viewport.Model
	content  string
	ready    bool
	quitting bool
}

// NewModel creates a pager over the rendered report.
func NewModel(res *result.Report) Model {
	return Model{content: RenderSummary(res)}
}

// Init does nothing; the pager waits for the first window size.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := max(msg.Height-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return dimStyle.Render("Loading report...")
	}
	footer := dimStyle.Render(fmt.Sprintf("%3.f%%  q to quit", m.viewport.ScrollPercent()*100))
	return m.viewport.View() + "\n" + footer
}

// Run opens the pager and blocks until the user quits.
func Run(res *result.Report, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(NewModel(res), opts...).Run(); err != nil {
		return fmt.Errorf("report pager: %w", err)
	}
	return nil
}
