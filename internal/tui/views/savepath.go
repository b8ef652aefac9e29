package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vpds/otchetnik/internal/report"
	"github.com/vpds/otchetnik/internal/tui/components"
	"github.com/vpds/otchetnik/internal/tui/msgs"
	"github.com/vpds/otchetnik/internal/tui/styles"
)

// SavePathModel edits the report output path.
type SavePathModel struct {
	input    textinput.Model
	errorMsg string
	width    int
	height   int
}

// NewSavePathModel creates the output path editor prefilled with initial.
func NewSavePathModel(initial string) SavePathModel {
	ti := textinput.New()
	ti.Placeholder = "Отчет.docx"
	ti.CharLimit = 256
	ti.Width = 60
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return SavePathModel{input: ti}
}

// Init implements tea.Model.
func (m SavePathModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SavePathModel) Update(msg tea.Msg) (SavePathModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				m.errorMsg = "Output path cannot be empty"
				return m, nil
			}
			// Missing extension is normalized at generation time too; doing
			// it here keeps the displayed path honest.
			path = report.EnsureExt(path)
			return m, func() tea.Msg { return msgs.OutputPathMsg{Path: path} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m SavePathModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("Save Report As")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n  ")
		b.WriteString(styles.ErrorStyle.Render(m.errorMsg))
		b.WriteString("\n")
	}

	lines := strings.Count(b.String(), "\n") + 1
	remaining := m.height - lines - 1
	if remaining > 0 {
		b.WriteString(strings.Repeat("\n", remaining))
	}

	statusItems := []string{"Enter Confirm", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// Value returns the current input value.
func (m SavePathModel) Value() string {
	return m.input.Value()
}

// SetSize updates the model dimensions.
func (m *SavePathModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
