package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vpds/otchetnik/internal/tui/components"
	"github.com/vpds/otchetnik/internal/tui/msgs"
	"github.com/vpds/otchetnik/internal/tui/styles"
)

// PreviewModel shows the extracted items as a scrollable list, with overdue
// items rendered in the error style.
type PreviewModel struct {
	items   []string
	overdue []bool
	cursor  int
	offset  int // first visible item
	width   int
	height  int
}

// NewPreviewModel creates a preview of items; overdue flags are computed
// against today via the deadline evaluator.
func NewPreviewModel(items []string, overdue []bool) PreviewModel {
	if overdue == nil {
		overdue = make([]bool, len(items))
	}
	return PreviewModel{items: items, overdue: overdue}
}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (PreviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q", "enter":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		}
		m.clampOffset()
	}
	return m, nil
}

// visibleRows returns how many item lines fit between title and status bar.
func (m PreviewModel) visibleRows() int {
	rows := m.height - 5
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *PreviewModel) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render(fmt.Sprintf("Items Found: %d", len(m.items)))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	end := m.offset + rows
	if end > len(m.items) {
		end = len(m.items)
	}
	for i := m.offset; i < end; i++ {
		line := fmt.Sprintf("%d. %s", i+1, m.items[i])
		line = truncate(line, m.width-4)
		switch {
		case i == m.cursor:
			line = styles.SelectedStyle.Render(line)
		case m.overdue[i]:
			line = styles.ErrorStyle.Render(line)
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	lines := strings.Count(b.String(), "\n") + 1
	remaining := m.height - lines - 1
	if remaining > 0 {
		b.WriteString(strings.Repeat("\n", remaining))
	}

	statusItems := []string{"↑↓ Navigate", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// Cursor returns the current cursor position.
func (m PreviewModel) Cursor() int {
	return m.cursor
}

// SetSize updates the model dimensions.
func (m *PreviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
