// Package tui implements the interactive shell: a home screen with an action
// log, a protocol file picker, an output path editor and an items preview.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vpds/otchetnik/internal/report"
	"github.com/vpds/otchetnik/internal/tui/msgs"
	"github.com/vpds/otchetnik/internal/tui/views"
)

// View represents the different screens in the TUI.
type View int

const (
	ViewHome View = iota
	ViewFilePicker
	ViewSavePath
	ViewPreview
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	home     views.HomeModel
	picker   views.FilePickerModel
	savePath views.SavePathModel
	preview  views.PreviewModel
}

// Run starts the TUI application.
func Run(opts Options) error {
	m, err := initialModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func initialModel(opts Options) (Model, error) {
	templatePath := opts.TemplatePath
	if templatePath == "" {
		var err error
		templatePath, err = report.TemplatePath()
		if err != nil {
			return Model{}, err
		}
	}

	return Model{
		currentView: ViewHome,
		home:        views.NewHomeModel(templatePath),
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.home.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.picker.SetSize(msg.Width, msg.Height)
		m.savePath.SetSize(msg.Width, msg.Height)
		m.preview.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.GoToHomeMsg:
		m.currentView = ViewHome
		return m, nil

	case msgs.GoToFilePickerMsg:
		startDir, err := os.Getwd()
		if err != nil {
			startDir = "."
		}
		m.picker = views.NewFilePickerModel(startDir)
		m.picker.SetSize(m.width, m.height)
		m.currentView = ViewFilePicker
		return m, m.picker.Init()

	case msgs.ProtocolSelectedMsg:
		m.home.SetProtocol(msg.Path)
		m.currentView = ViewHome
		return m, nil

	case msgs.GoToSavePathMsg:
		initial := m.home.OutputPath()
		if initial == "" {
			initial = report.DefaultOutputName(m.home.ProtocolPath())
		}
		m.savePath = views.NewSavePathModel(initial)
		m.savePath.SetSize(m.width, m.height)
		m.currentView = ViewSavePath
		return m, m.savePath.Init()

	case msgs.OutputPathMsg:
		m.home.SetOutputPath(msg.Path)
		m.currentView = ViewHome
		return m, nil

	case msgs.GoToPreviewMsg:
		m.preview = views.NewPreviewModel(m.home.Items(), m.home.OverdueFlags())
		m.preview.SetSize(m.width, m.height)
		m.currentView = ViewPreview
		return m, nil
	}

	// Everything else goes to the active view. Generation progress messages
	// always target home, which stays active while generating.
	var cmd tea.Cmd
	switch m.currentView {
	case ViewFilePicker:
		m.picker, cmd = m.picker.Update(msg)
	case ViewSavePath:
		m.savePath, cmd = m.savePath.Update(msg)
	case ViewPreview:
		m.preview, cmd = m.preview.Update(msg)
	default:
		m.home, cmd = m.home.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.currentView {
	case ViewFilePicker:
		return m.picker.View()
	case ViewSavePath:
		return m.savePath.View()
	case ViewPreview:
		return m.preview.View()
	default:
		return m.home.View()
	}
}
