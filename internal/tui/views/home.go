package views

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vpds/otchetnik/internal/protocol"
	"github.com/vpds/otchetnik/internal/report"
	"github.com/vpds/otchetnik/internal/tui/components"
	"github.com/vpds/otchetnik/internal/tui/msgs"
	"github.com/vpds/otchetnik/internal/tui/styles"
)

// homeState represents what the home view is currently doing.
type homeState int

const (
	stateIdle homeState = iota
	stateGenerating
	stateOpenPrompt
)

// logLineMsg carries one line for the action log.
type logLineMsg struct {
	line string
}

// topBlockLines is the fixed number of lines above the log panel.
const topBlockLines = 12

// HomeModel is the main screen: selected paths, protocol info, the action
// menu and a scrolling timestamped log.
type HomeModel struct {
	protocolPath string
	templatePath string
	templateOK   bool
	outputPath   string

	info    *report.Info
	infoErr string

	state      homeState
	spin       spinner.Model
	log        components.LogViewport
	logChan    chan string
	reportPath string // produced report, offered for opening

	width  int
	height int
}

// NewHomeModel creates the home view. templatePath is checked for existence
// up front, mirroring the startup template check of the report tool.
func NewHomeModel(templatePath string) HomeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	m := HomeModel{
		templatePath: templatePath,
		spin:         s,
		log:          components.NewLogViewport(80, 10),
	}

	if _, err := os.Stat(templatePath); err == nil {
		m.templateOK = true
		m.appendLog("Template loaded: " + templatePath)
	} else {
		m.appendLog("WARNING: template file not found: " + templatePath)
	}
	return m
}

// SetProtocol records the chosen protocol file and refreshes the info panel.
func (m *HomeModel) SetProtocol(path string) {
	m.protocolPath = path
	m.info = nil
	m.infoErr = ""

	info, err := report.Inspect(path, time.Now())
	if err != nil {
		m.infoErr = fmt.Sprintf("Failed to read protocol: %v", err)
		m.appendLog(m.infoErr)
		return
	}
	m.info = info

	if info.HeaderFound {
		m.appendLog(fmt.Sprintf("Loaded protocol №%s from %s, items: %d",
			info.Header.Number, info.Header.Date, len(info.Items)))
	} else {
		m.appendLog("Protocol header not found in " + path)
	}
	if m.outputPath == "" {
		m.outputPath = report.DefaultOutputName(path)
	}
}

// SetOutputPath records the confirmed output path.
func (m *HomeModel) SetOutputPath(path string) {
	m.outputPath = path
	m.appendLog("Output path set: " + path)
}

// ProtocolPath returns the selected protocol file path.
func (m HomeModel) ProtocolPath() string {
	return m.protocolPath
}

// OutputPath returns the current output path.
func (m HomeModel) OutputPath() string {
	return m.outputPath
}

// Items returns the extracted items, nil when no protocol is loaded.
func (m HomeModel) Items() []string {
	if m.info == nil {
		return nil
	}
	return m.info.Items
}

// OverdueFlags returns a per-item overdue flag for preview rendering.
func (m HomeModel) OverdueFlags() []bool {
	items := m.Items()
	flags := make([]bool, len(items))
	now := time.Now()
	for i, item := range items {
		flags[i] = protocol.IsOverdue(item, now)
	}
	return flags
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.state != stateGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case logLineMsg:
		m.appendLog(msg.line)
		if m.logChan != nil {
			return m, m.listenLog()
		}
		return m, nil

	case msgs.GenerateDoneMsg:
		// The generator closed the channel; drain whatever is still buffered
		// so no log line is lost.
		if m.logChan != nil {
			for line := range m.logChan {
				m.appendLog(line)
			}
			m.logChan = nil
		}
		if msg.Err != nil {
			m.appendLog(fmt.Sprintf("Report generation failed: %v", msg.Err))
			m.state = stateIdle
			return m, nil
		}
		m.reportPath = msg.Path
		m.appendLog("Report generation finished")
		m.state = stateOpenPrompt
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m HomeModel) handleKey(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateGenerating:
		// No cancellation: generation runs to completion or failure.
		return m, nil

	case stateOpenPrompt:
		switch msg.String() {
		case "y":
			m.state = stateIdle
			return m, openFileCmd(m.reportPath)
		case "n", "esc", "enter":
			m.state = stateIdle
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "p":
		return m, func() tea.Msg { return msgs.GoToFilePickerMsg{} }
	case "o":
		if m.protocolPath == "" {
			m.appendLog("Select a protocol file first")
			return m, nil
		}
		return m, func() tea.Msg { return msgs.GoToSavePathMsg{} }
	case "v":
		if len(m.Items()) == 0 {
			m.appendLog("No items to preview")
			return m, nil
		}
		return m, func() tea.Msg { return msgs.GoToPreviewMsg{} }
	case "g":
		return m.startGenerate()
	}

	// Remaining keys scroll the log.
	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

// startGenerate validates inputs and kicks off generation in a goroutine,
// streaming progress lines back through a channel.
func (m HomeModel) startGenerate() (HomeModel, tea.Cmd) {
	switch {
	case m.protocolPath == "":
		m.appendLog("Select a protocol file first")
		return m, nil
	case m.outputPath == "":
		m.appendLog("Choose an output path first")
		return m, nil
	case !m.templateOK:
		m.appendLog("Template file not found: " + m.templatePath)
		return m, nil
	}

	m.state = stateGenerating
	m.logChan = make(chan string, 256)

	opts := report.Options{
		ProtocolPath: m.protocolPath,
		TemplatePath: m.templatePath,
		OutputPath:   m.outputPath,
		Events:       chanEvents{ch: m.logChan},
	}
	ch := m.logChan
	generate := func() tea.Msg {
		path, err := report.Generate(opts)
		close(ch)
		return msgs.GenerateDoneMsg{Path: path, Err: err}
	}

	return m, tea.Batch(m.spin.Tick, m.listenLog(), generate)
}

// listenLog waits for the next progress line from the generator.
func (m HomeModel) listenLog() tea.Cmd {
	ch := m.logChan
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return logLineMsg{line: line}
	}
}

func (m *HomeModel) appendLog(line string) {
	m.log.Append(time.Now().Format("[15:04:05] ") + line)
}

// View implements tea.Model.
func (m HomeModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("O T C H E T N I K")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	b.WriteString("  Protocol: " + m.renderPath(m.protocolPath) + "\n")
	b.WriteString("  Template: " + m.renderTemplate() + "\n")
	b.WriteString("  Output:   " + m.renderPath(m.outputPath) + "\n\n")

	info1, info2 := m.renderInfo()
	b.WriteString("  " + info1 + "\n")
	b.WriteString("  " + info2 + "\n\n")

	b.WriteString("  " + m.renderMenu() + "\n\n")

	b.WriteString("  " + styles.SubtleStyle.Render("Log") + "\n")
	b.WriteString(m.log.View())
	b.WriteString("\n")

	b.WriteString(components.NewStatusBar().Render(m.width, m.statusItems()))
	return b.String()
}

func (m HomeModel) renderPath(path string) string {
	if path == "" {
		return styles.SubtleStyle.Render("not selected")
	}
	return path
}

func (m HomeModel) renderTemplate() string {
	if !m.templateOK {
		return styles.WarningStyle.Render(m.templatePath + " (missing)")
	}
	return m.templatePath
}

// renderInfo returns the two info-panel lines.
func (m HomeModel) renderInfo() (string, string) {
	switch {
	case m.infoErr != "":
		return styles.ErrorStyle.Render(m.infoErr), ""
	case m.info == nil:
		return styles.SubtleStyle.Render("Select a protocol file to show its info"), ""
	case !m.info.HeaderFound:
		return styles.ErrorStyle.Render("Could not extract protocol number and date"),
			fmt.Sprintf("Items found: %d", len(m.info.Items))
	}

	line1 := fmt.Sprintf("Protocol №%s from %s", m.info.Header.Number, m.info.Header.Date)
	line2 := fmt.Sprintf("Items found: %d", len(m.info.Items))
	if m.info.Overdue > 0 {
		line2 += "  " + styles.WarningStyle.Render(fmt.Sprintf("(overdue: %d)", m.info.Overdue))
	}
	return line1, line2
}

func (m HomeModel) renderMenu() string {
	switch m.state {
	case stateGenerating:
		return m.spin.View() + " Generating report..."
	case stateOpenPrompt:
		return styles.SuccessStyle.Render("Report saved: "+m.reportPath) + "  Open it? [y/n]"
	}

	entries := []string{
		"[p] Protocol",
		"[o] Output",
		"[v] Preview",
		"[g] Generate",
		"[q] Quit",
	}
	return styles.SubtleStyle.Render(strings.Join(entries, "  "))
}

func (m HomeModel) statusItems() []string {
	switch m.state {
	case stateGenerating:
		return []string{"Generating..."}
	case stateOpenPrompt:
		return []string{"y Open", "n Dismiss"}
	}
	return []string{"p Protocol", "o Output", "v Preview", "g Generate", "↑↓ Scroll log", "q Quit"}
}

// SetSize updates the model dimensions and resizes the log panel.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	logHeight := height - topBlockLines - 1
	if logHeight < 1 {
		logHeight = 1
	}
	m.log.SetSize(width, logHeight)
}

// chanEvents forwards report progress onto the log channel. Callbacks run on
// the generating goroutine; the channel hands lines to the UI loop.
type chanEvents struct {
	ch chan<- string
}

func (e chanEvents) OnStart(protocolPath, templatePath, outputPath string) {
	e.ch <- "Starting report generation..."
	e.ch <- "Protocol: " + protocolPath
	e.ch <- "Template: " + templatePath
	e.ch <- "Output: " + outputPath
}

func (e chanEvents) OnProtocolParsed(number, date string, itemCount int) {
	e.ch <- fmt.Sprintf("Protocol №%s from %s, items: %d", number, date, itemCount)
}

func (e chanEvents) OnItemAdded(index int, item, status string) {
	if status == "" {
		e.ch <- fmt.Sprintf("Item %d added", index)
		return
	}
	e.ch <- fmt.Sprintf("Item %d added (%s)", index, status)
}

func (e chanEvents) OnSaved(path string) {
	e.ch <- "Report saved: " + path
}

// openFileCmd opens path with the OS-default handler.
func openFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		var c *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			c = exec.Command("open", path)
		case "windows":
			c = exec.Command("cmd", "/c", "start", "", path)
		default:
			c = exec.Command("xdg-open", path)
		}
		if err := c.Start(); err != nil {
			return logLineMsg{line: fmt.Sprintf("Failed to open report: %v", err)}
		}
		return logLineMsg{line: "Opened report with default handler"}
	}
}
