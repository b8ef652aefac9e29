package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const defaultMaxLines = 500

// LogViewport is a scrolling line log built on bubbles/viewport. New lines
// keep the view pinned to the bottom until the user scrolls up; scrolling
// back to the bottom re-enables following. Old lines are dropped once the
// buffer exceeds its limit.
type LogViewport struct {
	viewport   viewport.Model
	raw        []string // unwrapped lines
	wrapped    []string // lines after wrapping at the content width
	autoScroll bool
	maxLines   int
	width      int
	height     int
}

// NewLogViewport creates a LogViewport with the given dimensions.
func NewLogViewport(width, height int) LogViewport {
	vp := viewport.New(contentWidth(width), height)
	vp.SetContent("")
	return LogViewport{
		viewport:   vp,
		autoScroll: true,
		maxLines:   defaultMaxLines,
		width:      width,
		height:     height,
	}
}

// contentWidth reserves one column for the scrollbar gutter.
func contentWidth(width int) int {
	if width <= 1 {
		return 0
	}
	return width - 1
}

// Append adds one line to the log.
func (l *LogViewport) Append(line string) {
	if len(l.raw) >= l.maxLines {
		l.raw = l.raw[1:]
	}
	l.raw = append(l.raw, line)
	l.rewrap()
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

// Update handles scroll keys and manages the follow state.
func (l *LogViewport) Update(msg tea.Msg) (LogViewport, tea.Cmd) {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "pgup":
			l.autoScroll = false
		case "down", "pgdown":
			if l.viewport.AtBottom() {
				l.autoScroll = true
			}
		case "end":
			l.autoScroll = true
			l.viewport.GotoBottom()
		case "home":
			l.autoScroll = false
		}
	}
	return *l, cmd
}

// SetSize updates the dimensions and rewraps the buffer.
func (l *LogViewport) SetSize(width, height int) {
	if l.width == width && l.height == height {
		return
	}
	l.width = width
	l.height = height
	l.viewport.Width = contentWidth(width)
	l.viewport.Height = height
	l.rewrap()
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

// LineCount returns the number of wrapped lines in the buffer.
func (l LogViewport) LineCount() int {
	return len(l.wrapped)
}

// AutoScroll reports whether the view is following new lines.
func (l LogViewport) AutoScroll() bool {
	return l.autoScroll
}

// View renders the log content with a scrollbar column on the right.
func (l LogViewport) View() string {
	content := strings.Split(l.viewport.View(), "\n")
	scrollbar := strings.Split(renderScrollbar(l.height, len(l.wrapped), l.viewport.YOffset), "\n")

	cw := contentWidth(l.width)
	var b strings.Builder
	for i := 0; i < l.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		cl := ""
		if i < len(content) {
			cl = content[i]
		}
		b.WriteString(cl)
		if padding := cw - utf8.RuneCountInString(cl); padding > 0 {
			b.WriteString(strings.Repeat(" ", padding))
		}
		if i < len(scrollbar) {
			b.WriteString(scrollbar[i])
		}
	}
	return b.String()
}

func (l *LogViewport) rewrap() {
	cw := contentWidth(l.width)
	l.wrapped = l.wrapped[:0]
	for _, raw := range l.raw {
		line := raw
		if cw > 0 {
			line = ansi.Wrap(raw, cw, "")
		}
		l.wrapped = append(l.wrapped, strings.Split(line, "\n")...)
	}
	l.viewport.SetContent(strings.Join(l.wrapped, "\n"))
}
