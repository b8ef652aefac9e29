// Package report builds execution reports from protocol documents and a
// fixed .docx template.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vpds/otchetnik/internal/docx"
	"github.com/vpds/otchetnik/internal/protocol"
)

// TemplateName is the fixed template filename expected next to the binary.
const TemplateName = "Шаблон.docx"

// Status labels written into the report's second column.
const (
	StatusOverdue    = "Не выполнено"
	StatusInProgress = "В процессе"
)

// overdueColor is the font color applied to overdue items.
const overdueColor = "FF0000"

// Template placeholder markers replaced during composition.
const (
	numberMarker = "№…"
	dateMarker   = "от …г."
)

// Recoverable generation failures. These abort generation before any output
// file is written and are presented to the user as plain messages.
var (
	ErrNoHeader = errors.New("protocol header not found")
	ErrNoItems  = errors.New("no items found in protocol")
	ErrNoTable  = errors.New("template has no table")
)

// Info summarizes a protocol document for display.
type Info struct {
	Header      protocol.Header
	HeaderFound bool
	Items       []string
	Overdue     int // items whose deadline is on or before today
}

// Inspect reads the protocol at path and summarizes it. A protocol without
// tables yields zero items rather than an error; only unreadable files fail.
func Inspect(path string, today time.Time) (*Info, error) {
	doc, err := docx.Open(path)
	if err != nil {
		return nil, err
	}

	info := &Info{}
	info.Header, info.HeaderFound = protocol.ExtractHeader(doc)

	items, err := protocol.ExtractItems(doc)
	if err != nil && !errors.Is(err, protocol.ErrNoTables) {
		return nil, err
	}
	info.Items = items
	for _, item := range items {
		if protocol.IsOverdue(item, today) {
			info.Overdue++
		}
	}
	return info, nil
}

// Compose merges the header and items into the template document in place:
// placeholder markers in body paragraphs are substituted, then the first
// table receives one row per item. The template's second row, when present,
// is reused for the first item; subsequent items append rows. Rows are
// padded to two cells as needed; overdue items get the overdue label and a
// red first cell.
//
// Only paragraphs containing a marker are rewritten; their run formatting
// collapses into a single plain run as a side effect of whole-paragraph
// replacement.
func Compose(tpl *docx.Document, h protocol.Header, items []string, today time.Time) error {
	for _, p := range tpl.Paragraphs() {
		text := p.Text()
		replaced := strings.ReplaceAll(text, numberMarker, "№"+h.Number)
		replaced = strings.ReplaceAll(replaced, dateMarker, "от "+h.Date+"г.")
		if replaced != text {
			p.SetText(replaced)
		}
	}

	tables := tpl.Tables()
	if len(tables) == 0 {
		return ErrNoTable
	}
	table := tables[0]

	for i, item := range items {
		var row *docx.Row
		if i == 0 && len(table.Rows) > 1 {
			// Reuse the template-authored second row for the first item so a
			// template shipping with a blank data row gains no extra row.
			row = table.Rows[1]
		} else {
			row = table.AddRow()
		}
		for len(row.Cells) < 2 {
			row.AddCell()
		}

		row.Cells[0].SetText(fmt.Sprintf("%d. %s", i+1, item))

		status, overdue := itemStatus(item, today)
		row.Cells[1].SetText(status)
		if overdue {
			row.Cells[0].SetTextColor(overdueColor)
		}
	}
	return nil
}

// itemStatus returns the status-column label for an item and whether the
// item is overdue. Items without a deadline get an empty label.
func itemStatus(item string, today time.Time) (status string, overdue bool) {
	if _, ok := protocol.FindDeadline(item); !ok {
		return "", false
	}
	if protocol.IsOverdue(item, today) {
		return StatusOverdue, true
	}
	return StatusInProgress, false
}

// Options configures a generation run.
type Options struct {
	ProtocolPath string
	TemplatePath string
	OutputPath   string    // extension normalized to .docx if missing
	Today        time.Time // zero value means time.Now()
	Events       Events    // nil means NopEvents
}

// Generate runs the full pipeline: extract from the protocol, compose into a
// fresh copy of the template, save to the output path. It returns the final
// output path. Missing-data conditions (ErrNoHeader, ErrNoItems, ErrNoTable,
// protocol.ErrNoTables) abort before anything is written.
func Generate(opts Options) (string, error) {
	ev := opts.Events
	if ev == nil {
		ev = NopEvents{}
	}
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}
	out := EnsureExt(opts.OutputPath)

	ev.OnStart(opts.ProtocolPath, opts.TemplatePath, out)

	doc, err := docx.Open(opts.ProtocolPath)
	if err != nil {
		return "", fmt.Errorf("open protocol: %w", err)
	}
	items, err := protocol.ExtractItems(doc)
	if err != nil {
		return "", fmt.Errorf("read protocol: %w", err)
	}
	if len(items) == 0 {
		return "", ErrNoItems
	}
	header, ok := protocol.ExtractHeader(doc)
	if !ok {
		return "", ErrNoHeader
	}
	ev.OnProtocolParsed(header.Number, header.Date, len(items))

	tpl, err := docx.Open(opts.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("open template: %w", err)
	}
	if err := Compose(tpl, header, items, today); err != nil {
		return "", err
	}
	for i, item := range items {
		status, _ := itemStatus(item, today)
		ev.OnItemAdded(i+1, item, status)
	}

	if err := tpl.Save(out); err != nil {
		return "", err
	}
	ev.OnSaved(out)
	return out, nil
}

// EnsureExt appends the .docx extension when path lacks it.
func EnsureExt(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".docx") {
		return path
	}
	return path + ".docx"
}

// DefaultOutputName derives the suggested report filename from the protocol
// file's base name.
func DefaultOutputName(protocolPath string) string {
	base := filepath.Base(protocolPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "Отчет_" + base + ".docx"
}

// TemplatePath returns the fixed template location: TemplateName in the
// directory the running binary lives in.
func TemplatePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate template: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), TemplateName), nil
}
