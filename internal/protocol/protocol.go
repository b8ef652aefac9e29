// Package protocol extracts structured data from meeting-minutes documents:
// the protocol header (number and date) and the action items listed in the
// first table.
package protocol

import (
	"errors"
	"regexp"
	"strings"

	"github.com/vpds/otchetnik/internal/docx"
)

// ErrNoTables reports a protocol document without any tables. It is a
// recoverable diagnostic, not an I/O failure: callers present it to the user
// and stop.
var ErrNoTables = errors.New("document has no tables")

// headerRe matches the protocol header line, e.g. "ПРОТОКОЛ №42 от 01.01.2024г."
// Anchored at the start of the paragraph; the trailing "г" is optional.
var headerRe = regexp.MustCompile(`^ПРОТОКОЛ №(\d+) от (\d{2}\.\d{2}\.\d{4})г?`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Header holds the protocol identifier and its date, both kept as the source
// text spells them.
type Header struct {
	Number string
	Date   string // DD.MM.YYYY
}

// ExtractHeader scans body paragraphs in document order and returns the first
// one matching the protocol header pattern, decomposed into number and date.
// ok is false when no paragraph matches.
func ExtractHeader(doc *docx.Document) (h Header, ok bool) {
	for _, p := range doc.Paragraphs() {
		if m := headerRe.FindStringSubmatch(p.Text()); m != nil {
			return Header{Number: m[1], Date: m[2]}, true
		}
	}
	return Header{}, false
}

// ExtractItems returns the action items from the document's first table: the
// trimmed text of each row's first cell, with internal whitespace runs
// (including newlines between cell paragraphs) collapsed to single spaces.
// Rows with an empty first cell contribute nothing. A document without
// tables yields ErrNoTables.
func ExtractItems(doc *docx.Document) ([]string, error) {
	tables := doc.Tables()
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	var items []string
	for _, row := range tables[0].Rows {
		if len(row.Cells) == 0 {
			continue
		}
		text := normalize(row.Cells[0].Text())
		if text != "" {
			items = append(items, text)
		}
	}
	return items, nil
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(s, " ")
}
