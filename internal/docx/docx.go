// Package docx reads, mutates and writes .docx packages.
//
// A .docx file is a ZIP archive whose main part lives at word/document.xml.
// The package keeps every archive entry verbatim and parses only the document
// body, at block granularity: paragraphs and tables become addressable nodes,
// anything else (sectPr, bookmarks, ...) is carried through as raw XML.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoDocument is returned when the archive has no word/document.xml part.
var ErrNoDocument = errors.New("word/document.xml not found in package")

// block is one body-level XML element. Unmodified blocks serialize back to
// their original bytes.
type block interface {
	writeXML(b *strings.Builder)
}

// rawBlock carries an element we never interpret.
type rawBlock string

func (r rawBlock) writeXML(b *strings.Builder) { b.WriteString(string(r)) }

// Document is an in-memory .docx package.
type Document struct {
	names []string          // archive entries in original order
	parts map[string][]byte // entry name -> content

	header  string // document.xml up to and including the <w:body> start tag
	trailer string // document.xml from </w:body> to the end
	blocks  []block
}

// Open reads and parses the .docx file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses a .docx package from raw bytes.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}

	doc := &Document{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		doc.names = append(doc.names, f.Name)
		doc.parts[f.Name] = content
	}

	main, ok := doc.parts["word/document.xml"]
	if !ok {
		return nil, ErrNoDocument
	}
	if err := doc.parseMain(string(main)); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseMain splits document.xml around the <w:body> element and parses the
// body content into blocks. The header and trailer are preserved byte for
// byte so namespace declarations survive a round trip untouched.
func (d *Document) parseMain(s string) error {
	open := strings.Index(s, "<w:body")
	if open < 0 {
		return errors.New("parse document.xml: no <w:body> element")
	}
	gt := strings.IndexByte(s[open:], '>')
	end := strings.LastIndex(s, "</w:body>")
	bodyStart := open + gt + 1
	if gt < 0 || end < bodyStart {
		return errors.New("parse document.xml: malformed <w:body> element")
	}

	d.header = s[:bodyStart]
	d.trailer = s[end:]

	blocks, err := parseBlocks(s[bodyStart:end])
	if err != nil {
		return err
	}
	d.blocks = blocks
	return nil
}

// parseBlocks walks the body content one top-level element at a time, using
// token offsets to slice out each element's original bytes.
func parseBlocks(body string) ([]block, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	var blocks []block
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse body: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			// Whitespace between blocks; dropping it is harmless.
			continue
		}
		if err := dec.Skip(); err != nil {
			return nil, fmt.Errorf("parse body: %w", err)
		}
		raw := body[start:dec.InputOffset()]

		switch se.Name.Local {
		case "p":
			p, err := parseParagraph(raw)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, p)
		case "tbl":
			t, err := parseTable(raw)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, t)
		default:
			blocks = append(blocks, rawBlock(raw))
		}
	}
	return blocks, nil
}

// Paragraphs returns the body-level paragraphs in document order. Paragraphs
// nested inside table cells are not included.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.blocks {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the body-level tables in document order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// documentXML reassembles word/document.xml from the preserved header and
// trailer plus the (possibly mutated) body blocks.
func (d *Document) documentXML() []byte {
	var b strings.Builder
	b.WriteString(d.header)
	for _, blk := range d.blocks {
		blk.writeXML(&b)
	}
	b.WriteString(d.trailer)
	return []byte(b.String())
}

// openTag extracts the start tag of an element's raw XML, normalized to the
// open form: "<w:p/>" becomes "<w:p>", attributes are kept as written.
func openTag(raw string) string {
	gt := strings.IndexByte(raw, '>')
	if gt < 0 {
		return raw
	}
	tag := raw[:gt+1]
	if strings.HasSuffix(tag, "/>") {
		return tag[:len(tag)-2] + ">"
	}
	return tag
}
