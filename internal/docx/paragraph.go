package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// textRun is the single plain run a paragraph collapses into after SetText.
type textRun struct {
	text  string
	color string // hex RGB without '#', e.g. "FF0000"; empty for default
}

// Paragraph is one w:p element. Reading is non-destructive; SetText replaces
// the whole paragraph content with a single plain run, which discards any
// run-level formatting the paragraph had. Paragraph properties (w:pPr) are
// kept either way.
type Paragraph struct {
	raw   string // original XML, used verbatim while unmodified
	open  string // start tag in open form
	props string // raw <w:pPr>...</w:pPr>, empty when absent
	text  string // concatenated w:t content as parsed
	repl  *textRun
}

// newParagraph returns an empty paragraph, used when populating new cells.
func newParagraph() *Paragraph {
	return &Paragraph{raw: "<w:p/>", open: "<w:p>"}
}

func parseParagraph(raw string) (*Paragraph, error) {
	p := &Paragraph{raw: raw, open: openTag(raw)}

	dec := xml.NewDecoder(strings.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse paragraph: %w", err)
	}

	var text strings.Builder
	inText := false
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse paragraph: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parse paragraph: %w", err)
				}
				p.props = raw[start:dec.InputOffset()]
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		}
	}
	p.text = text.String()
	return p, nil
}

// Text returns the paragraph's text, the concatenation of its runs.
func (p *Paragraph) Text() string {
	if p.repl != nil {
		return p.repl.text
	}
	return p.text
}

// SetText replaces the paragraph content with a single plain run holding s.
func (p *Paragraph) SetText(s string) {
	p.repl = &textRun{text: s}
}

// SetTextColor sets the font color (hex RGB, e.g. "FF0000") on the
// paragraph's text. The paragraph is collapsed to a single run first if it
// was not already rewritten.
func (p *Paragraph) SetTextColor(hex string) {
	if p.repl == nil {
		p.repl = &textRun{text: p.text}
	}
	p.repl.color = hex
}

func (p *Paragraph) writeXML(b *strings.Builder) {
	if p.repl == nil {
		b.WriteString(p.raw)
		return
	}
	b.WriteString(p.open)
	b.WriteString(p.props)
	b.WriteString("<w:r>")
	if p.repl.color != "" {
		b.WriteString(`<w:rPr><w:color w:val="`)
		b.WriteString(p.repl.color)
		b.WriteString(`"/></w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeText(p.repl.text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func escapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s)) // never fails on a bytes.Buffer
	return buf.String()
}
