package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Table is one w:tbl element. Table properties and the column grid are kept
// as raw XML; rows and cells are parsed so they can be rewritten.
type Table struct {
	open string
	pre  string // raw tblPr, tblGrid, anything preceding the first row
	post string // anything following the last row
	Rows []*Row
}

// Row is one w:tr element.
type Row struct {
	open  string
	pre   string // raw trPr and other leading children
	post  string
	Cells []*Cell
}

// Cell is one w:tc element. Cell properties (w:tcPr) survive SetText; nested
// tables and other non-paragraph content are carried through untouched unless
// the cell text is replaced.
type Cell struct {
	open     string
	props    string // raw <w:tcPr>...</w:tcPr>
	children []block
}

func parseTable(raw string) (*Table, error) {
	t := &Table{open: openTag(raw)}
	err := eachChild(raw, func(name, seg string) error {
		if name != "tr" {
			if len(t.Rows) == 0 {
				t.pre += seg
			} else {
				t.post += seg
			}
			return nil
		}
		row, err := parseRow(seg)
		if err != nil {
			return err
		}
		t.Rows = append(t.Rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func parseRow(raw string) (*Row, error) {
	r := &Row{open: openTag(raw)}
	err := eachChild(raw, func(name, seg string) error {
		if name != "tc" {
			if len(r.Cells) == 0 {
				r.pre += seg
			} else {
				r.post += seg
			}
			return nil
		}
		cell, err := parseCell(seg)
		if err != nil {
			return err
		}
		r.Cells = append(r.Cells, cell)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseCell(raw string) (*Cell, error) {
	c := &Cell{open: openTag(raw)}
	err := eachChild(raw, func(name, seg string) error {
		switch name {
		case "tcPr":
			c.props += seg
		case "p":
			p, err := parseParagraph(seg)
			if err != nil {
				return err
			}
			c.children = append(c.children, p)
		default:
			c.children = append(c.children, rawBlock(seg))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// eachChild calls fn for every direct child element of the element in raw,
// passing the child's local name and its original byte slice.
func eachChild(raw string, fn func(name, seg string) error) error {
	dec := xml.NewDecoder(strings.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parse element: %w", err)
	}
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse element: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if err := dec.Skip(); err != nil {
			return fmt.Errorf("parse element: %w", err)
		}
		if err := fn(se.Name.Local, raw[start:dec.InputOffset()]); err != nil {
			return err
		}
	}
	return nil
}

// AddRow appends a new row and returns it. The new row copies the cell
// layout (count and cell properties) of the table's last row so column
// widths carry over; each new cell starts with one empty paragraph.
func (t *Table) AddRow() *Row {
	row := &Row{open: "<w:tr>"}
	if n := len(t.Rows); n > 0 {
		for _, tmpl := range t.Rows[n-1].Cells {
			row.Cells = append(row.Cells, &Cell{
				open:     "<w:tc>",
				props:    tmpl.props,
				children: []block{newParagraph()},
			})
		}
	}
	t.Rows = append(t.Rows, row)
	return row
}

func (t *Table) writeXML(b *strings.Builder) {
	b.WriteString(t.open)
	b.WriteString(t.pre)
	for _, r := range t.Rows {
		r.writeXML(b)
	}
	b.WriteString(t.post)
	b.WriteString("</w:tbl>")
}

// AddCell appends a minimal empty cell to the row and returns it.
func (r *Row) AddCell() *Cell {
	c := &Cell{open: "<w:tc>", children: []block{newParagraph()}}
	r.Cells = append(r.Cells, c)
	return c
}

func (r *Row) writeXML(b *strings.Builder) {
	b.WriteString(r.open)
	b.WriteString(r.pre)
	for _, c := range r.Cells {
		c.writeXML(b)
	}
	b.WriteString(r.post)
	b.WriteString("</w:tr>")
}

// Paragraphs returns the cell's paragraphs in order.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, ch := range c.children {
		if p, ok := ch.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Text returns the cell text, paragraphs joined with newlines.
func (c *Cell) Text() string {
	parts := make([]string, 0, len(c.children))
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with a single paragraph holding s.
func (c *Cell) SetText(s string) {
	p := newParagraph()
	p.SetText(s)
	c.children = []block{p}
}

// SetTextColor sets the font color on every paragraph in the cell.
func (c *Cell) SetTextColor(hex string) {
	for _, p := range c.Paragraphs() {
		p.SetTextColor(hex)
	}
}

func (c *Cell) writeXML(b *strings.Builder) {
	b.WriteString(c.open)
	b.WriteString(c.props)
	for _, ch := range c.children {
		ch.writeXML(b)
	}
	b.WriteString("</w:tc>")
}
