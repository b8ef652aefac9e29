package report

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vpds/otchetnik/internal/docx"
	"github.com/vpds/otchetnik/internal/protocol"
	"github.com/vpds/otchetnik/internal/testutil"
)

var testToday = time.Date(2025, 5, 15, 10, 0, 0, 0, time.Local)

const testHeaderPara = "ПРОТОКОЛ №42 от 01.01.2024г."

// templateBytes builds a template document: a placeholder paragraph plus a
// table with the given rows.
func templateBytes(rows [][]string) []byte {
	return testutil.DocxBytes(
		[]string{"Отчет об исполнении протокола №… от …г."},
		rows,
	)
}

func parseDoc(t *testing.T, data []byte) *docx.Document {
	t.Helper()
	doc, err := docx.Parse(data)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestCompose(t *testing.T) {
	header := protocol.Header{Number: "42", Date: "01.01.2024"}

	t.Run("placeholder substitution", func(t *testing.T) {
		tpl := parseDoc(t, testutil.DocxBytes(
			[]string{"Отчет под №… от …г."},
			[][]string{{"Мероприятие", "Статус"}},
		))
		h := protocol.Header{Number: "7", Date: "05.05.2025"}
		if err := Compose(tpl, h, []string{"пункт"}, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := tpl.Paragraphs()[0].Text()
		want := "Отчет под №7 от 05.05.2025г."
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("header-only template grows by one row per item", func(t *testing.T) {
		tpl := parseDoc(t, templateBytes([][]string{{"Мероприятие", "Статус"}}))
		items := []string{"первое", "второе", "третье"}
		if err := Compose(tpl, header, items, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		table := tpl.Tables()[0]
		if len(table.Rows) != 4 {
			t.Fatalf("got %d rows, want 4", len(table.Rows))
		}
		if got := table.Rows[1].Cells[0].Text(); got != "1. первое" {
			t.Errorf("got %q, want %q", got, "1. первое")
		}
		if got := table.Rows[3].Cells[0].Text(); got != "3. третье" {
			t.Errorf("got %q, want %q", got, "3. третье")
		}
	})

	t.Run("pre-existing second row reused for first item", func(t *testing.T) {
		tpl := parseDoc(t, templateBytes([][]string{
			{"Мероприятие", "Статус"},
			{"заготовка", ""},
		}))
		items := []string{"первое", "второе", "третье"}
		if err := Compose(tpl, header, items, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		table := tpl.Tables()[0]
		if len(table.Rows) != 4 {
			t.Fatalf("got %d rows, want 4", len(table.Rows))
		}
		if got := table.Rows[1].Cells[0].Text(); got != "1. первое" {
			t.Errorf("template second row not reused: %q", got)
		}
	})

	t.Run("status column per deadline", func(t *testing.T) {
		tpl := parseDoc(t, templateBytes([][]string{{"Мероприятие", "Статус"}}))
		items := []string{
			"Просроченное. Срок: 01.01.2020",
			"Будущее. Срок: 01.01.2099",
			"Без срока",
		}
		if err := Compose(tpl, header, items, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		table := tpl.Tables()[0]
		if got := table.Rows[1].Cells[1].Text(); got != StatusOverdue {
			t.Errorf("got %q, want %q", got, StatusOverdue)
		}
		if got := table.Rows[2].Cells[1].Text(); got != StatusInProgress {
			t.Errorf("got %q, want %q", got, StatusInProgress)
		}
		if got := table.Rows[3].Cells[1].Text(); got != "" {
			t.Errorf("got %q, want empty status", got)
		}
	})

	t.Run("single-cell rows padded to two cells", func(t *testing.T) {
		body := "<w:p><w:r><w:t>№…</w:t></w:r></w:p>" +
			testutil.TableXML([][]string{{"Мероприятие"}})
		tpl := parseDoc(t, testutil.FromBody(body))
		if err := Compose(tpl, header, []string{"Пункт. Срок: 01.01.2020"}, testToday); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		row := tpl.Tables()[0].Rows[1]
		if len(row.Cells) < 2 {
			t.Fatalf("got %d cells, want at least 2", len(row.Cells))
		}
		if got := row.Cells[1].Text(); got != StatusOverdue {
			t.Errorf("got %q, want %q", got, StatusOverdue)
		}
	})

	t.Run("template without table fails", func(t *testing.T) {
		tpl := parseDoc(t, testutil.DocxBytes([]string{"№… от …г."}, nil))
		if err := Compose(tpl, header, []string{"пункт"}, testToday); !errors.Is(err, ErrNoTable) {
			t.Errorf("got %v, want ErrNoTable", err)
		}
	})
}

func TestGenerate(t *testing.T) {
	protocolFixture := testutil.DocxBytes(
		[]string{testHeaderPara},
		[][]string{
			{"Мероприятия", "Ответственный"},
			{"Подготовить отчет. Срок: 01.01.2020", "Иванов"},
			{"Согласовать план. Срок: 01.01.2099", "Петров"},
		},
	)

	t.Run("writes the composed report", func(t *testing.T) {
		dir := t.TempDir()
		protocolPath := testutil.WriteDocx(t, dir, "Протокол_42.docx", protocolFixture)
		templatePath := testutil.WriteDocx(t, dir, TemplateName, templateBytes([][]string{{"Мероприятие", "Статус"}}))
		outputPath := filepath.Join(dir, "Отчет_42")

		got, err := Generate(Options{
			ProtocolPath: protocolPath,
			TemplatePath: templatePath,
			OutputPath:   outputPath,
			Today:        testToday,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != outputPath+".docx" {
			t.Errorf("got output path %q, want extension normalized", got)
		}

		out, err := docx.Open(got)
		if err != nil {
			t.Fatalf("open report: %v", err)
		}
		if got := out.Paragraphs()[0].Text(); got != "Отчет об исполнении протокола №42 от 01.01.2024г." {
			t.Errorf("placeholders not substituted: %q", got)
		}
		table := out.Tables()[0]
		if len(table.Rows) != 4 {
			t.Fatalf("got %d rows, want 4", len(table.Rows))
		}
		// Items: the protocol's own header row plus two action rows.
		if got := table.Rows[2].Cells[0].Text(); got != "2. Подготовить отчет. Срок: 01.01.2020" {
			t.Errorf("got %q, want numbered overdue item", got)
		}
		if got := table.Rows[2].Cells[1].Text(); got != StatusOverdue {
			t.Errorf("got %q, want %q", got, StatusOverdue)
		}

		if !bytes.Contains(mainXML(t, got), []byte(`<w:color w:val="FF0000"/>`)) {
			t.Error("overdue item not marked red")
		}
	})

	t.Run("events reported in order", func(t *testing.T) {
		dir := t.TempDir()
		protocolPath := testutil.WriteDocx(t, dir, "p.docx", protocolFixture)
		templatePath := testutil.WriteDocx(t, dir, TemplateName, templateBytes([][]string{{"Мероприятие", "Статус"}}))

		ev := &recordingEvents{}
		if _, err := Generate(Options{
			ProtocolPath: protocolPath,
			TemplatePath: templatePath,
			OutputPath:   filepath.Join(dir, "out.docx"),
			Today:        testToday,
			Events:       ev,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"start", "parsed", "item", "item", "item", "saved"}
		if strings.Join(ev.calls, ",") != strings.Join(want, ",") {
			t.Errorf("got calls %v, want %v", ev.calls, want)
		}
	})

	t.Run("missing data aborts without writing", func(t *testing.T) {
		tests := []struct {
			name     string
			protocol []byte
			wantErr  error
		}{
			{
				"no items",
				testutil.DocxBytes([]string{testHeaderPara}, [][]string{{"", ""}, {"  ", ""}}),
				ErrNoItems,
			},
			{
				"no header",
				testutil.DocxBytes([]string{"без заголовка"}, [][]string{{"пункт", ""}}),
				ErrNoHeader,
			},
			{
				"no tables",
				testutil.DocxBytes([]string{testHeaderPara}, nil),
				protocol.ErrNoTables,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				dir := t.TempDir()
				protocolPath := testutil.WriteDocx(t, dir, "p.docx", tt.protocol)
				templatePath := testutil.WriteDocx(t, dir, TemplateName, templateBytes([][]string{{"х", "х"}}))
				outputPath := filepath.Join(dir, "out.docx")

				_, err := Generate(Options{
					ProtocolPath: protocolPath,
					TemplatePath: templatePath,
					OutputPath:   outputPath,
					Today:        testToday,
				})
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
					t.Error("output file must not exist after a failed run")
				}
			})
		}
	})

	t.Run("unreadable protocol is a hard error", func(t *testing.T) {
		dir := t.TempDir()
		templatePath := testutil.WriteDocx(t, dir, TemplateName, templateBytes([][]string{{"х", "х"}}))
		_, err := Generate(Options{
			ProtocolPath: filepath.Join(dir, "missing.docx"),
			TemplatePath: templatePath,
			OutputPath:   filepath.Join(dir, "out.docx"),
			Today:        testToday,
		})
		if err == nil {
			t.Fatal("expected error for missing protocol file")
		}
	})
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDocx(t, dir, "p.docx", testutil.DocxBytes(
		[]string{testHeaderPara},
		[][]string{
			{"Мероприятия", ""},
			{"Раз. Срок: 01.01.2020", ""},
			{"Два. Срок: 01.01.2099", ""},
			{"Три", ""},
		},
	))

	info, err := Inspect(path, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.HeaderFound || info.Header.Number != "42" {
		t.Errorf("header not extracted: %+v", info.Header)
	}
	if len(info.Items) != 4 {
		t.Errorf("got %d items, want 4", len(info.Items))
	}
	if info.Overdue != 1 {
		t.Errorf("got %d overdue, want 1", info.Overdue)
	}

	t.Run("tolerates missing table", func(t *testing.T) {
		path := testutil.WriteDocx(t, dir, "empty.docx", testutil.DocxBytes([]string{"текст"}, nil))
		info, err := Inspect(path, testToday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(info.Items) != 0 {
			t.Errorf("got %d items, want 0", len(info.Items))
		}
	})
}

func TestEnsureExt(t *testing.T) {
	tests := []struct{ in, want string }{
		{"report", "report.docx"},
		{"report.docx", "report.docx"},
		{"report.DOCX", "report.DOCX"},
		{"dir/отчет", "dir/отчет.docx"},
	}
	for _, tt := range tests {
		if got := EnsureExt(tt.in); got != tt.want {
			t.Errorf("EnsureExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultOutputName(t *testing.T) {
	got := DefaultOutputName("/tmp/Протокол_совещания.docx")
	want := "Отчет_Протокол_совещания.docx"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// recordingEvents records the order of event callbacks.
type recordingEvents struct {
	calls []string
}

func (r *recordingEvents) OnStart(protocolPath, templatePath, outputPath string) {
	r.calls = append(r.calls, "start")
}
func (r *recordingEvents) OnProtocolParsed(number, date string, itemCount int) {
	r.calls = append(r.calls, "parsed")
}
func (r *recordingEvents) OnItemAdded(index int, item, status string) {
	r.calls = append(r.calls, "item")
}
func (r *recordingEvents) OnSaved(path string) {
	r.calls = append(r.calls, "saved")
}

// mainXML extracts word/document.xml from a saved .docx.
func mainXML(t *testing.T, path string) []byte {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return buf.Bytes()
	}
	t.Fatal("word/document.xml missing")
	return nil
}
