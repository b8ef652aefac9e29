package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the document to path, repacking every archive entry in its
// original order with word/document.xml rebuilt from the current body. The
// archive is assembled in memory and written through a temp file plus rename,
// so a failed save never leaves a partial or truncated file behind.
func (d *Document) Save(path string) error {
	main := d.documentXML()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.names {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		content := d.parts[name]
		if name == "word/document.xml" {
			content = main
		}
		if _, err := w.Write(content); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".report-*.docx")
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
