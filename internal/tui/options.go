package tui

// Options configures TUI startup behavior.
type Options struct {
	// TemplatePath overrides the default template location (Шаблон.docx next
	// to the binary). Empty means use the default.
	TemplatePath string
}
