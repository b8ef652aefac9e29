// Package msgs defines shared message types for TUI view transitions.
package msgs

// View transition messages

// GoToHomeMsg signals transition to the home view.
type GoToHomeMsg struct{}

// GoToFilePickerMsg signals transition to the protocol file picker.
type GoToFilePickerMsg struct{}

// GoToSavePathMsg signals transition to the output path editor.
type GoToSavePathMsg struct{}

// GoToPreviewMsg signals transition to the items preview.
type GoToPreviewMsg struct{}

// ProtocolSelectedMsg is sent when a protocol file is chosen in the picker.
type ProtocolSelectedMsg struct {
	Path string // absolute path
}

// OutputPathMsg is sent when the output path has been confirmed.
type OutputPathMsg struct {
	Path string
}

// GenerateDoneMsg signals that report generation has finished.
type GenerateDoneMsg struct {
	Path string // final output path on success
	Err  error
}
