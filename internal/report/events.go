package report

// Events receives progress callbacks during report generation. Implement it
// in the TUI (or any other frontend) to surface a running log; callbacks are
// invoked synchronously from the generating goroutine.
type Events interface {
	// OnStart is called once before any file is read.
	OnStart(protocolPath, templatePath, outputPath string)

	// OnProtocolParsed is called after the protocol header and items have
	// been extracted.
	OnProtocolParsed(number, date string, itemCount int)

	// OnItemAdded is called for each item written into the report table.
	// status is the status-column label, empty for items without a deadline.
	OnItemAdded(index int, item, status string)

	// OnSaved is called after the report has been written to disk.
	OnSaved(path string)
}

// NopEvents is an Events implementation that ignores all callbacks.
type NopEvents struct{}

func (NopEvents) OnStart(protocolPath, templatePath, outputPath string) {}
func (NopEvents) OnProtocolParsed(number, date string, itemCount int)   {}
func (NopEvents) OnItemAdded(index int, item, status string)            {}
func (NopEvents) OnSaved(path string)                                   {}
