package cli

import (
	"github.com/spf13/cobra"
	"github.com/vpds/otchetnik/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "otchetnik",
	Short:   "Protocol report generator",
	Long:    `Otchetnik extracts the protocol number, date and action items from a meeting-minutes .docx and merges them into a report built from a fixed template, flagging overdue items.`,
	Version: version.Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
