package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vpds/otchetnik/internal/report"
)

var infoCmd = &cobra.Command{
	Use:   "info <protocol.docx>",
	Short: "Show the protocol header and item counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := report.Inspect(args[0], time.Now())
	if err != nil {
		return err
	}

	if info.HeaderFound {
		fmt.Printf("Protocol №%s from %s\n", info.Header.Number, info.Header.Date)
	} else {
		fmt.Println("Protocol header not found")
	}
	fmt.Printf("Items: %d\n", len(info.Items))
	if info.Overdue > 0 {
		fmt.Printf("Overdue: %d\n", info.Overdue)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
