package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vpds/otchetnik/internal/docx"
	"github.com/vpds/otchetnik/internal/protocol"
)

var itemsCmd = &cobra.Command{
	Use:   "items <protocol.docx>",
	Short: "List the action items extracted from the protocol's first table",
	Args:  cobra.ExactArgs(1),
	RunE:  runItems,
}

func runItems(cmd *cobra.Command, args []string) error {
	doc, err := docx.Open(args[0])
	if err != nil {
		return err
	}

	items, err := protocol.ExtractItems(doc)
	if errors.Is(err, protocol.ErrNoTables) {
		fmt.Println("No tables in document")
		return nil
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}
	for i, item := range items {
		fmt.Printf("%d. %s\n", i+1, item)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(itemsCmd)
}
