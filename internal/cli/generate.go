package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vpds/otchetnik/internal/report"
)

var (
	generateOutput   string
	generateTemplate string
)

var generateCmd = &cobra.Command{
	Use:   "generate <protocol.docx>",
	Short: "Generate a report from a protocol document",
	Long:  `Generate merges the protocol's number, date and action items into a report built from the template, writing the result next to the current directory unless --output is given.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	protocolPath := args[0]

	templatePath := generateTemplate
	if templatePath == "" {
		var err error
		templatePath, err = report.TemplatePath()
		if err != nil {
			return err
		}
	}

	outputPath := generateOutput
	if outputPath == "" {
		outputPath = report.DefaultOutputName(protocolPath)
	}

	out, err := report.Generate(report.Options{
		ProtocolPath: protocolPath,
		TemplatePath: templatePath,
		OutputPath:   outputPath,
		Events:       consoleEvents{},
	})
	if err != nil {
		return err
	}
	fmt.Printf("Report saved: %s\n", out)
	return nil
}

// consoleEvents prints generation progress to stdout.
type consoleEvents struct{}

func (consoleEvents) OnStart(protocolPath, templatePath, outputPath string) {
	fmt.Printf("Protocol: %s\nTemplate: %s\nOutput: %s\n", protocolPath, templatePath, outputPath)
}

func (consoleEvents) OnProtocolParsed(number, date string, itemCount int) {
	fmt.Printf("Protocol №%s from %s, items: %d\n", number, date, itemCount)
}

func (consoleEvents) OnItemAdded(index int, item, status string) {}

func (consoleEvents) OnSaved(path string) {}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file path (default Отчет_<protocol>.docx)")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "Template file path (default Шаблон.docx next to the binary)")
	rootCmd.AddCommand(generateCmd)
}
