package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/palacelab/cardgen/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text from a document",
	Long: `Extract plain text from a PDF, DOCX, PPTX, TXT or Markdown file
and print it to stdout. Useful for turning course material into a
topic prompt.

Examples:
  cardgen extract notes.pdf
  cardgen extract lecture.pptx`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := extract.Text(args[0])
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}
