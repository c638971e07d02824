package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Print the text layer of a PDF",
		Long: `Print the extracted text of a PDF, pages separated by newlines.

This is the text keyword searches run against, so it is the first thing to
look at when a keyword unexpectedly finds nothing.

Example:
  specdraft extract datasheet.pdf
  specdraft extract datasheet.pdf --stats --out datasheet.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("out")
			showStats, _ := cmd.Flags().GetBool("stats")

			result, err := loadPDF(args[0])
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(result.Text), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), result.Text)
			}

			if showStats {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d pages, %d words\n", args[0], result.PageCount, result.WordCount)
			}
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Write the text to this file instead of stdout")
	cmd.Flags().Bool("stats", false, "Print page and word counts to stderr")

	return cmd
}

// loadPDF reads path and extracts its text, rejecting files that are not
// PDFs before handing them to the parser.
func loadPDF(path string) (*pdf.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !pdf.IsPDF(data) {
		return nil, fmt.Errorf("%s: not a PDF file (detected %s)", path, pdf.DetectMIME(data))
	}

	result, err := pdf.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
