package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/quote"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/techspec"
)

// formatExt maps --format values to file extensions. "report" is the bare
// technical specifications text, the rest are quote documents.
var formatExt = map[string]string{
	"report": "txt",
	"md":     "md",
	"txt":    "txt",
	"html":   "html",
	"docx":   "docx",
	"json":   "json",
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <pdf>...",
		Short: "Build a technical specifications report or quote",
		Long: `Search one or more PDFs for keywords and print the report.

Keywords come from repeated --keyword flags and/or a requirements file with
one keyword per line. A leading "-" or "/" on a keyword is ignored.

With several PDFs, --out names a directory and every report is written to
<pdf name>.<ext> inside it.

Example:
  specdraft report sheet.pdf -k "Energy Efficiency" -k "/Noise Level"
  specdraft report sheet.pdf -r requirements.txt --format html --out quote.html
  specdraft report a.pdf b.pdf -r requirements.txt --format docx --out quotes/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keywordFlags, _ := cmd.Flags().GetStringArray("keyword")
			requirementsPath, _ := cmd.Flags().GetString("requirements")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("out")
			profilePath, _ := cmd.Flags().GetString("profile")
			customerName, _ := cmd.Flags().GetString("customer")
			jobs, _ := cmd.Flags().GetInt("jobs")

			ext, ok := formatExt[format]
			if !ok {
				return fmt.Errorf("unsupported --format %q (report, md, txt, html, docx, json)", format)
			}

			keywords, err := collectKeywords(keywordFlags, requirementsPath)
			if err != nil {
				return err
			}
			if format != "report" && !techspec.HasKeyword(keywords) {
				return fmt.Errorf("a quote needs at least one --keyword or --requirements entry")
			}
			if format == "docx" && output == "" {
				return fmt.Errorf("--format docx needs --out")
			}
			if len(args) > 1 && output != "" {
				if err := os.MkdirAll(output, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			profile, err := quote.LoadProfile(profilePath)
			if err != nil {
				return err
			}
			gen := quote.NewGenerator(profile)

			results, err := extractAll(cmd.Context(), args, jobs)
			if err != nil {
				return err
			}

			for i, path := range args {
				report := techspec.Assemble(results[i].Text, keywords)
				log.WithFields(log.Fields{
					"file":    path,
					"matched": report.MatchedCount(),
					"total":   len(report.Sections),
				}).Info("✅ Report built")

				q := gen.New(filepath.Base(path), report, quote.Party{Name: customerName})

				var buf bytes.Buffer
				if err := render(&buf, format, q); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				switch {
				case output == "":
					if len(args) > 1 {
						fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", path)
					}
					if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout())
				case len(args) > 1:
					name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + ext
					if err := os.WriteFile(filepath.Join(output, name), buf.Bytes(), 0o644); err != nil {
						return fmt.Errorf("failed to write %s: %w", name, err)
					}
				default:
					if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
						return fmt.Errorf("failed to write %s: %w", output, err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayP("keyword", "k", nil, "Keyword to search for (repeatable)")
	cmd.Flags().StringP("requirements", "r", "", "File with one keyword per line")
	cmd.Flags().StringP("format", "f", "report", "Output format: report, md, txt, html, docx, json")
	cmd.Flags().StringP("out", "o", "", "Output file (or directory with several PDFs)")
	cmd.Flags().String("profile", "", "Quote profile YAML (provider, customer, valid_days)")
	cmd.Flags().String("customer", "", "Customer name, replacing the profile's customer")
	cmd.Flags().IntP("jobs", "j", 4, "PDFs to extract in parallel")

	return cmd
}

// collectKeywords merges --keyword flags with the lines of the
// requirements file, flags first.
func collectKeywords(flags []string, requirementsPath string) ([]string, error) {
	keywords := techspec.ParseRequirements(strings.Join(flags, "\n"))
	if requirementsPath == "" {
		return keywords, nil
	}

	data, err := os.ReadFile(requirementsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read requirements: %w", err)
	}
	return append(keywords, techspec.ParseRequirements(string(data))...), nil
}

// extractAll extracts every PDF with at most jobs running at once. The
// first failure cancels the files not yet started.
func extractAll(ctx context.Context, paths []string, jobs int) ([]*pdf.ExtractionResult, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]*pdf.ExtractionResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := loadPDF(path)
			if err != nil {
				return err
			}
			log.WithField("file", path).Debugf("📄 Extracted %d pages, %d words", result.PageCount, result.WordCount)
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func render(w io.Writer, format string, q *quote.Quote) error {
	switch format {
	case "report":
		_, err := io.WriteString(w, q.TechnicalDetails)
		return err
	case "md":
		_, err := io.WriteString(w, quote.Markdown(q))
		return err
	case "txt":
		_, err := io.WriteString(w, quote.Text(q))
		return err
	case "html":
		page, err := quote.HTML(q)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	case "docx":
		return quote.WriteDOCX(w, q)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}
	return fmt.Errorf("unsupported format %q", format)
}
