package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cnpj-cli/internal/input"
	"github.com/sells-group/cnpj-cli/internal/pipeline"
	"github.com/sells-group/cnpj-cli/internal/report"
)

var (
	batchInput  string
	batchColumn string
	batchSheet  string
	batchOutput string
	batchLimit  int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Look up every CNPJ in a CSV, TXT or XLSX file",
	Long: `Reads identifiers from the input file, validates them, queries the
registry one at a time with a fixed interval between requests, and writes a
CSV report. Ctrl+C stops after the current row and saves partial results.

Examples:
  # CSV with a "cnpj" column
  cnpj-cli batch --input empresas.csv

  # TXT, one identifier per line, custom output
  cnpj-cli batch --input lista.txt --output resultados.csv

  # XLSX with a differently named column
  cnpj-cli batch --input planilha.xlsx --column documento --sheet Empresas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		inputs, err := input.Load(batchInput, input.Options{
			Column: firstNonEmpty(batchColumn, cfg.Input.Column),
			Sheet:  firstNonEmpty(batchSheet, cfg.Input.Sheet),
		})
		if err != nil {
			return eris.Wrap(err, "batch: load input")
		}

		if batchLimit > 0 && batchLimit < len(inputs) {
			inputs = inputs[:batchLimit]
		}
		if len(inputs) == 0 {
			zap.L().Warn("batch: no identifiers found", zap.String("input", batchInput))
			return nil
		}

		zap.L().Info("batch: loaded input",
			zap.String("input", batchInput),
			zap.Int("rows", len(inputs)),
			zap.Int("valid", pipeline.CountValid(inputs)),
			zap.Duration("estimated_duration", pipeline.EstimateDuration(inputs, cfg.API.Interval())),
		)

		b := pipeline.New(newFetcher()).Run(ctx, inputs)
		return saveBatch(cmd.OutOrStdout(), b, outputPath(batchOutput))
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "path to CSV, TXT or XLSX file (required)")
	batchCmd.Flags().StringVar(&batchColumn, "column", "", "identifier column for CSV/XLSX (default from config: cnpj)")
	batchCmd.Flags().StringVar(&batchSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "report path (default: resultados_cnpj_<timestamp>.csv)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max rows to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

// saveBatch writes the report for whatever was processed and prints the
// aggregates. An interrupted batch with at least one row is still saved.
func saveBatch(w io.Writer, b *pipeline.Batch, path string) error {
	if len(b.Results) == 0 {
		fmt.Fprintln(w, "No results to save.")
		return nil
	}

	if b.Interrupted {
		fmt.Fprintf(w, "Interrupted: %d of %d rows processed, saving partial results.\n", len(b.Results), b.Total)
	}

	if err := report.WriteFile(path, b.Results); err != nil {
		return eris.Wrap(err, "batch: save report")
	}

	report.PrintSummary(w, b.Summary())
	fmt.Fprintf(w, "Results saved to: %s\n", path)
	zap.L().Info("batch: report written",
		zap.String("run_id", b.RunID),
		zap.String("path", path),
		zap.Int("rows", len(b.Results)),
	)
	return nil
}
