package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cnpj-cli/internal/model"
	"github.com/sells-group/cnpj-cli/internal/report"
)

const (
	analyzeTopSizes = 10
	analyzeSamples  = 5
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [REPORT]",
	Short: "Print statistics for a results report",
	Long: `Re-reads a report written by batch or query and prints aggregate
counts, a consistency check, the most frequent size categories and sample
rows. Without an argument, the newest resultados_cnpj_*.csv in the output
directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			latest, err := latestReport(cfg.Output.Dir)
			if err != nil {
				return err
			}
			path = latest
		}

		rows, err := report.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "analyze: read %s", path)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Analyzing: %s\n", path)
		printAnalysis(w, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

// latestReport returns the most recently modified report in dir.
func latestReport(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	matches, err := filepath.Glob(filepath.Join(dir, "resultados_cnpj_*.csv"))
	if err != nil {
		return "", eris.Wrap(err, "analyze: glob reports")
	}

	var (
		latest  string
		latestT int64
	)
	for _, m := range matches {
		info, statErr := os.Stat(m)
		if statErr != nil {
			continue
		}
		if t := info.ModTime().UnixNano(); latest == "" || t > latestT {
			latest, latestT = m, t
		}
	}
	if latest == "" {
		return "", eris.Errorf("analyze: no report found in %s", dir)
	}
	return latest, nil
}

func printAnalysis(w io.Writer, rows []report.Row) {
	s := report.Summarize(rows)
	report.PrintSummary(w, s)

	sum := s.Succeeded + s.Skipped + s.Failed
	complete := "yes"
	if sum != s.Total {
		complete = "no"
	}
	fmt.Fprintf(w, "Consistency check:         %d/%d (complete: %s)\n", sum, s.Total, complete)

	fmt.Fprintln(w)
	report.PrintSizes(w, s, analyzeTopSizes)

	fmt.Fprintln(w)
	printSamples(w, "Succeeded", rows, model.StateSucceeded)
	printSamples(w, "Failed", rows, model.StateFailed)
	printSamples(w, "Skipped", rows, model.StateSkipped)
}

func printSamples(w io.Writer, title string, rows []report.Row, state model.RowState) {
	fmt.Fprintf(w, "%s (first %d):\n", title, analyzeSamples)
	n := 0
	for _, row := range rows {
		r := row.Result()
		if r.State() != state {
			continue
		}
		switch state {
		case model.StateSucceeded:
			size := r.SizeValue()
			if size == "" {
				size = "N/A"
			}
			fmt.Fprintf(w, "  %s: %s\n", row.Input, size)
		default:
			fmt.Fprintf(w, "  %s: %s (%s)\n", row.Input, r.Reason, r.Detail)
		}
		n++
		if n == analyzeSamples {
			break
		}
	}
	if n == 0 {
		fmt.Fprintln(w, "  none")
	}
}
