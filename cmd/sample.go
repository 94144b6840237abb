package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cnpj-cli/internal/input"
)

// Formatted identifiers for the CSV sample.
var sampleCSV = []string{
	"07.526.557/0001-16",
	"11.222.333/0001-81",
	"33.000.167/0001-01",
	"08.775.724/0001-12",
	"34.238.864/0001-17",
}

// Bare identifiers for the TXT sample, several with leading zeros.
var sampleTXT = []string{
	"19131243000197",
	"07526557000116",
	"03878957000123",
	"11222333000181",
	"33000167000101",
	"08775724000112",
	"34238864000117",
}

var (
	sampleFormat string
	sampleOutput string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write an example input file",
	Long: `Writes a small example input file that batch can consume.

Examples:
  cnpj-cli sample --format csv
  cnpj-cli sample --format txt --output lista.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(sampleFormat))
		if format != "csv" && format != "txt" {
			return eris.Errorf("sample: unsupported format %q (use csv or txt)", sampleFormat)
		}

		path := sampleOutput
		if path == "" {
			path = "exemplo_cnpjs"
		}
		if !strings.HasSuffix(strings.ToLower(path), "."+format) {
			path += "." + format
		}

		n, err := writeSampleFile(path, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d example CNPJs\n", path, n)
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleFormat, "format", "csv", "sample format: csv or txt")
	sampleCmd.Flags().StringVar(&sampleOutput, "output", "", "output path (default: exemplo_cnpjs.<format>)")
	rootCmd.AddCommand(sampleCmd)
}

func writeSampleFile(path, format string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrap(err, "sample: create file")
	}
	defer f.Close() //nolint:errcheck

	var n int
	if format == "csv" {
		n, err = writeSampleCSV(f)
	} else {
		n, err = writeSampleTXT(f)
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func writeSampleCSV(w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{input.DefaultColumn}); err != nil {
		return 0, eris.Wrap(err, "sample: write header")
	}
	for _, id := range sampleCSV {
		if err := cw.Write([]string{id}); err != nil {
			return 0, eris.Wrap(err, "sample: write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, eris.Wrap(err, "sample: flush")
	}
	return len(sampleCSV), nil
}

func writeSampleTXT(w io.Writer) (int, error) {
	for _, id := range sampleTXT {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return 0, eris.Wrap(err, "sample: write line")
		}
	}
	return len(sampleTXT), nil
}
