package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cnpj-cli/internal/cnpj"
	"github.com/sells-group/cnpj-cli/internal/model"
	"github.com/sells-group/cnpj-cli/internal/pipeline"
	"github.com/sells-group/cnpj-cli/internal/report"
	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

var queryOutput string

var queryCmd = &cobra.Command{
	Use:   "query CNPJ",
	Short: "Look up a single CNPJ",
	Long: `Looks up one identifier and prints its main registry attributes.
Punctuation is ignored. Use --output to save the result as a one-row report.

Example:
  cnpj-cli query 07.526.557/0001-16`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if _, ok := cnpj.Normalize(args[0]); !ok {
			return eris.Errorf("query: invalid cnpj %q: expected 14 digits", args[0])
		}

		b := pipeline.New(newFetcher()).Run(ctx, args)
		if len(b.Results) == 0 {
			return eris.New("query: interrupted")
		}

		w := cmd.OutOrStdout()
		res := b.Results[0]
		printResult(w, res)

		if queryOutput == "" {
			return nil
		}
		if err := report.WriteFile(queryOutput, b.Results); err != nil {
			return eris.Wrap(err, "query: save report")
		}
		fmt.Fprintf(w, "Result saved to: %s\n", queryOutput)
		zap.L().Info("query: report written", zap.String("path", queryOutput))
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryOutput, "output", "", "optional path to save the result as CSV")
	rootCmd.AddCommand(queryCmd)
}

var queryFields = []struct {
	label string
	key   string
}{
	{"Legal name", brasilapi.KeyLegalName},
	{"Trade name", brasilapi.KeyTradeName},
	{"Status", brasilapi.KeyStatus},
	{"Legal nature", brasilapi.KeyLegalNature},
	{"Main activity", brasilapi.KeyActivityDesc},
	{"Activity start", brasilapi.KeyActivityStart},
	{"City", brasilapi.KeyCity},
	{"State", brasilapi.KeyState},
	{"Email", brasilapi.KeyEmail},
	{"Phone", brasilapi.KeyPhone1},
}

// printResult writes a lookup outcome. Failures are reported, not returned:
// an unknown CNPJ is a normal answer.
func printResult(w io.Writer, r model.QueryResult) {
	fmt.Fprintf(w, "CNPJ: %s\n", cnpj.Format(r.CNPJ))
	if !r.Succeeded {
		fmt.Fprintf(w, "Lookup failed: %s (%s)\n", r.Reason, r.Detail)
		return
	}
	for _, f := range queryFields {
		if v := r.Payload.Field(f.key); v != "" {
			fmt.Fprintf(w, "%-16s%s\n", f.label+":", v)
		}
	}
	size := r.SizeValue()
	if size == "" {
		size = "N/A"
	}
	fmt.Fprintf(w, "%-16s%s\n", "Size:", size)
}
