package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cnpj-cli/internal/config"
	"github.com/sells-group/cnpj-cli/internal/fetcher"
	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

const googlePayload = `{
	"cnpj": "07526557000116",
	"razao_social": "GOOGLE BRASIL INTERNET LTDA.",
	"nome_fantasia": "",
	"descricao_situacao_cadastral": "ATIVA",
	"porte": "DEMAIS",
	"municipio": "SAO PAULO",
	"uf": "SP"
}`

// registryHandler answers 07526557000116 with a record and everything else
// with 404.
func registryHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/07526557000116") {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(googlePayload)) //nolint:errcheck
		return
	}
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message":"CNPJ não encontrado."}`)) //nolint:errcheck
}

// setupCommandTest points cfg at a fake registry and swaps in a fetcher
// whose gate never sleeps.
func setupCommandTest(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	prevCfg, prevFetcher := cfg, newFetcher
	cfg = &config.Config{
		API: config.APIConfig{
			BaseURL:      srv.URL,
			TimeoutSecs:  5,
			IntervalSecs: 15,
			UserAgent:    "cnpj-cli-test",
		},
		Input:  config.InputConfig{Column: "cnpj"},
		Output: config.OutputConfig{Dir: t.TempDir()},
		Log:    config.LogConfig{Level: "info", Format: "console"},
	}
	newFetcher = func() *fetcher.Fetcher {
		client := brasilapi.NewClient(
			brasilapi.WithBaseURL(cfg.API.BaseURL),
			brasilapi.WithTimeout(cfg.API.Timeout()),
		)
		gate := fetcher.NewGate(cfg.API.Interval(), fetcher.WithSleep(func(context.Context, time.Duration) error {
			return nil
		}))
		return fetcher.New(client, gate)
	}
	t.Cleanup(func() {
		cfg, newFetcher = prevCfg, prevFetcher
	})
	return srv
}

// runCommand executes cmd's RunE with captured output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	t.Cleanup(func() { cmd.SetOut(nil) })

	err := cmd.RunE(cmd, args)
	return buf.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"batch", "query", "analyze", "sample", "config"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "cnpj-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestBatchCommand_Flags(t *testing.T) {
	for _, name := range []string{"input", "column", "sheet", "output", "limit"} {
		assert.NotNil(t, batchCmd.Flags().Lookup(name), "batch should have --%s flag", name)
	}

	flag := batchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestSampleCommand_Flags(t *testing.T) {
	flag := sampleCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "sample command should have --format flag")
	assert.Equal(t, "csv", flag.DefValue)
}

func TestConfigCommand_PrintsYAML(t *testing.T) {
	setupCommandTest(t, registryHandler)

	out, err := runCommand(t, configCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "api:")
	assert.Contains(t, out, "interval_secs: 15")
	assert.Contains(t, out, "column: cnpj")
}

func TestOutputPath(t *testing.T) {
	setupCommandTest(t, registryHandler)

	assert.Equal(t, "explicit.csv", outputPath("explicit.csv"))

	got := outputPath("")
	assert.True(t, strings.HasPrefix(got, cfg.Output.Dir))
	assert.Contains(t, got, "resultados_cnpj_")
	assert.True(t, strings.HasSuffix(got, ".csv"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("", "  ", "a", "b"))
	assert.Empty(t, firstNonEmpty("", " "))
}
