package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cnpj-cli/internal/model"
	"github.com/sells-group/cnpj-cli/internal/report"
	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

func writeReport(t *testing.T, path string) {
	t.Helper()

	company, err := brasilapi.ParseCompany([]byte(googlePayload))
	require.NoError(t, err)
	size := "DEMAIS"

	results := []model.QueryResult{
		{Input: "07.526.557/0001-16", CNPJ: "07526557000116", Attempted: true, Succeeded: true, Size: &size, Payload: company},
		model.Skipped("123", "123"),
		{Input: "11222333000181", CNPJ: "11222333000181", Attempted: true, Reason: model.ReasonAPIError, Detail: "not found (status 404)"},
	}
	require.NoError(t, report.WriteFile(path, results))
}

func TestAnalyzeCommand_ExplicitPath(t *testing.T) {
	setupCommandTest(t, registryHandler)
	path := filepath.Join(t.TempDir(), "report.csv")
	writeReport(t, path)

	out, err := runCommand(t, analyzeCmd, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Analyzing: "+path)
	assert.Contains(t, out, "Rows processed:            3")
	assert.Contains(t, out, "Consistency check:         3/3 (complete: yes)")
	assert.Contains(t, out, "DEMAIS: 1")
	assert.Contains(t, out, "07.526.557/0001-16: DEMAIS")
	assert.Contains(t, out, "11222333000181: api_error (not found (status 404))")
	assert.Contains(t, out, "123: invalid_format")
}

func TestAnalyzeCommand_LatestReport(t *testing.T) {
	setupCommandTest(t, registryHandler)

	older := filepath.Join(cfg.Output.Dir, "resultados_cnpj_20240101_000000.csv")
	newer := filepath.Join(cfg.Output.Dir, "resultados_cnpj_20240102_000000.csv")
	writeReport(t, older)
	writeReport(t, newer)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	got, err := latestReport(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	out, err := runCommand(t, analyzeCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Analyzing: "+newer)
}

func TestAnalyzeCommand_NoReport(t *testing.T) {
	setupCommandTest(t, registryHandler)

	_, err := runCommand(t, analyzeCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no report found")
}

func TestAnalyzeCommand_BadFile(t *testing.T) {
	setupCommandTest(t, registryHandler)
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := runCommand(t, analyzeCmd, path)
	assert.Error(t, err)
}
