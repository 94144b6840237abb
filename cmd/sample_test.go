package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cnpj-cli/internal/cnpj"
	"github.com/sells-group/cnpj-cli/internal/input"
)

func setSampleFlags(t *testing.T, format, output string) {
	t.Helper()
	sampleFormat, sampleOutput = format, output
	t.Cleanup(func() { sampleFormat, sampleOutput = "csv", "" })
}

func TestSampleCommand_CSV(t *testing.T) {
	base := filepath.Join(t.TempDir(), "exemplo")
	setSampleFlags(t, "csv", base)

	out, err := runCommand(t, sampleCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "with 5 example CNPJs")

	ids, err := input.Load(base+".csv", input.Options{})
	require.NoError(t, err)
	require.Len(t, ids, len(sampleCSV))
	for _, id := range ids {
		_, ok := cnpj.Normalize(id)
		assert.True(t, ok, "sample id %q should be valid", id)
	}
}

func TestSampleCommand_TXTKeepsLeadingZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lista.txt")
	setSampleFlags(t, "TXT", path)

	_, err := runCommand(t, sampleCmd)
	require.NoError(t, err)

	ids, err := input.Load(path, input.Options{})
	require.NoError(t, err)
	assert.Equal(t, sampleTXT, ids)
	assert.Contains(t, ids, "07526557000116")
}

func TestSampleCommand_UnsupportedFormat(t *testing.T) {
	setSampleFlags(t, "xlsx", filepath.Join(t.TempDir(), "x"))

	_, err := runCommand(t, sampleCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
