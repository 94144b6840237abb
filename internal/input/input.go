// Package input reads identifier columns from CSV, TXT and XLSX files.
package input

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultColumn is the identifier column looked up in tabular inputs.
const DefaultColumn = "cnpj"

var (
	// ErrUnsupportedFormat is returned for extensions other than .csv, .txt and .xlsx.
	ErrUnsupportedFormat = eris.New("input: unsupported file format")
	// ErrColumnNotFound is returned when the identifier column is missing.
	ErrColumnNotFound = eris.New("input: column not found")
)

// Options configures Load.
type Options struct {
	Column string // identifier column for CSV/XLSX, default "cnpj"
	Sheet  string // XLSX sheet name, default first sheet
}

// Load reads identifiers from path in file order. Values are returned as
// text so leading zeros survive.
func Load(path string, opts Options) ([]string, error) {
	if strings.TrimSpace(opts.Column) == "" {
		opts.Column = DefaultColumn
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path, opts.Column)
	case ".txt":
		return LoadTXT(path)
	case ".xlsx":
		return LoadXLSX(path, opts)
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "%q (supported: .csv, .txt, .xlsx)", ext)
	}
}

// stripBOM wraps r so a leading UTF-8 byte order mark is dropped.
func stripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// columnIndex finds col in header, exact match first, then case-insensitive.
func columnIndex(header []string, col string) (int, error) {
	col = strings.TrimSpace(col)
	for i, h := range header {
		if strings.TrimSpace(h) == col {
			return i, nil
		}
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), col) {
			return i, nil
		}
	}
	return -1, eris.Wrapf(ErrColumnNotFound, "%q (available: %s)", col, strings.Join(header, ", "))
}

// cell safely retrieves a column value from a row.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
