package input

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// LoadCSV reads the named column of a CSV file with a header row.
func LoadCSV(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(stripBOM(f))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "input: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("input: csv has no header row")
	}

	idx, err := columnIndex(records[0], column)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		values = append(values, cell(row, idx))
	}
	return values, nil
}
