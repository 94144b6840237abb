package report

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/cnpj-cli/internal/model"
)

// Row is one decoded report line.
type Row struct {
	Input       string `csv:"cnpj_original"`
	CNPJ        string `csv:"cnpj_limpo"`
	Attempted   bool   `csv:"consulta_tentada"`
	Succeeded   bool   `csv:"consulta_realizada"`
	Size        string `csv:"porte_extraido"`
	Reason      string `csv:"motivo_falha"`
	Detail      string `csv:"detalhe_falha"`
	LegalName   string `csv:"razao_social"`
	TradeName   string `csv:"nome_fantasia"`
	Status      string `csv:"situacao"`
	City        string `csv:"municipio"`
	State       string `csv:"uf"`
	ActivityDsc string `csv:"cnae_fiscal_descricao"`
}

// Result converts the row back into a QueryResult for aggregation. The
// registry payload is not reconstructed.
func (r Row) Result() model.QueryResult {
	qr := model.QueryResult{
		Input:     r.Input,
		CNPJ:      r.CNPJ,
		Attempted: r.Attempted,
		Succeeded: r.Succeeded,
		Reason:    model.FailureReason(r.Reason),
		Detail:    r.Detail,
	}
	if r.Size != "" {
		size := r.Size
		qr.Size = &size
	}
	return qr
}

// Read decodes a report produced by Write. A leading byte order mark is
// accepted but not required.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(cr)
	if err == io.EOF {
		return nil, eris.New("report: empty file")
	}
	if err != nil {
		return nil, eris.Wrap(err, "report: read header")
	}

	var rows []Row
	for {
		var row Row
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "report: decode row")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile decodes the report at path.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: open file")
	}
	defer f.Close() //nolint:errcheck
	return Read(f)
}

// Summarize aggregates decoded rows the same way model.Summarize does for
// in-memory results.
func Summarize(rows []Row) model.Summary {
	results := make([]model.QueryResult, len(rows))
	for i, r := range rows {
		results[i] = r.Result()
	}
	return model.Summarize(results)
}
