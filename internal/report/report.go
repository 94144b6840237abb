// Package report serializes a batch of query results to a flat CSV file.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/cnpj-cli/internal/model"
	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

// Report column names.
const (
	ColInput     = "cnpj_original"
	ColCNPJ      = "cnpj_limpo"
	ColAttempted = "consulta_tentada"
	ColSucceeded = "consulta_realizada"
	ColSize      = "porte_extraido"
	ColReason    = "motivo_falha"
	ColDetail    = "detalhe_falha"
)

// payloadColumns maps report columns to registry payload keys, in order.
var payloadColumns = []struct {
	Column string
	Key    string
}{
	{"razao_social", brasilapi.KeyLegalName},
	{"nome_fantasia", brasilapi.KeyTradeName},
	{"situacao", brasilapi.KeyStatus},
	{"porte", brasilapi.KeySize},
	{"codigo_porte", brasilapi.KeySizeCode},
	{"natureza_juridica", brasilapi.KeyLegalNature},
	{"cnae_fiscal", brasilapi.KeyActivityCode},
	{"cnae_fiscal_descricao", brasilapi.KeyActivityDesc},
	{"telefone", brasilapi.KeyPhone1},
	{"telefone_2", brasilapi.KeyPhone2},
	{"email", brasilapi.KeyEmail},
	{"cep", brasilapi.KeyZipCode},
	{"municipio", brasilapi.KeyCity},
	{"uf", brasilapi.KeyState},
	{"logradouro", brasilapi.KeyStreet},
	{"numero", brasilapi.KeyNumber},
	{"bairro", brasilapi.KeyDistrict},
	{"complemento", brasilapi.KeyComplement},
	{"capital_social", brasilapi.KeyShareCapital},
	{"data_inicio_atividade", brasilapi.KeyActivityStart},
	{"data_situacao_cadastral", brasilapi.KeyStatusDate},
}

// Columns returns the ordered report header.
func Columns() []string {
	cols := []string{ColInput, ColCNPJ, ColAttempted, ColSucceeded, ColSize, ColReason, ColDetail}
	for _, pc := range payloadColumns {
		cols = append(cols, pc.Column)
	}
	return cols
}

// DefaultFilename returns the timestamped report name for a run started at now.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("resultados_cnpj_%s.csv", now.Format("20060102_150405"))
}

// Write serializes results as UTF-8 CSV with a byte order mark, one row
// per result in order.
func Write(w io.Writer, results []model.QueryResult) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)

	if err := cw.Write(Columns()); err != nil {
		return eris.Wrap(err, "report: write header")
	}
	for _, r := range results {
		if err := cw.Write(buildRow(r)); err != nil {
			return eris.Wrap(err, "report: write row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "report: flush")
	}
	if err := bw.Close(); err != nil {
		return eris.Wrap(err, "report: flush encoder")
	}
	return nil
}

// WriteFile writes results to path. If path cannot be written, a
// best-effort copy is saved under the system temp dir and its location is
// included in the returned error.
func WriteFile(path string, results []model.QueryResult) error {
	err := writeFile(path, results)
	if err == nil {
		return nil
	}

	fallback := filepath.Join(os.TempDir(), filepath.Base(path))
	if fbErr := writeFile(fallback, results); fbErr != nil {
		zap.L().Error("report: partial save failed", zap.String("path", fallback), zap.Error(fbErr))
		return eris.Wrapf(err, "report: write %s", path)
	}

	zap.L().Warn("report: saved to fallback location", zap.String("path", fallback))
	return eris.Wrapf(err, "report: write %s (partial results saved to %s)", path, fallback)
}

func writeFile(path string, results []model.QueryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "report: create file")
	}
	if err := Write(f, results); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "report: close file")
	}
	return nil
}

// buildRow maps a QueryResult to a report row. Payload columns are empty
// unless the lookup succeeded.
func buildRow(r model.QueryResult) []string {
	row := []string{
		r.Input,
		r.CNPJ,
		strconv.FormatBool(r.Attempted),
		strconv.FormatBool(r.Succeeded),
		r.SizeValue(),
		string(r.Reason),
		r.Detail,
	}
	for _, pc := range payloadColumns {
		if r.Succeeded {
			row = append(row, r.Payload.Field(pc.Key))
		} else {
			row = append(row, "")
		}
	}
	return row
}
