package brasilapi

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Payload keys flattened into reports.
const (
	KeyLegalName     = "razao_social"
	KeyTradeName     = "nome_fantasia"
	KeyStatus        = "descricao_situacao_cadastral"
	KeySize          = "porte"
	KeySizeCode      = "codigo_porte"
	KeyLegalNature   = "natureza_juridica"
	KeyActivityCode  = "cnae_fiscal"
	KeyActivityDesc  = "cnae_fiscal_descricao"
	KeyPhone1        = "ddd_telefone_1"
	KeyPhone2        = "ddd_telefone_2"
	KeyEmail         = "email"
	KeyZipCode       = "cep"
	KeyCity          = "municipio"
	KeyState         = "uf"
	KeyStreet        = "logradouro"
	KeyNumber        = "numero"
	KeyDistrict      = "bairro"
	KeyComplement    = "complemento"
	KeyShareCapital  = "capital_social"
	KeyActivityStart = "data_inicio_atividade"
	KeyStatusDate    = "data_situacao_cadastral"
)

// Company is a decoded registry record. Raw keeps the payload exactly as
// received so fields can be looked up without a fixed schema.
type Company struct {
	Raw    json.RawMessage
	Fields map[string]any
}

// Field returns the payload value at key rendered as text. Missing and null
// values yield "".
func (c *Company) Field(key string) string {
	if c == nil {
		return ""
	}
	r := gjson.GetBytes(c.Raw, key)
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	return r.String()
}

// Size returns the size category ("porte"). A missing or null key yields
// nil rather than an error.
func (c *Company) Size() *string {
	if c == nil {
		return nil
	}
	r := gjson.GetBytes(c.Raw, KeySize)
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	s := r.String()
	return &s
}
