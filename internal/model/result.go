package model

import (
	"fmt"

	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

// FailureReason classifies why a row did not produce a registry record.
type FailureReason string

const (
	ReasonNone            FailureReason = ""
	ReasonInvalidFormat   FailureReason = "invalid_format"
	ReasonAPIError        FailureReason = "api_error"
	ReasonTimeout         FailureReason = "timeout"
	ReasonDecodeError     FailureReason = "decode_error"
	ReasonUnexpectedError FailureReason = "unexpected_error"
)

// FailureReasons lists every non-empty reason in report order.
var FailureReasons = []FailureReason{
	ReasonInvalidFormat,
	ReasonAPIError,
	ReasonTimeout,
	ReasonDecodeError,
	ReasonUnexpectedError,
}

// RowState is the terminal state of a processed row.
type RowState string

const (
	StateSkipped   RowState = "skipped"
	StateSucceeded RowState = "succeeded"
	StateFailed    RowState = "failed"
)

// QueryResult records the outcome of one input row. It is not modified
// after being appended to a batch.
type QueryResult struct {
	Input     string             `json:"input"`
	CNPJ      string             `json:"cnpj"`
	Attempted bool               `json:"attempted"`
	Succeeded bool               `json:"succeeded"`
	Size      *string            `json:"size,omitempty"`
	Reason    FailureReason      `json:"reason,omitempty"`
	Detail    string             `json:"detail,omitempty"`
	Payload   *brasilapi.Company `json:"-"`
}

// State derives the terminal row state.
func (r QueryResult) State() RowState {
	switch {
	case r.Succeeded:
		return StateSucceeded
	case !r.Attempted:
		return StateSkipped
	default:
		return StateFailed
	}
}

// HasSize reports whether a non-empty size category was extracted.
func (r QueryResult) HasSize() bool {
	return r.Size != nil && *r.Size != ""
}

// SizeValue returns the extracted size category or "".
func (r QueryResult) SizeValue() string {
	if r.Size == nil {
		return ""
	}
	return *r.Size
}

// Skipped builds the result for a row rejected before reaching the network.
func Skipped(input, digits string) QueryResult {
	return QueryResult{
		Input:  input,
		CNPJ:   "",
		Reason: ReasonInvalidFormat,
		Detail: invalidDetail(digits),
	}
}

func invalidDetail(digits string) string {
	if digits == "" {
		return "no digits found"
	}
	return fmt.Sprintf("expected 14 digits, got %d (%s)", len(digits), digits)
}
