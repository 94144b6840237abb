// Package fetcher performs rate-gated registry lookups and classifies their outcomes.
package fetcher

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/cnpj-cli/internal/model"
	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

// Outcome is the result of a single lookup: either a company record or a
// classified failure. It never carries ErrInterrupted.
type Outcome struct {
	Company *brasilapi.Company
	Reason  model.FailureReason
	Detail  string
}

// OK reports whether the lookup produced a record.
func (o Outcome) OK() bool {
	return o.Company != nil && o.Reason == model.ReasonNone
}

// Size returns the extracted size category, nil when absent or failed.
func (o Outcome) Size() *string {
	if !o.OK() {
		return nil
	}
	return o.Company.Size()
}

// Fetcher owns the rate gate and issues one request per identifier.
type Fetcher struct {
	client brasilapi.Client
	gate   *Gate
}

// New creates a Fetcher.
func New(client brasilapi.Client, gate *Gate) *Fetcher {
	if gate == nil {
		gate = NewGate(DefaultInterval)
	}
	return &Fetcher{client: client, gate: gate}
}

// Gate returns the fetcher's rate gate.
func (f *Fetcher) Gate() *Gate {
	return f.gate
}

// Fetch waits for the gate and looks up a normalized identifier exactly
// once. Cancellation is honoured only while waiting; once the request is
// sent it runs to completion, bounded by the client timeout. The only
// error returned is ErrInterrupted; every lookup failure is an Outcome.
func (f *Fetcher) Fetch(ctx context.Context, cnpj string) (Outcome, error) {
	if _, err := f.gate.Wait(ctx); err != nil {
		return Outcome{}, ErrInterrupted
	}

	log := zap.L().With(zap.String("cnpj", cnpj))
	log.Info("querying registry")

	company, err := f.client.Lookup(context.WithoutCancel(ctx), cnpj)
	if err != nil {
		reason, detail := Classify(err)
		log.Warn("registry lookup failed",
			zap.String("reason", string(reason)),
			zap.String("detail", detail),
		)
		return Outcome{Reason: reason, Detail: detail}, nil
	}
	if company == nil {
		return Outcome{Reason: model.ReasonDecodeError, Detail: "empty payload"}, nil
	}

	log.Info("registry lookup succeeded")
	return Outcome{Company: company}, nil
}

// IsInterrupted reports whether err signals a cancelled batch.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}
