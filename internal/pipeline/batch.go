// Package pipeline runs the sequential validate, throttle, fetch and record loop.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/cnpj-cli/internal/cnpj"
	"github.com/sells-group/cnpj-cli/internal/fetcher"
	"github.com/sells-group/cnpj-cli/internal/model"
)

// Fetcher looks up one normalized identifier. Lookup failures are reported
// in the Outcome; the only error is fetcher.ErrInterrupted.
type Fetcher interface {
	Fetch(ctx context.Context, cnpj string) (fetcher.Outcome, error)
}

// Batch is the ordered set of results produced by one run over one input.
type Batch struct {
	RunID       string
	Total       int
	Results     []model.QueryResult
	Interrupted bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Summary aggregates the batch results.
func (b *Batch) Summary() model.Summary {
	return model.Summarize(b.Results)
}

// Pending is the number of input rows that were never processed.
func (b *Batch) Pending() int {
	return b.Total - len(b.Results)
}

// Pipeline processes identifiers one at a time.
type Pipeline struct {
	fetcher Fetcher
}

// New creates a Pipeline backed by f.
func New(f Fetcher) *Pipeline {
	return &Pipeline{fetcher: f}
}

// Run processes inputs in order and returns the batch. Every processed row
// yields exactly one result. Cancelling ctx stops the loop at the next row
// boundary and marks the batch interrupted; results gathered so far are kept.
func (p *Pipeline) Run(ctx context.Context, inputs []string) *Batch {
	b := &Batch{
		RunID:     uuid.NewString(),
		Total:     len(inputs),
		Results:   make([]model.QueryResult, 0, len(inputs)),
		StartedAt: time.Now(),
	}
	log := zap.L().With(zap.String("run_id", b.RunID))
	log.Info("batch started",
		zap.Int("rows", len(inputs)),
		zap.Int("valid", CountValid(inputs)),
	)

	for i, raw := range inputs {
		if ctx.Err() != nil {
			b.Interrupted = true
			break
		}

		log.Debug(fmt.Sprintf("processing %d/%d", i+1, len(inputs)), zap.String("input", raw))

		result, err := p.processRow(ctx, raw)
		if err != nil {
			b.Interrupted = true
			break
		}
		b.Results = append(b.Results, result)
	}

	b.FinishedAt = time.Now()
	if b.Interrupted {
		log.Warn("batch interrupted",
			zap.Int("processed", len(b.Results)),
			zap.Int("pending", b.Pending()),
		)
	}

	s := b.Summary()
	log.Info("batch complete",
		zap.Int("total", s.Total),
		zap.Int("succeeded", s.Succeeded),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
		zap.Duration("elapsed", b.FinishedAt.Sub(b.StartedAt)),
	)
	return b
}

// processRow resolves a single row. A panic anywhere in the row is
// recorded as an unexpected error instead of aborting the batch. The only
// returned error is fetcher.ErrInterrupted.
func (p *Pipeline) processRow(ctx context.Context, raw string) (result model.QueryResult, err error) {
	var id string
	var attempted bool

	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("unexpected error processing row",
				zap.String("input", raw),
				zap.Any("panic", rec),
			)
			result = model.QueryResult{
				Input:     raw,
				CNPJ:      id,
				Attempted: attempted,
				Reason:    model.ReasonUnexpectedError,
				Detail:    fmt.Sprint(rec),
			}
			err = nil
		}
	}()

	digits, ok := cnpj.Normalize(raw)
	if !ok {
		zap.L().Warn("invalid cnpj, skipping",
			zap.String("input", raw),
			zap.String("digits", digits),
		)
		return model.Skipped(raw, digits), nil
	}
	id = digits

	attempted = true
	out, err := p.fetcher.Fetch(ctx, id)
	if err != nil {
		return model.QueryResult{}, err
	}

	return model.QueryResult{
		Input:     raw,
		CNPJ:      id,
		Attempted: true,
		Succeeded: out.OK(),
		Size:      out.Size(),
		Reason:    out.Reason,
		Detail:    out.Detail,
		Payload:   out.Company,
	}, nil
}

// CountValid returns how many inputs normalize to a valid identifier.
func CountValid(inputs []string) int {
	n := 0
	for _, raw := range inputs {
		if _, ok := cnpj.Normalize(raw); ok {
			n++
		}
	}
	return n
}

// EstimateDuration is the minimum wall time for the lookups in inputs at
// the given spacing.
func EstimateDuration(inputs []string, interval time.Duration) time.Duration {
	n := CountValid(inputs)
	if n <= 1 {
		return 0
	}
	return time.Duration(n-1) * interval
}
