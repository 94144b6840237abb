package model

import "sort"

// Summary holds post-run aggregates for a batch.
type Summary struct {
	Total     int                   `json:"total"`
	Attempted int                   `json:"attempted"`
	Succeeded int                   `json:"succeeded"`
	Skipped   int                   `json:"skipped"`
	Failed    int                   `json:"failed"`
	WithSize  int                   `json:"with_size"`
	ByReason  map[FailureReason]int `json:"by_reason"`
	BySize    map[string]int        `json:"by_size"`
}

// Summarize computes aggregates over results.
func Summarize(results []QueryResult) Summary {
	s := Summary{
		ByReason: make(map[FailureReason]int),
		BySize:   make(map[string]int),
	}
	for _, r := range results {
		s.Total++
		if r.Attempted {
			s.Attempted++
		}
		switch r.State() {
		case StateSucceeded:
			s.Succeeded++
		case StateSkipped:
			s.Skipped++
		case StateFailed:
			s.Failed++
		}
		if r.Reason != ReasonNone {
			s.ByReason[r.Reason]++
		}
		if r.HasSize() {
			s.WithSize++
			s.BySize[*r.Size]++
		}
	}
	return s
}

// SuccessRate is the share of all rows that produced a record, in percent.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total) * 100
}

// AttemptSuccessRate is the share of attempted lookups that succeeded, in percent.
func (s Summary) AttemptSuccessRate() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Attempted) * 100
}

// SizeCount is one entry of the size-category distribution.
type SizeCount struct {
	Size  string
	Count int
}

// TopSizes returns the n most frequent size categories, ties broken by name.
// n <= 0 returns all of them.
func (s Summary) TopSizes(n int) []SizeCount {
	out := make([]SizeCount, 0, len(s.BySize))
	for size, count := range s.BySize {
		out = append(out, SizeCount{Size: size, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Size < out[j].Size
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
