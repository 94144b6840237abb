package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sells-group/cnpj-cli/internal/model"
)

// PrintSummary writes the post-run aggregates in a human-readable block.
func PrintSummary(w io.Writer, s model.Summary) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "RESULTS SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Rows processed:            %d\n", s.Total)
	fmt.Fprintf(w, "Lookups succeeded:         %d\n", s.Succeeded)
	fmt.Fprintf(w, "Skipped (invalid format):  %d\n", s.Skipped)
	fmt.Fprintf(w, "Failed at the API:         %d\n", s.Failed)
	fmt.Fprintf(w, "Size category found:       %d\n", s.WithSize)
	fmt.Fprintf(w, "Success rate:              %.1f%%\n", s.SuccessRate())
	if s.Attempted > 0 {
		fmt.Fprintf(w, "Success rate (attempted):  %.1f%%\n", s.AttemptSuccessRate())
	}

	var reasons []string
	for _, r := range model.FailureReasons {
		if n := s.ByReason[r]; n > 0 {
			reasons = append(reasons, fmt.Sprintf("%s=%d", r, n))
		}
	}
	if len(reasons) > 0 {
		fmt.Fprintf(w, "Failures by reason:        %s\n", strings.Join(reasons, ", "))
	}
}

// PrintSizes writes the n most frequent size categories.
func PrintSizes(w io.Writer, s model.Summary, n int) {
	top := s.TopSizes(n)
	if len(top) == 0 {
		fmt.Fprintln(w, "No size categories found.")
		return
	}
	fmt.Fprintln(w, "Size categories (count):")
	for _, sc := range top {
		fmt.Fprintf(w, "  %s: %d\n", sc.Size, sc.Count)
	}
	if extra := len(s.BySize) - len(top); extra > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", extra)
	}
}
