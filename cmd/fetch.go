package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/sells-group/cnpj-cli/internal/fetcher"
	"github.com/sells-group/cnpj-cli/internal/report"
	"github.com/sells-group/cnpj-cli/pkg/brasilapi"
)

// newFetcher builds the rate-gated registry fetcher from cfg. Tests replace
// it to avoid real waits.
var newFetcher = func() *fetcher.Fetcher {
	client := brasilapi.NewClient(
		brasilapi.WithBaseURL(cfg.API.BaseURL),
		brasilapi.WithTimeout(cfg.API.Timeout()),
		brasilapi.WithUserAgent(cfg.API.UserAgent),
	)
	return fetcher.New(client, fetcher.NewGate(cfg.API.Interval()))
}

// outputPath returns the explicit path, or a timestamped name under the
// configured output dir.
func outputPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	dir := cfg.Output.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, report.DefaultFilename(time.Now()))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
