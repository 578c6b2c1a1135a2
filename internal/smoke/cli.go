package smoke

import (
	"fmt"
	"io"
)

// ShowHelp prints usage information for the smoke tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Game Backend Smoke Tool
=======================

Calls a running backend through the platform client and verifies the
route contract of the sample routes.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the backend (default "http://localhost:8788")
  -prefix string
        Route prefix (default "/api")
  -api-key string
        Game-scoped API key (default $PLAYCADEMY_API_KEY)
  -game-id string
        Game ID (default $GAME_ID)
  -timeout duration
        HTTP request timeout (default 10s)
  -tolerance duration
        Allowed clock skew for timestamps (default 5s)
  -verbose
        Log every passing check
  -help
        Show this help message
`)
}

// PrintReport writes a human-readable summary of r.
func PrintReport(w io.Writer, r *Report) {
	for _, c := range r.Checks {
		mark := "PASS"
		if !c.Passed {
			mark = "FAIL"
		}
		_, _ = fmt.Fprintf(w, "%s  %-42s %8s", mark, c.Name, c.Duration.Round(100_000))
		if c.Detail != "" {
			_, _ = fmt.Fprintf(w, "  %s", c.Detail)
		}
		_, _ = io.WriteString(w, "\n")
	}
	_, _ = fmt.Fprintf(w, "%d checks, %d failed\n", len(r.Checks), len(r.Failed()))
}
