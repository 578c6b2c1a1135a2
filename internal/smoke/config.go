// Package smoke checks a running game backend against the route contract
// by calling it through the platform client.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL   string        // Base URL of the backend or platform
	APIKey    string        // Game-scoped API key, optional
	GameID    string        // Game ID, optional
	Prefix    string        // Route prefix, e.g. /api
	Timeout   time.Duration // HTTP request timeout
	Tolerance time.Duration // Allowed clock skew for the GET timestamp
	Verbose   bool          // Log each check
}

// Check is the outcome of one contract check.
type Check struct {
	Name     string
	Passed   bool
	Detail   string
	Duration time.Duration
}

// Report collects the checks of a run.
type Report struct {
	Checks    []Check
	StartTime time.Time
	EndTime   time.Time
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}
