package smoke

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/gamekit/internal/platform"
	"github.com/okian/gamekit/pkg/logger"
)

// ErrChecksFailed is returned when at least one check failed.
var ErrChecksFailed = errors.New("smoke checks failed")

// Run executes every check against cfg.BaseURL and returns the report.
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Report, error) {
	client, err := platform.NewClient(
		platform.Env{APIKey: cfg.APIKey, GameID: cfg.GameID, BaseURL: cfg.BaseURL},
		platform.WithTimeout(cfg.Timeout),
		platform.WithBackendPrefix(cfg.Prefix),
		platform.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	backend := client.Backend()

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("prefix", cfg.Prefix),
		logger.Int("checks", len(checks)),
	)

	report := &Report{StartTime: time.Now()}
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		start := time.Now()
		cerr := c.fn(ctx, backend, cfg)
		check := Check{Name: c.name, Passed: cerr == nil, Duration: time.Since(start)}
		if cerr != nil {
			check.Detail = cerr.Error()
			log.Error(ctx, "check failed", logger.String("check", c.name), logger.Error(cerr))
		} else if cfg.Verbose {
			log.Info(ctx, "check passed", logger.String("check", c.name))
		}
		report.Checks = append(report.Checks, check)
	}
	report.EndTime = time.Now()

	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrChecksFailed, len(failed), len(report.Checks))
	}
	log.Info(ctx, "smoke run passed",
		logger.Int("checks", len(report.Checks)),
		logger.String("duration", report.EndTime.Sub(report.StartTime).String()),
	)
	return report, nil
}
