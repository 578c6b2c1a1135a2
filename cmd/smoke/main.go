package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/gamekit/internal/smoke"
	"github.com/okian/gamekit/pkg/logger"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultTolerance = 5 * time.Second
	runTimeout       = time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8788", "Base URL of the backend")
		prefix    = flag.String("prefix", "/api", "Route prefix")
		apiKey    = flag.String("api-key", os.Getenv("PLAYCADEMY_API_KEY"), "Game-scoped API key")
		gameID    = flag.String("game-id", os.Getenv("GAME_ID"), "Game ID")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		tolerance = flag.Duration("tolerance", defaultTolerance, "Allowed clock skew for timestamps")
		verbose   = flag.Bool("verbose", false, "Log every passing check")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	report, err := smoke.Run(ctx, &smoke.Config{
		BaseURL:   *baseURL,
		APIKey:    *apiKey,
		GameID:    *gameID,
		Prefix:    *prefix,
		Timeout:   *timeout,
		Tolerance: *tolerance,
		Verbose:   *verbose,
	}, logger.Named("smoke"))
	if report != nil {
		smoke.PrintReport(os.Stdout, report)
	}
	if err != nil {
		os.Stderr.WriteString("smoke run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
