package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/okian/radar/internal/smoke"
	"github.com/okian/radar/pkg/logger"
)

// Default configuration constants.
const (
	defaultSample      = 200
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		datasetPath = flag.String("dataset", "database.csv", "CSV the players are sampled from")
		sample      = flag.Int("sample", defaultSample, "Number of players to profile (0 for all)")
		concurrency = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Maximum concurrent requests")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		scopes      = flag.String("scopes", "global,same_league", "Comma-separated scopes to request")
		logFormat   = flag.String("log-format", logger.FormatText, "Log format: text or json")
		verbose     = flag.Bool("verbose", false, "Log every profile")
	)
	flag.Parse()

	if err := logger.Init(logger.WithFormat(*logFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	targets, err := smoke.LoadTargets(ctx, *datasetPath, *sample)
	if err != nil {
		os.Stderr.WriteString("failed to load targets: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := &smoke.Config{
		BaseURL:     *baseURL,
		DatasetPath: *datasetPath,
		Sample:      *sample,
		Concurrency: *concurrency,
		Timeout:     *timeout,
		Scopes:      strings.Split(*scopes, ","),
		Verbose:     *verbose,
	}
	if _, err := smoke.Run(ctx, cfg, targets); err != nil {
		os.Stderr.WriteString("smoke run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
