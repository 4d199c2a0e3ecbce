// Command quiz-loadtest drives synthetic quiz attempts against a quiz API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"quiz/internal/attempt"
	"quiz/internal/backend"
	"quiz/internal/backend/duckdb"
	"quiz/internal/backend/memory"
	"quiz/pkg/quiz"
	"quiz/pkg/quiz/httpclient"
)

// config captures command-line configuration for the load test.
type config struct {
	Mode           string
	Backend        string
	Duration       time.Duration
	Concurrency    int
	BaseURL        string
	SavesPerRun    int
	RequestTimeout time.Duration
}

func main() {
	cfg := parseConfig(os.Args[1:])
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	api, closeFn, err := buildAPI(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	stats := runLoad(ctx, api, cfg)
	printSummary(os.Stdout, cfg, stats)
}

// parseConfig reads flags and builds a config.
func parseConfig(args []string) config {
	var cfg config
	fs := flag.NewFlagSet("quiz-loadtest", flag.ExitOnError)
	fs.StringVar(&cfg.Mode, "mode", "http", "mode: http or local")
	fs.StringVar(&cfg.Backend, "backend", "memory", "local backend: memory or duckdb")
	fs.DurationVar(&cfg.Duration, "duration", 30*time.Second, "test duration")
	fs.IntVar(&cfg.Concurrency, "concurrency", 50, "concurrent simulated players")
	fs.StringVar(&cfg.BaseURL, "base-url", "http://localhost:8000", "quizd base URL")
	fs.IntVar(&cfg.SavesPerRun, "saves", 5, "autosaves per attempt before finishing")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", 2*time.Second, "per-request timeout")
	_ = fs.Parse(args)
	return cfg
}

// validate ensures the configuration is usable.
func (c config) validate() error {
	if c.Mode != "http" && c.Mode != "local" {
		return fmt.Errorf("unsupported mode: %s", c.Mode)
	}
	if c.Backend != "memory" && c.Backend != "duckdb" {
		return fmt.Errorf("unsupported backend: %s", c.Backend)
	}
	if c.Mode == "http" && c.Backend != "memory" {
		return fmt.Errorf("backend only applies to local mode")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.SavesPerRun < 0 {
		return fmt.Errorf("saves must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request-timeout must be positive")
	}
	return nil
}

// buildAPI constructs the target API and its cleanup hook.
func buildAPI(cfg config) (quiz.API, func(), error) {
	if cfg.Mode == "http" {
		return httpclient.NewWithTimeout(cfg.BaseURL, cfg.RequestTimeout), func() {}, nil
	}
	var store backend.Backend
	closeFn := func() {}
	switch cfg.Backend {
	case "duckdb":
		db, err := duckdb.Open(context.Background(), "")
		if err != nil {
			return nil, nil, err
		}
		store = db
		closeFn = func() { _ = db.Close() }
	default:
		store = memory.New(nil)
	}
	svc, err := attempt.NewService(attempt.Config{Backend: store})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

// printSummary renders load test metrics.
func printSummary(w io.Writer, cfg config, stats *loadtestStats) {
	elapsed := cfg.Duration.Seconds()
	snap := stats.snapshot()
	fmt.Fprintln(w, "quiz load test summary")
	fmt.Fprintf(w, "mode: %s backend: %s duration: %s concurrency: %d\n", cfg.Mode, cfg.Backend, cfg.Duration, cfg.Concurrency)
	fmt.Fprintf(w, "saves/sec: %.2f finishes/sec: %.2f\n", float64(snap.saves)/elapsed, float64(snap.finishes)/elapsed)
	fmt.Fprintf(w, "attempts: %d errors: %d mismatches: %d\n", snap.finishes, snap.errors, snap.mismatches)
	fmt.Fprintf(w, "save latency p50=%s p95=%s p99=%s\n",
		percentileDuration(snap.saveLatencies, 0.50),
		percentileDuration(snap.saveLatencies, 0.95),
		percentileDuration(snap.saveLatencies, 0.99),
	)
	fmt.Fprintf(w, "finish latency p50=%s p95=%s p99=%s\n",
		percentileDuration(snap.finishLatencies, 0.50),
		percentileDuration(snap.finishLatencies, 0.95),
		percentileDuration(snap.finishLatencies, 0.99),
	)
}
