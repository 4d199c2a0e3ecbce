package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"quiz/pkg/quiz"
)

func TestConfigValidate(t *testing.T) {
	base := parseConfig(nil)
	if err := base.validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
	cases := map[string]func(*config){
		"mode":        func(c *config) { c.Mode = "grpc" },
		"backend":     func(c *config) { c.Backend = "redis" },
		"http duckdb": func(c *config) { c.Backend = "duckdb" },
		"duration":    func(c *config) { c.Duration = 0 },
		"concurrency": func(c *config) { c.Concurrency = 0 },
		"saves":       func(c *config) { c.SavesPerRun = -1 },
		"timeout":     func(c *config) { c.RequestTimeout = 0 },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := cfg.validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestUpsertAnswerReplacesByQuestion(t *testing.T) {
	answers := upsertAnswer(nil, quiz.Answer{QuestionID: 1, SelectedIndex: 0})
	answers = upsertAnswer(answers, quiz.Answer{QuestionID: 2, SelectedIndex: 1})
	answers = upsertAnswer(answers, quiz.Answer{QuestionID: 1, SelectedIndex: 3})
	if len(answers) != 2 || answers[0].SelectedIndex != 3 {
		t.Fatalf("unexpected answers: %+v", answers)
	}
}

func TestPercentileDuration(t *testing.T) {
	samples := []int64{50, 10, 40, 20, 30}
	if got := percentileDuration(samples, 0.5); got != 30 {
		t.Fatalf("expected p50=30ns, got %s", got)
	}
	if got := percentileDuration(samples, 1); got != 50 {
		t.Fatalf("expected p100=50ns, got %s", got)
	}
	if got := percentileDuration(nil, 0.5); got != 0 {
		t.Fatalf("expected zero for no samples, got %s", got)
	}
}

func TestRunLoadLocal(t *testing.T) {
	for _, backendName := range []string{"memory", "duckdb"} {
		t.Run(backendName, func(t *testing.T) {
			cfg := config{
				Mode:           "local",
				Backend:        backendName,
				Duration:       200 * time.Millisecond,
				Concurrency:    4,
				SavesPerRun:    3,
				RequestTimeout: time.Second,
			}
			api, closeFn, err := buildAPI(cfg)
			if err != nil {
				t.Fatalf("build api: %v", err)
			}
			defer closeFn()
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
			defer cancel()
			stats := runLoad(ctx, api, cfg)
			snap := stats.snapshot()
			if snap.finishes == 0 || snap.errors != 0 || snap.mismatches != 0 {
				t.Fatalf("unexpected stats: %+v", snap)
			}
			var out bytes.Buffer
			printSummary(&out, cfg, stats)
			if !strings.Contains(out.String(), "quiz load test summary") {
				t.Fatalf("unexpected summary %q", out.String())
			}
		})
	}
}
