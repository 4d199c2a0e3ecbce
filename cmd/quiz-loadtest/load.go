package main

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"quiz/pkg/quiz"
)

// loadtestStats aggregates counters and latency samples.
type loadtestStats struct {
	saveCount   uint64
	finishCount uint64
	errorCount  uint64
	// mismatchCount counts finishes whose totals disagree with the saved answers.
	mismatchCount uint64

	mu              sync.Mutex
	saveLatencies   []int64
	finishLatencies []int64
}

type statsSnapshot struct {
	saves, finishes, errors, mismatches uint64
	saveLatencies, finishLatencies      []int64
}

// runLoad plays attempts concurrently until the context expires.
func runLoad(ctx context.Context, api quiz.API, cfg config) *loadtestStats {
	stats := &loadtestStats{}
	questionsCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	questions, err := api.Questions(questionsCtx)
	cancel()
	if err != nil || len(questions) == 0 {
		atomic.AddUint64(&stats.errorCount, 1)
		return stats
	}

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for ctx.Err() == nil {
				playAttempt(ctx, api, cfg, questions, rng, stats)
			}
		}(int64(i + 1))
	}
	wg.Wait()
	return stats
}

// playAttempt saves progressively more answers, then finishes the attempt.
func playAttempt(ctx context.Context, api quiz.API, cfg config, questions []quiz.Question, rng *rand.Rand, stats *loadtestStats) {
	attemptID := "load-" + uuid.NewString()
	answers := []quiz.Answer{}
	remaining := quiz.DefaultRemainingSec
	for save := 0; save < cfg.SavesPerRun && ctx.Err() == nil; save++ {
		question := questions[rng.Intn(len(questions))]
		answers = upsertAnswer(answers, quiz.Answer{
			QuestionID:    question.ID,
			SelectedIndex: rng.Intn(len(question.Options)),
		})
		remaining = max(remaining-rng.Intn(5), 0)

		start := time.Now()
		reqCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		err := api.Save(reqCtx, quiz.SaveRequest{AttemptID: attemptID, Answers: answers, RemainingSec: remaining})
		cancel()
		stats.record(&stats.saveLatencies, time.Since(start))
		if err != nil {
			atomic.AddUint64(&stats.errorCount, 1)
			return
		}
		atomic.AddUint64(&stats.saveCount, 1)
	}
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	reqCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	results, err := api.Finish(reqCtx, attemptID)
	cancel()
	stats.record(&stats.finishLatencies, time.Since(start))
	if err != nil {
		atomic.AddUint64(&stats.errorCount, 1)
		return
	}
	atomic.AddUint64(&stats.finishCount, 1)
	if results.TotalAnswered != len(answers) || results.TotalQuestions != len(questions) {
		atomic.AddUint64(&stats.mismatchCount, 1)
	}
}

// upsertAnswer replaces the answer for the same question or appends it.
func upsertAnswer(answers []quiz.Answer, answer quiz.Answer) []quiz.Answer {
	for i := range answers {
		if answers[i].QuestionID == answer.QuestionID {
			answers[i] = answer
			return answers
		}
	}
	return append(answers, answer)
}

// record appends a latency sample.
func (s *loadtestStats) record(samples *[]int64, d time.Duration) {
	s.mu.Lock()
	*samples = append(*samples, d.Nanoseconds())
	s.mu.Unlock()
}

func (s *loadtestStats) snapshot() statsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statsSnapshot{
		saves:           atomic.LoadUint64(&s.saveCount),
		finishes:        atomic.LoadUint64(&s.finishCount),
		errors:          atomic.LoadUint64(&s.errorCount),
		mismatches:      atomic.LoadUint64(&s.mismatchCount),
		saveLatencies:   append([]int64(nil), s.saveLatencies...),
		finishLatencies: append([]int64(nil), s.finishLatencies...),
	}
}

// percentileDuration computes a duration percentile for samples in nanoseconds.
func percentileDuration(samples []int64, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]int64(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	if p <= 0 {
		return time.Duration(sorted[0])
	}
	if p >= 1 {
		return time.Duration(sorted[len(sorted)-1])
	}
	pos := int(float64(len(sorted)-1) * p)
	return time.Duration(sorted[pos])
}
