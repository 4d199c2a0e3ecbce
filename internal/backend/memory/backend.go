package memory

import (
	"context"
	"sync"
	"time"

	"quiz/pkg/quiz"
)

// MemoryBackend stores attempt state in a process-local map.
type MemoryBackend struct {
	mu       sync.Mutex
	clock    Clock
	attempts map[string]quiz.Attempt
}

// New creates a MemoryBackend with the provided clock.
func New(clock Clock) *MemoryBackend {
	if clock == nil {
		clock = realClock{}
	}
	return &MemoryBackend{
		clock:    clock,
		attempts: map[string]quiz.Attempt{},
	}
}

// Save replaces the stored attempt. A zero LastSaved is stamped with the backend clock.
func (m *MemoryBackend) Save(_ context.Context, attempt quiz.Attempt) error {
	if attempt.LastSaved.IsZero() {
		attempt.LastSaved = m.clock.Now()
	}
	attempt = cloneAttempt(attempt)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[attempt.ID] = attempt
	return nil
}

// Get returns a copy of the stored attempt.
func (m *MemoryBackend) Get(_ context.Context, attemptID string) (quiz.Attempt, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	attempt, ok := m.attempts[attemptID]
	if !ok {
		return quiz.Attempt{}, false, nil
	}
	return cloneAttempt(attempt), true, nil
}

// Finish marks the attempt finished and returns its state from before the update.
func (m *MemoryBackend) Finish(_ context.Context, attemptID string, now time.Time) (quiz.Attempt, bool, error) {
	if now.IsZero() {
		now = m.clock.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	attempt, ok := m.attempts[attemptID]
	if !ok {
		return quiz.Attempt{}, false, nil
	}
	before := cloneAttempt(attempt)
	finishedAt := now
	attempt.Finished = true
	attempt.FinishedAt = &finishedAt
	m.attempts[attemptID] = attempt
	return before, true, nil
}

// Stats counts stored attempts by status.
func (m *MemoryBackend) Stats(_ context.Context) (quiz.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := quiz.Stats{Attempts: len(m.attempts)}
	for _, attempt := range m.attempts {
		if attempt.Finished {
			stats.Finished++
		}
	}
	stats.InProgress = stats.Attempts - stats.Finished
	return stats, nil
}

func cloneAttempt(attempt quiz.Attempt) quiz.Attempt {
	attempt.Answers = quiz.CloneAnswers(attempt.Answers)
	if attempt.FinishedAt != nil {
		finishedAt := *attempt.FinishedAt
		attempt.FinishedAt = &finishedAt
	}
	return attempt
}
