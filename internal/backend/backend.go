package backend

import (
	"context"
	"time"

	"quiz/pkg/quiz"
)

// Backend stores attempt state for the quiz server.
type Backend interface {
	// Save replaces any stored state for attempt.ID.
	Save(ctx context.Context, attempt quiz.Attempt) error
	// Get returns the stored attempt, if present.
	Get(ctx context.Context, attemptID string) (quiz.Attempt, bool, error)
	// Finish marks a stored attempt finished at now and returns it as it was
	// before marking. Unknown ids report false and store nothing.
	Finish(ctx context.Context, attemptID string, now time.Time) (quiz.Attempt, bool, error)
}

// StatsReader is implemented by backends that can summarize stored attempts.
type StatsReader interface {
	Stats(ctx context.Context) (quiz.Stats, error)
}
