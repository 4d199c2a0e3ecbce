package quiz

import "context"

// API is the client-facing set of quiz operations.
type API interface {
	Questions(ctx context.Context) ([]Question, error)
	Save(ctx context.Context, req SaveRequest) error
	Attempt(ctx context.Context, attemptID string) (AttemptResponse, error)
	Finish(ctx context.Context, attemptID string) (Results, error)
}
