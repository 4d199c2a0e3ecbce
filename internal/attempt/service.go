package attempt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"quiz/internal/backend"
	"quiz/internal/catalog"
	"quiz/pkg/quiz"
)

// ErrMissingAttemptID is returned when an operation that requires an attempt id receives none.
var ErrMissingAttemptID = errors.New("attemptId is required")

// Config wires dependencies for a Service.
type Config struct {
	Catalog *catalog.Catalog
	Backend backend.Backend
	Now     func() time.Time
	Logger  *slog.Logger
}

// Service implements the quiz operations over a catalog and an attempt backend.
type Service struct {
	catalog *catalog.Catalog
	backend backend.Backend
	nowFn   func() time.Time
	logger  *slog.Logger
}

var _ quiz.API = (*Service)(nil)

// NewService builds a Service. A nil catalog selects the built-in one.
func NewService(cfg Config) (*Service, error) {
	if cfg.Backend == nil {
		return nil, errors.New("attempt: backend is required")
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		catalog: cat,
		backend: cfg.Backend,
		nowFn:   cfg.Now,
		logger:  logger,
	}, nil
}

// Questions returns the full catalog, correct indexes included.
func (s *Service) Questions(_ context.Context) ([]quiz.Question, error) {
	return s.catalog.Questions(), nil
}

// Save replaces the stored progress for req.AttemptID and reopens the attempt.
func (s *Service) Save(ctx context.Context, req quiz.SaveRequest) error {
	err := s.backend.Save(ctx, quiz.Attempt{
		ID:           req.AttemptID,
		Answers:      quiz.CloneAnswers(req.Answers),
		RemainingSec: req.RemainingSec,
		LastSaved:    s.now(),
	})
	if err != nil {
		return fmt.Errorf("save attempt %q: %w", req.AttemptID, err)
	}
	s.logger.DebugContext(ctx, "attempt saved",
		slog.String("attempt_id", req.AttemptID),
		slog.Int("answers", len(req.Answers)),
		slog.Int("remaining_sec", req.RemainingSec))
	return nil
}

// Attempt returns the stored state for attemptID, or the default state for an unknown id.
func (s *Service) Attempt(ctx context.Context, attemptID string) (quiz.AttemptResponse, error) {
	stored, ok, err := s.backend.Get(ctx, attemptID)
	if err != nil {
		return quiz.AttemptResponse{}, fmt.Errorf("get attempt %q: %w", attemptID, err)
	}
	if !ok {
		return quiz.AttemptResponse{
			Answers:      []quiz.Answer{},
			RemainingSec: quiz.DefaultRemainingSec,
			IsFinished:   false,
		}, nil
	}
	return quiz.AttemptResponse{
		Answers:      quiz.CloneAnswers(stored.Answers),
		RemainingSec: stored.RemainingSec,
		IsFinished:   stored.Finished,
	}, nil
}

// Finish scores the stored answers and marks the attempt finished.
// Unknown ids are scored as an empty attempt and nothing is stored.
func (s *Service) Finish(ctx context.Context, attemptID string) (quiz.Results, error) {
	if attemptID == "" {
		return quiz.Results{}, ErrMissingAttemptID
	}
	stored, ok, err := s.backend.Finish(ctx, attemptID, s.now())
	if err != nil {
		return quiz.Results{}, fmt.Errorf("finish attempt %q: %w", attemptID, err)
	}
	var answers []quiz.Answer
	if ok {
		answers = stored.Answers
	}
	results := Score(s.catalog, answers)
	s.logger.InfoContext(ctx, "attempt finished",
		slog.String("attempt_id", attemptID),
		slog.Bool("stored", ok),
		slog.Int("correct", results.CorrectCount),
		slog.Int("incorrect", results.IncorrectCount),
		slog.Int("total", results.TotalQuestions))
	return results, nil
}

// Stats summarizes stored attempts when the backend supports it.
func (s *Service) Stats(ctx context.Context) (quiz.Stats, bool, error) {
	reader, ok := s.backend.(backend.StatsReader)
	if !ok {
		return quiz.Stats{}, false, nil
	}
	stats, err := reader.Stats(ctx)
	if err != nil {
		return quiz.Stats{}, true, fmt.Errorf("attempt stats: %w", err)
	}
	return stats, true, nil
}

func (s *Service) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now().UTC()
}
