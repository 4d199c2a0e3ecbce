package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quiz/pkg/quiz"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// lookupAttempt reads one attempt row.
func lookupAttempt(ctx context.Context, q queryer, attemptID string) (quiz.Attempt, bool, error) {
	var (
		answers    string
		remaining  int64
		finished   bool
		lastSaved  sql.NullTime
		finishedAt sql.NullTime
	)
	err := q.QueryRowContext(
		ctx,
		`SELECT answers, remaining_sec, is_finished, last_saved, finished_at
		 FROM attempts WHERE attempt_id = ?`,
		attemptID,
	).Scan(&answers, &remaining, &finished, &lastSaved, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Attempt{}, false, nil
	}
	if err != nil {
		return quiz.Attempt{}, false, fmt.Errorf("query attempt: %w", err)
	}
	decoded, err := decodeAnswers(answers)
	if err != nil {
		return quiz.Attempt{}, false, err
	}
	attempt := quiz.Attempt{
		ID:           attemptID,
		Answers:      decoded,
		RemainingSec: int(remaining),
		Finished:     finished,
		LastSaved:    lastSaved.Time,
	}
	if finishedAt.Valid {
		at := finishedAt.Time
		attempt.FinishedAt = &at
	}
	return attempt, true, nil
}

// encodeAnswers serializes answers for the answers column.
func encodeAnswers(answers []quiz.Answer) (string, error) {
	data, err := json.Marshal(quiz.CloneAnswers(answers))
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}
	return string(data), nil
}

// decodeAnswers parses the answers column, never returning nil.
func decodeAnswers(raw string) ([]quiz.Answer, error) {
	var answers []quiz.Answer
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if answers == nil {
		answers = []quiz.Answer{}
	}
	return answers, nil
}
