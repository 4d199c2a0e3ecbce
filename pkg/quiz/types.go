package quiz

import "time"

// DefaultRemainingSec is the timer budget reported for an attempt that has never been saved.
const DefaultRemainingSec = 60

const (
	// StatusSaved acknowledges a save request.
	StatusSaved = "saved"
	// StatusFinished acknowledges a finish request.
	StatusFinished = "finished"
)

// Question is a single multiple-choice question from the catalog.
type Question struct {
	ID           int      `json:"id"`
	Body         string   `json:"body"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Answer records the option a user selected for a question.
type Answer struct {
	QuestionID    int `json:"questionId"`
	SelectedIndex int `json:"selectedIndex"`
}

// Attempt is the stored state of one user's run through the quiz.
type Attempt struct {
	ID           string
	Answers      []Answer
	RemainingSec int
	Finished     bool
	LastSaved    time.Time
	FinishedAt   *time.Time
}

// SaveRequest replaces the stored progress for an attempt.
type SaveRequest struct {
	AttemptID    string   `json:"attemptId"`
	Answers      []Answer `json:"answers"`
	RemainingSec int      `json:"remainingSec"`
}

// SaveResponse acknowledges a save.
type SaveResponse struct {
	Status string `json:"status"`
}

// AttemptResponse is the client view of an attempt.
type AttemptResponse struct {
	Answers      []Answer `json:"answers"`
	RemainingSec int      `json:"remainingSec"`
	IsFinished   bool     `json:"isFinished"`
}

// FinishRequest asks the server to score and close an attempt.
type FinishRequest struct {
	AttemptID string `json:"attemptId"`
}

// Results summarizes a scored attempt.
type Results struct {
	TotalQuestions      int `json:"totalQuestions"`
	TotalAnswered       int `json:"totalAnswered"`
	CorrectCount        int `json:"correctCount"`
	IncorrectCount      int `json:"incorrectCount"`
	CorrectPercentage   int `json:"correctPercentage"`
	IncorrectPercentage int `json:"incorrectPercentage"`
	UnansweredCount     int `json:"unansweredCount"`
}

// FinishResponse carries the results of a finish request.
type FinishResponse struct {
	Status  string  `json:"status"`
	Results Results `json:"results"`
}

// Stats counts stored attempts.
type Stats struct {
	Attempts   int `json:"attempts"`
	Finished   int `json:"finished"`
	InProgress int `json:"inProgress"`
}

// CloneAnswers returns a copy of answers that never aliases the input.
// A nil input yields an empty, non-nil slice so it encodes as [].
func CloneAnswers(answers []Answer) []Answer {
	out := make([]Answer, len(answers))
	copy(out, answers)
	return out
}
