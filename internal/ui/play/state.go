package play

import "quiz/pkg/quiz"

// Phase identifies what the play screen is showing.
type Phase int

const (
	// PhaseLoading waits for questions and the stored attempt.
	PhaseLoading Phase = iota
	// PhaseAnswering lets the player pick answers while the timer runs.
	PhaseAnswering
	// PhaseFinishing waits for the server to score the attempt.
	PhaseFinishing
	// PhaseFinished shows the results.
	PhaseFinished
	// PhaseFailed shows a fatal error.
	PhaseFailed
)

// State captures everything the play screen renders.
type State struct {
	AttemptID    string
	Questions    []quiz.Question
	Answers      []quiz.Answer
	Current      int
	Cursor       int
	RemainingSec int
	Phase        Phase
	Results      *quiz.Results
	Err          string
}

// Restore applies loaded questions and a stored attempt to the state.
func Restore(state State, questions []quiz.Question, stored quiz.AttemptResponse) State {
	state.Questions = questions
	state.Answers = quiz.CloneAnswers(stored.Answers)
	state.RemainingSec = stored.RemainingSec
	state.Current = 0
	state.Err = ""
	state.Phase = PhaseAnswering
	if stored.IsFinished {
		state.Phase = PhaseFinishing
	}
	state.Cursor = cursorFor(state)
	return state
}

// AnswerFor returns the recorded option for a question.
func AnswerFor(state State, questionID int) (int, bool) {
	for _, answer := range state.Answers {
		if answer.QuestionID == questionID {
			return answer.SelectedIndex, true
		}
	}
	return 0, false
}

// SelectAnswer records the option under the cursor for the current question,
// replacing an earlier answer to the same question, and advances.
func SelectAnswer(state State) State {
	question, ok := currentQuestion(state)
	if !ok || state.Phase != PhaseAnswering {
		return state
	}
	answer := quiz.Answer{QuestionID: question.ID, SelectedIndex: state.Cursor}
	answers := make([]quiz.Answer, 0, len(state.Answers)+1)
	for _, existing := range state.Answers {
		if existing.QuestionID != question.ID {
			answers = append(answers, existing)
		}
	}
	state.Answers = append(answers, answer)
	if state.Current < len(state.Questions)-1 {
		state = MoveQuestion(state, 1)
	}
	return state
}

// MoveCursor moves the option cursor within the current question.
func MoveCursor(state State, delta int) State {
	question, ok := currentQuestion(state)
	if !ok {
		return state
	}
	state.Cursor = clamp(state.Cursor+delta, 0, len(question.Options)-1)
	return state
}

// MoveQuestion switches to a neighbouring question.
func MoveQuestion(state State, delta int) State {
	if len(state.Questions) == 0 {
		return state
	}
	state.Current = clamp(state.Current+delta, 0, len(state.Questions)-1)
	state.Cursor = cursorFor(state)
	return state
}

// Tick counts the timer down by one second and reports whether time is up.
func Tick(state State) (State, bool) {
	if state.Phase != PhaseAnswering {
		return state, false
	}
	if state.RemainingSec > 0 {
		state.RemainingSec--
	}
	return state, state.RemainingSec <= 0
}

// Answered counts answers that belong to a known question.
func Answered(state State) int {
	count := 0
	for _, question := range state.Questions {
		if _, ok := AnswerFor(state, question.ID); ok {
			count++
		}
	}
	return count
}

// SaveRequest builds the autosave payload for the state.
func SaveRequest(state State) quiz.SaveRequest {
	return quiz.SaveRequest{
		AttemptID:    state.AttemptID,
		Answers:      quiz.CloneAnswers(state.Answers),
		RemainingSec: state.RemainingSec,
	}
}

func currentQuestion(state State) (quiz.Question, bool) {
	if state.Current < 0 || state.Current >= len(state.Questions) {
		return quiz.Question{}, false
	}
	return state.Questions[state.Current], true
}

// cursorFor points the cursor at the recorded answer, or the first option.
func cursorFor(state State) int {
	question, ok := currentQuestion(state)
	if !ok {
		return 0
	}
	if selected, ok := AnswerFor(state, question.ID); ok && selected >= 0 && selected < len(question.Options) {
		return selected
	}
	return 0
}

func clamp(value, low, high int) int {
	if high < low {
		return low
	}
	return min(max(value, low), high)
}
