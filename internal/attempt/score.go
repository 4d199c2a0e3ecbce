package attempt

import (
	"github.com/shopspring/decimal"

	"quiz/internal/catalog"
	"quiz/pkg/quiz"
)

var hundred = decimal.NewFromInt(100)

// Score grades answers against the catalog.
//
// Answers that reference unknown question ids count toward TotalAnswered but
// are neither correct nor incorrect. UnansweredCount is not clamped and goes
// negative when more answers than questions are submitted.
func Score(cat *catalog.Catalog, answers []quiz.Answer) quiz.Results {
	total := cat.Len()
	results := quiz.Results{
		TotalQuestions: total,
		TotalAnswered:  len(answers),
	}
	for _, answer := range answers {
		question, ok := cat.Lookup(answer.QuestionID)
		if !ok {
			continue
		}
		if answer.SelectedIndex == question.CorrectIndex {
			results.CorrectCount++
		} else {
			results.IncorrectCount++
		}
	}
	results.UnansweredCount = total - results.TotalAnswered
	results.CorrectPercentage = percentage(results.CorrectCount, total)
	results.IncorrectPercentage = percentage(results.IncorrectCount, total)
	return results
}

// percentage returns count/total*100 rounded half to even, or 0 for an empty catalog.
func percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(count)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
	return int(ratio.RoundBank(0).IntPart())
}
