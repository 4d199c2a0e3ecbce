package catalog

import (
	"fmt"
	"strings"

	"quiz/pkg/quiz"
)

// Issue captures a validation problem in a catalog.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("catalog validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeFile trims whitespace, validates a catalog file and converts it to questions.
func NormalizeFile(file File) ([]quiz.Question, error) {
	collector := &issueCollector{}
	if file.Version == 0 {
		collector.add("version", "is required")
	} else if file.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", file.Version))
	}
	if len(file.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	questions := make([]quiz.Question, 0, len(file.Questions))
	for _, entry := range file.Questions {
		options := make([]string, 0, len(entry.Options))
		for _, option := range entry.Options {
			options = append(options, strings.TrimSpace(option))
		}
		questions = append(questions, quiz.Question{
			ID:           entry.ID,
			Body:         strings.TrimSpace(entry.Body),
			Options:      options,
			CorrectIndex: entry.CorrectIndex,
		})
	}
	validateQuestions(collector, questions)

	if err := collector.result(); err != nil {
		return nil, err
	}
	return questions, nil
}

func validateQuestions(collector *issueCollector, questions []quiz.Question) {
	seenIDs := map[int]struct{}{}
	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if _, exists := seenIDs[q.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %d", q.ID))
		} else {
			seenIDs[q.ID] = struct{}{}
		}
		if strings.TrimSpace(q.Body) == "" {
			collector.add(prefix+".body", "is required")
		}
		if len(q.Options) == 0 {
			collector.add(prefix+".options", "must include at least one entry")
			continue
		}
		for optionIndex, option := range q.Options {
			if strings.TrimSpace(option) == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, optionIndex), "is required")
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			collector.add(prefix+".correct_index", fmt.Sprintf("out of range: %d not in [0, %d)", q.CorrectIndex, len(q.Options)))
		}
	}
}
