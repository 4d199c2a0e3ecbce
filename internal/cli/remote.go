package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"quiz/pkg/quiz"
)

// runQuestions builds the handler for the questions command.
func runQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		server := fs.String("server", defaultServerURL, "quizd base URL")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		questions, err := newClient(*server).Questions(context.Background())
		if err != nil {
			fmt.Fprintf(stderr, "Request failed: %v\n", err)
			return ExitError
		}
		writeQuestions(stdout, questions)
		return ExitOK
	}
}

// runStatus builds the handler for the status command.
func runStatus(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		attemptID, server, code, ok := parseAttemptArgs(cmd, args, stdout, stderr)
		if !ok {
			return code
		}
		state, err := newClient(server).Attempt(context.Background(), attemptID)
		if err != nil {
			fmt.Fprintf(stderr, "Request failed: %v\n", err)
			return ExitError
		}
		writeAttempt(stdout, attemptID, state)
		return ExitOK
	}
}

// runFinish builds the handler for the finish command.
func runFinish(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		attemptID, server, code, ok := parseAttemptArgs(cmd, args, stdout, stderr)
		if !ok {
			return code
		}
		results, err := newClient(server).Finish(context.Background(), attemptID)
		if err != nil {
			fmt.Fprintf(stderr, "Request failed: %v\n", err)
			return ExitError
		}
		writeResults(stdout, results)
		return ExitOK
	}
}

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		server := fs.String("server", defaultServerURL, "quizd base URL")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		stats, err := newClient(*server).Stats(context.Background())
		if err != nil {
			fmt.Fprintf(stderr, "Request failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Attempts: %d\nFinished: %d\nIn progress: %d\n", stats.Attempts, stats.Finished, stats.InProgress)
		return ExitOK
	}
}

// parseAttemptArgs reads "<attempt-id> [--server <url>]".
func parseAttemptArgs(cmd *Command, args []string, stdout, stderr io.Writer) (string, string, int, bool) {
	fs := newFlagSet(cmd, stderr)
	server := fs.String("server", defaultServerURL, "quizd base URL")
	if code, ok := parseFlags(cmd, fs, splitPositional(args), stdout, stderr); !ok {
		return "", "", code, false
	}
	switch {
	case fs.NArg() == 0:
		fmt.Fprintln(stderr, "Missing <attempt-id>")
		printCommandUsage(cmd, stderr)
		return "", "", ExitUsage, false
	case fs.NArg() > 1:
		fmt.Fprintln(stderr, "Too many arguments")
		printCommandUsage(cmd, stderr)
		return "", "", ExitUsage, false
	}
	return fs.Arg(0), *server, ExitOK, true
}

func writeQuestions(w io.Writer, questions []quiz.Question) {
	for _, q := range questions {
		fmt.Fprintf(w, "%d. %s\n", q.ID, q.Body)
		for i, option := range q.Options {
			marker := " "
			if i == q.CorrectIndex {
				marker = "*"
			}
			fmt.Fprintf(w, "   %s %d) %s\n", marker, i, option)
		}
	}
}

func writeAttempt(w io.Writer, attemptID string, state quiz.AttemptResponse) {
	status := "in progress"
	if state.IsFinished {
		status = "finished"
	}
	fmt.Fprintf(w, "Attempt: %s\n", attemptID)
	fmt.Fprintf(w, "Status: %s\n", status)
	fmt.Fprintf(w, "Remaining: %ds\n", state.RemainingSec)
	fmt.Fprintf(w, "Answers: %d\n", len(state.Answers))
	for _, answer := range state.Answers {
		fmt.Fprintf(w, "  question %d -> option %d\n", answer.QuestionID, answer.SelectedIndex)
	}
}

func writeResults(w io.Writer, results quiz.Results) {
	fmt.Fprintf(w, "Total questions: %d\n", results.TotalQuestions)
	fmt.Fprintf(w, "Answered: %d\n", results.TotalAnswered)
	fmt.Fprintf(w, "Correct: %d (%d%%)\n", results.CorrectCount, results.CorrectPercentage)
	fmt.Fprintf(w, "Incorrect: %d (%d%%)\n", results.IncorrectCount, results.IncorrectPercentage)
	fmt.Fprintf(w, "Unanswered: %d\n", results.UnansweredCount)
}
