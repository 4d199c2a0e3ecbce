package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"quiz/internal/testutil"
	"quiz/internal/testutil/testserver"
	"quiz/pkg/quiz"
)

func startServer(t *testing.T) *testserver.ServerInstance {
	t.Helper()
	return testserver.Start(t, testserver.ServerConfig{})
}

func TestQuestionsCommand(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		server := startServer(t)
		var out, errOut bytes.Buffer
		code := Run([]string{"questions", "--server", server.BaseURL}, &out, &errOut)
		if code != ExitOK {
			t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
		}
		if !strings.Contains(out.String(), "1. 2 + 2 = ?") {
			t.Fatalf("expected first question, got %q", out.String())
		}
		if !strings.Contains(out.String(), "* 3) 4") {
			t.Fatalf("expected correct option marker, got %q", out.String())
		}
	})
}

func TestStatusAndFinishCommands(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		server := startServer(t)
		ctx := testutil.Context(t, time.Second)
		if err := server.Service.Save(ctx, quiz.SaveRequest{
			AttemptID:    "a1",
			Answers:      []quiz.Answer{{QuestionID: 1, SelectedIndex: 3}, {QuestionID: 2, SelectedIndex: 0}},
			RemainingSec: 20,
		}); err != nil {
			t.Fatalf("save: %v", err)
		}

		var out, errOut bytes.Buffer
		code := Run([]string{"status", "a1", "--server", server.BaseURL}, &out, &errOut)
		if code != ExitOK {
			t.Fatalf("status: expected exit %d, got %d: %s", ExitOK, code, errOut.String())
		}
		for _, want := range []string{"Status: in progress", "Remaining: 20s", "Answers: 2", "question 1 -> option 3"} {
			if !strings.Contains(out.String(), want) {
				t.Fatalf("status: expected %q in %q", want, out.String())
			}
		}

		out.Reset()
		code = Run([]string{"finish", "--server", server.BaseURL, "a1"}, &out, &errOut)
		if code != ExitOK {
			t.Fatalf("finish: expected exit %d, got %d: %s", ExitOK, code, errOut.String())
		}
		for _, want := range []string{"Correct: 1 (10%)", "Incorrect: 1 (10%)", "Unanswered: 8"} {
			if !strings.Contains(out.String(), want) {
				t.Fatalf("finish: expected %q in %q", want, out.String())
			}
		}

		out.Reset()
		code = Run([]string{"stats", "--server", server.BaseURL}, &out, &errOut)
		if code != ExitOK {
			t.Fatalf("stats: expected exit %d, got %d: %s", ExitOK, code, errOut.String())
		}
		if !strings.Contains(out.String(), "Finished: 1") {
			t.Fatalf("stats: unexpected output %q", out.String())
		}
	})
}

func TestAttemptCommandsRequireID(t *testing.T) {
	for _, name := range []string{"status", "finish"} {
		var out, errOut bytes.Buffer
		code := Run([]string{name}, &out, &errOut)
		if code != ExitUsage {
			t.Fatalf("%s: expected exit %d, got %d", name, ExitUsage, code)
		}
		if !strings.Contains(errOut.String(), "Missing <attempt-id>") {
			t.Fatalf("%s: unexpected stderr %q", name, errOut.String())
		}
		errOut.Reset()
		code = Run([]string{name, "a", "b"}, &out, &errOut)
		if code != ExitUsage {
			t.Fatalf("%s: expected exit %d for extra args, got %d", name, ExitUsage, code)
		}
	}
}

func TestRemoteCommandReportsServerErrors(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		server := startServer(t)
		var out, errOut bytes.Buffer
		code := Run([]string{"finish", "", "--server", server.BaseURL}, &out, &errOut)
		if code != ExitError {
			t.Fatalf("expected exit %d, got %d", ExitError, code)
		}
		if !strings.Contains(errOut.String(), "attempt_id_required") {
			t.Fatalf("expected server error code, got %q", errOut.String())
		}
	})
}
