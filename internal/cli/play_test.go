package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quiz/internal/testutil"
)

// stubTerminal makes every writer look like a TTY for the test.
func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

// stubProgram replaces the UI loop with a headless driver.
func stubProgram(t *testing.T, drive func(tea.Model) tea.Model) {
	t.Helper()
	original := runProgram
	runProgram = func(model tea.Model, _ io.Writer) (tea.Model, error) {
		return drive(model), nil
	}
	t.Cleanup(func() { runProgram = original })
}

func TestPlayRequiresTerminal(t *testing.T) {
	stubTerminal(t, false)
	var out, errOut bytes.Buffer
	code := Run([]string{"play", "--offline"}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "requires a terminal") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestPlayCatalogRequiresOffline(t *testing.T) {
	stubTerminal(t, true)
	var out, errOut bytes.Buffer
	if code := Run([]string{"play", "--catalog", "x.yaml"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}

func TestPlayOfflineFinishes(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		stubTerminal(t, true)
		stubProgram(t, func(model tea.Model) tea.Model {
			model, _ = model.Update(model.Init()())
			model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
			model, _ = model.Update(cmd())
			return model
		})
		var out, errOut bytes.Buffer
		code := Run([]string{"play", "--offline", "--no-color"}, &out, &errOut)
		if code != ExitOK {
			t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
		}
		if !strings.Contains(out.String(), "Attempt attempt-") || !strings.Contains(out.String(), "Unanswered: 10") {
			t.Fatalf("unexpected output %q", out.String())
		}
	})
}

func TestPlayRemoteQuitPrintsResumeHint(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		server := startServer(t)
		stubTerminal(t, true)
		stubProgram(t, func(model tea.Model) tea.Model {
			model, _ = model.Update(model.Init()())
			model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
			model, _ = model.Update(cmd())
			return model
		})
		var out, errOut bytes.Buffer
		code := Run([]string{"play", "--server", server.BaseURL, "--attempt", "resume-me"}, &out, &errOut)
		if code != ExitOK {
			t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
		}
		if !strings.Contains(out.String(), "quiz play --attempt resume-me") {
			t.Fatalf("expected resume hint, got %q", out.String())
		}
		state, err := server.Service.Attempt(testutil.Context(t, time.Second), "resume-me")
		if err != nil {
			t.Fatalf("attempt: %v", err)
		}
		if state.RemainingSec != 60 || state.IsFinished {
			t.Fatalf("expected saved unfinished attempt, got %+v", state)
		}
	})
}

func TestNewAttemptIDIsUnique(t *testing.T) {
	first, second := newAttemptID(), newAttemptID()
	if !strings.HasPrefix(first, "attempt-") || first == second {
		t.Fatalf("unexpected ids %q and %q", first, second)
	}
}
