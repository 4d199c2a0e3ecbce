package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"quiz/internal/attempt"
	"quiz/internal/backend/memory"
	"quiz/internal/catalog"
	"quiz/internal/ui/play"
	"quiz/pkg/quiz"
)

// runProgram is a test seam for running the play UI.
var runProgram = func(model tea.Model, stdout io.Writer) (tea.Model, error) {
	return tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen()).Run()
}

// newAttemptID returns a fresh attempt identifier.
func newAttemptID() string {
	return "attempt-" + uuid.NewString()
}

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		server := fs.String("server", defaultServerURL, "quizd base URL")
		attemptID := fs.String("attempt", "", "Attempt id to resume (default: new attempt)")
		offline := fs.Bool("offline", false, "Run against an in-process store instead of a server")
		catalogPath := fs.String("catalog", "", "Catalog file for --offline (default: built-in catalog)")
		noColor := fs.Bool("no-color", false, "Disable colors")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *catalogPath != "" && !*offline {
			fmt.Fprintln(stderr, "--catalog requires --offline")
			return ExitUsage
		}
		if !isTerminal(stdout) {
			fmt.Fprintln(stderr, "quiz play requires a terminal")
			return ExitError
		}

		api, err := playAPI(*offline, *server, *catalogPath)
		if err != nil {
			fmt.Fprintf(stderr, "Setup failed: %v\n", err)
			return ExitError
		}
		id := strings.TrimSpace(*attemptID)
		if id == "" {
			id = newAttemptID()
		}

		final, err := runProgram(play.NewModel(api, play.Options{
			AttemptID: id,
			NoColor:   *noColor,
		}), stdout)
		if err != nil {
			fmt.Fprintf(stderr, "UI error: %v\n", err)
			return ExitError
		}
		return reportPlay(final, id, *offline, stdout, stderr)
	}
}

// playAPI selects the remote client or an in-process service.
func playAPI(offline bool, server, catalogPath string) (quiz.API, error) {
	if !offline {
		return newClient(server), nil
	}
	var cat *catalog.Catalog
	if catalogPath != "" {
		loaded, err := catalog.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}
	svc, err := attempt.NewService(attempt.Config{Catalog: cat, Backend: memory.New(nil)})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// reportPlay prints the outcome once the UI has exited.
func reportPlay(final tea.Model, attemptID string, offline bool, stdout, stderr io.Writer) int {
	model, ok := final.(play.Model)
	if !ok {
		return ExitOK
	}
	state := model.State()
	switch state.Phase {
	case play.PhaseFailed:
		fmt.Fprintf(stderr, "Attempt %s failed: %s\n", attemptID, state.Err)
		return ExitError
	case play.PhaseFinished:
		if state.Results != nil {
			fmt.Fprintf(stdout, "Attempt %s finished\n", attemptID)
			writeResults(stdout, *state.Results)
		}
	default:
		if offline {
			fmt.Fprintf(stdout, "Attempt %s left unfinished\n", attemptID)
		} else {
			fmt.Fprintf(stdout, "Progress saved. Resume with: quiz play --attempt %s\n", attemptID)
		}
	}
	return ExitOK
}
