package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"quiz/pkg/quiz/httpclient"
)

// requestTimeout bounds every remote call made by a command.
const requestTimeout = 10 * time.Second

// newClient is a test seam for building the remote API client.
var newClient = func(serverURL string) *httpclient.Client {
	return httpclient.NewWithTimeout(serverURL, requestTimeout)
}

// parseFlags parses args into fs, printing usage on failure.
// It returns false with the exit code when the command should stop.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// splitPositional moves leading positional args behind the flags so
// "quiz status <id> --server <url>" parses like "--server <url> <id>".
func splitPositional(args []string) []string {
	var positional, rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			rest = append(rest, args[i:]...)
			break
		}
		positional = append(positional, arg)
	}
	return append(rest, positional...)
}

func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}
