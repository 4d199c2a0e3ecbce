package cli

import (
	"fmt"
	"io"

	"quiz/internal/catalog"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <catalog> path")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cat, err := catalog.Load(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintf(stdout, "Catalog OK (%d questions)\n", cat.Len())
		return ExitOK
	}
}
