// Package cmdutil provides the small cobra run/error conventions this
// module's CLI uses, trimmed from pachyderm's internal/cmdutil down to
// the pieces a single-command CLI needs.
package cmdutil

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trezbouchez/rollsync/src/internal/errors"
)

// PrintErrorStacks controls whether ErrorAndExit prints a stack trace
// alongside the error message. Off by default; a CLI entry point can flip
// it on behind a --verbose/--debug flag.
var PrintErrorStacks = false

// Run adapts a function taking the command's positional args and
// returning error into cobra's Run signature, routing any error through
// ErrorAndExit instead of letting cobra print its own usage-heavy error
// text.
func Run(f func(args []string) error) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		if err := f(args); err != nil {
			ErrorAndExit(err)
		}
	}
}

// RunFixedArgs is Run plus an exact positional-argument-count check.
func RunFixedArgs(n int, f func(args []string) error) func(*cobra.Command, []string) {
	return Run(func(args []string) error {
		if len(args) != n {
			return errors.Errorf("expected %d argument(s), got %d", n, len(args))
		}
		return f(args)
	})
}

// ErrorAndExit prints err to stderr (with a stack trace if
// PrintErrorStacks is set) and exits the process with status 1.
func ErrorAndExit(err error) {
	if err == nil {
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if PrintErrorStacks {
		if err := errors.EnsureStack(err); err != nil {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
	}
	os.Exit(1)
}
