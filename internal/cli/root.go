package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rummage",
	Short: "find, grep and stat for path-addressed file stores",
	Long: `rummage bundles three small file utilities:

  find   walk directory trees and print paths matching -name and -type
  grep   print lines matching a simple regular expression
  stat   print the metadata of files and symbolic links

Options use the traditional single-dash syntax (find . -name x -type f).

Limits are read from rummage.yaml in the working directory, then from .env
and RUMMAGE_* environment variables. RUMMAGE_VERBOSE=1 enables diagnostics.

Exit Codes:
  0  - Success
  1  - Usage error, unopenable input or invalid configuration
  3  - Panic or unexpected system error`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	err := rootCmd.Execute()
	var r reported
	if err != nil && !errors.As(err, &r) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// reported marks an error that a command has already written to stderr.
type reported struct {
	err error
}

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }
