package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/rummage/internal/files/walker"
)

var findCmd = &cobra.Command{
	Use:   "find [path...] [-name X] [-type f|d]",
	Short: "Walk directory trees and print matching paths",
	Long: `Walk each path depth-first and print every object whose last path
component equals -name and whose type equals -type. Both predicates are
optional. The start paths themselves are tested too.

Objects that cannot be inspected are reported on stderr and skipped.`,
	Example: `  rummage find . -name README
  rummage find src docs -type d`,
	DisableFlagParsing: true,
	RunE:               runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	fa, err := parseFindArgs(args)
	if err != nil {
		return reportUsage(cmd, err)
	}

	s, err := newSession(cmd, "find")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := walker.NewWalker(s.store, s.logger, s.cfg.Limits.PathMax)
	for _, root := range fa.paths {
		stats := w.Walk(root, fa.opts, func(path string) {
			fmt.Fprintln(out, path)
		})
		s.logger.Verbose("%s: visited %d, matched %d, errors %d",
			root, stats.Visited, stats.Emitted, stats.Errors)
	}
	return nil
}
