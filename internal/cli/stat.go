package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/rummage/internal/inspect"
	"github.com/vvka-141/rummage/pkg/rummage"
)

var statCmd = &cobra.Command{
	Use:   "stat [-L] file...",
	Short: "Print file metadata",
	Long: `Print type, inode, size, link count and device of each file.

By default symbolic links are followed and the target is described, with a
note naming the link target. With -L the link itself is described, followed
by the metadata of its target when the target can be reached.

Files that cannot be inspected are reported on stderr and skipped.`,
	Example: `  rummage stat README.md
  rummage stat -L /usr/bin/cc`,
	DisableFlagParsing: true,
	RunE:               runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	sa, err := parseStatArgs(args)
	if err != nil {
		return reportUsage(cmd, err)
	}

	s, err := newSession(cmd, "stat")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range sa.files {
		if i > 0 {
			fmt.Fprintln(out)
		}
		report, err := inspect.Inspect(s.store, path, sa.follow)
		if err != nil {
			if errors.Is(err, rummage.ErrOpen) {
				s.logger.Error("cannot open %s", path)
			} else {
				s.logger.Error("cannot stat %s", path)
			}
			s.logger.Verbose("%v", err)
			continue
		}
		if _, err := report.WriteTo(out); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
