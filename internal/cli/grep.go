package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/rummage/internal/linescan"
	"github.com/vvka-141/rummage/pkg/rummage"
)

var grepCmd = &cobra.Command{
	Use:   "grep [-i] pattern [file...]",
	Short: "Print lines matching a pattern",
	Long: `Print every line of the input files (or standard input) that matches
pattern. The pattern language is small:

  c    any literal character matches itself
  .    matches any single character
  ^    anchors the match to the start of the line
  $    anchors the match to the end of the line
  c*   matches zero or more repetitions of c

With -i the pattern is a plain substring compared without regard to ASCII case.

grep stops with exit code 1 at the first file it cannot open.`,
	Example: `  rummage grep '^func' main.go
  cat notes.txt | rummage grep -i todo`,
	DisableFlagParsing: true,
	RunE:               runGrep,
}

func init() {
	rootCmd.AddCommand(grepCmd)
}

func runGrep(cmd *cobra.Command, args []string) error {
	ga, err := parseGrepArgs(args)
	if err != nil {
		return reportUsage(cmd, err)
	}

	s, err := newSession(cmd, "grep")
	if err != nil {
		return err
	}

	scanner := linescan.NewPatternScanner(ga.pattern, ga.ignoreCase, s.cfg.Limits.LineBuffer)
	out := cmd.OutOrStdout()

	if len(ga.files) == 0 {
		return s.scan(scanner, cmd.InOrStdin(), out, "standard input")
	}

	for _, path := range ga.files {
		h, err := s.store.Open(path)
		if err != nil {
			s.logger.Error("cannot open %s", path)
			s.logger.Verbose("%v", err)
			return reported{fmt.Errorf("%w %s: %w", rummage.ErrOpen, path, err)}
		}
		err = s.scan(scanner, h, out, path)
		h.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *session) scan(scanner *linescan.Scanner, r io.Reader, w io.Writer, name string) error {
	n, err := scanner.Scan(r, w)
	s.logger.Verbose("%s: %d matching lines", name, n)
	if err == nil {
		return nil
	}
	if errors.Is(err, rummage.ErrLineTooLong) {
		s.logger.Error("line too long in %s (limit %d bytes)", name, s.cfg.Limits.LineBuffer)
	} else {
		s.logger.Error("%s: %v", name, err)
	}
	return reported{err}
}
