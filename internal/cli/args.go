package cli

import (
	"fmt"
	"strings"

	"github.com/vvka-141/rummage/internal/files/walker"
	"github.com/vvka-141/rummage/pkg/rummage"
)

// usageError is a malformed command line. Its lines are printed verbatim.
type usageError struct {
	lines []string
}

func (e *usageError) Error() string { return strings.Join(e.lines, "\n") }
func (e *usageError) Unwrap() error { return rummage.ErrUsage }

func usagef(format string, args ...interface{}) error {
	return &usageError{lines: []string{fmt.Sprintf(format, args...)}}
}

var (
	findUsage = &usageError{lines: []string{
		"Usage: find [path...] [options]",
		"Options:",
		"  -name filename  Search by name",
		"  -type f|d       Search by type (file, directory)",
	}}
	grepUsage = &usageError{lines: []string{
		"usage: grep pattern [file ...]",
		"       grep -i pattern [file ...]",
	}}
	statUsage = &usageError{lines: []string{
		"Usage: stat file...",
		"       stat -L file...  (do not follow symlinks)",
	}}
)

type findArgs struct {
	paths []string
	opts  walker.Options
}

// parseFindArgs accepts leading paths followed by -name and -type options.
// Without paths the walk starts at ".".
func parseFindArgs(args []string) (findArgs, error) {
	if len(args) == 0 {
		return findArgs{}, findUsage
	}

	var fa findArgs
	i := 0
	for i < len(args) && !strings.HasPrefix(args[i], "-") {
		fa.paths = append(fa.paths, args[i])
		i++
	}
	if len(fa.paths) == 0 {
		fa.paths = []string{"."}
	}

	for ; i < len(args); i++ {
		switch args[i] {
		case "-name":
			if i++; i >= len(args) {
				return findArgs{}, usagef("find: missing argument to -name")
			}
			fa.opts.Name = args[i]
		case "-type":
			if i++; i >= len(args) {
				return findArgs{}, usagef("find: missing argument to -type")
			}
			typ, err := rummage.ParseTypeFlag(args[i])
			if err != nil {
				return findArgs{}, usagef("find: unknown type %s", args[i])
			}
			fa.opts.Type = typ
		default:
			return findArgs{}, usagef("find: unknown option %s", args[i])
		}
	}
	return fa, nil
}

type grepArgs struct {
	pattern    string
	ignoreCase bool
	files      []string
}

// parseGrepArgs accepts an optional leading -i, a pattern and files.
func parseGrepArgs(args []string) (grepArgs, error) {
	if len(args) == 0 {
		return grepArgs{}, grepUsage
	}
	var ga grepArgs
	if args[0] == "-i" {
		if len(args) < 2 {
			return grepArgs{}, usagef("usage: grep -i pattern [file ...]")
		}
		ga.ignoreCase = true
		args = args[1:]
	}
	ga.pattern = args[0]
	ga.files = args[1:]
	return ga, nil
}

type statArgs struct {
	follow bool
	files  []string
}

// parseStatArgs accepts an optional leading -L and at least one file.
func parseStatArgs(args []string) (statArgs, error) {
	if len(args) == 0 {
		return statArgs{}, statUsage
	}
	sa := statArgs{follow: true}
	if args[0] == "-L" {
		sa.follow = false
		args = args[1:]
	}
	if len(args) == 0 {
		return statArgs{}, usagef("stat: missing file operand")
	}
	sa.files = args
	return sa, nil
}
