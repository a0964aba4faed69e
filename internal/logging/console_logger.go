package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ConsoleLogger writes diagnostics to a writer, usually stderr.
// Error lines carry the program name ("grep: cannot open x").
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	w       io.Writer
	prog    string
	verbose bool
	prefix  *color.Color
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger writing to w.
// If verbose is false, Verbose() calls are no-ops.
// The program prefix is colored when w is a terminal and NO_COLOR is unset.
func NewConsoleLogger(w io.Writer, prog string, verbose bool) *ConsoleLogger {
	l := &ConsoleLogger{
		w:       w,
		prog:    prog,
		verbose: verbose,
	}
	if IsTerminal(w) {
		l.prefix = color.New(color.FgRed, color.Bold)
		l.prefix.EnableColor()
	}
	return l
}

// IsTerminal reports whether w is a terminal that accepts color output.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd())) || isatty.IsCygwinTerminal(f.Fd())
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] "+l.progPrefix(), format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.progPrefix(), format, args)
}

func (l *ConsoleLogger) progPrefix() string {
	if l.prog == "" {
		return ""
	}
	if l.prefix != nil {
		return l.prefix.Sprint(l.prog+":") + " "
	}
	return l.prog + ": "
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.w, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.w, prefix+format+"\n")
	}
}
