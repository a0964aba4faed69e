package rummage

import (
	"errors"
)

// Sentinel errors for the failure classes of the utilities.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := scanner.Scan(r, w)
//	if errors.Is(err, rummage.ErrLineTooLong) {
//	    // the input holds a line longer than the buffer
//	}
var (
	// ErrUsage indicates malformed command line arguments.
	ErrUsage = errors.New("usage error")

	// ErrOpen indicates a path could not be opened.
	ErrOpen = errors.New("cannot open")

	// ErrStat indicates metadata for a path could not be fetched.
	ErrStat = errors.New("cannot stat")

	// ErrPathTooLong indicates that descending into a directory would
	// overflow the traversal path buffer.
	ErrPathTooLong = errors.New("path too long")

	// ErrLineTooLong indicates a line did not fit into the line buffer.
	ErrLineTooLong = errors.New("line too long")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ExitCodeForError returns the exit code for an error.
// Returns ExitSuccess (0) for nil errors and ExitGeneralError (1) otherwise.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneralError
}

