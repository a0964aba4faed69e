package rummage

// Exit codes for the rummage utilities.
// The utilities follow their historical behavior: any failure that stops
// processing exits with 1. Panics are reported separately.
const (
	ExitSuccess      = 0 // All requested work completed
	ExitGeneralError = 1 // Usage error or an input that could not be opened
	ExitPanic        = 3 // Internal panic (unexpected crash)
)

const (
	// DefaultLineBuffer is the capacity of the grep line buffer in bytes,
	// and so the longest line grep accepts, newline included.
	DefaultLineBuffer = 1024

	// DefaultPathMax is the capacity of the find path buffer in bytes.
	DefaultPathMax = 512

	// DefaultNameMax is the width of the name field of a directory entry
	// record for the OS store. The in-memory store may use a narrower field.
	DefaultNameMax = 255

	// PathSeparator joins a directory path and an entry name.
	PathSeparator = '/'
)
