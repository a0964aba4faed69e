// Package logging provides concrete implementations of the rummage.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes diagnostics prefixed with the program name to a writer
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
