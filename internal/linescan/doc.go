// Package linescan reassembles lines from arbitrary reads and emits the lines
// accepted by a Matcher.
//
// The scanner owns a fixed-capacity buffer. Each read is appended to the
// buffer, every complete line is cut from the front and the trailing partial
// line waits for the next read. A partial line still pending at end of input
// is evaluated once. The buffer never grows: a line that does not fit stops
// the scan with rummage.ErrLineTooLong.
package linescan
