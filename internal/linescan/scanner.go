package linescan

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/rummage/internal/regex"
	"github.com/vvka-141/rummage/pkg/rummage"
)

// headroom is the tail of the buffer that is only read into once the rest
// is full, to tell a line ending exactly there (or end of input) apart from
// an overlong line.
const headroom = 1

// Matcher decides whether a line, without its newline, is emitted.
type Matcher interface {
	Match(line []byte) bool
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(line []byte) bool

// Match calls f(line).
func (f MatcherFunc) Match(line []byte) bool { return f(line) }

// Scanner copies matching lines from a reader to a writer.
// A Scanner holds no state between calls and is safe for concurrent use.
type Scanner struct {
	matcher    Matcher
	bufferSize int
}

// NewScanner creates a Scanner that buffers at most bufferSize bytes.
// Panics if matcher is nil or bufferSize leaves no room for a line.
func NewScanner(matcher Matcher, bufferSize int) *Scanner {
	if matcher == nil {
		panic("matcher cannot be nil")
	}
	if bufferSize <= headroom {
		panic(fmt.Sprintf("buffer size %d leaves no room for a line", bufferSize))
	}
	return &Scanner{
		matcher:    matcher,
		bufferSize: bufferSize,
	}
}

// NewPatternScanner creates the scanner grep uses: a regex scanner, or a
// case-insensitive substring scanner when ignoreCase is set.
func NewPatternScanner(pattern string, ignoreCase bool, bufferSize int) *Scanner {
	if ignoreCase {
		return NewScanner(foldMatcher{needle: []byte(pattern)}, bufferSize)
	}
	return NewScanner(regex.Compile(pattern), bufferSize)
}

// Scan reads r until end of input and writes every matching line to w,
// newline included, in input order. It returns the number of lines written.
// A line may take the whole buffer, newline included. A longer line stops
// the scan with rummage.ErrLineTooLong; lines written before that point
// stay written.
func (s *Scanner) Scan(r io.Reader, w io.Writer) (int, error) {
	buf := make([]byte, s.bufferSize)
	limit := s.bufferSize - headroom
	used := 0
	emitted := 0

	for {
		window := buf[used:limit]
		if used == limit {
			window = buf[limit:]
		}

		n, readErr := r.Read(window)
		if n > 0 {
			used += n
			start := 0
			for {
				i := bytes.IndexByte(buf[start:used], '\n')
				if i < 0 {
					break
				}
				line := buf[start : start+i+1]
				if s.matcher.Match(line[:i]) {
					if _, err := w.Write(line); err != nil {
						return emitted, fmt.Errorf("failed to write line: %w", err)
					}
					emitted++
				}
				start += i + 1
			}
			used = copy(buf, buf[start:used])
			if used > limit {
				return emitted, fmt.Errorf("no newline within %d bytes: %w", s.bufferSize, rummage.ErrLineTooLong)
			}
		}

		if errors.Is(readErr, io.EOF) {
			if used > 0 && s.matcher.Match(buf[:used]) {
				if _, err := w.Write(buf[:used]); err != nil {
					return emitted, fmt.Errorf("failed to write line: %w", err)
				}
				emitted++
			}
			return emitted, nil
		}
		if readErr != nil {
			return emitted, fmt.Errorf("failed to read input: %w", readErr)
		}
	}
}
