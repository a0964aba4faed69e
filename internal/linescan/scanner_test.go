package linescan

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/rummage/pkg/rummage"
)

var matchAll = MatcherFunc(func([]byte) bool { return true })

// chunkReader returns its data in reads of the given sizes, cycling through them.
type chunkReader struct {
	data  []byte
	sizes []int
	next  int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.sizes[r.next%len(r.sizes)]
	r.next++
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func scanString(t *testing.T, s *Scanner, input string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	n, err := s.Scan(strings.NewReader(input), &out)
	require.NoError(t, err)
	return out.String(), n
}

func TestNewScanner_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil matcher", func() { NewScanner(nil, 16) }},
		{"buffer without room", func() { NewScanner(matchAll, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestScan_RegexMode(t *testing.T) {
	s := NewPatternScanner("^b.*r$", false, 64)
	out, n := scanString(t, s, "foo\nbar\nbaz\nbear\n")
	assert.Equal(t, "bar\nbear\n", out)
	assert.Equal(t, 2, n)
}

func TestScan_LiteralPatternIsCaseSensitive(t *testing.T) {
	s := NewPatternScanner("HELLO", false, 64)
	out, _ := scanString(t, s, "say hello world\nsay HELLO world\n")
	assert.Equal(t, "say HELLO world\n", out)
}

func TestScan_IgnoreCaseMode(t *testing.T) {
	s := NewPatternScanner("HELLO", true, 64)
	out, _ := scanString(t, s, "say hello world\nnothing here\nHeLLo\n")
	assert.Equal(t, "say hello world\nHeLLo\n", out)
}

func TestScan_IgnoreCaseTreatsPatternLiterally(t *testing.T) {
	s := NewPatternScanner("a.c", true, 64)
	out, _ := scanString(t, s, "abc\nA.C\n")
	assert.Equal(t, "A.C\n", out)
}

func TestScan_EmptyInput(t *testing.T) {
	out, n := scanString(t, NewScanner(matchAll, 16), "")
	assert.Empty(t, out)
	assert.Zero(t, n)
}

func TestScan_EmptyLinesAreLines(t *testing.T) {
	s := NewPatternScanner("^$", false, 16)
	out, n := scanString(t, s, "a\n\nb\n\n")
	assert.Equal(t, "\n\n", out)
	assert.Equal(t, 2, n)
}

func TestScan_TrailingPartialLineFlushedAtEOF(t *testing.T) {
	s := NewPatternScanner("tail", false, 64)
	out, n := scanString(t, s, "head\ntail")
	assert.Equal(t, "tail", out)
	assert.Equal(t, 1, n)
}

func TestScan_InputFillingBufferWithoutNewline(t *testing.T) {
	// 15 usable bytes: the whole input sits in the buffer until EOF.
	s := NewScanner(matchAll, 16)
	out, n := scanString(t, s, "abcdefghijklmno")
	assert.Equal(t, "abcdefghijklmno", out)
	assert.Equal(t, 1, n)
}

func TestScan_LineTooLong(t *testing.T) {
	s := NewScanner(matchAll, 8)
	var out bytes.Buffer
	n, err := s.Scan(strings.NewReader("ok\n0123456789\nnever\n"), &out)

	require.Error(t, err)
	assert.True(t, errors.Is(err, rummage.ErrLineTooLong))
	assert.Equal(t, "ok\n", out.String())
	assert.Equal(t, 1, n)
}

func TestScan_LongestAcceptedLine(t *testing.T) {
	// A line may use the whole buffer, newline included.
	s := NewScanner(matchAll, 8)
	out, _ := scanString(t, s, "abcdefg\nxyz\n")
	assert.Equal(t, "abcdefg\nxyz\n", out)

	var sink bytes.Buffer
	_, err := s.Scan(strings.NewReader("abcdefgh\n"), &sink)
	assert.ErrorIs(t, err, rummage.ErrLineTooLong)
	assert.Empty(t, sink.String())
}

func TestScan_ReadError(t *testing.T) {
	s := NewScanner(matchAll, 16)
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("one\ntw"), iotest.ErrReader(boom))

	var out bytes.Buffer
	n, err := s.Scan(r, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "one\n", out.String())
	assert.Equal(t, 1, n)
}

func TestScan_DataWithEOF(t *testing.T) {
	s := NewScanner(matchAll, 32)
	var out bytes.Buffer
	_, err := s.Scan(iotest.DataErrReader(strings.NewReader("a\nb\nc")), &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc", out.String())
}

func TestScan_ArbitraryChunkBoundaries(t *testing.T) {
	lines := []string{"alpha\n", "\n", "beta gamma\n", "delta\n", "a much longer line of text\n", "z\n", "tail"}
	input := strings.Join(lines, "")
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		sizes := make([]int, 1+rng.Intn(5))
		for i := range sizes {
			sizes[i] = 1 + rng.Intn(12)
		}

		var out bytes.Buffer
		n, err := NewScanner(matchAll, 32).Scan(&chunkReader{data: []byte(input), sizes: sizes}, &out)
		require.NoError(t, err, "chunk sizes %v", sizes)
		require.Equal(t, input, out.String(), "chunk sizes %v", sizes)
		require.Equal(t, len(lines), n, "chunk sizes %v", sizes)
	}
}

func TestScan_OneByteReads(t *testing.T) {
	s := NewPatternScanner("o", false, 16)
	var out bytes.Buffer
	_, err := s.Scan(iotest.OneByteReader(strings.NewReader("one\ntwo\nthree\nfour\n")), &out)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nfour\n", out.String())
}

func TestScan_EachLineEvaluatedOnce(t *testing.T) {
	var seen []string
	m := MatcherFunc(func(line []byte) bool {
		seen = append(seen, string(line))
		return false
	})

	var out bytes.Buffer
	_, err := NewScanner(m, 16).Scan(iotest.HalfReader(strings.NewReader("a\nbb\nccc\n")), &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bb", "ccc"}, seen)
	assert.Empty(t, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestScan_WriteError(t *testing.T) {
	_, err := NewScanner(matchAll, 16).Scan(strings.NewReader("x\n"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
