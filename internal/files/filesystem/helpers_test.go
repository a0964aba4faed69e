package filesystem

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// readAllEntries drains a directory handle one record at a time.
func readAllEntries(t *testing.T, h Handle, nameMax int) []DirEntry {
	t.Helper()
	rec := make([]byte, RecordSize(nameMax))
	var entries []DirEntry
	for {
		n, err := h.Read(rec)
		if errors.Is(err, io.EOF) {
			return entries
		}
		require.NoError(t, err)
		require.Equal(t, len(rec), n)
		e, err := DecodeDirEntry(rec, nameMax)
		require.NoError(t, err)
		entries = append(entries, e)
	}
}

func entryNames(entries []DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
