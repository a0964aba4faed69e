package filesystem

import (
	"embed"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/rummage/pkg/rummage"
)

// normalizeLineEndings converts Windows CRLF to Unix LF for cross-platform testing
func normalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

//go:embed testdata
var testdataFS embed.FS

func TestFSStore_Stat(t *testing.T) {
	store := NewFSStore(testdataFS, "testdata")

	tests := []struct {
		name     string
		path     string
		wantType rummage.FileType
		wantErr  bool
	}{
		{"root directory", ".", rummage.TypeDirectory, false},
		{"empty path is root", "", rummage.TypeDirectory, false},
		{"leading slash", "/root.txt", rummage.TypeFile, false},
		{"subdirectory", "sub", rummage.TypeDirectory, false},
		{"nested file", "sub/leaf.txt", rummage.TypeFile, false},
		{"missing", "nonexistent", rummage.TypeNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := store.Stat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, fs.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, meta.Type)
			assert.NotZero(t, meta.Inode)
		})
	}
}

func TestFSStore_InodesAreStable(t *testing.T) {
	store := NewFSStore(testdataFS, "testdata")

	a, err := store.Stat("sub/leaf.txt")
	require.NoError(t, err)
	b, err := store.Lstat("/sub/leaf.txt")
	require.NoError(t, err)
	root, err := store.Stat(".")
	require.NoError(t, err)

	assert.Equal(t, a.Inode, b.Inode)
	assert.NotEqual(t, a.Inode, root.Inode)
}

func TestFSStore_ReadFile(t *testing.T) {
	store := NewFSStore(testdataFS, "testdata")

	h, err := store.Open("root.txt")
	require.NoError(t, err)
	defer h.Close()

	content, err := io.ReadAll(h)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", normalizeLineEndings(string(content)))
}

func TestFSStore_ReadDirectory(t *testing.T) {
	mapFS := fstest.MapFS{
		"proj/b.txt":     {Data: []byte("b")},
		"proj/a.txt":     {Data: []byte("a")},
		"proj/inner/c":   {Data: []byte("c")},
		"proj/long-name": {Data: []byte("skipped")},
	}
	store := NewFSStore(mapFS, "proj")
	store.nameMax = 8

	h, err := store.Open(".")
	require.NoError(t, err)
	entries := readAllEntries(t, h, store.NameMax())
	require.NoError(t, h.Close())

	// fs.ReadDir sorts by name; names wider than the record are left out.
	assert.Equal(t, []string{".", "..", "a.txt", "b.txt", "inner"}, entryNames(entries))
	assert.Equal(t, entries[0].Inode, entries[1].Inode, "root is its own parent")

	inner, err := store.Stat("inner")
	require.NoError(t, err)
	assert.Equal(t, inner.Inode, entries[4].Inode)
	assert.ErrorIs(t, h.Close(), fs.ErrClosed)
}

func TestFSStore_Readlink(t *testing.T) {
	store := NewFSStore(fstest.MapFS{}, ".")
	_, err := store.Readlink("anything")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}
