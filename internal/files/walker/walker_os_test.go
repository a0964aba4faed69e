package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/rummage/internal/files/filesystem"
	"github.com/vvka-141/rummage/pkg/rummage"
)

func TestWalk_OSStore(t *testing.T) {
	root := filepath.ToSlash(t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deeper"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deeper", "b.txt"), []byte("b"), 0644))

	w := NewWalker(filesystem.NewOSStore(), &recordingLogger{}, rummage.DefaultPathMax*8)

	paths, stats := collect(w, root, Options{})
	assert.ElementsMatch(t, []string{
		root,
		root + "/a.txt",
		root + "/sub",
		root + "/sub/b.txt",
		root + "/sub/deeper",
		root + "/sub/deeper/b.txt",
	}, paths)
	assert.Zero(t, stats.Errors)

	paths, _ = collect(w, root, Options{Name: "b.txt", Type: rummage.TypeFile})
	assert.ElementsMatch(t, []string{root + "/sub/b.txt", root + "/sub/deeper/b.txt"}, paths)
}
