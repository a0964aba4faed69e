package walker

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/rummage/internal/files/filesystem"
	"github.com/vvka-141/rummage/pkg/rummage"
)

func TestWalk_FSStore(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/guide.md":     {Data: []byte("# guide")},
		"docs/api/index.md": {Data: []byte("# api")},
		"docs/api/guide.md": {Data: []byte("# api guide")},
		"src/main.go":       {Data: []byte("package main")},
	}
	store := filesystem.NewFSStore(fsys, ".")
	logger := &recordingLogger{}
	w := NewWalker(store, logger, rummage.DefaultPathMax)

	paths, stats := collect(w, ".", Options{Name: "guide.md"})
	assert.Equal(t, []string{"./docs/api/guide.md", "./docs/guide.md"}, paths)
	assert.Equal(t, 8, stats.Visited)
	assert.Empty(t, logger.errors)

	paths, _ = collect(w, "docs", Options{Type: rummage.TypeDirectory})
	assert.Equal(t, []string{"docs", "docs/api"}, paths)
}
