package walker

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/rummage/internal/files/filesystem"
	"github.com/vvka-141/rummage/pkg/rummage"
)

// Options holds the predicates a path must satisfy to be emitted.
// A zero field is an absent predicate and always holds.
type Options struct {
	// Name must equal the last path component.
	Name string
	// Type must equal the object's type.
	Type rummage.FileType
}

// Matches reports whether an object named name with type typ qualifies.
func (o Options) Matches(name string, typ rummage.FileType) bool {
	if o.Name != "" && name != o.Name {
		return false
	}
	if o.Type != rummage.TypeNone && typ != o.Type {
		return false
	}
	return true
}

// Stats counts what a walk did.
type Stats struct {
	Visited int // objects whose metadata was fetched
	Emitted int // qualifying paths
	Errors  int // soft failures reported
}

// Walker traverses a store.
// Walker is safe for concurrent use as long as the store and logger are:
// every Walk keeps its own state.
type Walker struct {
	store   filesystem.Store
	logger  rummage.Logger
	pathMax int
}

// NewWalker creates a walker whose paths never exceed pathMax bytes.
// Panics if store or logger is nil, or if pathMax cannot hold a single
// component below a one byte root.
func NewWalker(store filesystem.Store, logger rummage.Logger, pathMax int) *Walker {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if pathMax < store.NameMax()+3 {
		panic(fmt.Sprintf("pathMax %d cannot hold a %d byte name", pathMax, store.NameMax()))
	}
	return &Walker{
		store:   store,
		logger:  logger,
		pathMax: pathMax,
	}
}

// Walk traverses the tree rooted at root and calls emit with every
// qualifying path, the root included, in traversal order.
func (w *Walker) Walk(root string, opts Options, emit func(path string)) Stats {
	run := &walk{Walker: w, opts: opts, emit: emit}

	h, meta, ok := run.open(root)
	if !ok {
		return run.stats
	}
	defer h.Close()

	run.visit(root, lastComponent(root), meta)
	if meta.IsDir() {
		run.readDir(root, h)
	}
	return run.stats
}

// walk is the state of a single Walk call.
type walk struct {
	*Walker
	opts  Options
	emit  func(string)
	stats Stats
}

// open opens path and fetches its metadata through the handle.
// On failure the error is reported and no handle is left open.
func (r *walk) open(path string) (filesystem.Handle, rummage.Metadata, bool) {
	h, err := r.store.Open(path)
	if err != nil {
		r.fail(fmt.Errorf("%w %s", rummage.ErrOpen, path), err)
		return nil, rummage.Metadata{}, false
	}
	meta, err := h.Stat()
	if err != nil {
		h.Close()
		r.fail(fmt.Errorf("%w %s", rummage.ErrStat, path), err)
		return nil, rummage.Metadata{}, false
	}
	return h, meta, true
}

func (r *walk) visit(path, name string, meta rummage.Metadata) {
	r.stats.Visited++
	if r.opts.Matches(name, meta.Type) {
		r.stats.Emitted++
		r.emit(path)
	}
}

// readDir evaluates and descends into every entry of the open directory h.
func (r *walk) readDir(dirPath string, h filesystem.Handle) {
	nameMax := r.store.NameMax()
	if len(dirPath)+1+nameMax+1 > r.pathMax {
		r.fail(fmt.Errorf("%w: %s", rummage.ErrPathTooLong, dirPath), nil)
		return
	}

	prefix := dirPath
	if !strings.HasSuffix(prefix, string(rummage.PathSeparator)) {
		prefix += string(rummage.PathSeparator)
	}

	rec := make([]byte, filesystem.RecordSize(nameMax))
	for {
		n, err := h.Read(rec)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil || n != len(rec) {
			r.fail(fmt.Errorf("cannot read %s", dirPath), err)
			return
		}

		entry, err := filesystem.DecodeDirEntry(rec, nameMax)
		if err != nil {
			r.fail(fmt.Errorf("cannot read %s", dirPath), err)
			return
		}
		if entry.IsFree() || entry.Name == "." || entry.Name == ".." {
			continue
		}

		child := prefix + entry.Name
		meta, err := r.store.Stat(child)
		if err != nil {
			r.fail(fmt.Errorf("%w %s", rummage.ErrStat, child), err)
			continue
		}

		r.visit(child, entry.Name, meta)
		if meta.IsDir() {
			r.descend(child)
		}
	}
}

func (r *walk) descend(dirPath string) {
	h, meta, ok := r.open(dirPath)
	if !ok {
		return
	}
	defer h.Close()

	// Replaced by a non-directory since the parent listed it.
	if !meta.IsDir() {
		return
	}
	r.readDir(dirPath, h)
}

// fail reports a soft failure. The underlying cause, if any, is only shown
// in verbose mode.
func (r *walk) fail(err error, cause error) {
	r.stats.Errors++
	r.logger.Error("%v", err)
	if cause != nil {
		r.logger.Verbose("%v", cause)
	}
}

// lastComponent returns the text after the final separator.
func lastComponent(path string) string {
	return path[strings.LastIndexByte(path, rummage.PathSeparator)+1:]
}
