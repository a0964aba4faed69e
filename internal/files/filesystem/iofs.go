package filesystem

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/vvka-141/rummage/pkg/rummage"
)

// fsHandle implements Handle for an FSStore.
type fsHandle struct {
	file   fs.File // nil for directories
	dir    *recordReader
	meta   Metadata
	closed bool
}

func (h *fsHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, fs.ErrClosed
	}
	if h.dir != nil {
		return h.dir.Read(p)
	}
	return h.file.Read(p)
}

func (h *fsHandle) Stat() (Metadata, error) {
	if h.closed {
		return Metadata{}, fs.ErrClosed
	}
	return h.meta, nil
}

func (h *fsHandle) Close() error {
	if h.closed {
		return fs.ErrClosed
	}
	h.closed = true
	if h.file != nil {
		return h.file.Close()
	}
	return nil
}

// FSStore implements Store over an io/fs.FS such as embed.FS or
// fstest.MapFS. io/fs has no notion of inodes or symlinks: inode numbers
// are assigned per path on first use, Lstat behaves like Stat and Readlink
// always fails.
// FSStore is safe for concurrent use if the underlying fs.FS is.
type FSStore struct {
	fsys    fs.FS
	root    string // root path within fsys (always uses forward slashes)
	nameMax int

	mu        sync.Mutex
	inodes    map[string]uint64
	nextInode uint64
}

// NewFSStore creates a store over fsys. The root parameter selects the
// subdirectory of fsys that paths are resolved against.
func NewFSStore(fsys fs.FS, root string) *FSStore {
	return &FSStore{
		fsys:      fsys,
		root:      path.Clean(root),
		nameMax:   rummage.DefaultNameMax,
		inodes:    make(map[string]uint64),
		nextInode: rootInode,
	}
}

// Open implements Store.Open
func (s *FSStore) Open(openPath string) (Handle, error) {
	full := s.fullPath(openPath)
	meta, err := s.statFull(openPath, full)
	if err != nil {
		return nil, err
	}

	if meta.Type != rummage.TypeDirectory {
		f, err := s.fsys.Open(full)
		if err != nil {
			return nil, err
		}
		return &fsHandle{file: f, meta: meta}, nil
	}

	entries, err := fs.ReadDir(s.fsys, full)
	if err != nil {
		return nil, err
	}
	records := make([]DirEntry, 0, len(entries)+2)
	records = append(records,
		DirEntry{Inode: meta.Inode, Name: "."},
		DirEntry{Inode: s.inode(s.parentOf(full)), Name: ".."},
	)
	for _, entry := range entries {
		if len(entry.Name()) > s.nameMax {
			continue
		}
		records = append(records, DirEntry{Inode: s.inode(path.Join(full, entry.Name())), Name: entry.Name()})
	}
	rr, err := newRecordReader(records, s.nameMax)
	if err != nil {
		return nil, err
	}
	return &fsHandle{dir: rr, meta: meta}, nil
}

// Stat implements Store.Stat
func (s *FSStore) Stat(statPath string) (Metadata, error) {
	return s.statFull(statPath, s.fullPath(statPath))
}

// Lstat implements Store.Lstat
func (s *FSStore) Lstat(statPath string) (Metadata, error) {
	return s.Stat(statPath)
}

// Readlink implements Store.Readlink
func (s *FSStore) Readlink(linkPath string) (string, error) {
	return "", &fs.PathError{Op: "readlink", Path: linkPath, Err: fs.ErrInvalid}
}

// NameMax implements Store.NameMax
func (s *FSStore) NameMax() int { return s.nameMax }

func (s *FSStore) statFull(statPath, full string) (Metadata, error) {
	info, err := fs.Stat(s.fsys, full)
	if err != nil {
		return Metadata{}, &fs.PathError{Op: "stat", Path: statPath, Err: unwrapPathError(err)}
	}
	meta := Metadata{
		Type:  typeFromMode(info.Mode()),
		Inode: s.inode(full),
		Size:  info.Size(),
		Links: 1,
	}
	if info.IsDir() {
		meta.Links = 2
	}
	return meta, nil
}

// fullPath maps a store path onto a valid fs.FS path under root.
func (s *FSStore) fullPath(p string) string {
	p = strings.TrimLeft(p, "/")
	if p == "" {
		p = "."
	}
	return path.Join(s.root, p)
}

func (s *FSStore) parentOf(full string) string {
	if full == s.root {
		return full
	}
	return path.Dir(full)
}

func (s *FSStore) inode(full string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ino, ok := s.inodes[full]; ok {
		return ino
	}
	ino := s.nextInode
	s.nextInode++
	s.inodes[full] = ino
	return ino
}

func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Verify FSStore implements the interface at compile time
var _ Store = (*FSStore)(nil)
