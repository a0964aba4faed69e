package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/vvka-141/rummage/pkg/rummage"
)

const (
	// MemoryNameMax is the default record name width of a MemoryStore.
	MemoryNameMax = 14

	// memoryDevice is the device id reported for every object in a MemoryStore.
	memoryDevice = 1

	// maxSymlinkDepth bounds symlink resolution; deeper chains are loops.
	maxSymlinkDepth = 40

	rootInode = 1
)

var (
	errNotDir        = errors.New("not a directory")
	errTooManyLinks  = errors.New("too many levels of symbolic links")
	errNotSymlink    = errors.New("not a symbolic link")
	errNameTooLong   = errors.New("file name too long")
	errAlreadyExists = errors.New("file exists")
)

// memoryNode is one inode of a MemoryStore.
type memoryNode struct {
	ino     uint64
	typ     rummage.FileType
	links   uint32
	content []byte
	target  string
	slots   []DirEntry // directories only; "." and ".." come first
}

func (n *memoryNode) lookup(name string) (uint64, bool) {
	for _, slot := range n.slots {
		if !slot.IsFree() && slot.Name == name {
			return slot.Inode, true
		}
	}
	return 0, false
}

// memoryHandle implements Handle for a MemoryStore.
type memoryHandle struct {
	store  *MemoryStore
	node   *memoryNode
	path   string
	r      io.Reader
	closed bool
}

func (h *memoryHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, fs.ErrClosed
	}
	return h.r.Read(p)
}

func (h *memoryHandle) Stat() (Metadata, error) {
	if h.closed {
		return Metadata{}, fs.ErrClosed
	}
	if err := h.store.recordStat("fstat", h.path); err != nil {
		return Metadata{}, err
	}
	return h.store.metadata(h.node), nil
}

func (h *memoryHandle) Close() error {
	if h.closed {
		return fs.ErrClosed
	}
	h.closed = true
	h.store.openHandles--
	return nil
}

// MemoryStore implements Store as an in-memory inode tree for testing.
//
// Directories keep their entries in insertion order, "." and ".." first,
// and removing an entry frees its slot in place (inode 0) the way an on-disk
// directory does. Every object reports the same device id.
//
// Relative paths resolve from the root, so "a/b" and "/a/b" name the same
// object while still being counted separately by StatCalls.
//
// The store records how often each path was stat-ed and how many handles
// are open, and can be told to fail Stat or Open for a given path.
// MemoryStore is not safe for concurrent use.
type MemoryStore struct {
	nodes       map[uint64]*memoryNode
	nextInode   uint64
	nameMax     int
	statCalls   map[string]int
	openHandles int
	statFaults  map[string]error
	openFaults  map[string]error
}

// NewMemoryStore creates an empty store holding only the root directory.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithNameMax(MemoryNameMax)
}

// NewMemoryStoreWithNameMax creates an empty store whose names are limited
// to nameMax bytes.
// Panics if nameMax is not positive.
func NewMemoryStoreWithNameMax(nameMax int) *MemoryStore {
	if nameMax <= 0 {
		panic("nameMax must be positive")
	}
	ms := &MemoryStore{
		nodes:      make(map[uint64]*memoryNode),
		nextInode:  rootInode + 1,
		nameMax:    nameMax,
		statCalls:  make(map[string]int),
		statFaults: make(map[string]error),
		openFaults: make(map[string]error),
	}
	ms.nodes[rootInode] = &memoryNode{
		ino:   rootInode,
		typ:   rummage.TypeDirectory,
		links: 2,
		slots: []DirEntry{{Inode: rootInode, Name: "."}, {Inode: rootInode, Name: ".."}},
	}
	return ms
}

// AddDir creates a directory and any missing parents.
// Panics if a component exists and is not a directory.
func (ms *MemoryStore) AddDir(dirPath string) {
	if _, err := ms.mkdirAll(components(dirPath)); err != nil {
		panic(fmt.Sprintf("AddDir %s: %v", dirPath, err))
	}
}

// AddFile creates a file with the given content, creating parent
// directories as needed. An existing file is overwritten.
func (ms *MemoryStore) AddFile(filePath string, content string) {
	if existing, err := ms.resolve(filePath, false); err == nil && existing.typ == rummage.TypeFile {
		existing.content = []byte(content)
		return
	}
	ms.mustCreate(filePath, &memoryNode{typ: rummage.TypeFile, links: 1, content: []byte(content)})
}

// AddDevice creates a device node.
func (ms *MemoryStore) AddDevice(devPath string) {
	ms.mustCreate(devPath, &memoryNode{typ: rummage.TypeDevice, links: 1})
}

// AddSymlink creates a symlink at linkPath pointing at target. A relative
// target resolves from the directory holding the link.
func (ms *MemoryStore) AddSymlink(linkPath, target string) {
	ms.mustCreate(linkPath, &memoryNode{typ: rummage.TypeSymlink, links: 1, target: target})
}

// Remove frees the directory slot naming path. The slot keeps its name
// with inode 0, so directory reads still return it as a free record.
func (ms *MemoryStore) Remove(targetPath string) {
	parts := components(targetPath)
	if len(parts) == 0 {
		panic("Remove: cannot remove the root")
	}
	name := parts[len(parts)-1]
	if name == "." || name == ".." {
		panic(fmt.Sprintf("Remove %s: cannot remove %q", targetPath, name))
	}
	dir, err := ms.walkParts(ms.nodes[rootInode], parts[:len(parts)-1], true, 0)
	if err != nil {
		panic(fmt.Sprintf("Remove %s: %v", targetPath, err))
	}
	for i, slot := range dir.slots {
		if slot.IsFree() || slot.Name != name {
			continue
		}
		node := ms.nodes[slot.Inode]
		node.links--
		if node.typ == rummage.TypeDirectory {
			dir.links--
		}
		dir.slots[i].Inode = 0
		return
	}
	panic(fmt.Sprintf("Remove %s: %v", targetPath, fs.ErrNotExist))
}

// FailStat makes every Stat, Lstat and handle Stat of exactly statPath fail with err.
func (ms *MemoryStore) FailStat(statPath string, err error) {
	ms.statFaults[statPath] = err
}

// FailOpen makes every Open of exactly openPath fail with err.
func (ms *MemoryStore) FailOpen(openPath string, err error) {
	ms.openFaults[openPath] = err
}

// StatCalls returns how many times metadata was requested for statPath,
// counting Stat, Lstat and handle Stat, failed calls included.
func (ms *MemoryStore) StatCalls(statPath string) int {
	return ms.statCalls[statPath]
}

// OpenHandles returns the number of handles opened and not yet closed.
func (ms *MemoryStore) OpenHandles() int {
	return ms.openHandles
}

// Open implements Store.Open
func (ms *MemoryStore) Open(openPath string) (Handle, error) {
	if err, ok := ms.openFaults[openPath]; ok {
		return nil, &fs.PathError{Op: "open", Path: openPath, Err: err}
	}
	node, err := ms.resolve(openPath, true)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: openPath, Err: err}
	}

	var r io.Reader
	switch node.typ {
	case rummage.TypeDirectory:
		rr, err := newRecordReader(node.slots, ms.nameMax)
		if err != nil {
			return nil, &fs.PathError{Op: "open", Path: openPath, Err: err}
		}
		r = rr
	default:
		r = bytes.NewReader(node.content)
	}

	ms.openHandles++
	return &memoryHandle{store: ms, node: node, path: openPath, r: r}, nil
}

// Stat implements Store.Stat
func (ms *MemoryStore) Stat(statPath string) (Metadata, error) {
	return ms.stat("stat", statPath, true)
}

// Lstat implements Store.Lstat
func (ms *MemoryStore) Lstat(statPath string) (Metadata, error) {
	return ms.stat("lstat", statPath, false)
}

// Readlink implements Store.Readlink
func (ms *MemoryStore) Readlink(linkPath string) (string, error) {
	node, err := ms.resolve(linkPath, false)
	if err != nil {
		return "", &fs.PathError{Op: "readlink", Path: linkPath, Err: err}
	}
	if node.typ != rummage.TypeSymlink {
		return "", &fs.PathError{Op: "readlink", Path: linkPath, Err: errNotSymlink}
	}
	return node.target, nil
}

// NameMax implements Store.NameMax
func (ms *MemoryStore) NameMax() int { return ms.nameMax }

func (ms *MemoryStore) stat(op, statPath string, follow bool) (Metadata, error) {
	if err := ms.recordStat(op, statPath); err != nil {
		return Metadata{}, err
	}
	node, err := ms.resolve(statPath, follow)
	if err != nil {
		return Metadata{}, &fs.PathError{Op: op, Path: statPath, Err: err}
	}
	return ms.metadata(node), nil
}

func (ms *MemoryStore) recordStat(op, statPath string) error {
	ms.statCalls[statPath]++
	if err, ok := ms.statFaults[statPath]; ok {
		return &fs.PathError{Op: op, Path: statPath, Err: err}
	}
	return nil
}

func (ms *MemoryStore) metadata(node *memoryNode) Metadata {
	var size int64
	switch node.typ {
	case rummage.TypeDirectory:
		size = int64(len(node.slots) * RecordSize(ms.nameMax))
	case rummage.TypeSymlink:
		size = int64(len(node.target))
	default:
		size = int64(len(node.content))
	}
	return Metadata{
		Type:   node.typ,
		Inode:  node.ino,
		Size:   size,
		Links:  node.links,
		Device: memoryDevice,
	}
}

// resolve looks up a path from the root. Symlinks in the middle of the path
// are always followed; a final symlink only when follow is set.
func (ms *MemoryStore) resolve(p string, follow bool) (*memoryNode, error) {
	if p == "" {
		return nil, fs.ErrNotExist
	}
	return ms.walkParts(ms.nodes[rootInode], components(p), follow, 0)
}

func (ms *MemoryStore) walkParts(dir *memoryNode, parts []string, follow bool, depth int) (*memoryNode, error) {
	cur := dir
	for i, name := range parts {
		if cur.typ != rummage.TypeDirectory {
			return nil, errNotDir
		}
		ino, ok := cur.lookup(name)
		if !ok {
			return nil, fs.ErrNotExist
		}
		node := ms.nodes[ino]
		last := i == len(parts)-1
		if node.typ == rummage.TypeSymlink && (follow || !last) {
			if depth >= maxSymlinkDepth {
				return nil, errTooManyLinks
			}
			start := cur
			if strings.HasPrefix(node.target, "/") {
				start = ms.nodes[rootInode]
			}
			target, err := ms.walkParts(start, components(node.target), true, depth+1)
			if err != nil {
				return nil, err
			}
			node = target
		}
		cur = node
	}
	return cur, nil
}

func (ms *MemoryStore) mkdirAll(parts []string) (*memoryNode, error) {
	cur := ms.nodes[rootInode]
	for _, name := range parts {
		ino, ok := cur.lookup(name)
		if !ok {
			child := &memoryNode{typ: rummage.TypeDirectory, links: 2}
			if err := ms.link(cur, name, child); err != nil {
				return nil, err
			}
			cur = child
			continue
		}
		node := ms.nodes[ino]
		if node.typ != rummage.TypeDirectory {
			return nil, errNotDir
		}
		cur = node
	}
	return cur, nil
}

func (ms *MemoryStore) mustCreate(p string, node *memoryNode) {
	parts := components(p)
	if len(parts) == 0 {
		panic(fmt.Sprintf("create %q: empty path", p))
	}
	dir, err := ms.mkdirAll(parts[:len(parts)-1])
	if err == nil {
		err = ms.link(dir, parts[len(parts)-1], node)
	}
	if err != nil {
		panic(fmt.Sprintf("create %s: %v", p, err))
	}
}

// link assigns node an inode number and enters it into dir.
func (ms *MemoryStore) link(dir *memoryNode, name string, node *memoryNode) error {
	if len(name) > ms.nameMax {
		return errNameTooLong
	}
	if _, exists := dir.lookup(name); exists {
		return errAlreadyExists
	}
	node.ino = ms.nextInode
	ms.nextInode++
	ms.nodes[node.ino] = node
	if node.typ == rummage.TypeDirectory {
		node.slots = []DirEntry{{Inode: node.ino, Name: "."}, {Inode: dir.ino, Name: ".."}}
		dir.links++
	}
	dir.slots = append(dir.slots, DirEntry{Inode: node.ino, Name: name})
	return nil
}

// components splits a slash-separated path, dropping empty components.
// "." and ".." are kept and resolved through directory entries.
func components(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Verify MemoryStore implements the interface at compile time
var _ Store = (*MemoryStore)(nil)
