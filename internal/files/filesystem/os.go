package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vvka-141/rummage/pkg/rummage"
)

type handleKind int

const (
	kindUnknown handleKind = iota
	kindFile
	kindDir
)

// osHandle implements Handle for the OS filesystem. Directory records are
// built on the first Read.
type osHandle struct {
	f       *os.File
	nameMax int
	kind    handleKind
	dir     *recordReader
}

func (h *osHandle) Read(p []byte) (int, error) {
	if h.kind == kindUnknown {
		info, err := h.f.Stat()
		if err != nil {
			return 0, fmt.Errorf("failed to stat %s: %w", h.f.Name(), err)
		}
		h.kind = kindFile
		if info.IsDir() {
			h.kind = kindDir
		}
	}
	if h.kind == kindFile {
		return h.f.Read(p)
	}
	if h.dir == nil {
		entries, err := readOSDirEntries(h.f, h.nameMax)
		if err != nil {
			return 0, err
		}
		h.dir, err = newRecordReader(entries, h.nameMax)
		if err != nil {
			return 0, err
		}
	}
	return h.dir.Read(p)
}

func (h *osHandle) Stat() (Metadata, error) {
	info, err := h.f.Stat()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to stat %s: %w", h.f.Name(), err)
	}
	return metadataFromInfo(info), nil
}

func (h *osHandle) Close() error {
	return h.f.Close()
}

// readOSDirEntries lists a directory the way it is laid out on disk:
// "." and ".." first, then the remaining entries in directory order.
// Names wider than nameMax are truncated, as a fixed-width record would
// store them; such entries fail the subsequent stat.
func readOSDirEntries(f *os.File, nameMax int) ([]DirEntry, error) {
	self, err := os.Stat(f.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", f.Name(), err)
	}
	parent, err := os.Stat(filepath.Join(f.Name(), ".."))
	if err != nil {
		parent = self
	}

	dirEntries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", f.Name(), err)
	}

	result := make([]DirEntry, 0, len(dirEntries)+2)
	result = append(result,
		DirEntry{Inode: inodeOf(self, 1), Name: "."},
		DirEntry{Inode: inodeOf(parent, 2), Name: ".."},
	)
	for i, entry := range dirEntries {
		info, err := entry.Info()
		if err != nil {
			// Removed since the listing was taken.
			continue
		}
		name := entry.Name()
		if len(name) > nameMax {
			name = name[:nameMax]
		}
		result = append(result, DirEntry{Inode: inodeOf(info, uint64(i)+3), Name: name})
	}
	return result, nil
}

// inodeOf returns the inode number of info, or fallback where the platform
// reports none, so that no live entry looks like a free slot.
func inodeOf(info fs.FileInfo, fallback uint64) uint64 {
	if ino, _, _ := sysFields(info); ino != 0 {
		return ino
	}
	return fallback
}

func metadataFromInfo(info fs.FileInfo) Metadata {
	ino, links, dev := sysFields(info)
	return Metadata{
		Type:   typeFromMode(info.Mode()),
		Inode:  ino,
		Size:   info.Size(),
		Links:  links,
		Device: dev,
	}
}

// typeFromMode maps a file mode to a store type. Objects that are neither
// regular files, directories nor symlinks (devices, pipes, sockets) are
// reported as devices.
func typeFromMode(mode fs.FileMode) rummage.FileType {
	switch {
	case mode.IsDir():
		return rummage.TypeDirectory
	case mode&fs.ModeSymlink != 0:
		return rummage.TypeSymlink
	case mode.IsRegular():
		return rummage.TypeFile
	default:
		return rummage.TypeDevice
	}
}

// OSStore implements Store for the OS filesystem.
type OSStore struct {
	nameMax int
}

// NewOSStore creates a new OS store with the default record name width.
func NewOSStore() *OSStore {
	return NewOSStoreWithNameMax(rummage.DefaultNameMax)
}

// NewOSStoreWithNameMax creates a new OS store whose directory records carry
// names of at most nameMax bytes.
// Panics if nameMax is not positive.
func NewOSStoreWithNameMax(nameMax int) *OSStore {
	if nameMax <= 0 {
		panic("nameMax must be positive")
	}
	return &OSStore{nameMax: nameMax}
}

func (s *OSStore) Open(path string) (Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &osHandle{f: f, nameMax: s.nameMax}, nil
}

func (s *OSStore) Stat(path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, err
	}
	return metadataFromInfo(info), nil
}

func (s *OSStore) Lstat(path string) (Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, err
	}
	return metadataFromInfo(info), nil
}

func (s *OSStore) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (s *OSStore) NameMax() int { return s.nameMax }

// Verify OSStore implements the interface at compile time
var _ Store = (*OSStore)(nil)
