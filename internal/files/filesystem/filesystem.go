package filesystem

import (
	"github.com/vvka-141/rummage/pkg/rummage"
)

// Metadata is an alias for rummage.Metadata so store implementations and
// their callers share one metadata record.
type Metadata = rummage.Metadata

// Handle is an open object in a store.
type Handle interface {
	// Read reads file content. For a directory it reads whole directory
	// entry records; a buffer smaller than one record yields io.ErrShortBuffer.
	// Read returns io.EOF at end of content.
	Read(p []byte) (int, error)

	// Stat returns the metadata of the open object.
	Stat() (Metadata, error)

	// Close releases the handle. Closing twice returns an error.
	Close() error
}

// Store is a path-addressed hierarchical file store.
type Store interface {
	// Open opens the object at path, following symlinks.
	Open(path string) (Handle, error)

	// Stat returns metadata for path, following symlinks.
	Stat(path string) (Metadata, error)

	// Lstat returns metadata for path without following a final symlink.
	Lstat(path string) (Metadata, error)

	// Readlink returns the target of the symlink at path.
	Readlink(path string) (string, error)

	// NameMax returns the width of the name field in directory records,
	// which bounds the length of a single path component.
	NameMax() int
}
