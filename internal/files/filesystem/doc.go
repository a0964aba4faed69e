// Package filesystem provides the path-addressed store that find, grep and
// stat run against.
//
// A Store exposes the small set of primitives the utilities need: open,
// read, close, stat (following symlinks), lstat and readlink. Reading a
// directory handle yields fixed-size directory entry records, each an inode
// number followed by a NUL-padded name field of NameMax bytes. A record with
// inode 0 is a free slot.
//
// Key interfaces:
//   - Store: opens handles and fetches metadata by path
//   - Handle: an open object; Read returns file bytes or directory records
//
// Implementations:
//   - OSStore: production implementation over the host filesystem
//   - MemoryStore: in-memory inode tree with instrumentation for testing
//   - FSStore: read-only store over an io/fs.FS such as embed.FS
package filesystem
