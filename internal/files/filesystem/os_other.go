//go:build !unix

package filesystem

import "io/fs"

// sysFields reports no inode or device where the platform does not expose them.
func sysFields(fs.FileInfo) (ino uint64, links uint32, dev uint64) {
	return 0, 1, 0
}
