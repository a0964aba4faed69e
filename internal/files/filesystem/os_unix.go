//go:build unix

package filesystem

import (
	"io/fs"
	"syscall"
)

// sysFields extracts inode number, link count and device id.
func sysFields(info fs.FileInfo) (ino uint64, links uint32, dev uint64) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 1, 0
	}
	return uint64(st.Ino), uint32(st.Nlink), uint64(st.Dev)
}
