//go:build unix

package metadata

import (
	"os"
	"syscall"
)

// ownerOf retrieves the owning uid and gid for a file on Unix-like systems
func ownerOf(info os.FileInfo) (uint32, uint32, bool) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return stat.Uid, stat.Gid, true
	}
	return 0, 0, false
}
