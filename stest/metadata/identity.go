package metadata

import (
	"os"
	"slices"
)

// Identity is the user on whose behalf readable, writable and executable
// are decided.
type Identity struct {
	UID    int
	GID    int
	Groups []int
}

// CurrentIdentity captures the real uid and gid of this process, the ids
// access(2) checks against.
func CurrentIdentity() Identity {
	// Getgroups is unsupported on some platforms; the primary group still applies.
	groups, _ := os.Getgroups()
	return Identity{
		UID:    os.Getuid(),
		GID:    os.Getgid(),
		Groups: groups,
	}
}

// IsRoot reports whether the identity is the superuser
func (id Identity) IsRoot() bool {
	return id.UID == 0
}

// InGroup reports whether gid is the primary or a supplementary group
func (id Identity) InGroup(gid uint32) bool {
	if id.GID >= 0 && uint32(id.GID) == gid {
		return true
	}
	return slices.ContainsFunc(id.Groups, func(g int) bool {
		return g >= 0 && uint32(g) == gid
	})
}

// Access is one permission class bit, matching the rwx layout of a file mode
type Access uint8

const (
	Execute Access = 1 << iota
	Write
	Read
)

// Permits reports whether id may access the entry described by m in the
// requested way. The superuser may always read and write, and may execute
// when any execute bit is set or the entry is a directory.
func (m FileMetadata) Permits(id Identity, want Access) bool {
	if !m.Exists {
		return false
	}

	perm := uint32(m.Mode.Perm())
	if id.IsRoot() {
		if want != Execute {
			return true
		}
		return m.Type == TypeDirectory || perm&0o111 != 0
	}

	var shift uint
	switch {
	case !m.Owned || (id.UID >= 0 && uint32(id.UID) == m.UID):
		shift = 6
	case id.InGroup(m.GID):
		shift = 3
	}
	return (perm>>shift)&uint32(want) != 0
}
