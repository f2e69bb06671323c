package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileType is the kind of filesystem entry a candidate resolves to
type FileType int

const (
	TypeUnknown FileType = iota
	TypeRegular
	TypeDirectory
	TypeSymlink
	TypeNamedPipe
	TypeBlockDevice
	TypeCharDevice
	TypeSocket
)

// FileMetadata is the result of one metadata lookup on a candidate path.
// Type, Mode, Size and ModTime come from a lookup that follows symlinks;
// Symlink comes from a lookup that does not.
type FileMetadata struct {
	Path    string      `json:"path"`
	Exists  bool        `json:"exists"`
	Type    FileType    `json:"type"`
	Mode    os.FileMode `json:"mode"`
	Size    int64       `json:"size"`
	ModTime time.Time   `json:"mod_time"`
	Hidden  bool        `json:"hidden"`
	Symlink bool        `json:"symlink"`

	// Owned is false when the platform did not report an owner
	Owned bool   `json:"owned"`
	UID   uint32 `json:"uid"`
	GID   uint32 `json:"gid"`
}

// Missing returns metadata for a path that could not be looked up
func Missing(path string) FileMetadata {
	return FileMetadata{
		Path:   path,
		Hidden: IsHiddenName(path),
	}
}

// NewMetadata builds metadata from a followed lookup of path
func NewMetadata(path string, info os.FileInfo) FileMetadata {
	uid, gid, owned := ownerOf(info)
	return FileMetadata{
		Path:    path,
		Exists:  true,
		Type:    FileTypeOf(info.Mode()),
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Hidden:  IsHiddenName(path),
		Owned:   owned,
		UID:     uid,
		GID:     gid,
	}
}

// IsDir reports whether the metadata describes an existing directory
func (m FileMetadata) IsDir() bool {
	return m.Exists && m.Type == TypeDirectory
}

// HasSetUID reports whether the set-user-ID bit is set
func (m FileMetadata) HasSetUID() bool {
	return m.Exists && m.Mode&os.ModeSetuid != 0
}

// HasSetGID reports whether the set-group-ID bit is set
func (m FileMetadata) HasSetGID() bool {
	return m.Exists && m.Mode&os.ModeSetgid != 0
}

// IsHiddenName reports whether the final component of path begins with a dot
func IsHiddenName(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// FileTypeOf maps a file mode to its FileType
func FileTypeOf(mode os.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return TypeRegular
	case mode.IsDir():
		return TypeDirectory
	case mode&os.ModeSymlink != 0:
		return TypeSymlink
	case mode&os.ModeNamedPipe != 0:
		return TypeNamedPipe
	case mode&os.ModeCharDevice != 0:
		return TypeCharDevice
	case mode&os.ModeDevice != 0:
		return TypeBlockDevice
	case mode&os.ModeSocket != 0:
		return TypeSocket
	default:
		return TypeUnknown
	}
}

// Convert FileType to String
func (t FileType) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	case TypeNamedPipe:
		return "pipe"
	case TypeBlockDevice:
		return "block"
	case TypeCharDevice:
		return "char"
	case TypeSocket:
		return "socket"
	default:
		return "unknown"
	}
}
