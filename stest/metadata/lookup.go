package metadata

import (
	"os"
	"sort"

	"github.com/ZanzyTHEbar/stest/stest/common"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Lookup performs metadata lookups against a filesystem. Any failure is
// reported as missing metadata: a candidate that cannot be looked up is
// filtered, never fatal.
type Lookup struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewLookup creates a Lookup over fs. A nil fs means the OS filesystem.
func NewLookup(fs afero.Fs, logger zerolog.Logger) *Lookup {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Lookup{fs: fs, logger: logger}
}

// Lookup captures metadata for path
func (l *Lookup) Lookup(path string) FileMetadata {
	if err := common.ValidatePathCharacters(path); err != nil {
		l.logger.Debug().Err(err).Msg("Rejecting candidate path")
		return Missing(path)
	}

	info, err := l.fs.Stat(path)
	if err != nil {
		l.logger.Debug().Err(err).Str("path", path).Msg("Metadata lookup failed, treating as non-existent")
		return Missing(path)
	}

	md := NewMetadata(path, info)
	md.Symlink = l.isSymlink(path)
	return md
}

// isSymlink looks path up without following a final symlink. Filesystems
// without lstat support cannot hold symlinks.
func (l *Lookup) isSymlink(path string) bool {
	lstater, ok := l.fs.(afero.Lstater)
	if !ok {
		return false
	}
	info, lstatCalled, err := lstater.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// ReadDirNames returns the names of the immediate entries of dir in name order
func (l *Lookup) ReadDirNames(dir string) ([]string, error) {
	f, err := l.fs.Open(dir)
	if err != nil {
		return nil, common.WrapError(err, "failed to open directory %s", dir)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, common.WrapError(err, "failed to read directory %s", dir)
	}
	sort.Strings(names)
	return names, nil
}
