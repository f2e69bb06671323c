package predicate

import (
	"github.com/ZanzyTHEbar/stest/stest/metadata"
)

func hidden(md metadata.FileMetadata, _ *Env) Result {
	return check(md.Hidden)
}

func exists(md metadata.FileMetadata, _ *Env) Result {
	return check(md.Exists)
}

func isType(want metadata.FileType) Func {
	return func(md metadata.FileMetadata, _ *Env) Result {
		return check(md.Exists && md.Type == want)
	}
}

func symbolicLink(md metadata.FileMetadata, _ *Env) Result {
	return check(md.Exists && md.Symlink)
}

func setGroupID(md metadata.FileMetadata, _ *Env) Result {
	return check(md.HasSetGID())
}

func setUserID(md metadata.FileMetadata, _ *Env) Result {
	return check(md.HasSetUID())
}

func nonEmpty(md metadata.FileMetadata, _ *Env) Result {
	return check(md.Exists && md.Size > 0)
}

func permits(want metadata.Access) Func {
	return func(md metadata.FileMetadata, env *Env) Result {
		return check(md.Permits(env.Identity, want))
	}
}

// newerThan treats a missing reference as created infinitely long ago:
// every candidate is newer, so the test cannot block.
func newerThan(md metadata.FileMetadata, env *Env) Result {
	if !env.Newer.Exists {
		return Inapplicable
	}
	return check(md.Exists && md.ModTime.After(env.Newer.ModTime))
}

// olderThan treats a missing reference as never created: every candidate
// is older, so the test cannot block.
func olderThan(md metadata.FileMetadata, env *Env) Result {
	if !env.Older.Exists {
		return Inapplicable
	}
	return check(md.Exists && md.ModTime.Before(env.Older.ModTime))
}
