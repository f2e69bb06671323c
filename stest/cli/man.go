package cli

import (
	"io"
	"os"
	"path/filepath"

	internal "github.com/ZanzyTHEbar/stest/stest"
	"github.com/ZanzyTHEbar/stest/stest/common"

	"github.com/spf13/cobra/doc"
)

func manHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "STEST",
		Section: internal.DefaultManPageSection,
		Source:  internal.DefaultAppName + "-" + internal.DefaultVersion,
		Manual:  "dmenu tools",
	}
}

// WriteManPage renders the stest man page to w
func WriteManPage(w io.Writer) error {
	cmd := NewRootCommand(nil, io.Discard, io.Discard)
	return doc.GenMan(cmd, manHeader(), w)
}

// WriteManPageFile writes stest.<section> into dir and returns its path
func WriteManPageFile(dir string) (string, error) {
	path := filepath.Join(dir, internal.DefaultAppName+"."+internal.DefaultManPageSection)
	f, err := os.Create(path)
	if err != nil {
		return "", common.WrapError(err, "failed to create man page %s", path)
	}
	defer f.Close()

	if err := WriteManPage(f); err != nil {
		return "", common.WrapError(err, "failed to render man page")
	}
	return path, f.Close()
}
