package cli

import (
	"io"
	"strings"

	"github.com/ZanzyTHEbar/stest/stest/common"
)

// ReadCandidates reads newline-separated paths from r until EOF. Order is
// kept and a trailing empty segment is dropped; empty lines elsewhere are
// candidates like any other.
func ReadCandidates(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, common.WrapError(err, "failed to read candidates")
	}
	if len(data) == 0 {
		return nil, nil
	}

	paths := strings.Split(string(data), "\n")
	if paths[len(paths)-1] == "" {
		paths = paths[:len(paths)-1]
	}
	return paths, nil
}
