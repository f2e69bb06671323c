package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	internal "github.com/ZanzyTHEbar/stest/stest"
	"github.com/ZanzyTHEbar/stest/stest/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func (r result) lines() []string {
	if r.stdout == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
}

func isolateConfig(t *testing.T) {
	t.Helper()
	orig := internal.DefaultConfigPath
	internal.DefaultConfigPath = t.TempDir()
	t.Cleanup(func() { internal.DefaultConfigPath = orig })
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	isolateConfig(t)

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// newTree creates:
//
//	root/file      "data"
//	root/empty     ""
//	root/.hidden   "x"
//	root/dir/      with a, b
//	root/link ->   file
func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "file"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dir", "b"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dir", "a"), []byte("a"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "file"), filepath.Join(root, "link")))

	return root
}

func paths(root string, names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(root, n)
	}
	return out
}

func TestExecuteFilters(t *testing.T) {
	root := newTree(t)
	all := paths(root, "file", "empty", ".hidden", "dir", "link", "missing")

	tests := []struct {
		name     string
		flags    []string
		expected []string
	}{
		{"no tests prints everything", nil, all},
		{"regular files", []string{"-f"}, paths(root, "file", "empty", ".hidden", "link")},
		{"directories", []string{"-d"}, paths(root, "dir")},
		{"hidden", []string{"-a"}, paths(root, ".hidden")},
		{"symlinks", []string{"-h"}, paths(root, "link")},
		{"nonempty files", []string{"-f", "-s"}, paths(root, "file", ".hidden", "link")},
		{"combined short flags", []string{"-fs"}, paths(root, "file", ".hidden", "link")},
		{"long names", []string{"--file", "--nonempty"}, paths(root, "file", ".hidden", "link")},
		{"inverted directories", []string{"-v", "-d"}, paths(root, "file", "empty", ".hidden", "link", "missing")},
		{"exists is a no-op", []string{"-e"}, all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, "", append(tt.flags, all...)...)
			assert.Equal(t, common.ExitPassed, r.code)
			assert.Equal(t, tt.expected, r.lines())
			assert.Empty(t, r.stderr)
		})
	}
}

func TestExecuteReadsStdin(t *testing.T) {
	root := newTree(t)
	input := strings.Join(paths(root, "dir", "file", "missing", "empty"), "\n") + "\n"

	r := execute(t, input, "-f")
	assert.Equal(t, common.ExitPassed, r.code)
	assert.Equal(t, paths(root, "file", "empty"), r.lines())
}

func TestExecuteNothingPasses(t *testing.T) {
	root := newTree(t)

	r := execute(t, "", "-d", filepath.Join(root, "file"))
	assert.Equal(t, common.ExitNonePass, r.code)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr, "failing every candidate is not an error")

	r = execute(t, "")
	assert.Equal(t, common.ExitNonePass, r.code, "no candidates at all")
}

func TestExecuteQuiet(t *testing.T) {
	root := newTree(t)

	r := execute(t, "", "-q", "-f", filepath.Join(root, "file"))
	assert.Equal(t, common.ExitPassed, r.code)
	assert.Empty(t, r.stdout)

	r = execute(t, "", "-q", "-d", filepath.Join(root, "file"))
	assert.Equal(t, common.ExitNonePass, r.code)
}

func TestExecuteContents(t *testing.T) {
	root := newTree(t)

	r := execute(t, "", "-l", filepath.Join(root, "dir"), filepath.Join(root, "file"))
	assert.Equal(t, common.ExitPassed, r.code)
	assert.Equal(t, []string{"a", "b", filepath.Join(root, "file")}, r.lines())
}

func TestExecuteNewerOlder(t *testing.T) {
	root := newTree(t)
	now := time.Now()
	old := filepath.Join(root, "file")
	fresh := filepath.Join(root, "empty")
	require.NoError(t, os.Chtimes(old, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))
	require.NoError(t, os.Chtimes(fresh, now, now))

	ref := filepath.Join(root, ".hidden")
	require.NoError(t, os.Chtimes(ref, now.Add(-time.Hour), now.Add(-time.Hour)))

	r := execute(t, "", "-n", ref, old, fresh)
	assert.Equal(t, []string{fresh}, r.lines())

	r = execute(t, "", "--older", ref, old, fresh)
	assert.Equal(t, []string{old}, r.lines())

	r = execute(t, "", "-n", filepath.Join(root, "absent"), old, fresh)
	assert.Equal(t, []string{old, fresh}, r.lines(), "a missing reference is ignored")
}

func TestExecuteEmptyReference(t *testing.T) {
	root := newTree(t)
	missing := filepath.Join(root, "missing")
	file := filepath.Join(root, "file")

	for _, flag := range []string{"-n", "-o", "--newer", "--older"} {
		t.Run(flag, func(t *testing.T) {
			r := execute(t, "", flag, "", missing)
			assert.Equal(t, common.ExitNonePass, r.code, "an empty reference keeps the comparison enabled")
			assert.Empty(t, r.stdout)

			r = execute(t, "", flag, "", file, missing)
			assert.Equal(t, common.ExitPassed, r.code)
			assert.Equal(t, []string{file}, r.lines())
		})
	}
}

func TestExecuteDebugLoggingConcurrent(t *testing.T) {
	root := t.TempDir()
	args := []string{"-f", "--log-level", "debug", "--workers", "8"}
	for i := 0; i < 64; i++ {
		args = append(args, filepath.Join(root, fmt.Sprintf("missing-%02d", i)))
	}

	r := execute(t, "", args...)
	assert.Equal(t, common.ExitNonePass, r.code)
	assert.Empty(t, r.stdout)

	lines := strings.Split(strings.TrimSpace(r.stderr), "\n")
	assert.GreaterOrEqual(t, len(lines), 64, "one debug line per failed lookup")
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "{") && strings.HasSuffix(line, "}"), "interleaved log line: %q", line)
	}
}

func TestExecuteExclude(t *testing.T) {
	root := newTree(t)

	args := append([]string{"--exclude", "*.hidden", "--exclude", "emp*"}, paths(root, "file", "empty", ".hidden")...)
	r := execute(t, "", args...)
	assert.Equal(t, common.ExitPassed, r.code)
	assert.Equal(t, paths(root, "file"), r.lines())
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-z", "file"}},
		{"missing reference argument", []string{"-n"}},
		{"negative workers", []string{"--workers", "-1", "file"}},
		{"zero workers", []string{"--workers", "0", "file"}},
		{"blank exclude", []string{"--exclude", " ", "file"}},
		{"missing config file", []string{"--config", "/nonexistent/stest.yaml", "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, "", tt.args...)
			assert.Equal(t, common.ExitError, r.code)
			assert.Empty(t, r.stdout)
			assert.NotEmpty(t, r.stderr)
		})
	}
}

func TestExecuteConfigFile(t *testing.T) {
	root := newTree(t)
	cfg := filepath.Join(t.TempDir(), "stest.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("exclude:\n  - \"*.hidden\"\n"), 0o644))

	r := execute(t, "", "--config", cfg, "-a", filepath.Join(root, ".hidden"))
	assert.Equal(t, common.ExitNonePass, r.code)
}

func TestExecuteHelpAndVersion(t *testing.T) {
	r := execute(t, "", "--help")
	assert.Equal(t, common.ExitPassed, r.code)
	assert.Contains(t, r.stdout, "--symlink")
	assert.Contains(t, r.stdout, "--newer file")
	assert.Contains(t, r.stdout, "--contents")

	r = execute(t, "", "--version")
	assert.Equal(t, common.ExitPassed, r.code)
	assert.Contains(t, r.stdout, internal.DefaultVersion)
}

func TestReadCandidates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"single newline", "\n", []string{""}},
		{"spaces kept", " a \n", []string{" a "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCandidates(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWriteManPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteManPage(&buf))

	page := buf.String()
	assert.Contains(t, page, `.TH "STEST" "1"`)
	assert.Contains(t, page, "symlink")
	assert.Contains(t, page, "contents")

	dir := t.TempDir()
	path, err := WriteManPageFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "stest.1"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SYNOPSIS")
}
