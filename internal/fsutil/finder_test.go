package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# empty"), 0o600))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	run := filepath.Join(dir, "uiprobe.hcl")
	login := filepath.Join(dir, "suites", "login.hcl")
	example := filepath.Join(dir, "suites", "example.hcl")
	writeFile(t, run)
	writeFile(t, login)
	writeFile(t, example)
	writeFile(t, filepath.Join(dir, "suites", "README.md"))

	files, err := CollectFiles(".hcl", run, filepath.Join(dir, "suites"), run)
	require.NoError(t, err)
	require.Equal(t, []string{run, example, login}, files)
}

func TestCollectFiles_MissingPathFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "suites", "login.hcl"))
	missing := filepath.Join(dir, "typo.hcl")

	_, err := CollectFiles(".hcl", filepath.Join(dir, "suites"), missing)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.ErrorContains(t, err, "typo.hcl")
}

func TestCollectFiles_SingleFileWithOtherExtension(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "notes.md")
	writeFile(t, md)

	files, err := CollectFiles(".hcl", md)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestCollectFiles_EmptyExtensionPanics(t *testing.T) {
	require.Panics(t, func() { _, _ = CollectFiles("") })
}
