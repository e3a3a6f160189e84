package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateFile writes content to dir/name, creating missing parents, and
// returns the full path
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "write %s", path)
	return path
}

// CreateDir creates parent/name and any missing parents
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755), "mkdir %s", path)
	return path
}

// CreateSymlink makes link point at target. The target may not exist.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755), "parent of %s", link)
	require.NoError(t, os.Symlink(target, link), "symlink %s -> %s", link, target)
}

// SymlinkExists reports whether path itself is a symlink
func SymlinkExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// ReadSymlink returns the stored target of the symlink at path
func ReadSymlink(t *testing.T, path string) string {
	t.Helper()

	target, err := os.Readlink(path)
	require.NoError(t, err, "readlink %s", path)
	return target
}

// AssertSymlink checks that link is a symlink whose stored target is exactly
// expectedTarget
func AssertSymlink(t *testing.T, link, expectedTarget string) {
	t.Helper()

	require.True(t, SymlinkExists(t, link), "%s is not a symlink", link)
	assert.Equal(t, expectedTarget, ReadSymlink(t, link), "target of %s", link)
}

// AssertNoEntry checks that nothing, not even a dangling symlink, exists at path
func AssertNoEntry(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "%s exists but should not", path)
}

// AssertFileContent checks that path is a regular file holding expected
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "lstat %s", path)
	require.True(t, info.Mode().IsRegular(), "%s is not a regular file (mode %v)", path, info.Mode())

	content, err := os.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	assert.Equal(t, expected, string(content), "content of %s", path)
}

// SkipOnWindows skips tests that need unprivileged symlinks
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}
}
