package testutil

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS_BasicOperations(t *testing.T) {
	mfs := NewMemoryFS()

	t.Run("WriteAndRead", func(t *testing.T) {
		require.NoError(t, mfs.WriteFile("/dots/bash/.bashrc", []byte("export A=1"), 0644))

		read, err := mfs.ReadFile("/dots/bash/.bashrc")
		require.NoError(t, err)
		assert.Equal(t, "export A=1", string(read))

		info, err := mfs.Stat("/dots/bash")
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MkdirAll", func(t *testing.T) {
		require.NoError(t, mfs.MkdirAll("/path/to/dir", 0755))
		require.NoError(t, mfs.MkdirAll("/path/to/dir", 0755), "idempotent")

		info, err := mfs.Stat("/path/to/dir")
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MkdirAll through a file fails", func(t *testing.T) {
		require.NoError(t, mfs.WriteFile("/plain", []byte("x"), 0644))
		assert.Error(t, mfs.MkdirAll("/plain/sub", 0755))
	})

	t.Run("Symlink", func(t *testing.T) {
		require.NoError(t, mfs.Symlink("/dots/bash/.bashrc", "/link"))

		dest, err := mfs.Readlink("/link")
		require.NoError(t, err)
		assert.Equal(t, "/dots/bash/.bashrc", dest)

		linfo, err := mfs.Lstat("/link")
		require.NoError(t, err)
		assert.NotZero(t, linfo.Mode()&os.ModeSymlink)

		sinfo, err := mfs.Stat("/link")
		require.NoError(t, err)
		assert.Zero(t, sinfo.Mode()&os.ModeSymlink)
		assert.Equal(t, int64(len("export A=1")), sinfo.Size())
	})

	t.Run("Symlink over existing entry fails", func(t *testing.T) {
		err := mfs.Symlink("/elsewhere", "/link")
		assert.True(t, errors.Is(err, fs.ErrExist))
	})

	t.Run("Symlink without parent fails", func(t *testing.T) {
		err := mfs.Symlink("/dots/bash/.bashrc", "/missing/parent/link")
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("Readlink on a regular file", func(t *testing.T) {
		_, err := mfs.Readlink("/plain")
		assert.True(t, errors.Is(err, fs.ErrInvalid))
	})

	t.Run("Remove link keeps target", func(t *testing.T) {
		require.NoError(t, mfs.Remove("/link"))
		assert.False(t, mfs.Exists("/link"))
		assert.True(t, mfs.Exists("/dots/bash/.bashrc"))
	})

	t.Run("Remove non-empty directory fails", func(t *testing.T) {
		assert.Error(t, mfs.Remove("/dots"))
	})
}

func TestMemoryFS_DanglingSymlink(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.Symlink("/nowhere", "/dangling"))

	_, err := mfs.Stat("/dangling")
	assert.True(t, os.IsNotExist(err))

	_, err = mfs.Lstat("/dangling")
	assert.NoError(t, err)
	assert.True(t, mfs.Exists("/dangling"))
}

func TestMemoryFS_SymlinkedDirectory(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.WriteFile("/real/config/app.conf", []byte("v"), 0644))
	require.NoError(t, mfs.MkdirAll("/home/u", 0755))
	require.NoError(t, mfs.Symlink("/real/config", "/home/u/.config"))

	data, err := mfs.ReadFile("/home/u/.config/app.conf")
	require.NoError(t, err)
	assert.Equal(t, "v", string(data))

	require.NoError(t, mfs.MkdirAll("/home/u/.config/nested", 0755))
	info, err := mfs.Stat("/real/config/nested")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryFS_SymlinkLoop(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.Symlink("/b", "/a"))
	require.NoError(t, mfs.Symlink("/a", "/b"))

	_, err := mfs.Stat("/a")
	assert.Error(t, err)
	assert.False(t, os.IsNotExist(err))
}

func TestMemoryFS_ErrorInjection(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.WithError(OpLstat, "/x", os.ErrPermission).
		WithError(OpSymlink, "/y", os.ErrPermission).
		WithError(OpMkdir, "/z", os.ErrPermission).
		WithError(OpRemove, "/x", os.ErrPermission)

	_, err := mfs.Lstat("/x")
	assert.True(t, errors.Is(err, os.ErrPermission))

	// other ops on the same path are unaffected
	_, err = mfs.Stat("/x")
	assert.True(t, os.IsNotExist(err))

	assert.True(t, errors.Is(mfs.Symlink("/t", "/y"), os.ErrPermission))
	assert.True(t, errors.Is(mfs.MkdirAll("/z", 0755), os.ErrPermission))
	assert.True(t, errors.Is(mfs.Remove("/x"), os.ErrPermission))
}

func TestMemoryFS_StatsAndSnapshot(t *testing.T) {
	mfs := NewMemoryFS()
	require.NoError(t, mfs.WriteFile("/f", []byte("c"), 0644))
	require.NoError(t, mfs.Symlink("/f", "/l"))

	_, writes := mfs.Stats()
	assert.Equal(t, 2, writes)

	_, _ = mfs.Lstat("/l")
	reads, _ := mfs.Stats()
	assert.Equal(t, 1, reads)

	assert.Equal(t, map[string]string{
		"/":  "dir",
		"/f": "file:c",
		"/l": "link:/f",
	}, mfs.Snapshot())
}
