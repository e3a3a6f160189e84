package links

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/testutil"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove_DeletesOwnedLink(t *testing.T) {
	f := newFixture(t)
	src := f.writeSource(t, "bashrc", "")
	require.NoError(t, f.fs.Symlink(src, "/home/u/.bashrc"))

	results, err := f.r.Remove(mappings("bashrc", "~/.bashrc"), testRoot)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, types.StatusUnlinked, results[0].Status)
	assert.False(t, f.fs.Exists("/home/u/.bashrc"))
	assert.True(t, f.fs.Exists(src))
	assert.Equal(t, []string{"Unlink: /home/u/.bashrc"}, f.lines())
}

func TestRemove_LeavesForeignEntries(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		check func(t *testing.T, f *fixture)
	}{
		{
			name:  "absent",
			setup: func(f *fixture) {},
			check: func(t *testing.T, f *fixture) {
				assert.False(t, f.fs.Exists("/home/u/.vimrc"))
			},
		},
		{
			name: "regular file",
			setup: func(f *fixture) {
				_ = f.fs.WriteFile("/home/u/.vimrc", []byte("mine"), 0644)
			},
			check: func(t *testing.T, f *fixture) {
				content, err := f.fs.ReadFile("/home/u/.vimrc")
				require.NoError(t, err)
				assert.Equal(t, "mine", string(content))
			},
		},
		{
			name: "symlink elsewhere",
			setup: func(f *fixture) {
				_ = f.fs.Symlink("/etc/vimrc", "/home/u/.vimrc")
			},
			check: func(t *testing.T, f *fixture) {
				target, err := f.fs.Readlink("/home/u/.vimrc")
				require.NoError(t, err)
				assert.Equal(t, "/etc/vimrc", target)
			},
		},
		{
			name: "relative link to the same file",
			setup: func(f *fixture) {
				_ = f.fs.Symlink("dotfiles/vimrc", "/home/u/.vimrc")
			},
			check: func(t *testing.T, f *fixture) {
				assert.True(t, f.fs.Exists("/home/u/.vimrc"))
			},
		},
		{
			name: "directory",
			setup: func(f *fixture) {
				_ = f.fs.MkdirAll("/home/u/.vimrc", 0755)
			},
			check: func(t *testing.T, f *fixture) {
				info, err := f.fs.Lstat("/home/u/.vimrc")
				require.NoError(t, err)
				assert.True(t, info.IsDir())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.writeSource(t, "vimrc", "")
			tt.setup(f)

			results, err := f.r.Remove(mappings("vimrc", "~/.vimrc"), testRoot)
			require.NoError(t, err)
			assert.Equal(t, types.StatusSkippedNotLinked, results[0].Status)
			assert.Equal(t, []string{
				"/home/u/.vimrc does not symlink to /home/u/dotfiles/vimrc. Skipping.",
			}, f.lines())
			tt.check(t, f)
		})
	}
}

func TestRemove_SourceNeedNotExist(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.fs.Symlink(testRoot+"/deleted", "/home/u/.deleted"))

	results, err := f.r.Remove(mappings("deleted", "~/.deleted"), testRoot)
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnlinked, results[0].Status)
	assert.False(t, f.fs.Exists("/home/u/.deleted"))
}

func TestRemove_FailureIsFatal(t *testing.T) {
	f := newFixture(t)
	a := f.writeSource(t, "a", "")
	b := f.writeSource(t, "b", "")
	require.NoError(t, f.fs.Symlink(a, "/home/u/.a"))
	require.NoError(t, f.fs.Symlink(b, "/home/u/.b"))
	f.fs.WithError(testutil.OpRemove, "/home/u/.a", fmt.Errorf("busy"))

	results, err := f.r.Remove(mappings("a", "~/.a", "b", "~/.b"), testRoot)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRemove))
	assert.Empty(t, results)
	assert.True(t, f.fs.Exists("/home/u/.b"))
}

func TestRemove_ExpansionFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.r = New(Options{FS: f.fs, Expander: failingExpander{}, Out: f.out})

	_, err := f.r.Remove(mappings("bashrc", "~/.bashrc"), testRoot)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathExpansion))
}

func TestList(t *testing.T) {
	f := newFixture(t)
	a := f.writeSource(t, "a", "")
	f.writeSource(t, "b", "")
	f.writeSource(t, "c", "")
	require.NoError(t, f.fs.Symlink(a, "/home/u/.a"))
	require.NoError(t, f.fs.WriteFile("/home/u/.b", []byte("x"), 0644))
	before := f.fs.Snapshot()

	results, err := f.r.List(mappings("a", "~/.a", "b", "~/.b", "c", "~/.c"), testRoot)
	require.NoError(t, err)

	assert.Equal(t, []string{"/home/u/.a"}, results.Destinations(types.StatusInstalled))
	assert.Equal(t, []string{"/home/u/.b", "/home/u/.c"}, results.Destinations(types.StatusNotInstalled))
	assert.Equal(t, []string{"Link: /home/u/dotfiles/a -> /home/u/.a"}, f.lines())
	assert.Equal(t, before, f.fs.Snapshot())
}

func TestList_ExpansionFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.r = New(Options{FS: f.fs, Expander: failingExpander{}, Out: f.out})

	_, err := f.r.List(mappings("bashrc", "~/.bashrc"), testRoot)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathExpansion))
}

func TestIsActualLink(t *testing.T) {
	f := newFixture(t)
	src := f.writeSource(t, "vimrc", "")
	require.NoError(t, f.fs.Symlink(src, "/home/u/.exact"))
	require.NoError(t, f.fs.Symlink(src+"/", "/home/u/.slash"))
	require.NoError(t, f.fs.Symlink("/elsewhere", "/home/u/.other"))
	require.NoError(t, f.fs.WriteFile("/home/u/.file", nil, 0644))
	require.NoError(t, f.fs.Symlink(src, "/home/u/.broken"))
	f.fs.WithError(testutil.OpReadlink, "/home/u/.broken", fmt.Errorf("io error"))

	assert.True(t, f.r.IsActualLink(src, "/home/u/.exact"))
	assert.False(t, f.r.IsActualLink(src, "/home/u/.slash"))
	assert.False(t, f.r.IsActualLink(src, "/home/u/.other"))
	assert.False(t, f.r.IsActualLink(src, "/home/u/.file"))
	assert.False(t, f.r.IsActualLink(src, "/home/u/.missing"))
	assert.False(t, f.r.IsActualLink(src, "/home/u/.broken"))
}
