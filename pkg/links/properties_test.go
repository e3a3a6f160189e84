package links

import (
	"testing"

	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMappings() []types.Mapping {
	return mappings(
		"bashrc", "~/.bashrc",
		"vimrc", "~/.vimrc",
		"nvim/init.lua", "~/.config/nvim/init.lua",
		"missing", "~/.missing",
	)
}

func populate(t *testing.T, f *fixture) {
	t.Helper()
	f.writeSource(t, "bashrc", "alias ll='ls -l'")
	f.writeSource(t, "vimrc", "set nocompatible")
	f.writeSource(t, "nvim/init.lua", "vim.opt.number = true")
}

func TestInstallIsIdempotent(t *testing.T) {
	f := newFixture(t, true, true, true, true)
	populate(t, f)

	_, err := f.r.Install(sampleMappings(), testRoot, false, false)
	require.NoError(t, err)
	first := f.fs.Snapshot()

	// Reinstalling replaces each link with an identical one.
	_, err = f.r.Install(sampleMappings(), testRoot, false, false)
	require.NoError(t, err)
	assert.Equal(t, first, f.fs.Snapshot())

	_, err = f.r.Install(sampleMappings(), testRoot, true, false)
	require.NoError(t, err)
	assert.Equal(t, first, f.fs.Snapshot())
}

func TestInstallThenRemoveRoundTrip(t *testing.T) {
	f := newFixture(t)
	populate(t, f)
	require.NoError(t, f.fs.MkdirAll("/home/u/.config/nvim", 0755))
	before := f.fs.Snapshot()

	installed, err := f.r.Install(sampleMappings(), testRoot, false, false)
	require.NoError(t, err)
	assert.Equal(t, 3, installed.Count(types.StatusLinked))

	removed, err := f.r.Remove(sampleMappings(), testRoot)
	require.NoError(t, err)
	assert.Equal(t, 3, removed.Count(types.StatusUnlinked))
	assert.Equal(t, 1, removed.Count(types.StatusSkippedNotLinked))

	assert.Equal(t, before, f.fs.Snapshot())
}

func TestListAgreesWithRemove(t *testing.T) {
	f := newFixture(t)
	populate(t, f)
	require.NoError(t, f.fs.Symlink(testRoot+"/bashrc", "/home/u/.bashrc"))
	require.NoError(t, f.fs.Symlink("/etc/vimrc", "/home/u/.vimrc"))

	listed, err := f.r.List(sampleMappings(), testRoot)
	require.NoError(t, err)

	removed, err := f.r.Remove(sampleMappings(), testRoot)
	require.NoError(t, err)

	assert.Equal(t, listed.Destinations(types.StatusInstalled), removed.Destinations(types.StatusUnlinked))
	assert.Equal(t, []string{"/home/u/.bashrc"}, removed.Destinations(types.StatusUnlinked))
}

func TestRemoveNeverTouchesForeignEntries(t *testing.T) {
	f := newFixture(t)
	populate(t, f)
	require.NoError(t, f.fs.WriteFile("/home/u/.bashrc", []byte("local"), 0644))
	require.NoError(t, f.fs.Symlink("/etc/vimrc", "/home/u/.vimrc"))
	before := f.fs.Snapshot()

	results, err := f.r.Remove(sampleMappings(), testRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, results.Count(types.StatusUnlinked))
	assert.Equal(t, before, f.fs.Snapshot())
}

func TestBashrcScenario(t *testing.T) {
	f := newFixture(t)
	f.writeSource(t, "bash/.bashrc", "")
	m := mappings("bash/.bashrc", "~/.bashrc")

	_, err := f.r.Install(m, testRoot, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Link: /home/u/dotfiles/bash/.bashrc -> /home/u/.bashrc"}, f.lines())
	target, err := f.fs.Readlink("/home/u/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/dotfiles/bash/.bashrc", target)

	f.out.Reset()
	_, err = f.r.List(m, testRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{"Link: /home/u/dotfiles/bash/.bashrc -> /home/u/.bashrc"}, f.lines())

	f.out.Reset()
	_, err = f.r.Remove(m, testRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{"Unlink: /home/u/.bashrc"}, f.lines())
	assert.False(t, f.fs.Exists("/home/u/.bashrc"))

	// The source is untouched
	assert.True(t, f.fs.Exists("/home/u/dotfiles/bash/.bashrc"))
}
