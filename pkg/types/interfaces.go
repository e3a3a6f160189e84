package types

import (
	"io/fs"
)

// FS is the filesystem interface required by the link reconciler
type FS interface {
	// Stat follows symlinks
	Stat(name string) (fs.FileInfo, error)

	// Lstat reports on the entry itself, never following a final symlink
	Lstat(name string) (fs.FileInfo, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Remove deletes a file, a symlink or an empty directory
	Remove(name string) error

	MkdirAll(path string, perm fs.FileMode) error
}

// Expander resolves a leading home directory placeholder ("~") into an
// absolute path.
type Expander interface {
	Expand(path string) (string, error)
}

// Confirmer asks the operator a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}
