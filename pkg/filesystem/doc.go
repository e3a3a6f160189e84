// Package filesystem provides filesystem implementations for dotman.
//
// This package contains implementations of the types.FS interface built on
// afero. Symlink support comes from afero's optional Lstater, Linker and
// LinkReader interfaces, so a backing filesystem without them reports
// afero.ErrNoSymlink / afero.ErrNoReadlink instead of silently faking links.
package filesystem
