package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// maxSymlinkHops bounds symlink resolution, mirroring the kernel's ELOOP limit
const maxSymlinkHops = 40

// Operation names accepted by MemoryFS.WithError
const (
	OpStat     = "stat"
	OpLstat    = "lstat"
	OpReadlink = "readlink"
	OpSymlink  = "symlink"
	OpRemove   = "remove"
	OpMkdir    = "mkdir"
)

// MemoryFS implements types.FS interface with in-memory storage
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection, keyed by op + path
	errorPaths map[string]error

	// Statistics
	readCount  int
	writeCount int
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem containing only "/"
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		errorPaths: make(map[string]error),
	}
}

// normalizePath converts a path to absolute, clean form
func normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join("/", path)
	}
	return filepath.Clean(path)
}

func errorKey(op, path string) string {
	return op + "\x00" + normalizePath(path)
}

// injected returns the error registered for op on path, if any
func (m *MemoryFS) injected(op, path string) error {
	return m.errorPaths[errorKey(op, path)]
}

// resolve walks path component by component, following symlinks in every
// directory component, and the final component too when follow is set.
func (m *MemoryFS) resolve(path string, follow bool) (string, *fileNode, error) {
	return m.resolveHops(normalizePath(path), follow, 0)
}

func (m *MemoryFS) resolveHops(path string, follow bool, hops int) (string, *fileNode, error) {
	if hops > maxSymlinkHops {
		return "", nil, errors.New("too many levels of symbolic links")
	}
	if path == "/" {
		return path, m.files["/"], nil
	}

	parentPath, parent, err := m.resolveHops(filepath.Dir(path), true, hops)
	if err != nil {
		return "", nil, err
	}
	if !parent.isDir {
		return "", nil, errors.New("not a directory")
	}

	name := filepath.Base(path)
	current := filepath.Join(parentPath, name)
	node, ok := parent.children[name]
	if !ok {
		return current, nil, fs.ErrNotExist
	}

	if node.isLink && follow {
		target := node.linkDest
		if !filepath.IsAbs(target) {
			target = filepath.Join(parentPath, target)
		}
		return m.resolveHops(filepath.Clean(target), true, hops+1)
	}
	return current, node, nil
}

// WriteFile writes data to a file, creating parent directories if necessary
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	path := normalizePath(name)
	if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	parentPath, parent, err := m.resolve(filepath.Dir(path), true)
	if err != nil {
		return &fs.PathError{Op: "open", Path: name, Err: err}
	}

	filename := filepath.Base(path)
	node := &fileNode{
		name:    filename,
		mode:    perm,
		modTime: time.Now(),
		content: append([]byte(nil), data...),
	}

	parent.children[filename] = node
	m.files[filepath.Join(parentPath, filename)] = node

	return nil
}

// ReadFile reads the entire file content, following symlinks
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	_, node, err := m.resolve(name, true)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	return append([]byte(nil), node.content...), nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	if err := m.injected(OpStat, name); err != nil {
		return nil, err
	}

	_, node, err := m.resolve(name, true)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following a final symlink
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	if err := m.injected(OpLstat, name); err != nil {
		return nil, err
	}

	_, node, err := m.resolve(name, false)
	if err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Readlink returns the destination of a symbolic link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++

	if err := m.injected(OpReadlink, name); err != nil {
		return "", err
	}

	_, node, err := m.resolve(name, false)
	if err != nil {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}

	return node.linkDest, nil
}

// Symlink creates newname as a symbolic link to oldname. The parent of
// newname must already exist.
func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	if err := m.injected(OpSymlink, newname); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}

	linkPath := normalizePath(newname)
	if _, _, err := m.resolve(linkPath, false); err == nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}

	parentPath, parent, err := m.resolve(filepath.Dir(linkPath), true)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	if !parent.isDir {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: errors.New("not a directory")}
	}

	filename := filepath.Base(linkPath)
	node := &fileNode{
		name:     filename,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: oldname,
	}

	parent.children[filename] = node
	m.files[filepath.Join(parentPath, filename)] = node

	return nil
}

// Remove removes a file, a symlink or an empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	if err := m.injected(OpRemove, name); err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}

	path, node, err := m.resolve(name, false)
	if err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}
	if path == "/" {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrPermission}
	}
	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	parent := m.files[filepath.Dir(path)]
	delete(parent.children, filepath.Base(path))
	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(m.files, p)
		}
	}

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	if err := m.injected(OpMkdir, path); err != nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = normalizePath(path)

	if _, node, err := m.resolve(path, true); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
		}
		return nil
	}

	if err := m.mkdirAll(filepath.Dir(path), perm); err != nil {
		return err
	}

	parentPath, parent, err := m.resolve(filepath.Dir(path), true)
	if err != nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}

	name := filepath.Base(path)
	if existing, ok := parent.children[name]; ok && !existing.isDir {
		// a dangling symlink or a file occupies the name
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}

	dir := &fileNode{
		name:     name,
		mode:     perm | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}
	parent.children[name] = dir
	m.files[filepath.Join(parentPath, name)] = dir

	return nil
}

// Exists reports whether an entry exists at path without following a final symlink
func (m *MemoryFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, _, err := m.resolve(path, false)
	return err == nil
}

// WithError configures the filesystem to return err for op on path
func (m *MemoryFS) WithError(op, path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[errorKey(op, path)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.writeCount
}

// Snapshot returns every entry below "/" mapped to a short description:
// "dir", "file:<content>" or "link:<target>". It is meant for before/after
// comparisons in tests.
func (m *MemoryFS) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := make(map[string]string, len(m.files))
	for path, node := range m.files {
		switch {
		case node.isLink:
			snap[path] = "link:" + node.linkDest
		case node.isDir:
			snap[path] = "dir"
		default:
			snap[path] = "file:" + string(node.content)
		}
	}
	return snap
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return nil }
