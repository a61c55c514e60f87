package types

import "io/fs"

// FS abstracts the filesystem operations the rules engine needs, so tests
// can substitute temp-directory or error-injecting implementations.
type FS interface {
	// Stat returns file info following symlinks
	Stat(name string) (fs.FileInfo, error)

	// Lstat returns file info without following symlinks
	Lstat(name string) (fs.FileInfo, error)

	// ReadDir reads the named directory
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to the named file
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Rename renames (moves) a file
	Rename(oldpath, newpath string) error

	// Remove removes a single file or empty directory
	Remove(name string) error

	// RemoveAll removes a path and any children it contains
	RemoveAll(path string) error

	// Glob returns the paths matching the given pattern. The pattern
	// syntax supports doublestar (**) recursive wildcards.
	Glob(pattern string) ([]string, error)

	// Canonicalize resolves symlinks and returns the absolute path of an
	// existing file or directory.
	Canonicalize(path string) (string, error)
}
