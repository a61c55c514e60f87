package testutil

import "github.com/heat1q/clir/pkg/types"

// FailFS wraps a types.FS and fails removals of configured paths, for
// exercising best-effort deletion without relying on real permission
// errors (tests often run as root, where chmod does not bite).
type FailFS struct {
	types.FS

	// RemoveErrs maps paths to the error their removal should return
	RemoveErrs map[string]error
}

// NewFailFS wraps base with removal fault injection
func NewFailFS(base types.FS) *FailFS {
	return &FailFS{FS: base, RemoveErrs: make(map[string]error)}
}

func (f *FailFS) Remove(name string) error {
	if err, ok := f.RemoveErrs[name]; ok {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FailFS) RemoveAll(path string) error {
	if err, ok := f.RemoveErrs[path]; ok {
		return err
	}
	return f.FS.RemoveAll(path)
}
