package filesystem

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/heat1q/clir/pkg/types"
)

// Sizer computes recursive path sizes with a bounded worker fan-out over
// directory entries. The walk is read-only, so concurrent Size calls for
// different paths are safe and share the same worker budget.
type Sizer struct {
	fs  types.FS
	sem chan struct{}
}

// NewSizer creates a Sizer with the given worker limit. A limit of zero
// or less defaults to the number of CPUs.
func NewSizer(fsys types.FS, workers int) *Sizer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Sizer{
		fs:  fsys,
		sem: make(chan struct{}, workers),
	}
}

// Size returns the total size in bytes of the file or directory tree at
// path. Files and symlinks contribute their own length; directories
// contribute the sum of their entries. Unreadable entries count as zero,
// a size probe must never fail the enclosing operation.
func (s *Sizer) Size(path string) uint64 {
	info, err := s.fs.Lstat(path)
	if err != nil {
		return 0
	}
	return s.size(path, info)
}

func (s *Sizer) size(path string, info fs.FileInfo) uint64 {
	if !info.IsDir() {
		return uint64(info.Size())
	}

	entries, err := s.fs.ReadDir(path)
	if err != nil {
		return 0
	}

	var total atomic.Uint64
	var wg sync.WaitGroup
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		childInfo, err := entry.Info()
		if err != nil {
			continue
		}

		// Descend in a worker when one is free, inline otherwise.
		// Acquiring non-blockingly keeps deep recursion from
		// deadlocking on its own worker budget.
		select {
		case s.sem <- struct{}{}:
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-s.sem }()
				total.Add(s.size(child, childInfo))
			}()
		default:
			total.Add(s.size(child, childInfo))
		}
	}
	wg.Wait()

	return total.Load()
}
