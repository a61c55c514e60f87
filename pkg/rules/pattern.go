package rules

import (
	"github.com/heat1q/clir/pkg/errors"
	"github.com/heat1q/clir/pkg/filesystem"
	"github.com/heat1q/clir/pkg/logging"
	"github.com/heat1q/clir/pkg/paths"
	"github.com/heat1q/clir/pkg/pathtree"
	"github.com/heat1q/clir/pkg/types"
)

// Pattern is a single persisted rule. It is immutable and identified by
// its normalized pattern string; only that string is ever persisted.
type Pattern struct {
	pattern string
}

// NewPattern normalizes raw against baseDir and returns the resulting
// pattern. Glob metacharacters pass through normalization untouched.
func NewPattern(raw, baseDir string) (Pattern, error) {
	normalized, err := paths.Normalize(raw, baseDir)
	if err != nil {
		return Pattern{}, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid pattern %q", raw)
	}
	return Pattern{pattern: normalized}, nil
}

func (p Pattern) String() string {
	return p.pattern
}

// Expand matches the pattern against the filesystem and canonicalizes
// every match. Matches that cannot be canonicalized or statted (for
// example vanished between match and stat) are dropped silently, and
// matches that canonicalize to the same path (a symlink and its target)
// collapse to one entry. Expand touches only the filesystem and per-rule
// state, so it is safe to run concurrently across rules.
func (p Pattern) Expand(fsys types.FS) *ExpandedPattern {
	ep := &ExpandedPattern{Pattern: p}

	matches, err := fsys.Glob(p.pattern)
	if err != nil {
		logger := logging.GetLogger("rules.pattern")
		logger.Debug().
			Err(err).
			Str("pattern", p.pattern).
			Msg("Glob failed, dropping pattern")
		return ep
	}

	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		canonical, err := fsys.Canonicalize(match)
		if err != nil {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		info, err := fsys.Stat(canonical)
		if err != nil {
			continue
		}
		seen[canonical] = struct{}{}
		ep.matched = append(ep.matched, matchedPath{path: canonical, isDir: info.IsDir()})
	}

	return ep
}

type matchedPath struct {
	path  string
	isDir bool
}

// ExpandedPattern is the transient per-rule view created on every list or
// clean operation: the rule's concrete matches plus, once resolved
// against the shared tree, its deduplicated size and counts.
type ExpandedPattern struct {
	Pattern Pattern

	matched   []matchedPath
	surviving []matchedPath
	size      uint64
	numFiles  int
	numDirs   int
}

// InsertInto inserts every matched path into the shared tree. The size of
// a path is computed lazily by the tree, only when the path actually
// becomes a leaf. Must run strictly after expansion and strictly
// sequentially across rules: the last writer to an overlapping path owns
// its size.
func (ep *ExpandedPattern) InsertInto(tree *pathtree.Tree, sizer *filesystem.Sizer) {
	for _, mp := range ep.matched {
		if tree.ContainsAncestor(mp.path) {
			// already owned by an ancestor leaf
			continue
		}
		path := mp.path
		tree.Insert(path, func() uint64 { return sizer.Size(path) })
	}
}

// ResolveSize queries the tree for each matched path and keeps only the
// paths that survived deduplication. A pattern whose every path was
// subsumed ends up empty. The tree is read-only here, so resolving may
// run concurrently across rules.
func (ep *ExpandedPattern) ResolveSize(tree *pathtree.Tree) {
	ep.surviving = ep.surviving[:0]
	ep.size, ep.numFiles, ep.numDirs = 0, 0, 0

	for _, mp := range ep.matched {
		size, ok := tree.SizeAt(mp.path)
		if !ok {
			continue
		}
		ep.size += size
		if mp.isDir {
			ep.numDirs++
		} else {
			ep.numFiles++
		}
		ep.surviving = append(ep.surviving, mp)
	}
}

// Size returns the deduplicated size resolved against the tree
func (ep *ExpandedPattern) Size() uint64 {
	return ep.size
}

// NumFiles returns the number of surviving file matches
func (ep *ExpandedPattern) NumFiles() int {
	return ep.numFiles
}

// NumDirs returns the number of surviving directory matches
func (ep *ExpandedPattern) NumDirs() int {
	return ep.numDirs
}

// IsEmpty reports whether the pattern has no surviving matches
func (ep *ExpandedPattern) IsEmpty() bool {
	return ep.numFiles+ep.numDirs == 0
}

// Paths returns the surviving matched paths
func (ep *ExpandedPattern) Paths() []string {
	out := make([]string, 0, len(ep.surviving))
	for _, mp := range ep.surviving {
		out = append(out, mp.path)
	}
	return out
}

// CleanResult collects the outcome of a best-effort deletion run
type CleanResult struct {
	Removed []string
	Failed  []string
}

// Merge folds other into the result
func (r *CleanResult) Merge(other *CleanResult) {
	r.Removed = append(r.Removed, other.Removed...)
	r.Failed = append(r.Failed, other.Failed...)
}

// Clean deletes every surviving path: directories recursively, files
// individually. Failures are logged and skipped, deleting one path never
// aborts the rest of the pattern.
func (ep *ExpandedPattern) Clean(fsys types.FS) *CleanResult {
	logger := logging.GetLogger("rules.clean")
	result := &CleanResult{}

	for _, mp := range ep.surviving {
		var err error
		if mp.isDir {
			err = fsys.RemoveAll(mp.path)
		} else {
			err = fsys.Remove(mp.path)
		}
		if err != nil {
			logger.Warn().Err(err).Str("path", mp.path).Msg("Failed to remove path")
			result.Failed = append(result.Failed, mp.path)
			continue
		}
		logger.Info().Str("path", mp.path).Str("pattern", ep.Pattern.String()).Msg("Removed path")
		result.Removed = append(result.Removed, mp.path)
	}

	return result
}
