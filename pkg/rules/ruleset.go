package rules

import (
	"runtime"
	"sort"
	"sync"

	"github.com/heat1q/clir/pkg/filesystem"
	"github.com/heat1q/clir/pkg/logging"
	"github.com/heat1q/clir/pkg/pathtree"
	"github.com/heat1q/clir/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RuleSet owns the persisted collection of patterns, unique by their
// normalized string, and orchestrates expansion, tree construction, size
// resolution and deletion across all of them.
type RuleSet struct {
	store    *Store
	fs       types.FS
	sizer    *filesystem.Sizer
	workers  int
	patterns map[string]Pattern
	logger   zerolog.Logger
}

// Load reads the persisted patterns from the store. Entries that fail
// normalization are skipped, only storage I/O failures propagate.
func Load(store *Store, fsys types.FS, workers int) (*RuleSet, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rs := &RuleSet{
		store:    store,
		fs:       fsys,
		sizer:    filesystem.NewSizer(fsys, workers),
		workers:  workers,
		patterns: make(map[string]Pattern),
		logger:   logging.GetLogger("rules.ruleset"),
	}

	lines, err := store.Load()
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		pattern, err := NewPattern(line, "/")
		if err != nil {
			rs.logger.Warn().Err(err).Str("entry", line).Msg("Skipping invalid rules entry")
			continue
		}
		rs.patterns[pattern.String()] = pattern
	}

	return rs, nil
}

// Add normalizes the raw patterns against baseDir and inserts them into
// the set. Duplicates are no-ops, invalid patterns are skipped. The store
// is rewritten afterwards.
func (r *RuleSet) Add(rawPatterns []string, baseDir string) error {
	for _, raw := range rawPatterns {
		pattern, err := NewPattern(raw, baseDir)
		if err != nil {
			r.logger.Warn().Err(err).Str("pattern", raw).Msg("Skipping invalid pattern")
			continue
		}
		r.patterns[pattern.String()] = pattern
	}
	r.logger.Info().Strs("rules", r.Strings()).Msg("Rules updated")
	return r.store.Save(r.Strings())
}

// Remove drops the given patterns from the set and rewrites the store
func (r *RuleSet) Remove(rawPatterns []string, baseDir string) error {
	for _, raw := range rawPatterns {
		pattern, err := NewPattern(raw, baseDir)
		if err != nil {
			continue
		}
		delete(r.patterns, pattern.String())
	}
	return r.store.Save(r.Strings())
}

// Patterns returns the rules in sorted order
func (r *RuleSet) Patterns() []Pattern {
	out := make([]Pattern, 0, len(r.patterns))
	for _, p := range r.patterns {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pattern < out[j].pattern })
	return out
}

// Strings returns the sorted normalized pattern strings
func (r *RuleSet) Strings() []string {
	patterns := r.Patterns()
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p.String())
	}
	return out
}

// List expands all rules and resolves their deduplicated sizes. Empty
// patterns are filtered out and the result is sorted ascending by size.
//
// The tree-build phase iterates rules in sorted pattern order rather than
// map order, so overlap attribution is deterministic across runs: when
// two rules resolve to overlapping paths, the lexicographically later
// pattern is the last writer and owns the shared bytes.
func (r *RuleSet) List() ([]*ExpandedPattern, error) {
	patterns := r.Patterns()
	expanded := make([]*ExpandedPattern, len(patterns))

	// phase 1: glob expansion, parallel across rules
	var eg errgroup.Group
	eg.SetLimit(r.workers)
	for i, pattern := range patterns {
		i, pattern := i, pattern
		eg.Go(func() error {
			expanded[i] = pattern.Expand(r.fs)
			return nil
		})
	}
	_ = eg.Wait()

	// phase 2: tree build, single writer, fixed order
	tree := pathtree.New()
	for _, ep := range expanded {
		ep.InsertInto(tree, r.sizer)
	}

	// phase 3: size resolution, tree is read-only from here on
	var rg errgroup.Group
	rg.SetLimit(r.workers)
	for _, ep := range expanded {
		ep := ep
		rg.Go(func() error {
			ep.ResolveSize(tree)
			return nil
		})
	}
	_ = rg.Wait()

	result := make([]*ExpandedPattern, 0, len(expanded))
	for _, ep := range expanded {
		if ep.IsEmpty() {
			continue
		}
		result = append(result, ep)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Size() != result[j].Size() {
			return result[i].Size() < result[j].Size()
		}
		return result[i].Pattern.String() < result[j].Pattern.String()
	})

	return result, nil
}

// Clean deletes the surviving paths of the given expanded patterns in
// parallel. The patterns come out of List deduplicated and disjoint, so
// no two of them touch the same path.
func (r *RuleSet) Clean(expanded []*ExpandedPattern) *CleanResult {
	result := &CleanResult{}
	var mu sync.Mutex

	var eg errgroup.Group
	eg.SetLimit(r.workers)
	for _, ep := range expanded {
		ep := ep
		eg.Go(func() error {
			res := ep.Clean(r.fs)
			mu.Lock()
			result.Merge(res)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	return result
}

// CleanAll lists all rules and deletes everything they resolve to
func (r *RuleSet) CleanAll() (*CleanResult, error) {
	expanded, err := r.List()
	if err != nil {
		return nil, err
	}
	return r.Clean(expanded), nil
}

// Report assembles the display report from expanded patterns
func Report(expanded []*ExpandedPattern) *types.Report {
	report := &types.Report{}
	for _, ep := range expanded {
		report.Entries = append(report.Entries, types.PatternEntry{
			Pattern:  ep.Pattern.String(),
			Size:     ep.Size(),
			NumFiles: ep.NumFiles(),
			NumDirs:  ep.NumDirs(),
		})
		report.TotalSize += ep.Size()
		report.TotalFiles += ep.NumFiles()
		report.TotalDirs += ep.NumDirs()
	}
	return report
}
