package types

// PatternEntry is one row of the cleanup report: a pattern together with
// its deduplicated size and the counts of its surviving matches.
type PatternEntry struct {
	Pattern  string
	Size     uint64
	NumFiles int
	NumDirs  int
}

// Report is the ordered result of expanding all rules: entries ascending
// by size, empty patterns already filtered out, plus grand totals.
type Report struct {
	Entries    []PatternEntry
	TotalSize  uint64
	TotalFiles int
	TotalDirs  int
}

// IsEmpty reports whether there is nothing to clean
func (r *Report) IsEmpty() bool {
	return r.TotalSize == 0 && len(r.Entries) == 0
}
