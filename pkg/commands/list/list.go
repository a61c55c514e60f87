// Package list implements the default command: expand every rule and
// report the deduplicated space each would free.
package list

import (
	"github.com/heat1q/clir/pkg/logging"
	"github.com/heat1q/clir/pkg/rules"
	"github.com/heat1q/clir/pkg/types"
)

// Options holds options for the list command
type Options struct {
	// RulesFile is the path of the flat rules file
	RulesFile string
	// Workers bounds the parallel fan-out
	Workers int
	// FS is the filesystem to operate on
	FS types.FS
}

// Result carries the report plus the loaded rule set and expanded
// patterns, so a follow-up clean can reuse them without re-expanding.
type Result struct {
	Report   *types.Report
	Expanded []*rules.ExpandedPattern
	RuleSet  *rules.RuleSet
}

// List loads the rule set and runs the full expand/deduplicate/resolve
// pipeline.
func List(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.list")

	ruleSet, err := rules.Load(rules.NewStore(opts.RulesFile, opts.FS), opts.FS, opts.Workers)
	if err != nil {
		return nil, err
	}

	expanded, err := ruleSet.List()
	if err != nil {
		return nil, err
	}

	report := rules.Report(expanded)
	logger.Debug().
		Int("patterns", len(expanded)).
		Uint64("total_size", report.TotalSize).
		Msg("Expanded rules")

	return &Result{Report: report, Expanded: expanded, RuleSet: ruleSet}, nil
}
