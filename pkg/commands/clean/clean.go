// Package clean implements the clean command: list, then best-effort
// delete everything the rules resolve to.
package clean

import (
	"github.com/heat1q/clir/pkg/commands/list"
	"github.com/heat1q/clir/pkg/logging"
	"github.com/heat1q/clir/pkg/rules"
	"github.com/heat1q/clir/pkg/types"
)

// Options holds options for the clean command
type Options struct {
	// RulesFile is the path of the flat rules file
	RulesFile string
	// Workers bounds the parallel fan-out
	Workers int
	// FS is the filesystem to operate on
	FS types.FS
}

// Result carries the report of what was targeted and the deletion outcome
type Result struct {
	Report *types.Report
	Clean  *rules.CleanResult
}

// Clean expands all rules and deletes their surviving paths. Per-path
// failures are logged and skipped; only rules storage errors propagate.
func Clean(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.clean")

	listed, err := list.List(list.Options{
		RulesFile: opts.RulesFile,
		Workers:   opts.Workers,
		FS:        opts.FS,
	})
	if err != nil {
		return nil, err
	}

	cleanResult := listed.RuleSet.Clean(listed.Expanded)
	logger.Info().
		Int("removed", len(cleanResult.Removed)).
		Int("failed", len(cleanResult.Failed)).
		Msg("Clean finished")

	return &Result{Report: listed.Report, Clean: cleanResult}, nil
}
