// Package remove implements the remove command: drop patterns from the
// rules file.
package remove

import (
	"github.com/heat1q/clir/pkg/logging"
	"github.com/heat1q/clir/pkg/rules"
	"github.com/heat1q/clir/pkg/types"
)

// Options holds options for the remove command
type Options struct {
	// RulesFile is the path of the flat rules file
	RulesFile string
	// WorkDir is joined onto relative patterns before normalization
	WorkDir string
	// Patterns are the raw patterns to drop
	Patterns []string
	// FS is the filesystem to operate on
	FS types.FS
}

// Result reports the rule set after the removal
type Result struct {
	Rules []string
}

// Remove normalizes the patterns and drops them from the rule set
func Remove(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.remove")

	ruleSet, err := rules.Load(rules.NewStore(opts.RulesFile, opts.FS), opts.FS, 0)
	if err != nil {
		return nil, err
	}
	if err := ruleSet.Remove(opts.Patterns, opts.WorkDir); err != nil {
		return nil, err
	}

	result := &Result{Rules: ruleSet.Strings()}
	logger.Info().Strs("rules", result.Rules).Msg("Patterns removed")
	return result, nil
}
