// Package add implements the add command: register new patterns in the
// rules file.
package add

import (
	"github.com/heat1q/clir/pkg/logging"
	"github.com/heat1q/clir/pkg/rules"
	"github.com/heat1q/clir/pkg/types"
)

// Options holds options for the add command
type Options struct {
	// RulesFile is the path of the flat rules file
	RulesFile string
	// WorkDir is joined onto relative patterns before normalization
	WorkDir string
	// Patterns are the raw patterns to register
	Patterns []string
	// FS is the filesystem to operate on
	FS types.FS
}

// Result reports the rule set after the addition
type Result struct {
	Rules []string
}

// Add normalizes and registers the patterns. Duplicates are no-ops.
func Add(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.add")

	ruleSet, err := rules.Load(rules.NewStore(opts.RulesFile, opts.FS), opts.FS, 0)
	if err != nil {
		return nil, err
	}
	if err := ruleSet.Add(opts.Patterns, opts.WorkDir); err != nil {
		return nil, err
	}

	result := &Result{Rules: ruleSet.Strings()}
	logger.Info().Strs("rules", result.Rules).Msg("Patterns added")
	return result, nil
}
