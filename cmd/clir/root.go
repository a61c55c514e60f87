package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/heat1q/clir/internal/version"
	"github.com/heat1q/clir/pkg/commands/add"
	"github.com/heat1q/clir/pkg/commands/list"
	"github.com/heat1q/clir/pkg/commands/remove"
	"github.com/heat1q/clir/pkg/config"
	"github.com/heat1q/clir/pkg/filesystem"
	"github.com/heat1q/clir/pkg/logging"
	"github.com/heat1q/clir/pkg/ui/display"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbosity int
	absolute  bool
	runClean  bool
	confirm   bool
)

// NewRootCmd builds the clir command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clir",
		Short: "A command line cleaning utility",
		Long: `clir resolves registered paths and glob patterns, reports how much disk
space each would free (without double counting overlapping rules) and
optionally deletes the matches.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to alternative rules file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v WARN, -vv INFO, -vvv TRACE)")
	rootCmd.Flags().BoolVarP(&absolute, "absolute-path", "a", false, "Display absolute paths")
	rootCmd.Flags().BoolVarP(&runClean, "run", "r", false, "Recursively clean all defined patterns")
	rootCmd.Flags().BoolVarP(&confirm, "confirm", "y", false, "Confirm cleaning all patterns")

	rootCmd.AddCommand(newAddCmd(), newRemoveCmd(), versionCmd)
	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	workdir, err := os.Getwd()
	if err != nil {
		return err
	}

	result, err := list.List(list.Options{
		RulesFile: cfg.RulesFile,
		Workers:   cfg.Workers,
		FS:        filesystem.NewOS(),
	})
	if err != nil {
		return err
	}

	renderer := display.New(cmd.OutOrStdout(), workdir, absolute, display.ColorEnabled(cfg.Color))
	if err := renderer.RenderReport(result.Report); err != nil {
		return err
	}

	if !runClean || result.Report.IsEmpty() {
		return nil
	}

	if !confirm && !promptConfirmation(cmd) {
		pterm.Info.Println("Aborting...")
		return nil
	}

	cleaned := result.RuleSet.Clean(result.Expanded)
	if verbosity > 0 {
		for _, path := range cleaned.Removed {
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", path)
		}
	}
	if len(cleaned.Failed) > 0 {
		pterm.Warning.Printfln("failed to remove %d path(s), rerun with -v for details", len(cleaned.Failed))
	}
	return nil
}

func promptConfirmation(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "Clean all selected paths? [y/N]: ")
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <pattern>...",
		Short: "Add new path(s) or glob pattern(s)",
		Long:  "Add one or more paths or glob patterns to the rules file. Paths can either be relative or absolute.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			workdir, err := os.Getwd()
			if err != nil {
				return err
			}
			result, err := add.Add(add.Options{
				RulesFile: cfg.RulesFile,
				WorkDir:   workdir,
				Patterns:  args,
				FS:        filesystem.NewOS(),
			})
			if err != nil {
				return err
			}
			pterm.Success.Printfln("%d rule(s) registered", len(result.Rules))
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <pattern>...",
		Short: "Remove paths or patterns",
		Long:  "Remove one or more paths or glob patterns from the rules file. Paths can either be relative or absolute.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			workdir, err := os.Getwd()
			if err != nil {
				return err
			}
			result, err := remove.Remove(remove.Options{
				RulesFile: cfg.RulesFile,
				WorkDir:   workdir,
				Patterns:  args,
				FS:        filesystem.NewOS(),
			})
			if err != nil {
				return err
			}
			pterm.Success.Printfln("%d rule(s) remaining", len(result.Rules))
			return nil
		},
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clir version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
