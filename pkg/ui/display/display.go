// Package display renders the cleanup report for the terminal: one row
// per pattern with a usage bar, a human-readable size and match counts,
// followed by a boxed summary.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/heat1q/clir/pkg/config"
	"github.com/heat1q/clir/pkg/types"
	"github.com/mattn/go-isatty"
)

// barScale is the number of cells in a usage bar
const barScale = 8

// Renderer writes reports to a terminal-ish writer
type Renderer struct {
	w        io.Writer
	workdir  string
	absolute bool

	boxStyle  lipgloss.Style
	barStyle  lipgloss.Style
	sizeStyle lipgloss.Style
}

// New creates a renderer. Paths are shown relative to workdir unless
// absolute is set.
func New(w io.Writer, workdir string, absolute, color bool) *Renderer {
	r := &Renderer{
		w:        w,
		workdir:  workdir,
		absolute: absolute,
		boxStyle: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
	}
	if color {
		r.barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
		r.sizeStyle = lipgloss.NewStyle().Bold(true)
	}
	return r
}

// ColorEnabled resolves a configured color mode against the terminal
func ColorEnabled(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// RenderReport writes the full report: entries ascending by size (as
// produced by the rule set) and the boxed totals.
func (r *Renderer) RenderReport(report *types.Report) error {
	if report.IsEmpty() {
		return r.writeBoxed("There is nothing to do :)")
	}

	for _, entry := range report.Entries {
		if err := r.writeEntry(entry, report.TotalSize); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("[%s]  %s    %s",
		strings.Repeat("|", barScale),
		FormatSize(report.TotalSize),
		formatCounts(report.TotalFiles, report.TotalDirs),
	)
	return r.writeBoxed(summary)
}

func (r *Renderer) writeEntry(entry types.PatternEntry, totalSize uint64) error {
	quota := 0
	if totalSize > 0 {
		quota = int(float64(entry.Size) / float64(totalSize) * barScale)
	}
	if quota < barScale {
		quota++
	}
	bar := strings.Repeat("|", quota) + strings.Repeat(" ", barScale-quota)

	path := entry.Pattern
	if !r.absolute {
		path = RelativePath(r.workdir, entry.Pattern)
	}

	_, err := fmt.Fprintf(r.w, "  [%s]  %-8s %s (%d files, %d dirs)\n",
		r.barStyle.Render(bar),
		r.sizeStyle.Render(FormatSize(entry.Size)),
		path,
		entry.NumFiles,
		entry.NumDirs,
	)
	return err
}

func (r *Renderer) writeBoxed(text string) error {
	_, err := fmt.Fprintln(r.w, r.boxStyle.Render(text))
	return err
}

func formatCounts(numFiles, numDirs int) string {
	switch {
	case numFiles == 0:
		return fmt.Sprintf("%d directory(ies) to be freed", numDirs)
	case numDirs == 0:
		return fmt.Sprintf("%d file(s) to be freed", numFiles)
	default:
		return fmt.Sprintf("%d file(s) and %d directory(ies) to be freed", numFiles, numDirs)
	}
}

// RelativePath renders path relative to workdir, unless that would
// require climbing more than two directories, in which case the absolute
// path is clearer.
func RelativePath(workdir, path string) string {
	pathParts := splitNonEmpty(path)
	wdParts := splitNonEmpty(workdir)

	shared := 0
	for shared < len(wdParts) && shared < len(pathParts) && wdParts[shared] == pathParts[shared] {
		shared++
	}

	numDirsUp := len(wdParts) - shared
	if numDirsUp > 2 {
		return path
	}

	rel := make([]string, 0, numDirsUp+len(pathParts)-shared)
	for i := 0; i < numDirsUp; i++ {
		rel = append(rel, "..")
	}
	rel = append(rel, pathParts[shared:]...)
	if len(rel) == 0 {
		return "."
	}
	return strings.Join(rel, "/")
}

func splitNonEmpty(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
