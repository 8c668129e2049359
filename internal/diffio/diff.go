// Package diffio renders the human-facing output of check mode: unified
// diffs between a script and its formatted form, and a per-file summary
// table.
package diffio

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
	hunkColor   = color.New(color.FgCyan)
	headerColor = color.New(color.Bold)
)

// Unified builds a unified diff between the original and formatted text of
// one file, with three lines of context. The result is empty when the two
// are identical.
func Unified(path, original, formatted string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: path + " (original)",
		ToFile:   path + " (formatted)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff %q: %w", path, err)
	}
	return text, nil
}

// Colorize applies conventional diff colors line by line. When enabled is
// false the input is returned untouched.
func Colorize(diff string, enabled bool) string {
	if !enabled || diff == "" {
		return diff
	}
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	b.Grow(len(diff))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			b.WriteString(headerColor.Sprint(strings.TrimSuffix(line, "\n")))
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkColor.Sprint(strings.TrimSuffix(line, "\n")))
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
		case strings.HasPrefix(line, "+"):
			b.WriteString(addColor.Sprint(strings.TrimSuffix(line, "\n")))
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
		case strings.HasPrefix(line, "-"):
			b.WriteString(delColor.Sprint(strings.TrimSuffix(line, "\n")))
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// SummaryEntry is one row of the check-mode summary.
type SummaryEntry struct {
	Path   string
	Status string
}

// Summary lays out entries as an aligned two-column table. Paths wider
// than the column are truncated with an ellipsis so the status column
// stays readable in narrow terminals.
func Summary(entries []SummaryEntry, width int) string {
	if len(entries) == 0 {
		return ""
	}
	statusWidth := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Status); w > statusWidth {
			statusWidth = w
		}
	}
	nameWidth := width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}
	var b strings.Builder
	for _, e := range entries {
		name := truncate(e.Path, nameWidth)
		pad := nameWidth - runewidth.StringWidth(name)
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(strings.Repeat(" ", pad+2))
		b.WriteString(e.Status)
		b.WriteByte('\n')
	}
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
