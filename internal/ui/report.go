package ui

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"compcat/internal/loader"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// ValidationReport summarizes a directory scan: what loaded and what was
// skipped, with each failure's error wrapped to width.
func ValidationReport(result *loader.Result, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Catalog validation"))
	b.WriteString("\n")

	names := make([]string, 0, len(result.Components))
	for name := range result.Components {
		names = append(names, name)
	}
	slices.Sort(names)

	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d components, %d documentation topics", len(names), len(result.Documentation))))
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString(SuccessStyle.Render("✓ "))
		b.WriteString(name)
		b.WriteString("\n")
	}

	if len(result.Failures) == 0 {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render("No problems found."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(ErrorStyle.Render(fmt.Sprintf("%d skipped:", len(result.Failures))))
	b.WriteString("\n")
	for _, f := range result.Failures {
		b.WriteString(ErrorStyle.Render("✗ "))
		b.WriteString(filepath.Base(f.Path))
		b.WriteString("\n")
		msg := wordwrap.String(f.Err.Error(), max(width-4, 20))
		b.WriteString(HelpStyle.Render(indent.String(msg, 4)))
		b.WriteString("\n")
	}
	return b.String()
}
