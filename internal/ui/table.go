package ui

import (
	"fmt"
	"strings"

	"compcat/internal/catalog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"
)

var componentHeaders = []string{"NAME", "CATEGORY", "TAGS", "PROPS", "EXAMPLES", "DESCRIPTION"}

// ComponentTable renders component summaries as a bordered table. The
// description column is truncated so rows stay within width.
func ComponentTable(components []catalog.ComponentMetadata, width int) string {
	if len(components) == 0 {
		return HelpStyle.Render("No components match.")
	}
	if width <= 0 {
		width = DefaultWidth
	}

	rows := make([][]string, 0, len(components))
	for _, c := range components {
		rows = append(rows, []string{
			c.Name,
			c.Category,
			strings.Join(c.Tags, ", "),
			fmt.Sprint(c.PropCount),
			fmt.Sprint(c.ExampleCount),
			c.Description,
		})
	}

	descWidth := width - fixedColumnsWidth(rows)
	if descWidth < 10 {
		descWidth = 10
	}
	for _, row := range rows {
		row[5] = truncate.StringWithTail(row[5], uint(descWidth), "…")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(componentHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})

	return t.Render()
}

// fixedColumnsWidth is the rendered width of every column except the
// description, including padding and borders.
func fixedColumnsWidth(rows [][]string) int {
	total := 1 // left border
	for col := 0; col < len(componentHeaders)-1; col++ {
		w := lipgloss.Width(componentHeaders[col])
		for _, row := range rows {
			w = max(w, lipgloss.Width(row[col]))
		}
		total += w + 3 // padding and separator
	}
	return total + 3 // description padding and right border
}
