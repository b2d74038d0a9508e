package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SummaryTable renders small static tables, like per-resource seeding
// tallies.
type SummaryTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewSummaryTable creates a table with the given title and headers.
func NewSummaryTable(title string, headers []string) *SummaryTable {
	return &SummaryTable{Title: title, Headers: headers}
}

// AddRow appends one row. Cells beyond the header count are dropped.
func (t *SummaryTable) AddRow(cells ...string) {
	if len(cells) > len(t.Headers) {
		cells = cells[:len(t.Headers)]
	}
	t.Rows = append(t.Rows, cells)
}

// Render draws the table with the given styles. An empty table renders
// as nothing.
func (t *SummaryTable) Render(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	cellStyle := styles.Body.Padding(0, 1)

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
