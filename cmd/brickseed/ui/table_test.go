package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryTableRender(t *testing.T) {
	table := NewSummaryTable("Seeding Summary", []string{"Resource", "Created", "Failed"})
	table.AddRow("Users", "10", "0")
	table.AddRow("Surveys", "5", "1")

	got := table.Render(DefaultStyles())

	assert.Contains(t, got, "Seeding Summary")
	assert.Contains(t, got, "Resource")
	assert.Contains(t, got, "Users")
	assert.Contains(t, got, "Surveys")

	// title, header, divider, two rows
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 5)
}

func TestSummaryTableEmptyRendersNothing(t *testing.T) {
	table := NewSummaryTable("Empty", []string{"A"})
	assert.Empty(t, table.Render(DefaultStyles()))
}

func TestSummaryTableDropsExtraCells(t *testing.T) {
	table := NewSummaryTable("", []string{"A", "B"})
	table.AddRow("1", "2", "3")

	assert.Len(t, table.Rows[0], 2)
	got := table.Render(DefaultStyles())
	assert.NotContains(t, got, "3")
}
