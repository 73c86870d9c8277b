package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ersonp/namesift/internal/domain/entities"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableWarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn).Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// ReviewTable renders records flagged for manual review as a bordered table.
func ReviewTable(records []entities.Record) string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			strconv.Itoa(r.Position + 1),
			entities.Str(r.Name),
			parenBalance(entities.Str(r.Name)),
		})
	}

	return table.New().
		Headers("#", "Name", "Parentheses").
		Rows(rows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 2:
				return tableWarnStyle
			default:
				return tableCellStyle
			}
		}).
		String()
}

// parenBalance describes the parenthesis counts, e.g. "2 open / 1 close".
func parenBalance(name string) string {
	return strconv.Itoa(strings.Count(name, "(")) + " open / " + strconv.Itoa(strings.Count(name, ")")) + " close"
}
