package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498DB")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	oddRowStyle = cellStyle.Foreground(lipgloss.Color("245"))
)

// renderRecords draws records of c as a bordered table. The leading #
// column is the 1-based catalog row that delete and set address.
func renderRecords(c *models.Catalog, records []models.Record) string {
	position := make(map[string]int, c.Len())
	for i, r := range c.Records {
		position[r.ID] = i + 1
	}

	headers := append([]string{"#"}, c.Columns...)
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(position[r.ID]))
		for j := range c.Columns {
			row = append(row, strings.ReplaceAll(r.Field(j), "\n", " "))
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddRowStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

func renderStats(stats models.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Books available: %d\n", stats.Total)
	if stats.Column == "" || len(stats.Categories) == 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	rows := make([][]string, len(stats.Categories))
	for i, c := range stats.Categories {
		rows[i] = []string{c.Name, strconv.Itoa(c.Count)}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(stats.Column, "Books").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	b.WriteString(t.Render())
	return b.String()
}
