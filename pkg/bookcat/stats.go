package bookcat

import (
	"sort"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

// ComputeStats counts records and, when column exists, records per non-empty
// value of column.
func ComputeStats(c *models.Catalog, column string) models.Stats {
	stats := models.Stats{Total: c.Len()}

	idx := c.ColumnIndex(column)
	if idx < 0 {
		return stats
	}
	stats.Column = column

	counts := make(map[string]int)
	for _, r := range c.Records {
		if v := r.Field(idx); v != "" {
			counts[v]++
		}
	}
	for name, n := range counts {
		stats.Categories = append(stats.Categories, models.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	return stats
}
