// Package parser reads and writes catalog spreadsheets.
package parser

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

// buildCatalog turns a raw grid into a catalog. The first non-empty row
// is the header and every later row is a record, blank ones included, so
// a saved catalog reads back with the same rows.
func buildCatalog(rows [][]string) *models.Catalog {
	minRow, _, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.NewCatalog(nil)
	}

	width := maxCol - minCol + 1
	catalog := models.NewCatalog(normalizeHeaders(sliceRow(rows[minRow], minCol, width)))

	for rowIdx := minRow + 1; rowIdx < len(rows); rowIdx++ {
		catalog.Append(sliceRow(rows[rowIdx], minCol, width)...)
	}
	return catalog
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// sliceRow returns width cells of row starting at col, padding with "".
func sliceRow(row []string, col, width int) []string {
	out := make([]string, width)
	for i := 0; i < width; i++ {
		if col+i < len(row) {
			out[i] = row[col+i]
		}
	}
	return out
}

// normalizeHeaders names blank header cells "Unnamed: <i>" and makes
// duplicates unique by appending ".1", ".2", ...
func normalizeHeaders(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if taken[name] {
			base := name
			for n := 1; ; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
				if !taken[name] {
					break
				}
			}
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
