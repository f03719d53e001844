package parser

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet name used when writing a catalog.
const SheetName = "Catalog"

const (
	minColWidth = 10
	maxColWidth = 50
)

// ReadXLSX reads the first worksheet of a workbook into a catalog.
func ReadXLSX(path string) (*models.Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.NewCatalog(nil), nil
	}
	return ReadSheet(f, sheets[0])
}

// ReadSheet reads one worksheet. Every cell is taken as its formatted text.
// Rows run to the end of the sheet's used range, so trailing blank records
// survive even though GetRows stops at the last non-empty cell.
func ReadSheet(f *excelize.File, sheetName string) (*models.Catalog, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	for n := usedRows(f, sheetName); len(rows) < n; {
		rows = append(rows, nil)
	}
	return buildCatalog(rows), nil
}

// usedRows returns the last row of the sheet's dimension, or 0 when the
// sheet has none.
func usedRows(f *excelize.File, sheetName string) int {
	ref, err := f.GetSheetDimension(sheetName)
	if err != nil || ref == "" {
		return 0
	}
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		ref = ref[i+1:]
	}
	_, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0
	}
	return row
}

// WriteXLSX writes c as a single-sheet workbook with a bold header row.
// All fields are stored as text.
func WriteXLSX(w io.Writer, c *models.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	if c.Width() > 0 {
		if err := writeRow(f, 1, c.Columns); err != nil {
			return err
		}

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return err
		}
		if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
			return err
		}
	}

	for i, r := range c.Records {
		if err := writeRow(f, i+2, r.Fields); err != nil {
			return err
		}
	}

	if c.Width() > 0 {
		last, err := excelize.CoordinatesToCellName(c.Width(), c.Len()+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetDimension(SheetName, "A1:"+last); err != nil {
			return err
		}
	}

	for i, width := range columnWidths(c) {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeRow(f *excelize.File, rowNum int, fields []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(fields))
	for i, v := range fields {
		values[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &values)
}

// columnWidths sizes each column to its longest text, within bounds.
func columnWidths(c *models.Catalog) []float64 {
	widths := make([]float64, c.Width())
	for i, name := range c.Columns {
		longest := utf8.RuneCountInString(name)
		for _, r := range c.Records {
			if n := utf8.RuneCountInString(r.Field(i)); n > longest {
				longest = n
			}
		}
		width := longest + 2
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		widths[i] = float64(width)
	}
	return widths
}
