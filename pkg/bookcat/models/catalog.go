package models

import "slices"

// Catalog is an ordered sequence of records sharing one ordered column set.
type Catalog struct {
	// Columns is the header row. It does not change for the life of the catalog.
	Columns []string `json:"columns"`
	// Records holds the data rows in file order.
	Records []Record `json:"records"`
}

// NewCatalog creates an empty catalog with the given columns.
func NewCatalog(columns []string) *Catalog {
	return &Catalog{
		Columns: slices.Clone(columns),
	}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// Width returns the number of columns.
func (c *Catalog) Width() int {
	if c == nil {
		return 0
	}
	return len(c.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (c *Catalog) ColumnIndex(name string) int {
	if c == nil {
		return -1
	}
	return slices.Index(c.Columns, name)
}

// Append adds a row, padding or truncating fields to the column count.
func (c *Catalog) Append(fields ...string) Record {
	row := make([]string, len(c.Columns))
	copy(row, fields)
	rec := NewRecord(row)
	c.Records = append(c.Records, rec)
	return rec
}

// Value returns the text of the named column in r.
func (c *Catalog) Value(r Record, column string) (string, bool) {
	idx := c.ColumnIndex(column)
	if idx < 0 {
		return "", false
	}
	return r.Field(idx), true
}

// Clone returns a deep copy of the catalog. Record IDs are preserved.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}
	out := &Catalog{
		Columns: slices.Clone(c.Columns),
		Records: make([]Record, len(c.Records)),
	}
	for i, r := range c.Records {
		out.Records[i] = r.Clone()
	}
	return out
}

// Rows returns the field text of every record, header excluded.
func (c *Catalog) Rows() [][]string {
	rows := make([][]string, 0, c.Len())
	for _, r := range c.Records {
		rows = append(rows, slices.Clone(r.Fields))
	}
	return rows
}
