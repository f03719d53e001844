package bookcat

import (
	"fmt"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

// Saver persists a catalog.
type Saver interface {
	Save(path string, c *models.Catalog) error
}

type workingRow struct {
	record   models.Record
	selected bool
}

// WorkingSet is a mutable copy of the catalog that stages cell edits,
// additions and deletions until Commit.
type WorkingSet struct {
	columns []string
	rows    []workingRow
	dirty   bool
}

// Begin starts an edit session seeded from projection. Editing is only
// allowed on the unfiltered view: projection must hold every record of c in
// catalog order, otherwise ErrFilteredView is returned. A catalog without
// columns cannot be edited.
func Begin(c *models.Catalog, projection []models.Record) (*WorkingSet, error) {
	if c.Width() == 0 {
		return nil, ErrNoColumns
	}
	if len(projection) != c.Len() {
		return nil, fmt.Errorf("%w: %d of %d rows visible", ErrFilteredView, len(projection), c.Len())
	}
	ws := &WorkingSet{
		columns: append([]string(nil), c.Columns...),
		rows:    make([]workingRow, len(projection)),
	}
	for i, r := range projection {
		if r.ID != c.Records[i].ID {
			return nil, fmt.Errorf("%w: row %d does not match the catalog", ErrFilteredView, i)
		}
		ws.rows[i] = workingRow{record: r.Clone()}
	}
	return ws, nil
}

// Columns returns the column names.
func (ws *WorkingSet) Columns() []string {
	return append([]string(nil), ws.columns...)
}

// Len returns the number of rows.
func (ws *WorkingSet) Len() int {
	return len(ws.rows)
}

// Row returns a copy of row i.
func (ws *WorkingSet) Row(i int) (models.Record, error) {
	if err := ws.checkRow(i); err != nil {
		return models.Record{}, err
	}
	return ws.rows[i].record.Clone(), nil
}

// Selected reports whether row i is marked for deletion.
func (ws *WorkingSet) Selected(i int) bool {
	return i >= 0 && i < len(ws.rows) && ws.rows[i].selected
}

// SelectedCount returns the number of rows marked for deletion.
func (ws *WorkingSet) SelectedCount() int {
	n := 0
	for _, r := range ws.rows {
		if r.selected {
			n++
		}
	}
	return n
}

// Dirty reports whether rows changed since Begin.
func (ws *WorkingSet) Dirty() bool {
	return ws.dirty
}

// EditCell replaces the text of one field. Content is not validated.
func (ws *WorkingSet) EditCell(row int, column, text string) error {
	if err := ws.checkRow(row); err != nil {
		return err
	}
	col := ws.columnIndex(column)
	if col < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	ws.rows[row].record.Fields[col] = text
	ws.dirty = true
	return nil
}

// ToggleSelection flips the deletion mark of row i.
func (ws *WorkingSet) ToggleSelection(row int) error {
	if err := ws.checkRow(row); err != nil {
		return err
	}
	ws.rows[row].selected = !ws.rows[row].selected
	return nil
}

// AddRow appends a row. values must hold exactly one entry per column;
// empty strings are accepted.
func (ws *WorkingSet) AddRow(values []string) error {
	if len(values) != len(ws.columns) {
		ve := &ValidationError{Want: len(ws.columns), Got: len(values)}
		if len(values) < len(ws.columns) {
			ve.Missing = append([]string(nil), ws.columns[len(values):]...)
		}
		return ve
	}
	ws.rows = append(ws.rows, workingRow{
		record: models.NewRecord(append([]string(nil), values...)),
	})
	ws.dirty = true
	return nil
}

// AddRowFields appends a row from a column-name map that must name every column.
func (ws *WorkingSet) AddRowFields(fields map[string]string) error {
	values := make([]string, len(ws.columns))
	var missing []string
	for i, name := range ws.columns {
		v, ok := fields[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		values[i] = v
	}
	if len(missing) > 0 {
		return &ValidationError{Want: len(ws.columns), Got: len(ws.columns) - len(missing), Missing: missing}
	}
	return ws.AddRow(values)
}

// DeleteSelected removes every marked row and returns how many were removed.
// It returns 0 and leaves the set unchanged when nothing is marked.
func (ws *WorkingSet) DeleteSelected() int {
	kept := make([]workingRow, 0, len(ws.rows))
	removed := 0
	for _, r := range ws.rows {
		if r.selected {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0
	}
	ws.rows = kept
	ws.dirty = true
	return removed
}

// Catalog builds a catalog from the current rows, without selection marks.
func (ws *WorkingSet) Catalog() *models.Catalog {
	c := models.NewCatalog(ws.columns)
	c.Records = make([]models.Record, len(ws.rows))
	for i, r := range ws.rows {
		c.Records[i] = r.record.Clone()
	}
	return c
}

// Commit persists the working rows to path through s and returns the new
// catalog. Nothing is returned on failure; the working set is kept for retry.
func (ws *WorkingSet) Commit(s Saver, path string) (*models.Catalog, error) {
	c := ws.Catalog()
	if err := s.Save(path, c); err != nil {
		return nil, err
	}
	ws.dirty = false
	return c, nil
}

func (ws *WorkingSet) checkRow(i int) error {
	if i < 0 || i >= len(ws.rows) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	return nil
}

func (ws *WorkingSet) columnIndex(name string) int {
	for i, c := range ws.columns {
		if c == name {
			return i
		}
	}
	return -1
}
