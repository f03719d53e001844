// Package models defines data structures for a spreadsheet-backed book catalog.
package models

import (
	"slices"

	"github.com/google/uuid"
)

// Record represents a single catalog row.
type Record struct {
	// ID identifies the row while it is in memory. It is never persisted.
	ID string `json:"id"`
	// Fields holds the cell text, aligned with the owning catalog's columns.
	Fields []string `json:"fields"`
}

// NewRecord creates a record with a fresh identity.
func NewRecord(fields []string) Record {
	return Record{
		ID:     uuid.NewString(),
		Fields: fields,
	}
}

// Clone returns a copy of the record that shares no storage with r.
func (r Record) Clone() Record {
	return Record{
		ID:     r.ID,
		Fields: slices.Clone(r.Fields),
	}
}

// Field returns the text at column index i, or "" when i is out of range.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}
