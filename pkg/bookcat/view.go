package bookcat

import (
	"fmt"
	"strings"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
	"golang.org/x/text/cases"
)

// SearchPlaceholder is the search box hint text. It means no search entered.
const SearchPlaceholder = "Search Now"

// Predicate selects records for a projection.
type Predicate func(models.Record) bool

// Filter returns, in catalog order, a copy of every record matching p.
// The catalog is not modified.
func Filter(c *models.Catalog, p Predicate) []models.Record {
	if p == nil {
		p = MatchAll()
	}
	out := make([]models.Record, 0, c.Len())
	if c == nil {
		return out
	}
	for _, r := range c.Records {
		if p(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// MatchAll matches every record.
func MatchAll() Predicate {
	return func(models.Record) bool { return true }
}

// MatchAny matches records where any field contains term, ignoring case.
// An empty term or SearchPlaceholder matches everything.
func MatchAny(term string) Predicate {
	if isNoSearch(term) {
		return MatchAll()
	}
	fold := cases.Fold()
	needle := fold.String(term)
	return func(r models.Record) bool {
		for _, field := range r.Fields {
			if strings.Contains(fold.String(field), needle) {
				return true
			}
		}
		return false
	}
}

// MatchColumn matches records whose named column contains term, ignoring case.
// An empty term or SearchPlaceholder matches everything.
func MatchColumn(columns []string, column, term string) (Predicate, error) {
	idx := -1
	for i, name := range columns {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if isNoSearch(term) {
		return MatchAll(), nil
	}
	fold := cases.Fold()
	needle := fold.String(term)
	return func(r models.Record) bool {
		return strings.Contains(fold.String(r.Field(idx)), needle)
	}, nil
}

func isNoSearch(term string) bool {
	return term == "" || term == SearchPlaceholder
}
