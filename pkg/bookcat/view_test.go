package bookcat

import (
	"errors"
	"reflect"
	"testing"
)

func TestFilterScenario(t *testing.T) {
	c := sampleCatalog()

	if got := titles(Filter(c, MatchAny("em"))); !reflect.DeepEqual(got, []string{"Emma"}) {
		t.Errorf("MatchAny(em) = %v, expected [Emma]", got)
	}

	p, err := MatchColumn(c.Columns, "Genre", "sci")
	if err != nil {
		t.Fatalf("MatchColumn failed: %v", err)
	}
	if got := titles(Filter(c, p)); !reflect.DeepEqual(got, []string{"Dune"}) {
		t.Errorf("MatchColumn(Genre, sci) = %v, expected [Dune]", got)
	}
}

func TestMatchAny(t *testing.T) {
	c := sampleCatalog()
	c.Append("Emerald City", "Baum", "Fantasy")

	tests := []struct {
		term     string
		expected []string
	}{
		{"", []string{"Dune", "Emma", "Emerald City"}},
		{SearchPlaceholder, []string{"Dune", "Emma", "Emerald City"}},
		{"EM", []string{"Emma", "Emerald City"}},
		{"austen", []string{"Emma"}},
		{"fi", []string{"Dune"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		got := titles(Filter(c, MatchAny(tt.term)))
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("MatchAny(%q) = %v, expected %v", tt.term, got, tt.expected)
		}
	}
}

func TestMatchColumnUnknown(t *testing.T) {
	_, err := MatchColumn([]string{"Title"}, "Genre", "sci")
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Expected ErrUnknownColumn, got %v", err)
	}
}

func TestMatchColumnEmptyTerm(t *testing.T) {
	c := sampleCatalog()
	p, err := MatchColumn(c.Columns, "Author", "")
	if err != nil {
		t.Fatalf("MatchColumn failed: %v", err)
	}
	if got := len(Filter(c, p)); got != 2 {
		t.Errorf("Expected all 2 rows, got %d", got)
	}
}

func TestFilterIdempotentAndNonMutating(t *testing.T) {
	c := sampleCatalog()
	before := c.Clone()

	first := Filter(c, MatchAny("e"))
	second := Filter(c, MatchAny("e"))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Filter not idempotent: %v vs %v", first, second)
	}

	first[0].Fields[0] = "changed"
	if !reflect.DeepEqual(c, before) {
		t.Errorf("Mutating a projection changed the catalog")
	}
}
