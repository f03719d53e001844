package parser

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

func TestReadCSV(t *testing.T) {
	input := "\uFEFFTitle,Author,Genre\nDune,Herbert,SciFi\n,,\nEmma,Austen\n"

	c, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if want := []string{"Title", "Author", "Genre"}; !reflect.DeepEqual(c.Columns, want) {
		t.Errorf("Expected columns %v, got %v", want, c.Columns)
	}
	want := [][]string{
		{"Dune", "Herbert", "SciFi"},
		{"", "", ""},
		{"Emma", "Austen", ""},
	}
	if !reflect.DeepEqual(c.Rows(), want) {
		t.Errorf("Expected rows %v, got %v", want, c.Rows())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	c := models.NewCatalog([]string{"Title", "Notes"})
	c.Append("Dune", "has, a comma")
	c.Append("", "")
	c.Append("Emma", "line\nbreak and \"quotes\"")
	c.Append("", "")

	var buf bytes.Buffer
	if err := WriteCSV(&buf, c); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, c.Columns) {
		t.Errorf("Expected columns %v, got %v", c.Columns, got.Columns)
	}
	if !reflect.DeepEqual(got.Rows(), c.Rows()) {
		t.Errorf("Expected rows %v, got %v", c.Rows(), got.Rows())
	}
}

func TestCSVRoundTripSingleColumnBlankRows(t *testing.T) {
	c := models.NewCatalog([]string{"Title"})
	c.Append("")
	c.Append("Dune")
	c.Append("")

	var buf bytes.Buffer
	if err := WriteCSV(&buf, c); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if want := "Title\n\"\"\nDune\n\"\"\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !reflect.DeepEqual(got.Rows(), c.Rows()) {
		t.Errorf("Expected rows %v, got %v", c.Rows(), got.Rows())
	}
}
