package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

func TestToJSON(t *testing.T) {
	c := models.NewCatalog([]string{"Title", "Author"})
	c.Append("Dune", "Herbert")

	data, err := ToJSON("books.xlsx", c, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var view CatalogView
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if view.BookName != "books.xlsx" {
		t.Errorf("Expected book_name books.xlsx, got %q", view.BookName)
	}
	if len(view.Rows) != 1 || view.Rows[0]["Author"] != "Herbert" {
		t.Errorf("Unexpected rows: %v", view.Rows)
	}
	if strings.Contains(string(data), c.Records[0].ID) {
		t.Errorf("Record IDs must not be exported: %s", data)
	}
}

func TestRecordsToJSONEmpty(t *testing.T) {
	data, err := RecordsToJSON("", []string{"Title"}, nil, true)
	if err != nil {
		t.Fatalf("RecordsToJSON failed: %v", err)
	}
	if !strings.Contains(string(data), `"rows": []`) {
		t.Errorf("Expected empty rows array, got %s", data)
	}
}
