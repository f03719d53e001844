package parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

const utf8BOM = "\uFEFF"

// ReadCSV reads comma-separated text into a catalog. Ragged rows are allowed.
func ReadCSV(r io.Reader) (*models.Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return buildCatalog(records), nil
}

// WriteCSV writes the header row followed by every record.
func WriteCSV(w io.Writer, c *models.Catalog) error {
	cw := csv.NewWriter(w)
	if c.Width() > 0 {
		if err := cw.Write(c.Columns); err != nil {
			return err
		}
	}
	for _, r := range c.Records {
		if len(r.Fields) == 1 && r.Fields[0] == "" {
			// A lone empty field would be written as an empty line, which
			// readers skip.
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(r.Fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
