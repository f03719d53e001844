package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

// Format is a supported catalog file format.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
	// FormatCSV is comma-separated text.
	FormatCSV Format = "csv"
)

// ErrUnsupportedFormat indicates the file extension maps to no format.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadFile reads a catalog from path in the format implied by its extension.
func ReadFile(path string) (*models.Catalog, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatXLSX {
		return ReadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// Write encodes c to w in the given format.
func Write(w io.Writer, format Format, c *models.Catalog) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, c)
	case FormatCSV:
		return WriteCSV(w, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
