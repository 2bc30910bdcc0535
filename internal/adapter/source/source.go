// Package source picks the catalog reader for a file path.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/catalog-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/catalog-dashboard/internal/adapter/excel"
	"github.com/couchcryptid/catalog-dashboard/internal/domain"
)

// Extractor reads a whole catalog into memory.
type Extractor interface {
	Extract(ctx context.Context) (*domain.RawCatalog, error)
}

// Open returns the reader matching the file extension: .csv, .tsv or .xlsx.
// sheet is only used for workbooks.
func Open(path, sheet string, logger *slog.Logger) (Extractor, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return csvfile.NewReader(path, logger), nil
	case ".tsv":
		return csvfile.NewTSVReader(path, logger), nil
	case ".xlsx", ".xlsm":
		return excel.NewReader(path, sheet, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
}
