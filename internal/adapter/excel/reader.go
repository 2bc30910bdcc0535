package excel

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Reader loads a catalog from an .xlsx workbook. The first row of the sheet
// is the header. It implements pipeline.Extractor.
type Reader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewReader creates a workbook reader. An empty sheet name selects the first
// sheet in the workbook.
func NewReader(path, sheet string, logger *slog.Logger) *Reader {
	return &Reader{path: path, sheet: sheet, logger: logger}
}

// Extract reads every row of the sheet into a raw catalog.
func (r *Reader) Extract(ctx context.Context) (*domain.RawCatalog, error) {
	src, err := openWorkbook(r.path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", r.path, err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", r.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty: no header row", sheet)
	}
	if err := domain.ValidateSchema(rows[0]); err != nil {
		return nil, err
	}

	catalog := domain.NewRawCatalog(rows[0])
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}
		// Spreadsheet rows are 1-based and the header occupies row 1.
		catalog.AddRow(i+2, row)
	}

	r.logger.Debug("catalog workbook read", "path", r.path, "sheet", sheet, "rows", len(catalog.Rows))
	return catalog, nil
}

// openWorkbook maps every failure to reach the file, missing or unreadable,
// onto domain.ErrInputNotFound.
func openWorkbook(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInputNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInputNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInputNotFound, path, err)
	}
	return f, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
