package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader loads a delimited catalog file into memory in one pass.
// It implements pipeline.Extractor.
type Reader struct {
	path      string
	delimiter rune
	logger    *slog.Logger
}

// NewReader creates a reader for a comma-separated file.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, delimiter: ',', logger: logger}
}

// NewTSVReader creates a reader for a tab-separated file.
func NewTSVReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, delimiter: '\t', logger: logger}
}

// Extract reads the whole file, validates the header and returns the raw table.
func (r *Reader) Extract(ctx context.Context) (*domain.RawCatalog, error) {
	f, err := openCatalog(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	catalog, err := Decode(ctx, f, r.delimiter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	r.logger.Debug("catalog file read", "path", r.path, "rows", len(catalog.Rows), "columns", len(catalog.Columns))
	return catalog, nil
}

// Decode parses delimited catalog data. The first record is the header.
// A leading UTF-8 BOM is dropped before parsing, so a quoted first header
// cell still matches. Unbalanced quotes are a read error.
func Decode(ctx context.Context, src io.Reader, delimiter rune) (*domain.RawCatalog, error) {
	cr := csv.NewReader(transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty catalog: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := domain.ValidateSchema(header); err != nil {
		return nil, err
	}

	catalog := domain.NewRawCatalog(header)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := cr.FieldPos(0)
		catalog.AddRow(line, record)
	}
	return catalog, nil
}

// openCatalog maps every open failure onto domain.ErrInputNotFound.
func openCatalog(path string) (*os.File, error) {
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
