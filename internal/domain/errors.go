package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInputNotFound is returned when the catalog source is missing or unreadable.
var ErrInputNotFound = errors.New("catalog input not found")

// ErrUnsupportedFormat is returned for catalog files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// SchemaError reports required columns that are absent from the catalog header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog schema mismatch: missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// ValidateSchema checks that every required column is present in the header.
// Header names are compared after trimming whitespace and a UTF-8 BOM.
func ValidateSchema(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[CleanColumnName(c)] = true
	}
	var missing []string
	for _, req := range RequiredColumns {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// CleanColumnName strips the BOM and surrounding whitespace from a header cell.
func CleanColumnName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
}
