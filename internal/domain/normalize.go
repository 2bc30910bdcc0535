package domain

import (
	"strings"
	"time"
)

// DateAddedLayout is the only accepted date_added format, e.g. "September 24, 2021".
const DateAddedLayout = "January 2, 2006"

// missingTokens are cell values read as null, in addition to the empty string.
// The list follows the default NA markers of common dataframe readers; matching
// is exact and case-sensitive.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// ParseCell converts raw cell text into a nullable value.
func ParseCell(s string) Optional[string] {
	if _, ok := missingTokens[s]; ok {
		return None[string]()
	}
	return Some(s)
}

// FillMissing returns the cell text, or Unknown when the cell is null.
func FillMissing(cell Optional[string]) string {
	return cell.OrElse(Unknown)
}

// ParseDateAdded parses trimmed date_added text. Any mismatch yields an absent
// date; it never fails.
func ParseDateAdded(text string) Optional[time.Time] {
	text = strings.TrimSpace(text)
	if text == "" {
		return None[time.Time]()
	}
	t, err := time.Parse(DateAddedLayout, text)
	if err != nil {
		return None[time.Time]()
	}
	return Some(t)
}

// YearOf derives the calendar year from an optional date.
func YearOf(date Optional[time.Time]) Optional[int] {
	t, ok := date.Get()
	if !ok {
		return None[int]()
	}
	return Some(t.Year())
}

// IsKnownType reports whether a type tag is Movie or TV Show.
func IsKnownType(tag string) bool {
	return tag == TypeMovie || tag == TypeTVShow
}

// Normalize fills missing categorical cells, parses date_added and derives
// year_added for every row. The output keeps every input row in order.
func Normalize(raw RawCatalog) NormalizedCatalog {
	idx := make(map[string]int, len(raw.Columns))
	for i, c := range raw.Columns {
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}

	out := NormalizedCatalog{
		Records:         make([]CatalogRecord, 0, len(raw.Rows)),
		UnknownTypeTags: make(map[string]int),
		SentinelFills:   make(map[string]int),
	}

	for _, row := range raw.Rows {
		cell := func(column string) Optional[string] {
			i, ok := idx[column]
			if !ok || i >= len(row.Cells) {
				return None[string]()
			}
			return row.Cells[i]
		}
		fill := func(column string) string {
			c := cell(column)
			if !c.IsPresent() {
				out.SentinelFills[column]++
			}
			return FillMissing(c)
		}

		rec := CatalogRecord{
			Line:        row.Line,
			ShowID:      cell(ColumnShowID),
			Type:        cell(ColumnType),
			Title:       cell(ColumnTitle),
			Director:    fill(ColumnDirector),
			Cast:        fill(ColumnCast),
			Country:     fill(ColumnCountry),
			DateAdded:   fill(ColumnDateAdded),
			ReleaseYear: cell(ColumnReleaseYear),
			Rating:      fill(ColumnRating),
			Duration:    fill(ColumnDuration),
			ListedIn:    fill(ColumnListedIn),
			Description: fill(ColumnDescription),
			Extra:       extraColumns(raw.Columns, idx, row),
		}

		rec.ParsedDateAdded = ParseDateAdded(rec.DateAdded)
		rec.YearAdded = YearOf(rec.ParsedDateAdded)
		if !rec.ParsedDateAdded.IsPresent() {
			out.UnparseableDates = append(out.UnparseableDates, DateIssue{Line: row.Line, Text: rec.DateAdded})
		}

		if tag := rec.Type.OrElse(""); !IsKnownType(tag) {
			out.UnknownTypeTags[tag]++
		}

		out.Records = append(out.Records, rec)
	}

	return out
}

// knownColumns have dedicated CatalogRecord fields.
var knownColumns = map[string]bool{
	ColumnShowID:      true,
	ColumnType:        true,
	ColumnTitle:       true,
	ColumnDirector:    true,
	ColumnCast:        true,
	ColumnCountry:     true,
	ColumnDateAdded:   true,
	ColumnReleaseYear: true,
	ColumnRating:      true,
	ColumnDuration:    true,
	ColumnListedIn:    true,
	ColumnDescription: true,
}

func extraColumns(columns []string, idx map[string]int, row RawRow) map[string]Optional[string] {
	var extra map[string]Optional[string]
	for i, c := range columns {
		if knownColumns[c] || idx[c] != i || i >= len(row.Cells) {
			continue
		}
		if extra == nil {
			extra = make(map[string]Optional[string])
		}
		extra[c] = row.Cells[i]
	}
	return extra
}
