package domain

import "time"

// Column names of the catalog table.
const (
	ColumnShowID      = "show_id"
	ColumnType        = "type"
	ColumnTitle       = "title"
	ColumnDirector    = "director"
	ColumnCast        = "cast"
	ColumnCountry     = "country"
	ColumnDateAdded   = "date_added"
	ColumnReleaseYear = "release_year"
	ColumnRating      = "rating"
	ColumnDuration    = "duration"
	ColumnListedIn    = "listed_in"
	ColumnDescription = "description"
)

// Known content type tags.
const (
	TypeMovie  = "Movie"
	TypeTVShow = "TV Show"
)

// Unknown is the sentinel substituted for missing categorical values.
const Unknown = "Unknown"

// RequiredColumns must all be present in a catalog header.
var RequiredColumns = []string{
	ColumnType,
	ColumnDirector,
	ColumnCast,
	ColumnCountry,
	ColumnDateAdded,
	ColumnRating,
	ColumnDuration,
	ColumnListedIn,
	ColumnDescription,
}

// FillColumns are the categorical columns whose missing cells become Unknown.
var FillColumns = []string{
	ColumnDirector,
	ColumnCast,
	ColumnCountry,
	ColumnDateAdded,
	ColumnRating,
	ColumnDuration,
	ColumnListedIn,
	ColumnDescription,
}

// RawRow is one source row. Cells line up with RawCatalog.Columns; an absent
// cell is a null.
type RawRow struct {
	Line  int
	Cells []Optional[string]
}

// RawCatalog is the table as read from disk, before normalization.
type RawCatalog struct {
	Columns []string
	Rows    []RawRow
}

// NewRawCatalog creates an empty catalog with cleaned header names.
func NewRawCatalog(header []string) *RawCatalog {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = CleanColumnName(h)
	}
	return &RawCatalog{Columns: cols}
}

// AddRow appends a row of raw text values. Missing-value tokens and short rows
// become nulls.
func (c *RawCatalog) AddRow(line int, values []string) {
	cells := make([]Optional[string], len(c.Columns))
	for i := range cells {
		if i < len(values) {
			cells[i] = ParseCell(values[i])
		}
	}
	c.Rows = append(c.Rows, RawRow{Line: line, Cells: cells})
}

// CatalogRecord is one normalized title.
type CatalogRecord struct {
	Line        int                         `json:"line"`
	ShowID      Optional[string]            `json:"show_id"`
	Type        Optional[string]            `json:"type"`
	Title       Optional[string]            `json:"title"`
	Director    string                      `json:"director"`
	Cast        string                      `json:"cast"`
	Country     string                      `json:"country"`
	DateAdded   string                      `json:"date_added"`
	ReleaseYear Optional[string]            `json:"release_year"`
	Rating      string                      `json:"rating"`
	Duration    string                      `json:"duration"`
	ListedIn    string                      `json:"listed_in"`
	Description string                      `json:"description"`
	Extra       map[string]Optional[string] `json:"extra,omitempty"`

	ParsedDateAdded Optional[time.Time] `json:"parsed_date_added"`
	YearAdded       Optional[int]       `json:"year_added"`
}

// Field returns the value of a named column. The second result is false when
// the column is unknown or its cell is null.
func (r CatalogRecord) Field(column string) (string, bool) {
	switch column {
	case ColumnShowID:
		return r.ShowID.Get()
	case ColumnType:
		return r.Type.Get()
	case ColumnTitle:
		return r.Title.Get()
	case ColumnDirector:
		return r.Director, true
	case ColumnCast:
		return r.Cast, true
	case ColumnCountry:
		return r.Country, true
	case ColumnDateAdded:
		return r.DateAdded, true
	case ColumnReleaseYear:
		return r.ReleaseYear.Get()
	case ColumnRating:
		return r.Rating, true
	case ColumnDuration:
		return r.Duration, true
	case ColumnListedIn:
		return r.ListedIn, true
	case ColumnDescription:
		return r.Description, true
	}
	if v, ok := r.Extra[column]; ok {
		return v.Get()
	}
	return "", false
}

// DateIssue records a date_added value that could not be parsed.
type DateIssue struct {
	Line int
	Text string
}

// NormalizedCatalog is the cleaned table plus the soft failures seen while
// building it.
type NormalizedCatalog struct {
	Records          []CatalogRecord
	UnparseableDates []DateIssue
	UnknownTypeTags  map[string]int
	SentinelFills    map[string]int
}

// Len returns the number of records.
func (c NormalizedCatalog) Len() int {
	return len(c.Records)
}
