package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in", "description",
}

// row builds a raw value slice in testHeader order from column overrides.
func row(values map[string]string) []string {
	out := make([]string, len(testHeader))
	for i, c := range testHeader {
		out[i] = values[c]
	}
	return out
}

func fullRow(typ, country, dateAdded string) []string {
	return row(map[string]string{
		"show_id":      "s1",
		"type":         typ,
		"title":        "Dick Johnson Is Dead",
		"director":     "Kirsten Johnson",
		"cast":         "Michael Hilow",
		"country":      country,
		"date_added":   dateAdded,
		"release_year": "2020",
		"rating":       "PG-13",
		"duration":     "90 min",
		"listed_in":    "Documentaries",
		"description":  "A filmmaker stages his father's death.",
	})
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		present bool
	}{
		{"text", "India", true},
		{"empty", "", false},
		{"NA token", "NA", false},
		{"NaN token", "NaN", false},
		{"null token", "null", false},
		{"whitespace is data", " ", true},
		{"case sensitive", "na", true},
		{"sentinel is data", Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.present, ParseCell(tt.in).IsPresent())
		})
	}
}

func TestParseDateAdded(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Optional[time.Time]
	}{
		{"long date", "September 24, 2021", Some(time.Date(2021, time.September, 24, 0, 0, 0, 0, time.UTC))},
		{"unpadded day", "August 4, 2017", Some(time.Date(2017, time.August, 4, 0, 0, 0, 0, time.UTC))},
		{"padded day", "April 09, 2019", Some(time.Date(2019, time.April, 9, 0, 0, 0, 0, time.UTC))},
		{"surrounding whitespace", "  December 31, 2019 ", Some(time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC))},
		{"iso date", "2021-09-24", None[time.Time]()},
		{"abbreviated month", "Sep 24, 2021", None[time.Time]()},
		{"missing comma", "September 24 2021", None[time.Time]()},
		{"sentinel", Unknown, None[time.Time]()},
		{"empty", "", None[time.Time]()},
		{"out of range day", "February 30, 2021", None[time.Time]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDateAdded(tt.text))
		})
	}
}

func TestNormalize_FillsMissingWithSentinel(t *testing.T) {
	raw := NewRawCatalog(testHeader)
	raw.AddRow(2, row(map[string]string{"type": TypeMovie, "date_added": "September 24, 2021"}))

	catalog := Normalize(*raw)
	require.Equal(t, 1, catalog.Len())
	rec := catalog.Records[0]

	for _, col := range FillColumns {
		v, ok := rec.Field(col)
		assert.True(t, ok, col)
		if col == ColumnDateAdded {
			assert.Equal(t, "September 24, 2021", v)
			continue
		}
		assert.Equal(t, Unknown, v, col)
	}
	assert.Equal(t, 1, catalog.SentinelFills[ColumnCountry])
	assert.Zero(t, catalog.SentinelFills[ColumnDateAdded])
}

func TestNormalize_KeepsPresentValues(t *testing.T) {
	raw := NewRawCatalog(testHeader)
	raw.AddRow(2, fullRow(TypeMovie, "United States, India", "September 25, 2021"))

	rec := Normalize(*raw).Records[0]
	assert.Equal(t, "Kirsten Johnson", rec.Director)
	assert.Equal(t, "United States, India", rec.Country)
	assert.Equal(t, "September 25, 2021", rec.DateAdded)
	assert.Equal(t, "Documentaries", rec.ListedIn)
	title, ok := rec.Title.Get()
	require.True(t, ok)
	assert.Equal(t, "Dick Johnson Is Dead", title)
}

func TestNormalize_MissingCountryScenario(t *testing.T) {
	raw := NewRawCatalog([]string{"type", "country", "date_added"})
	raw.AddRow(2, []string{TypeMovie, "", "September 24, 2021"})

	rec := Normalize(*raw).Records[0]
	assert.Equal(t, Unknown, rec.Country)
	year, ok := rec.YearAdded.Get()
	require.True(t, ok)
	assert.Equal(t, 2021, year)
}

func TestNormalize_WrongDateFormatScenario(t *testing.T) {
	raw := NewRawCatalog([]string{"type", "date_added"})
	raw.AddRow(2, []string{TypeMovie, "2021-09-24"})

	catalog := Normalize(*raw)
	require.Equal(t, 1, catalog.Len())
	rec := catalog.Records[0]
	assert.False(t, rec.ParsedDateAdded.IsPresent())
	assert.False(t, rec.YearAdded.IsPresent())
	assert.Equal(t, "2021-09-24", rec.DateAdded)
	assert.Equal(t, []DateIssue{{Line: 2, Text: "2021-09-24"}}, catalog.UnparseableDates)
	assert.Empty(t, ComputeYearlyTrend(catalog, 2015))
}

func TestNormalize_MissingDateBecomesSentinelAndAbsent(t *testing.T) {
	raw := NewRawCatalog(testHeader)
	raw.AddRow(2, fullRow(TypeTVShow, "India", ""))

	rec := Normalize(*raw).Records[0]
	assert.Equal(t, Unknown, rec.DateAdded)
	assert.False(t, rec.ParsedDateAdded.IsPresent())
	assert.False(t, rec.YearAdded.IsPresent())
}

func TestNormalize_PreservesCardinalityAndOrder(t *testing.T) {
	raw := NewRawCatalog(testHeader)
	dates := []string{"September 24, 2021", "bad", "", "January 1, 2016", "NaN"}
	for i, d := range dates {
		raw.AddRow(i+2, fullRow(TypeMovie, "Brazil", d))
	}

	catalog := Normalize(*raw)
	require.Equal(t, len(dates), catalog.Len())
	for i, rec := range catalog.Records {
		assert.Equal(t, i+2, rec.Line)
		assert.Equal(t, rec.ParsedDateAdded.IsPresent(), rec.YearAdded.IsPresent())
	}
	assert.Len(t, catalog.UnparseableDates, 3)
}

func TestNormalize_ShortRowsPadWithNulls(t *testing.T) {
	raw := NewRawCatalog(testHeader)
	raw.AddRow(2, []string{"s1", TypeMovie})

	rec := Normalize(*raw).Records[0]
	assert.Equal(t, Unknown, rec.Director)
	assert.Equal(t, Unknown, rec.Description)
	assert.False(t, rec.Title.IsPresent())
}

func TestNormalize_PassesThroughExtraColumns(t *testing.T) {
	header := append(append([]string{}, testHeader...), "imdb_score")
	raw := NewRawCatalog(header)
	raw.AddRow(2, append(fullRow(TypeMovie, "Spain", "June 1, 2020"), "7.1"))

	rec := Normalize(*raw).Records[0]
	v, ok := rec.Field("imdb_score")
	require.True(t, ok)
	assert.Equal(t, "7.1", v)
	_, ok = rec.Field("no_such_column")
	assert.False(t, ok)
}

func TestNormalize_CountsUnknownTypeTags(t *testing.T) {
	raw := NewRawCatalog(testHeader)
	raw.AddRow(2, fullRow(TypeMovie, "India", "June 1, 2020"))
	raw.AddRow(3, fullRow("Documentary", "India", "June 1, 2020"))
	raw.AddRow(4, fullRow("", "India", "June 1, 2020"))

	catalog := Normalize(*raw)
	assert.Equal(t, map[string]int{"Documentary": 1, "": 1}, catalog.UnknownTypeTags)
}

func TestNormalize_Empty(t *testing.T) {
	catalog := Normalize(*NewRawCatalog(testHeader))
	assert.Zero(t, catalog.Len())
	assert.Empty(t, catalog.UnparseableDates)
}

func TestValidateSchema(t *testing.T) {
	t.Run("complete header", func(t *testing.T) {
		assert.NoError(t, ValidateSchema(testHeader))
	})

	t.Run("bom and padding", func(t *testing.T) {
		header := append([]string{}, testHeader...)
		header[0] = "\ufeffshow_id"
		header[1] = " type "
		assert.NoError(t, ValidateSchema(header))
	})

	t.Run("missing columns are named", func(t *testing.T) {
		err := ValidateSchema([]string{"show_id", "type", "title", "director", "cast", "date_added", "rating", "duration", "listed_in"})
		require.Error(t, err)

		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, []string{ColumnCountry, ColumnDescription}, schemaErr.Missing)
		assert.Contains(t, err.Error(), "country, description")
	})
}

func TestOptional_JSON(t *testing.T) {
	b, err := None[int]().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = Some(2021).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "2021", string(b))

	var o Optional[string]
	require.NoError(t, o.UnmarshalJSON([]byte(`"India"`)))
	assert.Equal(t, Some("India"), o)
	require.NoError(t, o.UnmarshalJSON([]byte("null")))
	assert.False(t, o.IsPresent())
}
