// Package domain models a streaming-service title catalog and the summary views
// derived from it.
//
// # Data Source
//
// The catalog is a flat table with one row per title, in the layout of the
// public "netflix_titles" dataset:
//
//	show_id, type, title, director, cast, country, date_added,
//	release_year, rating, duration, listed_in, description
//
// Only type, director, cast, country, date_added, rating, duration, listed_in
// and description are required. Any other column is carried through untouched
// in [CatalogRecord.Extra].
//
// # Missing Values
//
// A cell is missing when it is empty or holds one of the placeholder tokens
// that spreadsheet exports and dataframe writers emit for nulls ("NA", "N/A",
// "NaN", "null", "None", "#N/A" and friends, matched exactly). Missing cells in
// the eight fill columns (director, cast, country, date_added, rating,
// duration, listed_in, description) are replaced with the sentinel "Unknown".
// Missing cells in other columns stay absent.
//
// # Date Format
//
// date_added uses a long English date, trimmed before parsing:
//
//	"September 24, 2021"   full month name, day, comma, four-digit year
//	" August 4, 2017"      leading space is common in the source export
//	"April 09, 2019"       zero-padded days are accepted
//
// Anything else, including the "Unknown" sentinel, leaves
// [CatalogRecord.ParsedDateAdded] and [CatalogRecord.YearAdded] absent. A bad
// date never drops the row.
//
// # Views
//
// Three read-only views feed the dashboard:
//
//	TypeCounts         Movie vs "TV Show" (exact match, other tags ignored)
//	TopCategoryCounts  most frequent values of one column, default country, top 10
//	YearlyTrend        titles added per year from a minimum year, default 2015
//
// Multi-country cells such as "United States, India" are counted as a single
// key; no splitting happens. Ties in the top-N ranking are ordered by value so
// output is reproducible.
package domain
