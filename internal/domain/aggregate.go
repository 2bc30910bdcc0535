package domain

import (
	"sort"
	"time"
)

// TypeCounts splits the catalog by content type.
type TypeCounts struct {
	Movies  int `json:"movies"`
	TVShows int `json:"tv_shows"`
}

// CategoryCount is one entry of a frequency ranking.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TopCategoryCounts is ordered by descending count, then ascending value.
type TopCategoryCounts []CategoryCount

// YearCount is the number of titles added in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// YearlyTrend is ordered by ascending year and never holds zero counts.
type YearlyTrend []YearCount

// ComputeTypeCounts counts Movie and TV Show records by exact tag match.
// Other tags are ignored.
func ComputeTypeCounts(catalog NormalizedCatalog) TypeCounts {
	var tc TypeCounts
	for _, r := range catalog.Records {
		switch r.Type.OrElse("") {
		case TypeMovie:
			tc.Movies++
		case TypeTVShow:
			tc.TVShows++
		}
	}
	return tc
}

// ComputeTopCategories ranks the distinct values of column by frequency and
// returns at most n entries. Cells are grouped by their literal text, so a
// multi-valued cell is a single key. Null cells are skipped.
func ComputeTopCategories(catalog NormalizedCatalog, column string, n int) TopCategoryCounts {
	if n <= 0 {
		return TopCategoryCounts{}
	}

	counts := make(map[string]int)
	for _, r := range catalog.Records {
		if v, ok := r.Field(column); ok {
			counts[v]++
		}
	}

	ranked := make(TopCategoryCounts, 0, len(counts))
	for v, c := range counts {
		ranked = append(ranked, CategoryCount{Value: v, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ComputeYearlyTrend counts records per year_added for years >= minYear.
// Records without a year are left out.
func ComputeYearlyTrend(catalog NormalizedCatalog, minYear int) YearlyTrend {
	counts := make(map[int]int)
	for _, r := range catalog.Records {
		year, ok := r.YearAdded.Get()
		if !ok || year < minYear {
			continue
		}
		counts[year]++
	}

	trend := make(YearlyTrend, 0, len(counts))
	for y, c := range counts {
		trend = append(trend, YearCount{Year: y, Count: c})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Year < trend[j].Year })
	return trend
}

// ViewOptions selects the parameters of the three views.
type ViewOptions struct {
	CategoryColumn string
	TopN           int
	MinYear        int
	RunID          string
}

// DefaultViewOptions matches the standard dashboard: top 10 countries and the
// trend from 2015.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		CategoryColumn: ColumnCountry,
		TopN:           10,
		MinYear:        2015,
	}
}

// DashboardViews bundles everything the presentation layer may read.
type DashboardViews struct {
	RunID          string            `json:"run_id,omitempty"`
	GeneratedAt    time.Time         `json:"generated_at"`
	TotalRecords   int               `json:"total_records"`
	CategoryColumn string            `json:"category_column"`
	TopN           int               `json:"top_n"`
	MinYear        int               `json:"min_year"`
	TypeCounts     TypeCounts        `json:"type_counts"`
	TopCategories  TopCategoryCounts `json:"top_categories"`
	YearlyTrend    YearlyTrend       `json:"yearly_trend"`
}

// BuildViews computes all three views over the catalog.
func BuildViews(catalog NormalizedCatalog, opts ViewOptions) DashboardViews {
	return DashboardViews{
		RunID:          opts.RunID,
		GeneratedAt:    Now(),
		TotalRecords:   catalog.Len(),
		CategoryColumn: opts.CategoryColumn,
		TopN:           opts.TopN,
		MinYear:        opts.MinYear,
		TypeCounts:     ComputeTypeCounts(catalog),
		TopCategories:  ComputeTopCategories(catalog, opts.CategoryColumn, opts.TopN),
		YearlyTrend:    ComputeYearlyTrend(catalog, opts.MinYear),
	}
}
