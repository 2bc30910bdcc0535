package render

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// percent returns part/total as a percentage, 0 for an empty total.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

const (
	typePanelTitle = "Distribution of Content Type"
	movieLabel     = "Movies"
	tvShowLabel    = "TV Shows"
	barAxisLabel   = "Number of Titles"
	trendXLabel    = "Year Added"
	trendYLabel    = "Amount of Content"
)

var pluralColumns = map[string]string{
	domain.ColumnCountry:  "Countries",
	domain.ColumnRating:   "Ratings",
	domain.ColumnDirector: "Directors",
	domain.ColumnListedIn: "Genres",
}

// rankingTitle names the top-N panel after the ranked column.
func rankingTitle(views domain.DashboardViews) string {
	if views.CategoryColumn == domain.ColumnCountry {
		return fmt.Sprintf("Top %d Content-Producing Countries", views.TopN)
	}
	name, ok := pluralColumns[views.CategoryColumn]
	if !ok {
		name = strings.ReplaceAll(views.CategoryColumn, "_", " ")
	}
	return fmt.Sprintf("Top %d %s", views.TopN, name)
}

// trendTitle reads "Evolution of Content Added (2015 - Present)".
func trendTitle(views domain.DashboardViews) string {
	return fmt.Sprintf("Evolution of Content Added (%d - Present)", views.MinYear)
}

// footerText appends the generation date to the theme footer.
func footerText(views domain.DashboardViews, theme Theme) string {
	stamp := "Generated " + views.GeneratedAt.Format("January 2, 2006")
	if theme.Footer == "" {
		return stamp
	}
	return theme.Footer + " | " + stamp
}
