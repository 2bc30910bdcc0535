package pipeline

import (
	"github.com/couchcryptid/catalog-dashboard/internal/domain"
)

// normalize runs the domain normalizer and reports its soft failures: one
// debug line per unparseable date, a warning summary, and the counters.
func (p *Pipeline) normalize(raw domain.RawCatalog) domain.NormalizedCatalog {
	catalog := domain.Normalize(raw)

	for _, issue := range catalog.UnparseableDates {
		p.logger.Debug("date_added not parseable, year left absent",
			"line", issue.Line,
			"value", issue.Text,
		)
	}
	if n := len(catalog.UnparseableDates); n > 0 {
		p.logger.Warn("rows without a parseable date_added", "count", n, "records", catalog.Len())
		p.metrics.UnparseableDates.Add(float64(n))
	}

	unknown := 0
	for tag, n := range catalog.UnknownTypeTags {
		unknown += n
		p.logger.Debug("type tag not counted", "tag", tag, "count", n)
	}
	if unknown > 0 {
		p.logger.Warn("rows with an unknown content type", "count", unknown)
		p.metrics.UnknownTypeTags.Add(float64(unknown))
	}

	for column, n := range catalog.SentinelFills {
		p.metrics.SentinelFills.WithLabelValues(column).Add(float64(n))
	}
	return catalog
}
