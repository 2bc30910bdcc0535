package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/couchcryptid/catalog-dashboard/internal/observability"
)

// Extractor reads the raw catalog table from its source.
type Extractor interface {
	Extract(ctx context.Context) (*domain.RawCatalog, error)
}

// Sink receives the finished views of a run.
type Sink interface {
	Name() string
	Publish(ctx context.Context, views domain.DashboardViews) error
}

// Pipeline orchestrates one load-normalize-aggregate-publish run.
type Pipeline struct {
	extractor Extractor
	sinks     []Sink
	opts      domain.ViewOptions
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	latest    atomic.Pointer[domain.DashboardViews]
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, sinks []Sink, opts domain.ViewOptions, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		sinks:     sinks,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a run has completed successfully, or an
// error describing why the dashboard is not yet available.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Views returns the views of the last successful run.
func (p *Pipeline) Views() (domain.DashboardViews, bool) {
	v := p.latest.Load()
	if v == nil {
		return domain.DashboardViews{}, false
	}
	return *v, true
}

// Run executes a single run. Load errors and sink errors are fatal; soft
// failures in the data are logged and counted.
func (p *Pipeline) Run(ctx context.Context) (views domain.DashboardViews, err error) {
	p.logger.Info("pipeline started",
		"run_id", p.opts.RunID,
		"category_column", p.opts.CategoryColumn,
		"top_n", p.opts.TopN,
		"min_year", p.opts.MinYear,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		p.metrics.Runs.WithLabelValues(outcome).Inc()
	}()

	var raw *domain.RawCatalog
	err = p.timed("extract", func() error {
		var extractErr error
		raw, extractErr = p.extractor.Extract(ctx)
		return extractErr
	})
	if err != nil {
		p.logger.Error("extract catalog failed", "error", err)
		return domain.DashboardViews{}, fmt.Errorf("extract catalog: %w", err)
	}
	p.metrics.RecordsLoaded.Add(float64(len(raw.Rows)))

	var catalog domain.NormalizedCatalog
	_ = p.timed("normalize", func() error {
		catalog = p.normalize(*raw)
		return nil
	})

	_ = p.timed("aggregate", func() error {
		views = domain.BuildViews(catalog, p.opts)
		return nil
	})

	err = p.timed("publish", func() error {
		return p.publish(ctx, views)
	})
	if err != nil {
		return domain.DashboardViews{}, err
	}

	p.latest.Store(&views)
	p.ready.Store(true)
	p.metrics.LastRunTimestamp.Set(float64(views.GeneratedAt.Unix()))

	p.logger.Info("pipeline finished",
		"run_id", views.RunID,
		"records", views.TotalRecords,
		"movies", views.TypeCounts.Movies,
		"tv_shows", views.TypeCounts.TVShows,
		"categories", len(views.TopCategories),
		"trend_years", len(views.YearlyTrend),
	)
	return views, nil
}

// publish hands the views to every sink in order and stops at the first
// failure.
func (p *Pipeline) publish(ctx context.Context, views domain.DashboardViews) error {
	for _, s := range p.sinks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Publish(ctx, views); err != nil {
			p.metrics.SinkErrors.WithLabelValues(s.Name()).Inc()
			p.logger.Error("publish views failed", "sink", s.Name(), "error", err)
			return fmt.Errorf("publish to %s: %w", s.Name(), err)
		}
		p.logger.Debug("views published", "sink", s.Name())
	}
	return nil
}

// timed runs fn and observes its duration under the given stage label.
func (p *Pipeline) timed(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return err
}
