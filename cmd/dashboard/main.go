// Command dashboard loads a media catalog, computes the type split, category
// ranking and yearly trend, and renders the three-panel dashboard.
//
// Usage:
//
//	go run ./cmd/dashboard -input netflix_titles.csv -output dashboard.html
//	go run ./cmd/dashboard -input netflix_titles.xlsx -serve -addr :8080
//
// With neither -output nor -serve the views are printed to stdout as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/catalog-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/catalog-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/catalog-dashboard/internal/adapter/source"
	"github.com/couchcryptid/catalog-dashboard/internal/config"
	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/couchcryptid/catalog-dashboard/internal/observability"
	"github.com/couchcryptid/catalog-dashboard/internal/pipeline"
	"github.com/couchcryptid/catalog-dashboard/internal/render"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, metrics); err != nil {
		logger.Error("dashboard failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	extractor, err := source.Open(cfg.InputPath, cfg.InputSheet, logger)
	if err != nil {
		return err
	}

	theme := render.DefaultTheme()
	theme.Title = cfg.DashboardTitle
	theme.Footer = cfg.DashboardFooter

	sinks, closers, err := buildSinks(cfg, theme, os.Stdout, logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Error("sink close error", "error", err)
			}
		}
	}()

	opts := domain.ViewOptions{
		CategoryColumn: cfg.CategoryColumn,
		TopN:           cfg.TopN,
		MinYear:        cfg.MinYear,
		RunID:          uuid.NewString(),
	}
	p := pipeline.New(extractor, sinks, opts, logger, metrics)

	if _, err := p.Run(ctx); err != nil {
		return err
	}
	if cfg.OutputPath != "" {
		logger.Info("dashboard written", "path", cfg.OutputPath)
	}

	if !cfg.Serve {
		return nil
	}
	return serve(ctx, cfg, p, theme, logger)
}

// buildSinks assembles the publish targets. Views go to stdout as JSON when
// nothing else would show them.
func buildSinks(cfg *config.Config, theme render.Theme, stdout io.Writer, logger *slog.Logger) ([]pipeline.Sink, []io.Closer, error) {
	var (
		sinks   []pipeline.Sink
		closers []io.Closer
	)

	if cfg.OutputPath != "" {
		fs, err := pipeline.NewFileSink(cfg.OutputPath, theme)
		if err != nil {
			return nil, nil, fmt.Errorf("output %s: %w", cfg.OutputPath, err)
		}
		sinks = append(sinks, fs)
	}

	if cfg.KafkaEnabled {
		w := kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, w)
		closers = append(closers, w)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	if cfg.OutputPath == "" && !cfg.Serve {
		sinks = append(sinks, pipeline.NewJSONSink(stdout))
	}
	return sinks, closers, nil
}

// serve keeps the dashboard available over HTTP until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, theme render.Theme, logger *slog.Logger) error {
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, theme, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		logger.Info("shutdown complete")
		return nil
	})
	return g.Wait()
}
