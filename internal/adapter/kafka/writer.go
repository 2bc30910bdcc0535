package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/catalog-dashboard/internal/config"
	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Message keys, one per published view.
const (
	KeyTypeCounts    = "type_counts"
	KeyTopCategories = "top_categories"
	KeyYearlyTrend   = "yearly_trend"
)

// messageWriter is the subset of *kafkago.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes dashboard views to a Kafka topic.
// It implements pipeline.Sink.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured views topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Publish writes the three views in one WriteMessages call. All messages of a
// run share the same key set, so the hash balancer keeps each view on a
// stable partition.
func (w *Writer) Publish(ctx context.Context, views domain.DashboardViews) error {
	msgs, err := viewsToMessages(views)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write views: %w", err)
	}
	w.logger.Info("views published to kafka", "run_id", views.RunID, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// viewsToMessages marshals each view into its own message.
func viewsToMessages(views domain.DashboardViews) ([]kafkago.Message, error) {
	payloads := []struct {
		key   string
		value any
	}{
		{KeyTypeCounts, views.TypeCounts},
		{KeyTopCategories, categoryPayload{
			Column: views.CategoryColumn,
			TopN:   views.TopN,
			Counts: views.TopCategories,
		}},
		{KeyYearlyTrend, trendPayload{
			MinYear: views.MinYear,
			Years:   views.YearlyTrend,
		}},
	}

	headers := []kafkago.Header{
		{Key: "run_id", Value: []byte(views.RunID)},
		{Key: "generated_at", Value: []byte(views.GeneratedAt.Format(time.RFC3339))},
	}

	msgs := make([]kafkago.Message, len(payloads))
	for i, p := range payloads {
		data, err := json.Marshal(p.value)
		if err != nil {
			return nil, fmt.Errorf("serialize %s view: %w", p.key, err)
		}
		msgs[i] = kafkago.Message{
			Key:     []byte(p.key),
			Value:   data,
			Headers: headers,
		}
	}
	return msgs, nil
}

type categoryPayload struct {
	Column string                   `json:"column"`
	TopN   int                      `json:"top_n"`
	Counts domain.TopCategoryCounts `json:"counts"`
}

type trendPayload struct {
	MinYear int                `json:"min_year"`
	Years   domain.YearlyTrend `json:"years"`
}
