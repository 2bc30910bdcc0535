//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/catalog-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/catalog-dashboard/internal/adapter/source"
	"github.com/couchcryptid/catalog-dashboard/internal/config"
	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/couchcryptid/catalog-dashboard/internal/observability"
	"github.com/couchcryptid/catalog-dashboard/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testViewsTopic = "test-catalog-views"

const testCatalog = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,A filmmaker stages his father's death.
s2,TV Show,Blood & Water,,Ama Qamata,South Africa,"September 24, 2021",2021,TV-MA,2 Seasons,International TV Shows,Cape Town teens.
s3,TV Show,Ganglands,Julien Leclercq,Sami Bouajila,,2021-09-24,2021,TV-MA,1 Season,Crime TV Shows,A thief's crew.
s4,Movie,Sankofa,Haile Gerima,Kofi Ghanaba,United States,"September 24, 2019",1993,TV-MA,125 min,Dramas,An American model.
`

// viewMessage holds a message read back from the views topic.
type viewMessage struct {
	Key     string
	Value   []byte
	Headers map[string]string
}

func readView(ctx context.Context, t *testing.T, consumer *kafkago.Reader) viewMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from views topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return viewMessage{Key: string(msg.Key), Value: msg.Value, Headers: headers}
}

// TestPipelinePublishesViews runs the full pipeline from a CSV file to Kafka
// and checks the three view messages.
func TestPipelinePublishesViews(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testViewsTopic)

	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	extractor, err := source.Open(path, "", discardLogger())
	require.NoError(t, err)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testViewsTopic,
		KafkaEnabled: true,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	opts := domain.DefaultViewOptions()
	opts.RunID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	p := pipeline.New(extractor, []pipeline.Sink{writer}, opts, discardLogger(), observability.NewMetricsForTesting())

	views, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeCounts{Movies: 2, TVShows: 2}, views.TypeCounts)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testViewsTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := make(map[string]viewMessage, 3)
	for range 3 {
		vm := readView(ctx, t, consumer)
		got[vm.Key] = vm
	}
	require.Len(t, got, 3)

	for _, vm := range got {
		assert.Equal(t, opts.RunID, vm.Headers["run_id"])
		_, err := time.Parse(time.RFC3339, vm.Headers["generated_at"])
		assert.NoError(t, err, "generated_at should be valid RFC3339")
	}

	var tc domain.TypeCounts
	require.NoError(t, json.Unmarshal(got[kafka.KeyTypeCounts].Value, &tc))
	assert.Equal(t, domain.TypeCounts{Movies: 2, TVShows: 2}, tc)

	var top struct {
		Column string                   `json:"column"`
		Counts domain.TopCategoryCounts `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(got[kafka.KeyTopCategories].Value, &top))
	assert.Equal(t, domain.ColumnCountry, top.Column)
	assert.Equal(t, domain.TopCategoryCounts{
		{Value: "United States", Count: 2},
		{Value: "South Africa", Count: 1},
		{Value: domain.Unknown, Count: 1},
	}, top.Counts)

	var trend struct {
		MinYear int                `json:"min_year"`
		Years   domain.YearlyTrend `json:"years"`
	}
	require.NoError(t, json.Unmarshal(got[kafka.KeyYearlyTrend].Value, &trend))
	assert.Equal(t, 2015, trend.MinYear)
	assert.Equal(t, domain.YearlyTrend{{Year: 2019, Count: 1}, {Year: 2021, Count: 2}}, trend.Years)
}
