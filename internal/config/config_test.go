package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogPath = "data/netflix_titles.csv"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.InputPath)
	assert.Empty(t, cfg.OutputPath)
	assert.Equal(t, 2015, cfg.MinYear)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, "country", cfg.CategoryColumn)
	assert.False(t, cfg.Serve)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "Netflix Catalog Strategic Analysis", cfg.DashboardTitle)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "catalog-dashboard-views", cfg.KafkaTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CATALOG_PATH", testCatalogPath)
	t.Setenv("CATALOG_SHEET", "titles")
	t.Setenv("OUTPUT_PATH", "out/dashboard.png")
	t.Setenv("TREND_MIN_YEAR", "2018")
	t.Setenv("TOP_N", "5")
	t.Setenv("CATEGORY_COLUMN", "rating")
	t.Setenv("SERVE", "true")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "views")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, testCatalogPath, cfg.InputPath)
	assert.Equal(t, "titles", cfg.InputSheet)
	assert.Equal(t, "out/dashboard.png", cfg.OutputPath)
	assert.Equal(t, 2018, cfg.MinYear)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "rating", cfg.CategoryColumn)
	assert.True(t, cfg.Serve)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "views", cfg.KafkaTopic)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_InvalidMinYear(t *testing.T) {
	t.Setenv("TREND_MIN_YEAR", "twenty-fifteen")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TREND_MIN_YEAR")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestValidate_MissingInput(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_PATH is required")
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{"top n zero", map[string]string{"TOP_N": "0"}, "TOP_N must be greater than or equal to 1"},
		{"min year too small", map[string]string{"TREND_MIN_YEAR": "1200"}, "TREND_MIN_YEAR"},
		{"log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT must be one of"},
		{"output extension", map[string]string{"OUTPUT_PATH": "dashboard.pdf"}, "OUTPUT_PATH must end in .html, .htm, .png or .svg"},
		{"output without extension", map[string]string{"OUTPUT_PATH": "dashboard"}, "OUTPUT_PATH must end in"},
		{"negative shutdown", map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}, "SHUTDOWN_TIMEOUT"},
		{"kafka forced without brokers", map[string]string{"KAFKA_ENABLED": "true"}, "KAFKA_BROKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CATALOG_PATH", testCatalogPath)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidate_OutputPathFollowsRenderer(t *testing.T) {
	for _, path := range []string{"dash.html", "dash.HTML", "dash.htm", "dash.png", "dash.PNG", "out/dash.svg", "dash.Svg"} {
		t.Run(path, func(t *testing.T) {
			t.Setenv("CATALOG_PATH", testCatalogPath)
			t.Setenv("OUTPUT_PATH", path)

			cfg, err := Load()
			require.NoError(t, err)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestBindFlags_OverridesEnv(t *testing.T) {
	t.Setenv("CATALOG_PATH", "env.csv")
	t.Setenv("TREND_MIN_YEAR", "2016")

	cfg, err := Load()
	require.NoError(t, err)

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-input", "flag.csv", "-output", "out.html", "-serve"}))

	assert.Equal(t, "flag.csv", cfg.InputPath)
	assert.Equal(t, "out.html", cfg.OutputPath)
	assert.Equal(t, 2016, cfg.MinYear)
	assert.True(t, cfg.Serve)
	assert.NoError(t, cfg.Validate())
}
