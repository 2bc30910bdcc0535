package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/couchcryptid/catalog-dashboard/internal/render"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all run settings, populated from environment variables and
// optionally overridden by command-line flags.
type Config struct {
	InputPath      string `envconfig:"CATALOG_PATH" validate:"required"`
	InputSheet     string `envconfig:"CATALOG_SHEET"`
	OutputPath     string `envconfig:"OUTPUT_PATH" validate:"omitempty,dashboard_output"`
	MinYear        int    `envconfig:"TREND_MIN_YEAR" default:"2015" validate:"gte=1900,lte=9999"`
	TopN           int    `envconfig:"TOP_N" default:"10" validate:"gte=1,lte=100"`
	CategoryColumn string `envconfig:"CATEGORY_COLUMN" default:"country" validate:"required"`

	Serve           bool          `envconfig:"SERVE" default:"false"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	// Dashboard text.
	DashboardTitle  string `envconfig:"DASHBOARD_TITLE" default:"Netflix Catalog Strategic Analysis"`
	DashboardFooter string `envconfig:"DASHBOARD_FOOTER" default:"Data Analysis | Source: Netflix Dataset"`

	// Kafka views publisher configuration.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"catalog-dashboard-views"`
	KafkaEnabled bool     `ignored:"true"`
}

// Load reads configuration from environment variables, applying defaults where unset.
// Required fields are not checked until Validate, so flags can still supply them.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)
	cfg.KafkaEnabled = len(cfg.KafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		cfg.KafkaEnabled = v == "true"
	}

	return &cfg, nil
}

// BindFlags registers command-line overrides on fs, using the env-derived
// values as defaults.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.InputPath, "input", c.InputPath, "catalog file (.csv, .tsv, .xlsx) [CATALOG_PATH]")
	fs.StringVar(&c.OutputPath, "output", c.OutputPath, "write the dashboard to this file (.html, .png, .svg) [OUTPUT_PATH]")
	fs.IntVar(&c.MinYear, "min-year", c.MinYear, "first year shown in the trend panel [TREND_MIN_YEAR]")
	fs.IntVar(&c.TopN, "top", c.TopN, "number of categories in the ranking panel [TOP_N]")
	fs.BoolVar(&c.Serve, "serve", c.Serve, "serve the interactive dashboard over HTTP until interrupted [SERVE]")
	fs.StringVar(&c.HTTPAddr, "addr", c.HTTPAddr, "listen address when serving [HTTP_ADDR]")
}

// Validate checks field rules and cross-field constraints.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return formatError(err)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if c.KafkaEnabled && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when Kafka publishing is enabled")
	}
	return nil
}

// newValidator reports fields by their environment variable name.
func newValidator() *validator.Validate {
	v := validator.New()
	// Output extensions are whatever the renderer accepts.
	_ = v.RegisterValidation("dashboard_output", func(fl validator.FieldLevel) bool {
		_, err := render.FormatFromPath(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("envconfig"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

func formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Field()+" "+friendlyMessage(e))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "dashboard_output":
		return "must end in .html, .htm, .png or .svg"
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "is invalid"
	}
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
