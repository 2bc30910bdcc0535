package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/couchcryptid/catalog-dashboard/internal/render"
)

// FileSink renders the dashboard to a file; the extension picks the format.
type FileSink struct {
	path  string
	theme render.Theme
}

// NewFileSink creates a FileSink. It fails early on an unsupported extension.
func NewFileSink(path string, theme render.Theme) (*FileSink, error) {
	if _, err := render.FormatFromPath(path); err != nil {
		return nil, err
	}
	return &FileSink{path: path, theme: theme}, nil
}

func (s *FileSink) Name() string { return "file" }

func (s *FileSink) Publish(_ context.Context, views domain.DashboardViews) error {
	return render.WriteFile(s.path, views, s.theme)
}

// JSONSink writes the views as indented JSON.
type JSONSink struct {
	w io.Writer
}

// NewJSONSink creates a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

func (s *JSONSink) Name() string { return "json" }

func (s *JSONSink) Publish(_ context.Context, views domain.DashboardViews) error {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		return fmt.Errorf("encode views: %w", err)
	}
	return nil
}
