package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
)

// ErrUnsupportedOutput is returned for output files with an unknown extension.
var ErrUnsupportedOutput = errors.New("unsupported dashboard output")

// Format is a dashboard output encoding.
type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
)

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", ".htm":
		return FormatHTML, nil
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOutput, ext)
	}
}

// Render writes the dashboard in the given format.
func Render(w io.Writer, format Format, views domain.DashboardViews, theme Theme) error {
	if format == FormatHTML {
		return RenderHTML(w, views, theme)
	}
	return RenderImage(w, format, views, theme)
}

// WriteFile renders the dashboard to path, choosing the format by extension.
// Parent directories are created as needed.
func WriteFile(path string, views domain.DashboardViews, theme Theme) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	return Render(f, format, views, theme)
}
