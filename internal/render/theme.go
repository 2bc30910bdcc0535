// Package render draws the catalog dashboard from the three aggregate views.
// Rendering reads views and a Theme; it never mutates either.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Theme carries every visual choice of the dashboard. It is passed to each
// renderer explicitly.
type Theme struct {
	Title  string
	Footer string

	Primary    string // slices, trend line
	Secondary  string // second donut slice
	Text       string // title colour
	Background string

	// BarPalette runs from the darkest colour (largest bar) to the lightest.
	BarPalette []string

	// Static image size in inches.
	WidthInches  float64
	HeightInches float64
}

// DefaultTheme reproduces the red-on-white streaming look.
func DefaultTheme() Theme {
	return Theme{
		Title:      "Netflix Catalog Strategic Analysis",
		Footer:     "Data Analysis | Source: Netflix Dataset",
		Primary:    "#E50914",
		Secondary:  "#564D4D",
		Text:       "#221F1F",
		Background: "#FFFFFF",
		BarPalette: []string{
			"#67000D", "#8C0A13", "#A50F15", "#CB181D", "#E32F27",
			"#F44F39", "#FB6A4A", "#FC8A6A", "#FCAB8F", "#FDC9B4",
		},
		WidthInches:  16,
		HeightInches: 12,
	}
}

// barColor picks the palette entry for the i-th of n bars.
func (t Theme) barColor(i, n int) string {
	if len(t.BarPalette) == 0 {
		return t.Primary
	}
	if n <= 1 {
		return t.BarPalette[0]
	}
	return t.BarPalette[i*(len(t.BarPalette)-1)/(n-1)]
}

// validate checks that every colour parses.
func (t Theme) validate() error {
	for _, hex := range append([]string{t.Primary, t.Secondary, t.Text, t.Background}, t.BarPalette...) {
		if _, err := parseHex(hex); err != nil {
			return err
		}
	}
	if t.WidthInches <= 0 || t.HeightInches <= 0 {
		return fmt.Errorf("invalid image size %gx%g in", t.WidthInches, t.HeightInches)
	}
	return nil
}

// parseHex decodes "#RRGGBB".
func parseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// mustHex is for colours already checked by validate.
func mustHex(s string) color.NRGBA {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// withAlpha returns c with the given opacity in [0, 1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a * 255)
	return c
}

// rgba formats a colour with opacity for CSS.
func rgba(hex string, a float64) string {
	c := mustHex(hex)
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, a)
}
