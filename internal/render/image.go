package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// RenderImage draws the static dashboard: donut and ranking side by side on
// top, the trend across the bottom, a title band and a footer line.
func RenderImage(w io.Writer, format Format, views domain.DashboardViews, theme Theme) error {
	if err := theme.validate(); err != nil {
		return err
	}

	width := vg.Length(theme.WidthInches) * vg.Inch
	height := vg.Length(theme.HeightInches) * vg.Inch

	var (
		canvas vg.CanvasSizer
		out    io.WriterTo
	)
	switch format {
	case FormatPNG:
		img := vgimg.New(width, height)
		canvas, out = img, vgimg.PngCanvas{Canvas: img}
	case FormatSVG:
		svg := vgsvg.New(width, height)
		canvas, out = svg, svg
	default:
		return fmt.Errorf("%w: %s is not an image format", ErrUnsupportedOutput, format)
	}

	drawDashboard(draw.New(canvas), views, theme)

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("write %s dashboard: %w", format, err)
	}
	return nil
}

func drawDashboard(dc draw.Canvas, views domain.DashboardViews, theme Theme) {
	dc.SetColor(mustHex(theme.Background))
	dc.Fill(dc.Rectangle.Path())

	width := dc.Max.X - dc.Min.X
	height := dc.Max.Y - dc.Min.Y
	titleBand := height * 0.07
	footerBand := height * 0.04
	pad := width * 0.02
	gap := width * 0.02

	base := newPlot(theme)
	heading := base.Title.TextStyle
	heading.Font.Size = vg.Points(28)
	heading.XAlign, heading.YAlign = text.XCenter, text.YCenter
	dc.FillText(heading, vg.Point{X: dc.Min.X + width/2, Y: dc.Max.Y - titleBand/2}, theme.Title)

	footer := base.Title.TextStyle
	footer.Font.Size = vg.Points(10)
	footer.Font.Weight = xfont.WeightNormal
	footer.Font.Style = xfont.StyleItalic
	footer.Color = color.Gray{Y: 0x80}
	footer.XAlign, footer.YAlign = text.XCenter, text.YCenter
	dc.FillText(footer, vg.Point{X: dc.Min.X + width/2, Y: dc.Min.Y + footerBand/2}, footerText(views, theme))

	body := draw.Crop(dc, pad, -pad, footerBand, -titleBand)
	bodyW := body.Max.X - body.Min.X
	bodyH := body.Max.Y - body.Min.Y

	top := draw.Crop(body, 0, 0, bodyH/2+gap/2, 0)
	bottom := draw.Crop(body, 0, 0, 0, -bodyH/2-gap/2)
	left := draw.Crop(top, 0, -bodyW/2-gap/2, 0, 0)
	right := draw.Crop(top, bodyW/2+gap/2, 0, 0, 0)

	typePlot(views, theme).Draw(left)
	rankingPlot(views, theme).Draw(right)
	trendPlot(views, theme).Draw(bottom)
}

// newPlot returns a plot with bold, themed panel titles.
func newPlot(theme Theme) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = color.Transparent
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.TextStyle.Color = mustHex(theme.Text)
	p.Title.Padding = vg.Points(15)
	return p
}

func typePlot(views domain.DashboardViews, theme Theme) *plot.Plot {
	p := newPlot(theme)
	p.Title.Text = typePanelTitle
	p.HideAxes()

	label := p.Title.TextStyle
	label.Font.Size = vg.Points(12)

	p.Add(&donut{
		values:     []float64{float64(views.TypeCounts.Movies), float64(views.TypeCounts.TVShows)},
		labels:     []string{movieLabel, tvShowLabel},
		colors:     []color.Color{mustHex(theme.Primary), mustHex(theme.Secondary)},
		hole:       0.70,
		explode:    0.05,
		start:      140,
		background: mustHex(theme.Background),
		label:      label,
	})
	return p
}

func rankingPlot(views domain.DashboardViews, theme Theme) *plot.Plot {
	p := newPlot(theme)
	p.Title.Text = rankingTitle(views)
	p.X.Label.Text = barAxisLabel
	p.X.Min = 0

	top := views.TopCategories
	n := len(top)
	names := make([]string, n)
	for i, c := range top {
		pos := n - 1 - i
		names[pos] = c.Value

		bar, err := plotter.NewBarChart(plotter.Values{float64(c.Count)}, vg.Points(16))
		if err != nil {
			// Values built from counts are always finite.
			continue
		}
		bar.Horizontal = true
		bar.XMin = float64(pos)
		bar.Color = mustHex(theme.barColor(i, n))
		bar.LineStyle.Width = 0
		p.Add(bar)
	}
	if n > 0 {
		p.NominalY(names...)
	}

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	grid.Vertical.Color = color.Gray{Y: 0xcc}
	p.Add(grid)
	return p
}

func trendPlot(views domain.DashboardViews, theme Theme) *plot.Plot {
	p := newPlot(theme)
	p.Title.Text = trendTitle(views)
	p.X.Label.Text = trendXLabel
	p.Y.Label.Text = trendYLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	grid.Horizontal.Color = color.Gray{Y: 0xcc}
	p.Add(grid)

	if len(views.YearlyTrend) == 0 {
		return p
	}

	xys := make(plotter.XYs, len(views.YearlyTrend))
	ticks := make([]plot.Tick, len(views.YearlyTrend))
	for i, yc := range views.YearlyTrend {
		xys[i].X = float64(yc.Year)
		xys[i].Y = float64(yc.Count)
		ticks[i] = plot.Tick{Value: float64(yc.Year), Label: strconv.Itoa(yc.Year)}
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return p
	}
	primary := mustHex(theme.Primary)
	line.Color = primary
	line.Width = vg.Points(4)
	line.FillColor = withAlpha(primary, 0.1)
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(5)
	points.Color = primary

	p.Add(line, points)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = 0
	return p
}
