package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	panelWidth  = "760px"
	panelHeight = "480px"
	trendWidth  = "1540px"
)

// RenderHTML writes an interactive page with the donut, ranking and trend panels.
func RenderHTML(w io.Writer, views domain.DashboardViews, theme Theme) error {
	if err := theme.validate(); err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = theme.Title
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		typeDonutChart(views, theme),
		rankingBarChart(views, theme),
		trendLineChart(views, theme),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html dashboard: %w", err)
	}
	return nil
}

func initOpts(theme Theme, width string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle:       theme.Title,
		Width:           width,
		Height:          panelHeight,
		BackgroundColor: theme.Background,
	})
}

func typeDonutChart(views domain.DashboardViews, theme Theme) *charts.Pie {
	tc := views.TypeCounts

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(theme, panelWidth),
		charts.WithTitleOpts(opts.Title{
			Title:    theme.Title,
			Subtitle: typePanelTitle,
			Left:     "center",
		}),
		charts.WithColorsOpts(opts.Colors{theme.Primary, theme.Secondary}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries("Content type", []opts.PieData{
		{Name: movieLabel, Value: tc.Movies},
		{Name: tvShowLabel, Value: tc.TVShows},
	},
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}\n{d}%"}),
	)
	return pie
}

func rankingBarChart(views domain.DashboardViews, theme Theme) *charts.Bar {
	top := views.TopCategories
	n := len(top)

	// The category axis of a reversed bar chart runs bottom-up, so feed it in
	// ascending order to put the largest bar on top.
	names := make([]string, n)
	data := make([]opts.BarData, n)
	for i, c := range top {
		pos := n - 1 - i
		names[pos] = c.Value
		data[pos] = opts.BarData{
			Name:      c.Value,
			Value:     c.Count,
			ItemStyle: &opts.ItemStyle{Color: theme.barColor(i, n)},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(theme, panelWidth),
		charts.WithTitleOpts(opts.Title{Title: rankingTitle(views), Subtitle: barAxisLabel, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithGridOpts(opts.Grid{Left: "25%"}),
	)
	bar.SetXAxis(names).AddSeries(barAxisLabel, data)
	bar.XYReversal()
	return bar
}

func trendLineChart(views domain.DashboardViews, theme Theme) *charts.Line {
	years := make([]string, len(views.YearlyTrend))
	data := make([]opts.LineData, len(views.YearlyTrend))
	for i, yc := range views.YearlyTrend {
		years[i] = strconv.Itoa(yc.Year)
		data[i] = opts.LineData{Name: years[i], Value: yc.Count}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(theme, trendWidth),
		charts.WithTitleOpts(opts.Title{
			Title:    trendTitle(views),
			Subtitle: footerText(views, theme),
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: trendXLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: trendYLabel}),
	)
	line.SetXAxis(years).AddSeries(trendYLabel, data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: theme.Primary}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: theme.Primary}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: rgba(theme.Primary, 0.1)}),
	)
	return line
}
