// Package charts renders the console's server-side charts with go-echarts.
//
// Each chart is a complete HTML document; pages embed it in an iframe
// pointing at the feature's chart endpoint.
package charts

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const height = "340px"

// Point is one labelled value.
type Point struct {
	Label string
	Value float64
}

func global(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "100%",
			Height: height,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func labels(points []Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}

// Bar renders one bar series.
func Bar(title, subtitle, series string, points []Point) ([]byte, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(global(title, subtitle)...)
	data := make([]opts.BarData, len(points))
	for i, p := range points {
		data[i] = opts.BarData{Name: p.Label, Value: p.Value}
	}
	bar.SetXAxis(labels(points)).AddSeries(series, data)
	return render(bar)
}

// Line renders one smoothed line series.
func Line(title, subtitle, series string, points []Point) ([]byte, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(global(title, subtitle)...)
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		data[i] = opts.LineData{Name: p.Label, Value: p.Value}
	}
	line.SetXAxis(labels(points)).AddSeries(series, data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return render(line)
}

// Pie renders a doughnut of shares.
func Pie(title, subtitle, series string, points []Point) ([]byte, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(global(title, subtitle)...)
	data := make([]opts.PieData, len(points))
	for i, p := range points {
		data[i] = opts.PieData{Name: p.Label, Value: p.Value}
	}
	pie.AddSeries(series, data).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
	)
	return render(pie)
}

func render(c interface{ Render(io.Writer) error }) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write sends a rendered chart document.
func Write(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(html)
}
