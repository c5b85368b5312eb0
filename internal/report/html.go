package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/minehint/internal/minefield"
)

// hintColors runs from the mine colour at -1 through white at 0 to dark
// blue at 8.
var hintColors = []string{"#b2182b", "#ffffff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"}

// WriteHTML renders an echarts page with a hint histogram followed by one
// heatmap per field.
func WriteHTML(w io.Writer, title string, fields []*minefield.Field) error {
	page := components.NewPage()
	page.PageTitle = title

	page.AddCharts(histogramChart(SummarizeAll(fields)))
	for _, f := range fields {
		page.AddCharts(fieldHeatMap(f))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}

func fieldHeatMap(f *minefield.Field) *charts.HeatMap {
	rows, cols := f.Rows(), f.Cols()

	xs := make([]string, cols)
	for c := range xs {
		xs[c] = strconv.Itoa(c)
	}
	// Category y axes grow upwards, so row 0 is listed last.
	ys := make([]string, rows)
	for r := range ys {
		ys[r] = strconv.Itoa(rows - 1 - r)
	}

	data := make([]opts.HeatMapData, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data = append(data, opts.HeatMapData{
				Name:  f.Get(r, c).Render(),
				Value: []interface{}{c, rows - 1 - r, f.Get(r, c).Count()},
			})
		}
	}

	s := Summarize(f)
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", 200+24*cols),
			Height: fmt.Sprintf("%dpx", 160+24*rows),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf(minefield.HeaderFormat, f.ID()),
			Subtitle: fmt.Sprintf("%dx%d mines=%d density=%.2f", rows, cols, s.Mines, s.Density),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xs, Name: "col"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys, Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        minefield.MineValue,
			Max:        MaxHint,
			InRange:    &opts.VisualMapInRange{Color: hintColors},
		}),
	)
	hm.AddSeries("hints", data)
	return hm
}

func histogramChart(summaries []Summary) *charts.Bar {
	var totals [MaxHint + 1]int
	mines := 0
	for _, s := range summaries {
		for n, v := range s.Histogram {
			totals[n] += v
		}
		mines += s.Mines
	}

	x := make([]string, 0, len(totals)+1)
	y := make([]opts.BarData, 0, len(totals)+1)
	x = append(x, minefield.MineToken)
	y = append(y, opts.BarData{Value: mines})
	for n, v := range totals {
		x = append(x, strconv.Itoa(n))
		y = append(y, opts.BarData{Value: v})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Hint distribution", Subtitle: fmt.Sprintf("fields=%d", len(summaries))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("cells", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}
