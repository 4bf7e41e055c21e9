package chart

import (
	"fmt"
	"io"
	"math"

	"FxLens/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const panelWidth = "1100px"

// Render draws every panel of fig as a line chart and stacks them on one page.
func Render(fig Figure, table model.Table) *components.Page {
	page := components.NewPage()
	page.SetPageTitle(fig.Title)
	page.SetLayout(components.PageCenterLayout)

	xAxis := make([]string, len(table.Dates))
	for i, d := range table.Dates {
		xAxis[i] = d.Format("2006-01-02")
	}

	height := fig.Height / PanelCount
	for i, panel := range fig.Panels {
		page.AddCharts(renderPanel(fig, i, panel, xAxis, table, height))
	}
	return page
}

func renderPanel(fig Figure, idx int, panel Panel, xAxis []string, table model.Table, height int) *charts.Line {
	line := charts.NewLine()
	title := opts.Title{Title: panel.Title}
	if idx == 0 {
		title = opts.Title{Title: fig.Title, Subtitle: panel.Title}
	}
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:   panelWidth,
			Height:  fmt.Sprintf("%dpx", height),
			ChartID: fmt.Sprintf("panel%d", idx+1),
		}),
		charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        opts.Bool(true),
			Trigger:     "axis",
			AxisPointer: &opts.AxisPointer{Type: "line"},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "horizontal",
			Left:   "center",
			Bottom: "0",
		}),
		charts.WithGridOpts(opts.Grid{Left: "60", Right: "60", Top: "60", Bottom: "60"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: panel.PrimaryAxis, Scale: opts.Bool(true)}),
	)
	if panel.hasSecondary() {
		line.ExtendYAxis(opts.YAxis{Name: panel.SecondaryAxis, Position: "right", Scale: opts.Bool(true)})
	}

	line.SetXAxis(xAxis)
	for _, tr := range panel.Traces {
		col, ok := table.Column(tr.Column)
		if !ok {
			continue
		}
		style := opts.LineStyle{Color: tr.Color, Width: 2}
		axis := 0
		if tr.Secondary {
			axis = 1
		}
		if tr.Dashed {
			style.Type = "dashed"
		}
		line.AddSeries(tr.Name, lineData(col.Values),
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: axis, ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(style),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: tr.Color}),
		)
	}
	return line
}

func (p Panel) hasSecondary() bool {
	for _, tr := range p.Traces {
		if tr.Secondary {
			return true
		}
	}
	return false
}

// lineData maps NaN to "-", which echarts draws as a gap.
func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: v}
	}
	return data
}

// WriteHTML renders the figure for table as a standalone HTML document.
func WriteHTML(w io.Writer, fig Figure, table model.Table) error {
	if err := Render(fig, table).Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
