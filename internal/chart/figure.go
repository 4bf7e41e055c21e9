package chart

import (
	"strings"

	"FxLens/internal/calculator"
	"FxLens/internal/model"
)

// Layout carries the fixed parameters of the comparison figure.
type Layout struct {
	Title       string
	Height      int
	Instruments []model.Instrument
	Rate        model.Instrument
	Base        string
	Quote       string
}

// Trace is one line drawn from a table column.
type Trace struct {
	Name      string
	Column    string
	Color     string
	Dashed    bool
	Secondary bool
}

// Panel is one row of the figure.
type Panel struct {
	Title         string
	PrimaryAxis   string
	SecondaryAxis string
	Traces        []Trace
}

// Figure describes the whole chart independently of the drawing library.
type Figure struct {
	Title  string
	Height int
	Panels []Panel
}

// TraceCount returns the number of traces over all panels.
func (f Figure) TraceCount() int {
	n := 0
	for _, p := range f.Panels {
		n += len(p.Traces)
	}
	return n
}

var instrumentColors = [][2]string{
	{"blue", "red"},
	{"green", "orange"},
}

const rateColor = "purple"

// PanelCount is fixed: one row per instrument plus the exchange rate.
const PanelCount = 3

// BuildFigure lays out two dual-axis instrument rows and one exchange-rate
// row. Traces whose column is absent from table are left out; the rows stay.
func BuildFigure(table model.Table, layout Layout) Figure {
	fig := Figure{Title: layout.Title, Height: layout.Height}

	for i, colors := range instrumentColors {
		if i >= len(layout.Instruments) {
			fig.Panels = append(fig.Panels, Panel{})
			continue
		}
		in := layout.Instruments[i]
		short := shortName(in.Label, layout.Base)
		panel := Panel{
			Title:         short + ": " + layout.Base + " vs " + layout.Quote,
			PrimaryAxis:   layout.Base,
			SecondaryAxis: layout.Quote,
		}
		if _, ok := table.Column(in.Label); ok {
			panel.Traces = append(panel.Traces, Trace{
				Name:   short + " (" + layout.Base + ")",
				Column: in.Label,
				Color:  colors[0],
			})
		}
		converted := calculator.ConvertedName(in.Label, layout.Quote)
		if _, ok := table.Column(converted); ok {
			panel.Traces = append(panel.Traces, Trace{
				Name:      short + " (" + layout.Quote + ")",
				Column:    converted,
				Color:     colors[1],
				Dashed:    true,
				Secondary: true,
			})
		}
		fig.Panels = append(fig.Panels, panel)
	}

	rate := Panel{
		Title:       layout.Rate.Label + " rate",
		PrimaryAxis: layout.Quote + " per 1 " + layout.Base,
	}
	if _, ok := table.Column(layout.Rate.Label); ok {
		rate.Traces = append(rate.Traces, Trace{
			Name:   layout.Rate.Label + " rate",
			Column: layout.Rate.Label,
			Color:  rateColor,
		})
	}
	fig.Panels = append(fig.Panels, rate)
	return fig
}

// shortName drops the currency marker: "QQQ (USD)" -> "QQQ".
func shortName(label, base string) string {
	return strings.TrimSpace(strings.Replace(label, "("+base+")", "", 1))
}
