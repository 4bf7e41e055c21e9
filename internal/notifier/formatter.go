package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"FxLens/internal/calculator"
	"FxLens/internal/config"
	"FxLens/internal/model"

	"github.com/Rhymond/go-money"
)

// FormatRunSummary formats the latest values of a converted table into a Telegram message.
func FormatRunSummary(table model.Table, cfg *config.Config, asOf time.Time, skipped []error) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> | %s\n\n", html.EscapeString(cfg.Chart.Title), asOf.Format("2006-01-02")))

	for _, in := range cfg.Instruments {
		col, ok := table.Column(in.Label)
		if !ok {
			b.WriteString(fmt.Sprintf("%s: no data\n", html.EscapeString(in.Label)))
			continue
		}
		last, ok := calculator.Last(col.Values)
		if !ok {
			continue
		}
		line := fmt.Sprintf("<b>%s</b>: %s", html.EscapeString(in.Label), money.NewFromFloat(last, cfg.Currency.Base).Display())
		if change, err := calculator.WindowChange(col.Values); err == nil {
			line += fmt.Sprintf(" (%+.2f%%)", change)
		}
		if conv, ok := table.Column(calculator.ConvertedName(in.Label, cfg.Currency.Quote)); ok {
			if v, ok := calculator.Last(conv.Values); ok {
				line += " | " + money.NewFromFloat(v, cfg.Currency.Quote).Display()
				if change, err := calculator.WindowChange(conv.Values); err == nil {
					line += fmt.Sprintf(" (%+.2f%%)", change)
				}
			}
		}
		b.WriteString(line + "\n")
	}

	if col, ok := table.Column(cfg.Rate.Label); ok {
		if last, ok := calculator.Last(col.Values); ok {
			b.WriteString(fmt.Sprintf("\n💱 <b>%s</b>: %.2f\n", html.EscapeString(cfg.Rate.Label), last))
			if high, low, err := calculator.WindowRange(col.Values); err == nil {
				pos, _ := calculator.WindowPosition(last, high, low)
				b.WriteString(fmt.Sprintf("   %d-day range: %.2f ~ %.2f (at %.0f%%)\n", cfg.WindowDays, low, high, pos*100))
			}
		}
	} else {
		b.WriteString(fmt.Sprintf("\n💱 %s: no data, %s values not shown\n", html.EscapeString(cfg.Rate.Label), cfg.Currency.Quote))
	}

	if len(skipped) > 0 {
		b.WriteString("\n⚠️ Skipped:\n")
		for _, err := range skipped {
			b.WriteString("  • " + html.EscapeString(err.Error()) + "\n")
		}
	}
	return b.String()
}
