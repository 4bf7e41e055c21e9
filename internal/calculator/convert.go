package calculator

import (
	"FxLens/internal/model"
)

// ConvertedName is the column name of label expressed in the quote currency.
func ConvertedName(label, quote string) string {
	return label + " (" + quote + ")"
}

// Convert returns a copy of table with one extra column per base-denominated
// column, valued at the forward-filled rate of the same date. Without a rate
// column no columns are added.
func Convert(table model.Table, rateLabel, base, quote string) model.Table {
	out := table.Clone()
	rateCol, ok := table.Column(rateLabel)
	if !ok {
		return out
	}
	rate := ForwardFill(rateCol.Values)

	for _, c := range table.Columns {
		if c.Name == rateLabel || !model.DenominatedIn(c.Name, base) {
			continue
		}
		// Columns share the table's date index, so lengths always match.
		values, _ := Multiply(c.Values, rate)
		out.Columns = append(out.Columns, model.Column{Name: ConvertedName(c.Name, quote), Values: values})
	}
	return out
}
