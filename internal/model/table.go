package model

import (
	"encoding/json"
	"math"
	"time"
)

// Column is one named value sequence aligned to Table.Dates.
type Column struct {
	Name   string
	Values []float64
}

// Table is a date-indexed set of columns. Dates are ascending and every
// column has exactly len(Dates) values; NaN marks a missing cell.
type Table struct {
	Dates   []time.Time
	Columns []Column
}

// Empty reports whether the table has no columns.
func (t Table) Empty() bool {
	return len(t.Columns) == 0
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Names returns the column names in order.
func (t Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := Table{
		Dates:   append([]time.Time(nil), t.Dates...),
		Columns: make([]Column, len(t.Columns)),
	}
	for i, c := range t.Columns {
		out.Columns[i] = Column{Name: c.Name, Values: append([]float64(nil), c.Values...)}
	}
	return out
}

type tableJSON struct {
	Dates   []string              `json:"dates"`
	Columns map[string][]*float64 `json:"columns"`
	Order   []string              `json:"order"`
}

// MarshalJSON encodes dates as YYYY-MM-DD and missing cells as null.
func (t Table) MarshalJSON() ([]byte, error) {
	out := tableJSON{
		Dates:   make([]string, len(t.Dates)),
		Columns: make(map[string][]*float64, len(t.Columns)),
		Order:   t.Names(),
	}
	for i, d := range t.Dates {
		out.Dates[i] = d.Format("2006-01-02")
	}
	for _, c := range t.Columns {
		vals := make([]*float64, len(c.Values))
		for i, v := range c.Values {
			if math.IsNaN(v) {
				continue
			}
			vals[i] = &v
		}
		out.Columns[c.Name] = vals
	}
	return json.Marshal(out)
}
