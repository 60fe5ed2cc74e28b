package parity

import (
	"github.com/san-kum/nepplot/internal/dataset"
	"github.com/san-kum/nepplot/internal/metrics"
	"github.com/san-kum/nepplot/internal/table"
)

// Quantity holds the RMSE figures for one table, in display units
// (meV/atom, meV/Å, GPa).
type Quantity struct {
	Name       string
	Unit       string
	Rows       int
	Mean       float64
	Components map[string]float64
	Order      []string
}

type Summary struct {
	Energy  Quantity
	Force   Quantity
	Stress  Quantity
	Dropped int
}

func Summarize(ds *dataset.Dataset) Summary {
	return Summary{
		Energy:  energyQuantity.summarize(ds.Energy, "meV/atom"),
		Force:   forceQuantity.summarize(ds.Force, "meV/Å"),
		Stress:  stressQuantity.summarize(ds.Stress, "GPa"),
		Dropped: ds.Dropped,
	}
}

func (s Summary) Quantities() []Quantity {
	return []Quantity{s.Energy, s.Force, s.Stress}
}

func (q quantity) summarize(t table.Table, unit string) Quantity {
	per := metrics.ComponentRMSE(t, len(q.components))
	out := Quantity{
		Name:       q.name,
		Unit:       unit,
		Rows:       t.Rows(),
		Mean:       metrics.MeanRMSE(t, len(q.components)) * q.scale,
		Components: make(map[string]float64, len(per)),
		Order:      q.components,
	}
	for i, c := range q.components {
		out.Components[c] = per[i] * q.scale
	}
	return out
}
