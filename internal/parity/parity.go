// Package parity describes the predicted-vs-reference panels of a fit report
// without depending on a drawing library.
//
// Each [Panel] carries its scatter series (reference on X, prediction on Y),
// the square axis limits derived from the reference values, and the RMSE
// annotation. [Build] produces the standard three panels: (a) energy,
// (b) force, (c) stress.
package parity

import (
	"fmt"

	"github.com/san-kum/nepplot/internal/dataset"
	"github.com/san-kum/nepplot/internal/metrics"
	"github.com/san-kum/nepplot/internal/table"
)

type Series struct {
	Name string
	X    []float64
	Y    []float64
}

type Panel struct {
	Letter     string
	Name       string
	XLabel     string
	YLabel     string
	Series     []Series
	Lo, Hi     float64
	RMSE       float64
	Annotation string
}

// quantity describes how one table maps onto a panel.
type quantity struct {
	name       string
	letter     string
	components []string
	unit       string
	scale      float64
	format     string
}

var (
	energyQuantity = quantity{
		name:       "energy",
		letter:     "(a)",
		components: []string{"energy"},
		unit:       "eV/atom",
		scale:      1000,
		format:     "RMSE: %.2f meV/atom",
	}
	forceQuantity = quantity{
		name:       "force",
		letter:     "(b)",
		components: []string{"fx", "fy", "fz"},
		unit:       "eV/Å",
		scale:      1000,
		format:     "RMSE: %.2f meV/Å",
	}
	stressQuantity = quantity{
		name:       "stress",
		letter:     "(c)",
		components: []string{"xx", "yy", "zz", "xy", "yz", "zx"},
		unit:       "GPa",
		scale:      1,
		format:     "RMSE: %.4f GPa",
	}
)

// Build returns the energy, force and stress panels in that order.
func Build(ds *dataset.Dataset, padding float64) []Panel {
	return []Panel{
		energyQuantity.panel(ds.Energy, padding),
		forceQuantity.panel(ds.Force, padding),
		stressQuantity.panel(ds.Stress, padding),
	}
}

func (q quantity) panel(t table.Table, padding float64) Panel {
	n := len(q.components)
	p := Panel{
		Letter: q.letter,
		Name:   q.name,
		XLabel: fmt.Sprintf("DFT %s (%s)", q.name, q.unit),
		YLabel: fmt.Sprintf("NEP %s (%s)", q.name, q.unit),
		Series: make([]Series, n),
	}
	for i, c := range q.components {
		p.Series[i] = Series{Name: c, X: t.Column(i + n), Y: t.Column(i)}
	}
	p.Lo, p.Hi = metrics.AxisLimits(t.Columns(n, 2*n), padding)
	p.RMSE = metrics.MeanRMSE(t, n) * q.scale
	p.Annotation = fmt.Sprintf(q.format, p.RMSE)
	return p
}
