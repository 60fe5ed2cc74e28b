package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/nepplot/internal/table"
)

// RMSE returns sqrt(mean((pred-ref)^2)). Empty input yields NaN.
// It panics if the slices differ in length.
func RMSE(pred, ref []float64) float64 {
	diff := make([]float64, len(pred))
	floats.SubTo(diff, pred, ref)
	return math.Sqrt(floats.Dot(diff, diff) / float64(len(diff)))
}

// ComponentRMSE compares column i against column i+n for every i in [0, n).
// The table stores n predicted columns followed by n reference columns.
func ComponentRMSE(t table.Table, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = RMSE(t.Column(i), t.Column(i+n))
	}
	return out
}

// MeanRMSE averages ComponentRMSE over the n components.
func MeanRMSE(t table.Table, n int) float64 {
	return stat.Mean(ComponentRMSE(t, n), nil)
}
