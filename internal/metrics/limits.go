package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const DefaultPadding = 0.08

// AxisLimits pads [min, max] of values by padding times its range on both
// sides. Empty input yields NaN bounds; identical values collapse to a point.
func AxisLimits(values []float64, padding float64) (lo, hi float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	vmin, vmax := floats.Min(values), floats.Max(values)
	span := vmax - vmin
	return vmin - padding*span, vmax + padding*span
}
