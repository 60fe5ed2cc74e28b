package dataset

import (
	"math"

	"github.com/san-kum/nepplot/internal/table"
)

// FilterOutliers drops every row whose first width values contain a
// magnitude above threshold. Row order is preserved and NaN never counts as
// an outlier. Returns the kept rows and the number dropped.
func FilterOutliers(t table.Table, width int, threshold float64) (table.Table, int) {
	kept := make(table.Table, 0, len(t))
	for _, row := range t {
		if isOutlier(row, width, threshold) {
			continue
		}
		kept = append(kept, row)
	}
	return kept, len(t) - len(kept)
}

func isOutlier(row []float64, width int, threshold float64) bool {
	if width > len(row) {
		width = len(row)
	}
	for _, v := range row[:width] {
		if math.Abs(v) > threshold {
			return true
		}
	}
	return false
}
