package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nepplot/internal/parity"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Orange,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Purple,
	asciigraph.Brown,
}

// Residuals plots prediction minus reference for every series of p, in row
// order, scaled to width columns.
func Residuals(p parity.Panel, width, height int) string {
	caption := fmt.Sprintf("%s %s: NEP - DFT, %s", p.Letter, p.Name, p.Annotation)

	data := make([][]float64, 0, len(p.Series))
	names := make([]string, 0, len(p.Series))
	for _, s := range p.Series {
		if len(s.X) == 0 {
			continue
		}
		r := make([]float64, len(s.X))
		for i := range s.X {
			r[i] = s.Y[i] - s.X[i]
		}
		data = append(data, r)
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		return caption + "\n" + Subtle.Render("(no rows)")
	}

	colors := seriesColors
	if len(data) < len(colors) {
		colors = colors[:len(data)]
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	}
	if len(data) > 1 {
		opts = append(opts, asciigraph.SeriesLegends(names...))
	}
	return asciigraph.PlotMany(data, opts...)
}
