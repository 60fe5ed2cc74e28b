package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/nepplot/internal/parity"
)

// Scatter draws a character-cell parity plot of p: reference on the
// horizontal axis, prediction on the vertical, both spanning [p.Lo, p.Hi].
// The y = x diagonal is drawn with '·' and points with '•'. Points outside
// the limits are not shown.
func Scatter(p parity.Panel, width, height int) string {
	header := fmt.Sprintf("%s %s, %s", p.Letter, p.Name, p.Annotation)
	if width < 2 || height < 2 || math.IsNaN(p.Lo) || math.IsNaN(p.Hi) {
		return header + "\n" + Subtle.Render("(no rows)")
	}

	span := p.Hi - p.Lo
	if span == 0 {
		span = 1
	}
	col := func(v float64) int { return int(math.Round((v - p.Lo) / span * float64(width-1))) }
	row := func(v float64) int { return height - 1 - int(math.Round((v-p.Lo)/span*float64(height-1))) }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for c := 0; c < width; c++ {
		v := p.Lo + float64(c)/float64(width-1)*span
		if r := row(v); r >= 0 && r < height {
			canvas[r][c] = '·'
		}
	}

	for _, s := range p.Series {
		for i := range s.X {
			c, r := col(s.X[i]), row(s.Y[i])
			if r >= 0 && r < height && c >= 0 && c < width {
				canvas[r][c] = '•'
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteRune('\n')
	fmt.Fprintf(&sb, "%10.4g ┌%s┐\n", p.Hi, strings.Repeat("─", width))
	for _, line := range canvas {
		sb.WriteString("           │")
		sb.WriteString(string(line))
		sb.WriteString("│\n")
	}
	fmt.Fprintf(&sb, "%10.4g └%s┘\n", p.Lo, strings.Repeat("─", width))
	fmt.Fprintf(&sb, "           %-*.4g%*.4g\n", width/2+1, p.Lo, width-width/2+1, p.Hi)
	sb.WriteString(MetricLabel.Render(fmt.Sprintf("           x: %s   y: %s", p.XLabel, p.YLabel)))
	return sb.String()
}
