package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// annotation places text at a position relative to the data area, where
// (0, 0) is the bottom-left corner and (1, 1) the top-right. Positions outside
// the unit square land in the axis margins.
type annotation struct {
	text       string
	relX, relY float64
	style      text.Style
}

func (a *annotation) Plot(c draw.Canvas, _ *plot.Plot) {
	pt := vg.Point{
		X: c.Min.X + vg.Length(a.relX)*(c.Max.X-c.Min.X),
		Y: c.Min.Y + vg.Length(a.relY)*(c.Max.Y-c.Min.Y),
	}
	c.FillText(a.style, pt, a.text)
}

func textStyle(plt *plot.Plot, size vg.Length, x text.XAlignment, y text.YAlignment) text.Style {
	sty := plt.X.Label.TextStyle
	sty.Font.Size = size
	sty.Rotation = 0
	sty.XAlign = x
	sty.YAlign = y
	return sty
}
