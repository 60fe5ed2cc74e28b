// Package render draws parity panels side by side into one figure with
// gonum/plot.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/nepplot/internal/config"
	"github.com/san-kum/nepplot/internal/parity"
)

// ErrDegenerateRange indicates a panel whose axis limits are not finite,
// which happens when its table is empty.
var ErrDegenerateRange = errors.New("render: axis range is not finite")

// Palette is the marker colour cycle, one entry per series.
var Palette = []color.Color{
	rgb(0x1f, 0x77, 0xb4),
	rgb(0xff, 0x7f, 0x0e),
	rgb(0x2c, 0xa0, 0x2c),
	rgb(0xd6, 0x27, 0x28),
	rgb(0x94, 0x67, 0xbd),
	rgb(0x8c, 0x56, 0x4b),
}

var diagonalColor = rgb(0x80, 0x80, 0x80)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Figure draws the panels left to right on a raster canvas sized by fig.
func Figure(panels []parity.Panel, fig config.Figure) (*vgimg.Canvas, error) {
	if err := fig.Validate(); err != nil {
		return nil, err
	}
	img := vgimg.NewWith(vgimg.UseWH(figureSize(fig)), vgimg.UseDPI(fig.DPI))
	if err := drawFigure(img, panels, fig); err != nil {
		return nil, err
	}
	return img, nil
}

func drawFigure(c vg.CanvasSizer, panels []parity.Panel, fig config.Figure) error {
	row := make([]*plot.Plot, len(panels))
	for i, p := range panels {
		plt, err := newPanelPlot(p, fig)
		if err != nil {
			return fmt.Errorf("%s panel: %w", p.Name, err)
		}
		row[i] = plt
	}

	canvases := plot.Align([][]*plot.Plot{row}, layout(fig, len(panels)), draw.New(c))
	for i, plt := range row {
		plt.Draw(canvases[0][i])
	}
	return nil
}

func figureSize(fig config.Figure) (w, h vg.Length) {
	return vg.Length(fig.Width) * vg.Inch, vg.Length(fig.Height) * vg.Inch
}

// layout maps figure-fraction margins onto a single row of tiles. Axis labels
// and tick labels are laid out inside each tile by gonum/plot, while the
// bottom and left margins also hold them outside the axes; half of those
// margins goes to the tile padding and the rest is taken by the labels.
func layout(fig config.Figure, n int) draw.Tiles {
	w, h := figureSize(fig)
	m := fig.Margins

	avail := vg.Length(m.Right-m.Left) * w
	cols := vg.Length(n)
	tile := avail / (cols + vg.Length(fig.WSpace)*(cols-1))

	return draw.Tiles{
		Rows:      1,
		Cols:      n,
		PadTop:    vg.Length(1-m.Top) * h,
		PadBottom: vg.Length(m.Bottom) * h / 2,
		PadLeft:   vg.Length(m.Left) * w / 2,
		PadRight:  vg.Length(1-m.Right) * w,
		PadX:      vg.Length(fig.WSpace) * tile,
	}
}

func newPanelPlot(p parity.Panel, fig config.Figure) (*plot.Plot, error) {
	if !finite(p.Lo) || !finite(p.Hi) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrDegenerateRange, p.Lo, p.Hi)
	}

	labelSize := vg.Points(fig.LabelFontSize)
	plt := plot.New()
	plt.BackgroundColor = color.Transparent
	plt.X.Label.Text = p.XLabel
	plt.Y.Label.Text = p.YLabel
	for _, ax := range []*plot.Axis{&plt.X, &plt.Y} {
		ax.Label.TextStyle.Font.Size = labelSize
		ax.Tick.Label.Font.Size = labelSize
	}
	plt.Legend.Top = true
	plt.Legend.Left = true
	plt.Legend.TextStyle.Font.Size = labelSize
	plt.Legend.XOffs = vg.Points(6)
	plt.Legend.YOffs = -vg.Points(6)

	for i, s := range p.Series {
		sc, err := plotter.NewScatter(xys(s.X, s.Y))
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Name, err)
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(fig.MarkerRadius)
		sc.GlyphStyle.Color = Palette[i%len(Palette)]
		plt.Add(sc)
		plt.Legend.Add(s.Name, sc)
	}

	diag, err := plotter.NewLine(plotter.XYs{{X: p.Lo, Y: p.Lo}, {X: p.Hi, Y: p.Hi}})
	if err != nil {
		return nil, err
	}
	diag.LineStyle.Width = vg.Points(fig.LineWidth)
	diag.LineStyle.Color = diagonalColor
	diag.LineStyle.Dashes = []vg.Length{vg.Points(7.4), vg.Points(3.2)}
	plt.Add(diag)

	plt.Add(
		&annotation{
			text:  p.Annotation,
			relX:  0.35,
			relY:  0.08,
			style: textStyle(plt, labelSize, text.XLeft, text.YCenter),
		},
		&annotation{
			text:  p.Letter,
			relX:  -0.1,
			relY:  1.03,
			style: textStyle(plt, vg.Points(fig.LetterFontSize), text.XRight, text.YTop),
		},
	)

	// Limits are set after Add, which would otherwise widen them to the data.
	plt.X.Min, plt.X.Max = p.Lo, p.Hi
	plt.Y.Min, plt.Y.Max = p.Lo, p.Hi
	return plt, nil
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WritePNG renders the figure and encodes it as PNG to w.
func WritePNG(w io.Writer, panels []parity.Panel, fig config.Figure) error {
	img, err := Figure(panels, fig)
	if err != nil {
		return err
	}
	_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}

// Save writes the figure to path in the format named by its extension,
// replacing any existing file. PNG output honours fig.DPI; vector formats
// (svg, pdf, eps) and the other raster formats known to gonum/plot are
// drawn at their native resolution.
func Save(path string, panels []parity.Panel, fig config.Figure) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	var wt io.WriterTo
	switch format {
	case "png":
		var buf bytes.Buffer
		if err := WritePNG(&buf, panels, fig); err != nil {
			return err
		}
		wt = &buf
	default:
		if err := fig.Validate(); err != nil {
			return err
		}
		w, h := figureSize(fig)
		c, err := draw.NewFormattedCanvas(w, h, format)
		if err != nil {
			return err
		}
		if err := drawFigure(c, panels, fig); err != nil {
			return err
		}
		wt = c
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
