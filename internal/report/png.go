package report

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/minehint/internal/minefield"
)

// fieldGrid adapts a field to plotter.GridXYZ. Plot rows count upwards, so
// row r of the plot is field row Rows()-1-r. Mines are NaN.
type fieldGrid struct {
	f *minefield.Field
}

func (g fieldGrid) Dims() (c, r int) { return g.f.Cols(), g.f.Rows() }

func (g fieldGrid) Z(c, r int) float64 {
	cell := g.f.Get(g.f.Rows()-1-r, c)
	if cell.IsMine() {
		return math.NaN()
	}
	return float64(cell.Count())
}

func (g fieldGrid) X(c int) float64 { return float64(c) }
func (g fieldGrid) Y(r int) float64 { return float64(r) }

var mineColor = color.RGBA{R: 0xb2, G: 0x18, B: 0x2b, A: 0xff}

// WritePNG renders f as a heatmap image.
func WritePNG(w io.Writer, f *minefield.Field) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf(minefield.HeaderFormat, f.ID())
	p.X.Label.Text = "col"
	p.Y.Label.Text = "row"

	hm := plotter.NewHeatMap(fieldGrid{f: f}, palette.Heat(MaxHint+1, 1))
	hm.Min = 0
	hm.Max = MaxHint
	hm.NaN = mineColor
	p.Add(hm)

	width := vg.Length(math.Max(4, 0.4*float64(f.Cols()))) * vg.Inch
	height := vg.Length(math.Max(3, 0.4*float64(f.Rows()))) * vg.Inch
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
