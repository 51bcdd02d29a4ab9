package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gorgonia.org/tensor"

	"planarnet/dataset"
	"planarnet/neuralnet"
)

const (
	plotSize = 6 * vg.Inch
	gridSize = 80
)

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// classPoints returns the columns of X labelled class.
func classPoints(X, Y *tensor.Dense, class float64) plotter.XYs {
	m := Y.Shape()[1]
	xs, ys := X.Float64s(), Y.Float64s()
	var pts plotter.XYs
	for i := 0; i < m; i++ {
		if ys[i] == class {
			pts = append(pts, plotter.XY{X: xs[i], Y: xs[m+i]})
		}
	}
	return pts
}

func addClasses(p *plot.Plot, X, Y *tensor.Dense, radius vg.Length, legend bool) error {
	for class := 0; class < dataset.Classes; class++ {
		pts := classPoints(X, Y, float64(class))
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(err, "scatter")
		}
		s.GlyphStyle.Color = plotutil.Color(class)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = radius
		p.Add(s)
		if legend {
			p.Legend.Add(fmt.Sprintf("label %d", class), s)
		}
	}
	return nil
}

// plotDataset saves a scatter plot of the two classes.
func plotDataset(X, Y *tensor.Dense, title, path string) error {
	p := newPlot(title, "x1", "x2")
	if err := addClasses(p, X, Y, vg.Points(2.5), true); err != nil {
		return err
	}
	return errors.Wrapf(p.Save(plotSize, plotSize, path), "save %s", path)
}

// plotDecisionBoundary shades a grid over the data by the class predict assigns and draws the data on top.
func plotDecisionBoundary(predict func(*tensor.Dense) (*tensor.Dense, error), X, Y *tensor.Dense, title, path string) error {
	m := Y.Shape()[1]
	xs := X.Float64s()
	minX, maxX := bounds(xs[:m])
	minY, maxY := bounds(xs[m:])

	grid := make([]float64, 2*gridSize*gridSize)
	n := gridSize * gridSize
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			k := i*gridSize + j
			grid[k] = minX + (maxX-minX)*float64(j)/float64(gridSize-1)
			grid[n+k] = minY + (maxY-minY)*float64(i)/float64(gridSize-1)
		}
	}
	G := neuralnet.NewMatrix(2, n, grid)
	pred, err := predict(G)
	if err != nil {
		return err
	}

	p := newPlot(title, "x1", "x2")
	for class := 0; class < dataset.Classes; class++ {
		pts := classPoints(G, pred, float64(class))
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(err, "scatter")
		}
		r, g, b, _ := plotutil.Color(class).RGBA()
		s.GlyphStyle.Color = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 48}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
	}
	if err := addClasses(p, X, Y, vg.Points(2.5), true); err != nil {
		return err
	}
	return errors.Wrapf(p.Save(plotSize, plotSize, path), "save %s", path)
}

// plotCosts saves the recorded cost history against the iteration index.
func plotCosts(costs []float64, every int, path string) error {
	p := newPlot("cost", "iteration", "cross-entropy")
	pts := make(plotter.XYs, len(costs))
	for i, c := range costs {
		pts[i].X = float64(i * every)
		pts[i].Y = c
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "line")
	}
	l.Width = vg.Points(2)
	l.Color = plotutil.Color(0)
	p.Add(l)
	p.Legend.Add("training cost", l)
	return errors.Wrapf(p.Save(plotSize, plotSize*2/3, path), "save %s", path)
}

// bounds returns the range of v padded by 5% on each side.
func bounds(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	pad := 0.05 * (hi - lo)
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}
