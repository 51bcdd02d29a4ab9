package neuralnet

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gorgonia.org/tensor"
)

// GradientCheck compares backpropagated gradients against central finite differences.
type GradientCheck struct {
	Analytic *Gradients
	Numeric  *Gradients
}

// MaxAbsDiff returns the largest absolute difference per gradient array.
func (c *GradientCheck) MaxAbsDiff() map[string]float64 {
	out := make(map[string]float64, 4)
	an, nu := c.Analytic.arrays(), c.Numeric.arrays()
	for i := range an {
		a, n := an[i].t.Float64s(), nu[i].t.Float64s()
		var worst float64
		for j := range a {
			worst = math.Max(worst, math.Abs(a[j]-n[j]))
		}
		out[an[i].name] = worst
	}
	return out
}

// CheckGradients estimates every gradient entry as (cost(w+step) - cost(w-step)) / 2step
// and returns it next to the analytic gradient. p is left unchanged.
// A step of zero uses the fd package default.
func CheckGradients(X, Y *tensor.Dense, p *Parameters, step float64) (*GradientCheck, error) {
	work := p.Clone()
	A2, cache, err := ForwardPropagation(X, work)
	if err != nil {
		return nil, err
	}
	if _, err := ComputeCost(A2, Y); err != nil {
		return nil, err
	}
	analytic, err := BackwardPropagation(work, cache, X, Y)
	if err != nil {
		return nil, err
	}

	var costErr error
	cost := func() float64 {
		A2, _, err := ForwardPropagation(X, work)
		if err == nil {
			var c float64
			if c, err = ComputeCost(A2, Y); err == nil {
				return c
			}
		}
		if costErr == nil {
			costErr = err
		}
		return math.NaN()
	}
	settings := &fd.Settings{Formula: fd.Central, Step: step}

	params := work.arrays()
	numeric := make([]*tensor.Dense, len(params))
	for i, a := range params {
		rows, cols := a.t.Shape()[0], a.t.Shape()[1]
		data := a.t.Float64s()
		est := make([]float64, len(data))
		for k := range data {
			orig := data[k]
			est[k] = fd.Derivative(func(v float64) float64 {
				data[k] = v
				return cost()
			}, orig, settings)
			data[k] = orig
		}
		if costErr != nil {
			return nil, errors.WithMessagef(costErr, "perturbing %s", a.name)
		}
		numeric[i] = NewMatrix(rows, cols, est)
	}
	return &GradientCheck{
		Analytic: analytic,
		Numeric:  &Gradients{DW1: numeric[0], DB1: numeric[1], DW2: numeric[2], DB2: numeric[3]},
	}, nil
}
