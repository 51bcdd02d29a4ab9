package neuralnet

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Optimizer applies one step of gradients to the parameters in place.
type Optimizer interface {
	Apply(p *Parameters, g *Gradients) error
}

// GradientDescent implements full-batch gradient descent: param -= LearningRate * grad.
type GradientDescent struct {
	LearningRate float64
}

// Apply updates the four parameter arrays in place.
func (o *GradientDescent) Apply(p *Parameters, g *Gradients) error {
	return o.step(p.arrays(), g.arrays())
}

// step updates each params[i] in place with grads[i].
func (o *GradientDescent) step(params, grads []namedArray) error {
	if o.LearningRate <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "learning rate %v", o.LearningRate)
	}
	if len(params) != len(grads) {
		return errors.Wrapf(ErrInvalidShape, "%d parameter arrays, %d gradients", len(params), len(grads))
	}
	for i := range params {
		dst, src := params[i].t.Float64s(), grads[i].t.Float64s()
		if len(dst) != len(src) {
			return errors.Wrapf(ErrInvalidShape, "%s has %d entries, %s has %d",
				params[i].name, len(dst), grads[i].name, len(src))
		}
	}
	for i := range params {
		floats.AddScaled(params[i].t.Float64s(), -o.LearningRate, grads[i].t.Float64s())
	}
	return nil
}
