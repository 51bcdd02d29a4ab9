package neuralnet

import (
	"math"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// LossFunction defines the interface for computing loss and its gradient.
type LossFunction interface {
	// Compute returns the loss averaged over examples.
	Compute(output []float64, target []float64) float64
	// Gradient returns ∂L/∂z for each output pre-activation, summed rather than averaged.
	Gradient(output []float64, target []float64) []float64
}

// clipEpsilon bounds probabilities away from 0 and 1 before taking logarithms.
const clipEpsilon = 1e-15

// BinaryCrossEntropy implements -(1/m) Σ [y·log(a) + (1-y)·log(1-a)] for sigmoid outputs.
type BinaryCrossEntropy struct{}

func (ce BinaryCrossEntropy) Compute(output []float64, target []float64) float64 {
	var sum float64
	for i := range output {
		a := clip(output[i])
		y := target[i]
		sum += y*math.Log(a) + (1-y)*math.Log(1-a)
	}
	return -sum / float64(len(output))
}

// Gradient returns output - target, the derivative through the sigmoid.
func (ce BinaryCrossEntropy) Gradient(output []float64, target []float64) []float64 {
	grad := make([]float64, len(output))
	for i := range output {
		grad[i] = output[i] - target[i]
	}
	return grad
}

func clip(p float64) float64 {
	if p < clipEpsilon {
		return clipEpsilon
	}
	if p > 1-clipEpsilon {
		return 1 - clipEpsilon
	}
	return p
}

var costFunction LossFunction = BinaryCrossEntropy{}

// ComputeCost returns the cross-entropy cost of predictions A2 against labels Y, both (1, m).
func ComputeCost(A2, Y *tensor.Dense) (float64, error) {
	ra, ma, err := dims(A2)
	if err != nil {
		return 0, errors.WithMessage(err, "A2")
	}
	ry, my, err := dims(Y)
	if err != nil {
		return 0, errors.WithMessage(err, "Y")
	}
	if ra != ry || ma != my {
		return 0, errors.Wrapf(ErrInvalidShape, "A2 %v does not match Y %v", A2.Shape(), Y.Shape())
	}
	if ma == 0 {
		return 0, errors.Wrap(ErrInvalidShape, "no examples")
	}
	// Compute averages over every entry; the cost averages over examples only.
	cost := costFunction.Compute(A2.Float64s(), Y.Float64s()) * float64(ra)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, errors.Wrapf(ErrNumericalInstability, "cost is %v", cost)
	}
	return cost, nil
}
