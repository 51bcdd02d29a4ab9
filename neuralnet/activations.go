package neuralnet

import "math"

// ActivationFunction is an elementwise non-linearity.
// Derivative is expressed in terms of the activation output a = Activate(z).
type ActivationFunction interface {
	Activate(z float64) float64
	Derivative(a float64) float64
}

type Sigmoid struct{}

// Activate returns 1 / (1 + exp(-z)) without ever exponentiating a positive argument.
func (s Sigmoid) Activate(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func (s Sigmoid) Derivative(a float64) float64 {
	return a * (1 - a)
}

type Tanh struct{}

func (t Tanh) Activate(z float64) float64 {
	return math.Tanh(z)
}

func (t Tanh) Derivative(a float64) float64 {
	return 1 - a*a
}
