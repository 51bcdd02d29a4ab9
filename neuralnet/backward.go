package neuralnet

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Gradients of the cost with respect to each parameter array, shaped like the arrays.
type Gradients struct {
	DW1, DB1 *tensor.Dense
	DW2, DB2 *tensor.Dense
}

// BackwardPropagation differentiates the cross-entropy cost through the sigmoid output
// layer and the tanh hidden layer:
//
//	dZ2 = A2 - Y
//	dW2 = dZ2·A1ᵗ / m,  db2 = rowsum(dZ2) / m
//	dZ1 = (W2ᵗ·dZ2) ⊙ (1 - A1²)
//	dW1 = dZ1·Xᵗ / m,   db1 = rowsum(dZ1) / m
func BackwardPropagation(p *Parameters, cache *ForwardCache, X, Y *tensor.Dense) (*Gradients, error) {
	if cache == nil || cache.A1 == nil || cache.A2 == nil {
		return nil, errors.Wrap(ErrInvalidShape, "nil forward cache")
	}
	_, m, err := dims(X)
	if err != nil {
		return nil, errors.WithMessage(err, "X")
	}
	if !sameShape(Y, cache.A2.Shape()[0], m) || !sameShape(cache.A2, Y.Shape()[0], m) {
		return nil, errors.Wrapf(ErrInvalidShape, "A2 %v, Y %v, X %v", cache.A2.Shape(), Y.Shape(), X.Shape())
	}
	scale := 1 / float64(m)

	rows, cols := cache.A2.Shape()[0], cache.A2.Shape()[1]
	dZ2 := NewMatrix(rows, cols, costFunction.Gradient(cache.A2.Float64s(), Y.Float64s()))

	a1T, err := transpose(cache.A1)
	if err != nil {
		return nil, err
	}
	dW2, err := scaledProduct(dZ2, a1T, scale)
	if err != nil {
		return nil, errors.WithMessage(err, "dW2")
	}
	dB2 := rowMeans(dZ2, m)

	w2T, err := transpose(p.W2)
	if err != nil {
		return nil, err
	}
	back, err := matMul(w2T, dZ2)
	if err != nil {
		return nil, errors.WithMessage(err, "dA1")
	}
	deriv, err := apply(cache.A1, hiddenActivation.Derivative)
	if err != nil {
		return nil, err
	}
	dZ1, err := back.Mul(deriv)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidShape, "dZ1: %v", err)
	}

	xT, err := transpose(X)
	if err != nil {
		return nil, err
	}
	dW1, err := scaledProduct(dZ1, xT, scale)
	if err != nil {
		return nil, errors.WithMessage(err, "dW1")
	}
	dB1 := rowMeans(dZ1, m)

	return &Gradients{DW1: dW1, DB1: dB1, DW2: dW2, DB2: dB2}, nil
}

func scaledProduct(a, b *tensor.Dense, scale float64) (*tensor.Dense, error) {
	prod, err := matMul(a, b)
	if err != nil {
		return nil, err
	}
	return prod.MulScalar(scale, true)
}

func (g *Gradients) arrays() []namedArray {
	return []namedArray{{"dW1", g.DW1}, {"db1", g.DB1}, {"dW2", g.DW2}, {"db2", g.DB2}}
}

// nonFinite returns the name of the first array holding a NaN or Inf, or "".
func nonFinite(arrays []namedArray) string {
	for _, a := range arrays {
		if !isFinite(a.t.Float64s()) {
			return a.name
		}
	}
	return ""
}
