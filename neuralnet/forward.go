package neuralnet

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ForwardCache keeps the pre-activation and activation values of one forward pass
// for the matching backward pass.
type ForwardCache struct {
	Z1, A1 *tensor.Dense // (nh, m)
	Z2, A2 *tensor.Dense // (ny, m)
}

var (
	hiddenActivation ActivationFunction = Tanh{}
	outputActivation ActivationFunction = Sigmoid{}
)

// ForwardPropagation computes A2 = sigmoid(W2·tanh(W1·X + b1) + b2) for X of shape (nx, m).
func ForwardPropagation(X *tensor.Dense, p *Parameters) (*tensor.Dense, *ForwardCache, error) {
	nx, m, err := dims(X)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "X")
	}
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if wx, _, _ := p.Sizes(); wx != nx {
		return nil, nil, errors.Wrapf(ErrInvalidShape, "X has %d rows, W1 expects %d", nx, wx)
	}

	z1, err := linear(p.W1, X, p.B1)
	if err != nil {
		return nil, nil, err
	}
	a1, err := apply(z1, hiddenActivation.Activate)
	if err != nil {
		return nil, nil, err
	}
	z2, err := linear(p.W2, a1, p.B2)
	if err != nil {
		return nil, nil, err
	}
	a2, err := apply(z2, outputActivation.Activate)
	if err != nil {
		return nil, nil, err
	}

	_, _, ny := p.Sizes()
	if !sameShape(a2, ny, m) {
		panic(fmt.Sprintf("neuralnet: forward output shape %v, want (%d, %d)", a2.Shape(), ny, m))
	}
	return a2, &ForwardCache{Z1: z1, A1: a1, Z2: z2, A2: a2}, nil
}

// linear returns W·A + b with b broadcast across the columns.
func linear(w, a, b *tensor.Dense) (*tensor.Dense, error) {
	z, err := matMul(w, a)
	if err != nil {
		return nil, err
	}
	addColumn(z, b)
	return z, nil
}
