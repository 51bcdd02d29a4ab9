package neuralnet

import (
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// weightScale keeps initial activations in the near-linear range of tanh and sigmoid.
const weightScale = 0.01

// Parameters holds the learnable arrays of a network with one hidden layer.
type Parameters struct {
	W1 *tensor.Dense // (nh, nx)
	B1 *tensor.Dense // (nh, 1)
	W2 *tensor.Dense // (ny, nh)
	B2 *tensor.Dense // (ny, 1)
}

// InitializeParameters draws W1 then W2 from N(0, 1) scaled by 0.01, in row-major order,
// using rng. Both biases start at zero.
func InitializeParameters(nx, nh, ny int, rng *rand.Rand) (*Parameters, error) {
	if nx <= 0 || nh <= 0 || ny <= 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "layer sizes must be positive: nx=%d nh=%d ny=%d", nx, nh, ny)
	}
	if rng == nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, "nil random source")
	}
	return &Parameters{
		W1: NewMatrix(nh, nx, randn(nh*nx, rng)),
		B1: zeros(nh, 1),
		W2: NewMatrix(ny, nh, randn(ny*nh, rng)),
		B2: zeros(ny, 1),
	}, nil
}

func randn(n int, rng *rand.Rand) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.NormFloat64() * weightScale
	}
	return data
}

// LayerSizes returns the input and output layer sizes implied by X (nx, m) and Y (ny, m).
func LayerSizes(X, Y *tensor.Dense) (nx, ny int, err error) {
	nx, mx, err := dims(X)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "X")
	}
	ny, my, err := dims(Y)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "Y")
	}
	if mx != my {
		return 0, 0, errors.Wrapf(ErrInvalidShape, "X has %d examples, Y has %d", mx, my)
	}
	if nx == 0 || ny == 0 || mx == 0 {
		return 0, 0, errors.Wrapf(ErrInvalidShape, "empty dataset: X %v, Y %v", X.Shape(), Y.Shape())
	}
	return nx, ny, nil
}

// Sizes returns the input, hidden and output layer sizes.
func (p *Parameters) Sizes() (nx, nh, ny int) {
	s1, s2 := p.W1.Shape(), p.W2.Shape()
	return s1[1], s1[0], s2[0]
}

// Validate checks the shape invariants between the four arrays.
func (p *Parameters) Validate() error {
	for _, a := range p.arrays() {
		if _, _, err := dims(a.t); err != nil {
			return errors.WithMessage(err, a.name)
		}
	}
	nh, nx := p.W1.Shape()[0], p.W1.Shape()[1]
	ny, nh2 := p.W2.Shape()[0], p.W2.Shape()[1]
	switch {
	case nx == 0 || nh == 0 || ny == 0:
		return errors.Wrapf(ErrInvalidShape, "zero-sized layer: nx=%d nh=%d ny=%d", nx, nh, ny)
	case nh2 != nh:
		return errors.Wrapf(ErrInvalidShape, "W2 has %d columns, hidden layer has %d units", nh2, nh)
	case !sameShape(p.B1, nh, 1):
		return errors.Wrapf(ErrInvalidShape, "b1 shape %v, want (%d, 1)", p.B1.Shape(), nh)
	case !sameShape(p.B2, ny, 1):
		return errors.Wrapf(ErrInvalidShape, "b2 shape %v, want (%d, 1)", p.B2.Shape(), ny)
	}
	return nil
}

// Clone returns a deep copy.
func (p *Parameters) Clone() *Parameters {
	return &Parameters{
		W1: p.W1.Clone().(*tensor.Dense),
		B1: p.B1.Clone().(*tensor.Dense),
		W2: p.W2.Clone().(*tensor.Dense),
		B2: p.B2.Clone().(*tensor.Dense),
	}
}

type namedArray struct {
	name string
	t    *tensor.Dense
}

func (p *Parameters) arrays() []namedArray {
	return []namedArray{{"W1", p.W1}, {"b1", p.B1}, {"W2", p.W2}, {"b2", p.B2}}
}

func sameShape(t *tensor.Dense, rows, cols int) bool {
	s := t.Shape()
	return len(s) == 2 && s[0] == rows && s[1] == cols
}
