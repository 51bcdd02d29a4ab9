package neuralnet

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

// NewMatrix wraps data, in row-major order, as a rows x cols float64 tensor.
func NewMatrix(rows, cols int, data []float64) *tensor.Dense {
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(data))
}

func zeros(rows, cols int) *tensor.Dense {
	return tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(rows, cols))
}

// dims returns the shape of a 2-D tensor.
func dims(t *tensor.Dense) (rows, cols int, err error) {
	if t == nil {
		return 0, 0, errors.Wrap(ErrInvalidShape, "nil matrix")
	}
	s := t.Shape()
	if len(s) != 2 {
		return 0, 0, errors.Wrapf(ErrInvalidShape, "expected a matrix, got shape %v", s)
	}
	if t.Dtype() != tensor.Float64 {
		return 0, 0, errors.Wrapf(ErrInvalidShape, "expected float64 data, got %v", t.Dtype())
	}
	return s[0], s[1], nil
}

func matMul(a, b *tensor.Dense) (*tensor.Dense, error) {
	out, err := a.MatMul(b)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidShape, "%v x %v: %v", a.Shape(), b.Shape(), err)
	}
	return out, nil
}

func transpose(t *tensor.Dense) (*tensor.Dense, error) {
	tt, err := tensor.T(t)
	if err != nil {
		return nil, errors.Wrapf(err, "transpose %v", t.Shape())
	}
	return tt.(*tensor.Dense), nil
}

func apply(t *tensor.Dense, fn func(float64) float64) (*tensor.Dense, error) {
	out, err := t.Apply(fn)
	if err != nil {
		return nil, errors.Wrap(err, "apply")
	}
	return out.(*tensor.Dense), nil
}

// addColumn adds the column vector b to every column of z, in place.
func addColumn(z, b *tensor.Dense) {
	rows, cols := z.Shape()[0], z.Shape()[1]
	zd, bd := z.Float64s(), b.Float64s()
	for i := 0; i < rows; i++ {
		row := zd[i*cols : (i+1)*cols]
		for j := range row {
			row[j] += bd[i]
		}
	}
}

// rowMeans returns the (rows x 1) vector of row sums scaled by 1/m.
func rowMeans(t *tensor.Dense, m int) *tensor.Dense {
	rows, cols := t.Shape()[0], t.Shape()[1]
	data := t.Float64s()
	out := make([]float64, rows)
	for i := range out {
		out[i] = floats.Sum(data[i*cols:(i+1)*cols]) / float64(m)
	}
	return NewMatrix(rows, 1, out)
}

func isFinite(data []float64) bool {
	if floats.HasNaN(data) {
		return false
	}
	for _, v := range data {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
