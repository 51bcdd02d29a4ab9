// Package dataset generates and stores the planar two-class point sets the
// classifier is trained on.
package dataset

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

const (
	// Classes is the number of labels; label j is stored as float64(j).
	Classes = 2
	// Features is the number of coordinates per point.
	Features = 2

	angleSpan = 3.12
	noise     = 0.2
	petals    = 4
)

// Flower samples m points on a flower of the given maximum ray. Class j covers the
// angles [j*3.12, (j+1)*3.12] and each point sits at ray radius*sin(4θ) plus noise.
// X has shape (2, m) and Y has shape (1, m). With odd m the extra point is labelled 1.
func Flower(m int, radius float64, rng *rand.Rand) (X, Y *tensor.Dense, err error) {
	if m <= 0 {
		return nil, nil, errors.Errorf("dataset: example count must be positive, got %d", m)
	}
	if !(radius > 0) {
		return nil, nil, errors.Errorf("dataset: radius must be positive, got %v", radius)
	}
	if rng == nil {
		return nil, nil, errors.New("dataset: nil random source")
	}

	xs := make([]float64, Features*m)
	ys := make([]float64, m)
	col := 0
	for j := 0; j < Classes; j++ {
		n := m / Classes
		if j == Classes-1 {
			n = m - col
		}
		start := float64(j) * angleSpan
		for i := 0; i < n; i++ {
			theta := linspace(start, start+angleSpan, n, i) + noise*rng.NormFloat64()
			r := radius*math.Sin(petals*theta) + noise*rng.NormFloat64()
			xs[col] = r * math.Sin(theta)
			xs[m+col] = r * math.Cos(theta)
			ys[col] = float64(j)
			col++
		}
	}
	return tensor.New(tensor.WithShape(Features, m), tensor.WithBacking(xs)),
		tensor.New(tensor.WithShape(1, m), tensor.WithBacking(ys)), nil
}

// linspace returns the i-th of n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n, i int) float64 {
	if n == 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

// Split returns the first n examples and the rest as two datasets.
func Split(X, Y *tensor.Dense, n int) (trainX, trainY, testX, testY *tensor.Dense, err error) {
	m := Y.Shape()[1]
	if n <= 0 || n >= m {
		return nil, nil, nil, nil, errors.Errorf("dataset: split point %d outside (0, %d)", n, m)
	}
	pick := func(lo, hi int) (*tensor.Dense, *tensor.Dense) {
		xs := make([]float64, 0, Features*(hi-lo))
		for r := 0; r < Features; r++ {
			xs = append(xs, X.Float64s()[r*m+lo:r*m+hi]...)
		}
		ys := append([]float64(nil), Y.Float64s()[lo:hi]...)
		return tensor.New(tensor.WithShape(Features, hi-lo), tensor.WithBacking(xs)),
			tensor.New(tensor.WithShape(1, hi-lo), tensor.WithBacking(ys))
	}
	trainX, trainY = pick(0, n)
	testX, testY = pick(n, m)
	return trainX, trainY, testX, testY, nil
}

// Shuffle permutes the columns of X and Y together.
func Shuffle(X, Y *tensor.Dense, rng *rand.Rand) {
	m := Y.Shape()[1]
	xs, ys := X.Float64s(), Y.Float64s()
	rng.Shuffle(m, func(i, j int) {
		ys[i], ys[j] = ys[j], ys[i]
		for r := 0; r < Features; r++ {
			xs[r*m+i], xs[r*m+j] = xs[r*m+j], xs[r*m+i]
		}
	})
}
