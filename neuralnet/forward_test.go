package neuralnet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMatrixData(n int, scale float64, rng *rand.Rand) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = scale * rng.NormFloat64()
	}
	return data
}

func TestForwardPropagationOutputRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, m := range []int{1, 2, 17, 200} {
		X := NewMatrix(2, m, randomMatrixData(2*m, 10, rng))
		p, err := InitializeParameters(2, 4, 1, rng)
		require.NoError(t, err)

		A2, cache, err := ForwardPropagation(X, p)
		require.NoError(t, err)
		assert.Equal(t, []int{1, m}, []int(A2.Shape()))
		for _, a := range A2.Float64s() {
			assert.True(t, a > 0 && a < 1, "A2 entry %v out of (0, 1)", a)
		}

		assert.Equal(t, []int{4, m}, []int(cache.Z1.Shape()))
		assert.Equal(t, []int{4, m}, []int(cache.A1.Shape()))
		assert.Equal(t, []int{1, m}, []int(cache.Z2.Shape()))
		assert.Same(t, A2, cache.A2)
	}
}

func TestForwardPropagationValues(t *testing.T) {
	p := &Parameters{
		W1: NewMatrix(2, 2, []float64{1, -1, 0.5, 2}),
		B1: NewMatrix(2, 1, []float64{0.1, -0.2}),
		W2: NewMatrix(1, 2, []float64{-0.3, 0.7}),
		B2: NewMatrix(1, 1, []float64{0.05}),
	}
	X := NewMatrix(2, 2, []float64{1, 0, 2, -1})

	A2, cache, err := ForwardPropagation(X, p)
	require.NoError(t, err)

	// column 0: x = (1, 2); column 1: x = (0, -1)
	z1 := []float64{1 - 2 + 0.1, 0 + 1 + 0.1, 0.5 + 4 - 0.2, 0 - 2 - 0.2}
	a1 := make([]float64, 4)
	for i, z := range z1 {
		a1[i] = math.Tanh(z)
	}
	z2 := []float64{-0.3*a1[0] + 0.7*a1[2] + 0.05, -0.3*a1[1] + 0.7*a1[3] + 0.05}

	assert.InDeltaSlice(t, z1, cache.Z1.Float64s(), 1e-12)
	assert.InDeltaSlice(t, a1, cache.A1.Float64s(), 1e-12)
	assert.InDeltaSlice(t, z2, cache.Z2.Float64s(), 1e-12)
	for i, z := range z2 {
		assert.InDelta(t, 1/(1+math.Exp(-z)), A2.Float64s()[i], 1e-12)
	}
}

func TestForwardPropagationShapeMismatch(t *testing.T) {
	p, err := InitializeParameters(3, 4, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, _, err = ForwardPropagation(NewMatrix(2, 2, filled(2, 2, 1)), p)
	assert.ErrorIs(t, err, ErrInvalidShape)
}
