package neuralnet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPoints is the linearly separable dataset X = [[0,1],[0,1]], Y = [[0,1]].
func twoPoints() (X, Y []float64) {
	return []float64{0, 1, 0, 1}, []float64{0, 1}
}

func TestTrainCostDecreases(t *testing.T) {
	x, y := twoPoints()
	X, Y := NewMatrix(2, 2, x), NewMatrix(1, 2, y)

	res, err := Train(X, Y, TrainConfig{HiddenSize: 4, Iterations: 5000, LearningRate: 0.01, Seed: 1})
	require.NoError(t, err)
	require.Len(t, res.Costs, 5)
	assert.Equal(t, 5000, res.Iterations)

	for i := 1; i < len(res.Costs); i++ {
		assert.LessOrEqual(t, res.Costs[i], res.Costs[i-1], "checkpoint %d", i)
	}
	A2, _, err := ForwardPropagation(X, res.Params)
	require.NoError(t, err)
	final, err := ComputeCost(A2, Y)
	require.NoError(t, err)
	assert.Less(t, final, res.Costs[0])
}

func TestTrainZeroIterations(t *testing.T) {
	x, y := twoPoints()
	res, err := Train(NewMatrix(2, 2, x), NewMatrix(1, 2, y), TrainConfig{HiddenSize: 3, LearningRate: 0.5, Seed: 9})
	require.NoError(t, err)
	assert.Empty(t, res.Costs)
	assert.Equal(t, 0, res.Iterations)

	want, err := InitializeParameters(2, 3, 1, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, want.W1.Float64s(), res.Params.W1.Float64s())
	assert.Equal(t, want.B1.Float64s(), res.Params.B1.Float64s())
	assert.Equal(t, want.W2.Float64s(), res.Params.W2.Float64s())
	assert.Equal(t, want.B2.Float64s(), res.Params.B2.Float64s())
}

func TestTrainDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	X := NewMatrix(2, 30, randomMatrixData(60, 3, rng))
	Y := NewMatrix(1, 30, randomLabels(30, rng))
	cfg := TrainConfig{HiddenSize: 4, Iterations: 300, LearningRate: 1.2, ReportEvery: 50, Seed: 5}

	a, err := Train(X, Y, cfg)
	require.NoError(t, err)
	b, err := Train(X, Y, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Costs, b.Costs)
	assert.Equal(t, a.Params.W1.Float64s(), b.Params.W1.Float64s())
	assert.Equal(t, a.Params.W2.Float64s(), b.Params.W2.Float64s())
}

func TestTrainReportCadence(t *testing.T) {
	x, y := twoPoints()
	X, Y := NewMatrix(2, 2, x), NewMatrix(1, 2, y)

	tests := []struct {
		name       string
		iterations int
		every      int
		report     bool
		wantIters  []int
	}{
		{"default interval", 2500, 0, true, []int{0, 1000, 2000}},
		{"custom interval", 10, 3, true, []int{0, 3, 6, 9}},
		{"silent", 10, 3, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []int
			var costs []float64
			res, err := Train(X, Y, TrainConfig{
				HiddenSize:   2,
				Iterations:   tt.iterations,
				LearningRate: 0.1,
				ReportCost:   tt.report,
				ReportEvery:  tt.every,
				Observer: ObserverFunc(func(i int, c float64) {
					seen = append(seen, i)
					costs = append(costs, c)
				}),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantIters, seen)
			if tt.report {
				assert.Equal(t, res.Costs, costs)
			} else {
				assert.Len(t, res.Costs, 4)
			}
		})
	}
}

func TestTrainInvalidConfiguration(t *testing.T) {
	x, y := twoPoints()
	X, Y := NewMatrix(2, 2, x), NewMatrix(1, 2, y)

	tests := []struct {
		name string
		cfg  TrainConfig
		want error
	}{
		{"zero hidden", TrainConfig{HiddenSize: 0, Iterations: 10, LearningRate: 0.1}, ErrInvalidConfiguration},
		{"negative iterations", TrainConfig{HiddenSize: 2, Iterations: -1, LearningRate: 0.1}, ErrInvalidConfiguration},
		{"zero learning rate", TrainConfig{HiddenSize: 2, Iterations: 10}, ErrInvalidConfiguration},
		{"negative learning rate", TrainConfig{HiddenSize: 2, Iterations: 10, LearningRate: -1}, ErrInvalidConfiguration},
		{"nan learning rate", TrainConfig{HiddenSize: 2, Iterations: 10, LearningRate: math.NaN()}, ErrInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Train(X, Y, tt.cfg)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}
}

func TestTrainInvalidShape(t *testing.T) {
	x, _ := twoPoints()
	res, err := Train(NewMatrix(2, 2, x), NewMatrix(1, 3, []float64{0, 1, 1}),
		TrainConfig{HiddenSize: 2, Iterations: 10, LearningRate: 0.1})
	assert.ErrorIs(t, err, ErrInvalidShape)
	assert.Nil(t, res)
}

func TestTrainNumericalInstability(t *testing.T) {
	X := NewMatrix(2, 2, []float64{0, math.NaN(), 0, 1})
	Y := NewMatrix(1, 2, []float64{0, 1})

	res, err := Train(X, Y, TrainConfig{HiddenSize: 2, Iterations: 10, LearningRate: 0.1})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNumericalInstability)

	var ie *InstabilityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 0, ie.Iteration)
	assert.Equal(t, -1, ie.LastValidIteration)
	assert.Equal(t, "cost", ie.Quantity)
}

func TestNNModel(t *testing.T) {
	x, y := twoPoints()
	X, Y := NewMatrix(2, 2, x), NewMatrix(1, 2, y)

	var reports int
	params, costs, err := NNModel(X, Y, 4, 3000, 1.2, true, ObserverFunc(func(int, float64) { reports++ }))
	require.NoError(t, err)
	assert.Len(t, costs, 3)
	assert.Equal(t, 3, reports)

	pred, err := Predict(X, params)
	require.NoError(t, err)
	acc, err := Accuracy(pred, Y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)
}

func TestDescendNonFiniteGradient(t *testing.T) {
	// W2 = +Inf saturates the sigmoid; the clipped cost stays finite but
	// W2ᵗ·dZ2 carries the infinity back into the hidden layer gradients.
	p := &Parameters{
		W1: NewMatrix(1, 2, []float64{1, 1}),
		B1: NewMatrix(1, 1, []float64{0}),
		W2: NewMatrix(1, 1, []float64{math.Inf(1)}),
		B2: NewMatrix(1, 1, []float64{0}),
	}
	X := NewMatrix(2, 1, []float64{1, 1})
	Y := NewMatrix(1, 1, []float64{0})

	cost, _, err := network{p}.gradients(X, Y)
	require.NoError(t, err)
	assert.False(t, math.IsInf(cost, 0) || math.IsNaN(cost), "cost %v", cost)

	costs, err := descend(X, Y, network{p}, 5, 0.1, 1, nil)
	assert.Nil(t, costs)
	assert.ErrorIs(t, err, ErrNumericalInstability)

	var ie *InstabilityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "dW1", ie.Quantity)
	assert.Equal(t, 0, ie.Iteration)
	assert.Equal(t, -1, ie.LastValidIteration)
	assert.Equal(t, math.Inf(1), p.W2.Float64s()[0], "parameters must not be updated")
}
