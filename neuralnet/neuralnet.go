package neuralnet

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// DefaultReportEvery is the number of iterations between two recorded costs.
const DefaultReportEvery = 1000

// Observer receives the cost each time one is recorded.
type Observer interface {
	CostReported(iteration int, cost float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(iteration int, cost float64)

func (f ObserverFunc) CostReported(iteration int, cost float64) {
	f(iteration, cost)
}

// TrainConfig holds the hyperparameters of a training run.
type TrainConfig struct {
	HiddenSize   int
	Iterations   int
	LearningRate float64
	// ReportCost forwards every recorded cost to Observer.
	ReportCost bool
	// ReportEvery defaults to DefaultReportEvery when zero.
	ReportEvery int
	Seed        int64
	Observer    Observer
}

func (c TrainConfig) validate() error {
	switch {
	case c.HiddenSize <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "hidden size %d", c.HiddenSize)
	case c.Iterations < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "iteration count %d", c.Iterations)
	case !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 1):
		return errors.Wrapf(ErrInvalidConfiguration, "learning rate %v", c.LearningRate)
	case c.ReportEvery < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "report interval %d", c.ReportEvery)
	}
	return nil
}

// Result is the outcome of a completed training run.
type Result struct {
	Params *Parameters
	// Costs holds one cost per ReportEvery iterations, oldest first.
	Costs      []float64
	Iterations int
}

// Train fits a one hidden layer network to X (nx, m) and Y (ny, m) with full-batch
// gradient descent for exactly cfg.Iterations iterations.
func Train(X, Y *tensor.Dense, cfg TrainConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	nx, ny, err := LayerSizes(X, Y)
	if err != nil {
		return nil, err
	}
	every := cfg.ReportEvery
	if every == 0 {
		every = DefaultReportEvery
	}

	params, err := InitializeParameters(nx, cfg.HiddenSize, ny, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	var report func(int, float64)
	if cfg.ReportCost && cfg.Observer != nil {
		report = cfg.Observer.CostReported
	}
	costs, err := descend(X, Y, network{params}, cfg.Iterations, cfg.LearningRate, every, report)
	if err != nil {
		return nil, err
	}
	return &Result{Params: params, Costs: costs, Iterations: cfg.Iterations}, nil
}

// descendable is a model whose parameter arrays are fitted by gradient descent.
// gradients returns the cost and one gradient per entry of arrays, in the same order.
type descendable interface {
	arrays() []namedArray
	gradients(X, Y *tensor.Dense) (float64, []namedArray, error)
}

type network struct {
	*Parameters
}

func (n network) gradients(X, Y *tensor.Dense) (float64, []namedArray, error) {
	A2, cache, err := ForwardPropagation(X, n.Parameters)
	if err != nil {
		return 0, nil, err
	}
	cost, err := ComputeCost(A2, Y)
	if err != nil {
		return 0, nil, err
	}
	grads, err := BackwardPropagation(n.Parameters, cache, X, Y)
	if err != nil {
		return 0, nil, err
	}
	return cost, grads.arrays(), nil
}

// descend runs iterations full-batch gradient descent steps on m, recording the cost
// before the update of every iteration divisible by every. report, when set, sees each
// recorded cost.
func descend(X, Y *tensor.Dense, m descendable, iterations int, learningRate float64, every int, report func(int, float64)) ([]float64, error) {
	opt := &GradientDescent{LearningRate: learningRate}
	costs := []float64{}

	lastValid, lastCost := -1, math.NaN()
	unstable := func(i int, quantity string) error {
		return &InstabilityError{Iteration: i, Quantity: quantity, LastValidIteration: lastValid, LastCost: lastCost}
	}

	for i := 0; i < iterations; i++ {
		cost, grads, err := m.gradients(X, Y)
		if errors.Is(err, ErrNumericalInstability) {
			return nil, unstable(i, "cost")
		}
		if err != nil {
			return nil, err
		}
		if name := nonFinite(grads); name != "" {
			return nil, unstable(i, name)
		}

		if i%every == 0 {
			costs = append(costs, cost)
			if report != nil {
				report(i, cost)
			}
		}

		if err := opt.step(m.arrays(), grads); err != nil {
			return nil, err
		}
		lastValid, lastCost = i, cost
	}
	return costs, nil
}

// NNModel trains with the default report interval and a seed of zero.
func NNModel(X, Y *tensor.Dense, nh, iterations int, learningRate float64, reportCost bool, obs Observer) (*Parameters, []float64, error) {
	res, err := Train(X, Y, TrainConfig{
		HiddenSize:   nh,
		Iterations:   iterations,
		LearningRate: learningRate,
		ReportCost:   reportCost,
		Observer:     obs,
	})
	if err != nil {
		return nil, nil, err
	}
	return res.Params, res.Costs, nil
}
