package neuralnet

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// LogisticModel is the linear baseline sigmoid(wᵗ·x + b).
type LogisticModel struct {
	W *tensor.Dense // (nx, 1)
	b *tensor.Dense // (1, 1)
}

// NewLogisticModel returns a model with zero weights and bias.
func NewLogisticModel(nx int) (*LogisticModel, error) {
	if nx <= 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "input size %d", nx)
	}
	return &LogisticModel{W: zeros(nx, 1), b: zeros(1, 1)}, nil
}

// Bias returns b.
func (l *LogisticModel) Bias() float64 {
	return l.b.Float64s()[0]
}

// Probabilities returns sigmoid(wᵗ·X + b) with shape (1, m).
func (l *LogisticModel) Probabilities(X *tensor.Dense) (*tensor.Dense, error) {
	nx, _, err := dims(X)
	if err != nil {
		return nil, errors.WithMessage(err, "X")
	}
	if w := l.W.Shape()[0]; w != nx {
		return nil, errors.Wrapf(ErrInvalidShape, "X has %d rows, w has %d", nx, w)
	}
	wT, err := transpose(l.W)
	if err != nil {
		return nil, err
	}
	z, err := linear(wT, X, l.b)
	if err != nil {
		return nil, err
	}
	return apply(z, outputActivation.Activate)
}

// Predict thresholds the probabilities at 0.5.
func (l *LogisticModel) Predict(X *tensor.Dense) (*tensor.Dense, error) {
	a, err := l.Probabilities(X)
	if err != nil {
		return nil, err
	}
	return threshold(a)
}

func (l *LogisticModel) arrays() []namedArray {
	return []namedArray{{"w", l.W}, {"b", l.b}}
}

// gradients returns the cost with dw = X·(A - Y)ᵗ / m and db = rowsum(A - Y) / m.
func (l *LogisticModel) gradients(X, Y *tensor.Dense) (float64, []namedArray, error) {
	a, err := l.Probabilities(X)
	if err != nil {
		return 0, nil, err
	}
	cost, err := ComputeCost(a, Y)
	if err != nil {
		return 0, nil, err
	}
	m := a.Shape()[1]
	dZ := NewMatrix(1, m, costFunction.Gradient(a.Float64s(), Y.Float64s()))
	dZT, err := transpose(dZ)
	if err != nil {
		return 0, nil, err
	}
	dw, err := scaledProduct(X, dZT, 1/float64(m))
	if err != nil {
		return 0, nil, errors.WithMessage(err, "dw")
	}
	return cost, []namedArray{{"dw", dw}, {"db", rowMeans(dZ, m)}}, nil
}

// LogisticResult is a fitted baseline with its predictions on both sets.
// The test fields are nil or zero when no test set was given.
type LogisticResult struct {
	Model            *LogisticModel
	W                *tensor.Dense
	B                float64
	Costs            []float64
	TrainPredictions *tensor.Dense
	TestPredictions  *tensor.Dense
	TrainAccuracy    float64
	TestAccuracy     float64
	LearningRate     float64
	Iterations       int
}

// FitLogisticRegression fits a logistic regression to the training set from zero
// weights, recording the cost every DefaultReportEvery iterations, then predicts both
// sets. testX and testY may both be nil.
func FitLogisticRegression(trainX, trainY, testX, testY *tensor.Dense, iterations int, learningRate float64) (*LogisticResult, error) {
	if iterations < 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "iteration count %d", iterations)
	}
	if !(learningRate > 0) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "learning rate %v", learningRate)
	}
	nx, ny, err := LayerSizes(trainX, trainY)
	if err != nil {
		return nil, err
	}
	if ny != 1 {
		return nil, errors.Wrapf(ErrInvalidShape, "logistic regression needs one label row, got %d", ny)
	}
	hasTest := testX != nil || testY != nil
	if hasTest {
		tx, _, err := LayerSizes(testX, testY)
		if err != nil {
			return nil, errors.WithMessage(err, "test set")
		}
		if tx != nx || testY.Shape()[0] != 1 {
			return nil, errors.Wrapf(ErrInvalidShape, "test set %v/%v does not match train set %v/%v",
				testX.Shape(), testY.Shape(), trainX.Shape(), trainY.Shape())
		}
	}

	model, err := NewLogisticModel(nx)
	if err != nil {
		return nil, err
	}
	costs, err := descend(trainX, trainY, model, iterations, learningRate, DefaultReportEvery, nil)
	if err != nil {
		return nil, err
	}

	res := &LogisticResult{
		Model:        model,
		W:            model.W,
		B:            model.Bias(),
		Costs:        costs,
		LearningRate: learningRate,
		Iterations:   iterations,
	}
	if res.TrainPredictions, err = model.Predict(trainX); err != nil {
		return nil, err
	}
	if res.TrainAccuracy, err = Accuracy(res.TrainPredictions, trainY); err != nil {
		return nil, err
	}
	if hasTest {
		if res.TestPredictions, err = model.Predict(testX); err != nil {
			return nil, err
		}
		if res.TestAccuracy, err = Accuracy(res.TestPredictions, testY); err != nil {
			return nil, err
		}
	}
	return res, nil
}
