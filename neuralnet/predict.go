package neuralnet

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Predict returns 1 where the predicted probability exceeds 0.5 and 0 elsewhere.
func Predict(X *tensor.Dense, p *Parameters) (*tensor.Dense, error) {
	A2, _, err := ForwardPropagation(X, p)
	if err != nil {
		return nil, err
	}
	return threshold(A2)
}

func threshold(a *tensor.Dense) (*tensor.Dense, error) {
	return apply(a, func(p float64) float64 {
		if p > 0.5 {
			return 1
		}
		return 0
	})
}

// Accuracy returns the fraction of entries where pred equals Y.
func Accuracy(pred, Y *tensor.Dense) (float64, error) {
	rp, mp, err := dims(pred)
	if err != nil {
		return 0, errors.WithMessage(err, "predictions")
	}
	if !sameShape(Y, rp, mp) {
		return 0, errors.Wrapf(ErrInvalidShape, "predictions %v do not match Y %v", pred.Shape(), Y.Shape())
	}
	if rp*mp == 0 {
		return 0, errors.Wrap(ErrInvalidShape, "no examples")
	}
	p, y := pred.Float64s(), Y.Float64s()
	var hits int
	for i := range p {
		if p[i] == y[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(p)), nil
}
