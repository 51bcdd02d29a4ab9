package neuralnet

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidShape reports mismatched matrix dimensions or a zero-sized layer.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrNumericalInstability reports a NaN or Inf cost or gradient.
	ErrNumericalInstability = errors.New("numerical instability")
	// ErrInvalidConfiguration reports a non-positive learning rate, hidden size or a
	// negative iteration count.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// InstabilityError aborts a training run when a non-finite value shows up.
// LastValidIteration is -1 when no iteration completed.
type InstabilityError struct {
	Iteration          int
	Quantity           string
	LastValidIteration int
	LastCost           float64
}

func (e *InstabilityError) Error() string {
	if e.LastValidIteration < 0 {
		return fmt.Sprintf("%v: non-finite %s at iteration %d, no valid iteration",
			ErrNumericalInstability, e.Quantity, e.Iteration)
	}
	return fmt.Sprintf("%v: non-finite %s at iteration %d, last valid iteration %d with cost %g",
		ErrNumericalInstability, e.Quantity, e.Iteration, e.LastValidIteration, e.LastCost)
}

func (e *InstabilityError) Unwrap() error {
	return ErrNumericalInstability
}
