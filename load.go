package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"planarnet/dataset"
)

type split struct {
	X, Y *tensor.Dense
}

// loadDatasets returns the training set and a test set of train/split_ratio examples.
// Generated data draws both sets from the same flower; a data file is shuffled and split.
// The test set is nil when it would be empty.
func loadDatasets(cfg Config, rng *rand.Rand) (train split, test *split, err error) {
	if cfg.DataFile != "" {
		X, Y, err := dataset.LoadFile(cfg.DataFile)
		if err != nil {
			return split{}, nil, err
		}
		m := Y.Shape()[1]
		nTest := m / (cfg.SplitRatio + 1)
		if nTest == 0 {
			return split{X, Y}, nil, nil
		}
		dataset.Shuffle(X, Y, rng)
		trX, trY, teX, teY, err := dataset.Split(X, Y, m-nTest)
		if err != nil {
			return split{}, nil, err
		}
		return split{trX, trY}, &split{teX, teY}, nil
	}

	X, Y, err := dataset.Flower(cfg.TrainExamples, cfg.Radius, rng)
	if err != nil {
		return split{}, nil, errors.WithMessage(err, "train set")
	}
	train = split{X, Y}
	mTest := cfg.TrainExamples / cfg.SplitRatio
	if mTest == 0 {
		return train, nil, nil
	}
	X, Y, err = dataset.Flower(mTest, cfg.Radius, rng)
	if err != nil {
		return split{}, nil, errors.WithMessage(err, "test set")
	}
	return train, &split{X, Y}, nil
}

// describe prints and logs the shape diagnostics of one dataset.
func describe(out io.Writer, logger *log.Logger, name string, s split) {
	lines := []string{
		fmt.Sprintf("The shape of x is: %v", []int(s.X.Shape())),
		fmt.Sprintf("The shape of y is: %v", []int(s.Y.Shape())),
		fmt.Sprintf("There are m = %d %s examples", s.Y.Shape()[1], name),
	}
	for _, l := range lines {
		fmt.Fprintln(out, l)
		logger.Println(l)
	}
}
