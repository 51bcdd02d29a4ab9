// Command planarnet trains a one hidden layer classifier on a synthetic flower dataset.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"planarnet/dataset"
	"planarnet/neuralnet"
)

func main() {
	cfgPath, overrides, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ApplyOverrides(overrides)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to open log: %v", err)
	}
	defer closeLog()

	if err := run(cfg, os.Stdout, logger); err != nil {
		logger.Printf("run failed: %v", err)
		closeLog()
		log.Fatalf("run failed: %v", err)
	}
}

func run(cfg Config, out io.Writer, logger *log.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	train, test, err := loadDatasets(cfg, rng)
	if err != nil {
		return err
	}
	describe(out, logger, "training", train)
	if test != nil {
		describe(out, logger, "testing", *test)
	}
	if cfg.SaveData != "" {
		if err := dataset.SaveFile(cfg.SaveData, train.X, train.Y); err != nil {
			return errors.WithMessage(err, "save training set")
		}
		logger.Printf("Saved training set to %s", cfg.SaveData)
	}

	if cfg.GradCheck {
		if err := checkGradients(out, logger, train, cfg, rng); err != nil {
			return err
		}
	}

	res, err := neuralnet.Train(train.X, train.Y, neuralnet.TrainConfig{
		HiddenSize:   cfg.HiddenSize,
		Iterations:   cfg.Iterations,
		LearningRate: cfg.LearningRate,
		ReportCost:   cfg.ReportCost,
		ReportEvery:  cfg.ReportEvery,
		Seed:         cfg.Seed,
		Observer: neuralnet.ObserverFunc(func(i int, cost float64) {
			fmt.Fprintf(out, "Cost after iteration %d: %g\n", i, cost)
			logger.Printf("Cost after iteration %d: %g", i, cost)
		}),
	})
	var unstable *neuralnet.InstabilityError
	if errors.As(err, &unstable) {
		return errors.WithMessage(err, "try a smaller learning rate")
	}
	if err != nil {
		return errors.WithMessage(err, "train")
	}

	report := func(model, set string, acc float64) {
		line := fmt.Sprintf("%s %s accuracy: %.2f%%", model, set, acc*100)
		fmt.Fprintln(out, line)
		logger.Println(line)
	}
	accuracy := func(s split) (float64, error) {
		pred, err := neuralnet.Predict(s.X, res.Params)
		if err != nil {
			return 0, err
		}
		return neuralnet.Accuracy(pred, s.Y)
	}
	acc, err := accuracy(train)
	if err != nil {
		return err
	}
	report("Neural network", "train", acc)
	if test != nil {
		if acc, err = accuracy(*test); err != nil {
			return err
		}
		report("Neural network", "test", acc)
	}

	var baseline *neuralnet.LogisticResult
	if cfg.BaselineIterations > 0 {
		var testX, testY *tensor.Dense
		if test != nil {
			testX, testY = test.X, test.Y
		}
		baseline, err = neuralnet.FitLogisticRegression(train.X, train.Y, testX, testY, cfg.BaselineIterations, cfg.BaselineLearningRate)
		if err != nil {
			return errors.WithMessage(err, "logistic regression")
		}
		report("Logistic regression", "train", baseline.TrainAccuracy)
		if test != nil {
			report("Logistic regression", "test", baseline.TestAccuracy)
		}
	}

	if cfg.PlotDir != "" {
		return writePlots(cfg, train, test, res, baseline)
	}
	return nil
}

func checkGradients(out io.Writer, logger *log.Logger, train split, cfg Config, rng *rand.Rand) error {
	nx, ny, err := neuralnet.LayerSizes(train.X, train.Y)
	if err != nil {
		return err
	}
	params, err := neuralnet.InitializeParameters(nx, cfg.HiddenSize, ny, rng)
	if err != nil {
		return err
	}
	check, err := neuralnet.CheckGradients(train.X, train.Y, params, 0)
	if err != nil {
		return errors.WithMessage(err, "gradient check")
	}
	for _, name := range []string{"dW1", "db1", "dW2", "db2"} {
		line := fmt.Sprintf("Gradient check %s: max abs difference %.3g", name, check.MaxAbsDiff()[name])
		fmt.Fprintln(out, line)
		logger.Println(line)
	}
	return nil
}

func writePlots(cfg Config, train split, test *split, res *neuralnet.Result, baseline *neuralnet.LogisticResult) error {
	if err := os.MkdirAll(cfg.PlotDir, 0o755); err != nil {
		return errors.Wrap(err, "plot directory")
	}
	path := func(name string) string { return filepath.Join(cfg.PlotDir, name) }

	if err := plotDataset(train.X, train.Y, "train dataset", path("train.svg")); err != nil {
		return err
	}
	if test != nil {
		if err := plotDataset(test.X, test.Y, "test dataset", path("test.svg")); err != nil {
			return err
		}
	}
	network := func(X *tensor.Dense) (*tensor.Dense, error) { return neuralnet.Predict(X, res.Params) }
	if err := plotDecisionBoundary(network, train.X, train.Y, "neural network decision boundary", path("boundary.svg")); err != nil {
		return err
	}
	if baseline != nil {
		if err := plotDecisionBoundary(baseline.Model.Predict, train.X, train.Y, "logistic regression decision boundary", path("boundary_logistic.svg")); err != nil {
			return err
		}
	}
	if len(res.Costs) > 0 {
		return plotCosts(res.Costs, cfg.ReportEvery, path("cost.svg"))
	}
	return nil
}
