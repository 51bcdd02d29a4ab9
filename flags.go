package main

import (
	"flag"
	"io"
)

// parseFlags parses args into a config path and the overrides for every flag
// actually given on the command line, so an explicit zero or false still wins
// over the YAML file.
func parseFlags(name string, args []string, output io.Writer) (string, Overrides, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	cfgPath := fs.String("config", "", "Path to YAML config")
	hidden := fs.Int("hidden", 0, "Hidden layer size")
	iterations := fs.Int("iterations", 0, "Number of gradient descent iterations")
	lr := fs.Float64("lr", 0, "Learning rate")
	reportCost := fs.Bool("report-cost", false, "Report the cost every report_every iterations")
	seed := fs.Int64("seed", 0, "PRNG seed")
	examples := fs.Int("examples", 0, "Number of generated training examples")
	dataFile := fs.String("data", "", "CSV dataset to train on instead of generating one")
	saveData := fs.String("save-data", "", "Write the training set to this CSV file")
	logFile := fs.String("log", "", "Append log records to this file")
	plotDir := fs.String("plots", "", "Write dataset, boundary and cost plots to this directory")
	gradCheck := fs.Bool("gradcheck", false, "Compare backpropagation against finite differences before training")
	baseIterations := fs.Int("baseline-iterations", 0, "Logistic regression iterations, 0 skips the baseline")
	baseLR := fs.Float64("baseline-lr", 0, "Logistic regression learning rate")
	if err := fs.Parse(args); err != nil {
		return "", Overrides{}, err
	}

	var o Overrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hidden":
			o.HiddenSize = hidden
		case "iterations":
			o.Iterations = iterations
		case "lr":
			o.LearningRate = lr
		case "report-cost":
			o.ReportCost = reportCost
		case "seed":
			o.Seed = seed
		case "examples":
			o.TrainExamples = examples
		case "data":
			o.DataFile = dataFile
		case "save-data":
			o.SaveData = saveData
		case "log":
			o.LogFile = logFile
		case "plots":
			o.PlotDir = plotDir
		case "gradcheck":
			o.GradCheck = gradCheck
		case "baseline-iterations":
			o.BaselineIterations = baseIterations
		case "baseline-lr":
			o.BaselineLearningRate = baseLR
		}
	})
	return *cfgPath, o, nil
}
