package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	HiddenSize           int     `yaml:"hidden_size"`
	Iterations           int     `yaml:"iterations"`
	LearningRate         float64 `yaml:"learning_rate"`
	ReportCost           bool    `yaml:"report_cost"`
	ReportEvery          int     `yaml:"report_every"`
	Seed                 int64   `yaml:"seed"`
	TrainExamples        int     `yaml:"train_examples"`
	SplitRatio           int     `yaml:"split_ratio"`
	Radius               float64 `yaml:"radius"`
	DataFile             string  `yaml:"data_file"`
	SaveData             string  `yaml:"save_data"`
	LogFile              string  `yaml:"log_file"`
	PlotDir              string  `yaml:"plot_dir"`
	GradCheck            bool    `yaml:"grad_check"`
	BaselineIterations   int     `yaml:"baseline_iterations"`
	BaselineLearningRate float64 `yaml:"baseline_learning_rate"`
}

// Overrides captures CLI supplied values; nil fields leave the config untouched.
type Overrides struct {
	HiddenSize           *int
	Iterations           *int
	LearningRate         *float64
	ReportCost           *bool
	Seed                 *int64
	TrainExamples        *int
	DataFile             *string
	SaveData             *string
	LogFile              *string
	PlotDir              *string
	GradCheck            *bool
	BaselineIterations   *int
	BaselineLearningRate *float64
}

func DefaultConfig() Config {
	return Config{
		HiddenSize:           4,
		Iterations:           10000,
		LearningRate:         1.2,
		ReportCost:           true,
		ReportEvery:          1000,
		Seed:                 1,
		TrainExamples:        180,
		SplitRatio:           3,
		Radius:               10,
		BaselineIterations:   2000,
		BaselineLearningRate: 0.05,
	}
}

// LoadConfig reads a YAML file on top of the defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (c *Config) ApplyOverrides(o Overrides) {
	set(&c.HiddenSize, o.HiddenSize)
	set(&c.Iterations, o.Iterations)
	set(&c.LearningRate, o.LearningRate)
	set(&c.ReportCost, o.ReportCost)
	set(&c.Seed, o.Seed)
	set(&c.TrainExamples, o.TrainExamples)
	set(&c.DataFile, o.DataFile)
	set(&c.SaveData, o.SaveData)
	set(&c.LogFile, o.LogFile)
	set(&c.PlotDir, o.PlotDir)
	set(&c.GradCheck, o.GradCheck)
	set(&c.BaselineIterations, o.BaselineIterations)
	set(&c.BaselineLearningRate, o.BaselineLearningRate)
}

func (c Config) Validate() error {
	switch {
	case c.HiddenSize <= 0:
		return errors.Errorf("hidden_size must be > 0, got %d", c.HiddenSize)
	case c.Iterations < 0:
		return errors.Errorf("iterations must be >= 0, got %d", c.Iterations)
	case c.LearningRate <= 0:
		return errors.Errorf("learning_rate must be > 0, got %v", c.LearningRate)
	case c.ReportEvery <= 0:
		return errors.Errorf("report_every must be > 0, got %d", c.ReportEvery)
	case c.SplitRatio <= 0:
		return errors.Errorf("split_ratio must be > 0, got %d", c.SplitRatio)
	case c.DataFile == "" && c.TrainExamples <= 0:
		return errors.Errorf("train_examples must be > 0, got %d", c.TrainExamples)
	case c.DataFile == "" && c.Radius <= 0:
		return errors.Errorf("radius must be > 0, got %v", c.Radius)
	case c.BaselineIterations < 0:
		return errors.Errorf("baseline_iterations must be >= 0, got %d", c.BaselineIterations)
	case c.BaselineIterations > 0 && c.BaselineLearningRate <= 0:
		return errors.Errorf("baseline_learning_rate must be > 0, got %v", c.BaselineLearningRate)
	}
	return nil
}
