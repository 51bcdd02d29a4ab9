package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hidden_size: 8\nlearning_rate: 0.5\nreport_cost: false\nplot_dir: out\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.HiddenSize)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.False(t, cfg.ReportCost)
	assert.Equal(t, "out", cfg.PlotDir)
	assert.Equal(t, 10000, cfg.Iterations, "unset keys keep their defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hidden_size: [1, 2\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	hidden, lr, reportCost, plots := 5, 0.3, false, "plots"
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{HiddenSize: &hidden, LearningRate: &lr, ReportCost: &reportCost, PlotDir: &plots})
	assert.Equal(t, 5, cfg.HiddenSize)
	assert.Equal(t, 0.3, cfg.LearningRate)
	assert.False(t, cfg.ReportCost)
	assert.Equal(t, "plots", cfg.PlotDir)
	assert.Equal(t, 10000, cfg.Iterations)
	assert.Equal(t, int64(1), cfg.Seed)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"hidden size", func(c *Config) { c.HiddenSize = 0 }},
		{"iterations", func(c *Config) { c.Iterations = -1 }},
		{"learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"report interval", func(c *Config) { c.ReportEvery = 0 }},
		{"split ratio", func(c *Config) { c.SplitRatio = 0 }},
		{"examples", func(c *Config) { c.TrainExamples = 0 }},
		{"radius", func(c *Config) { c.Radius = -1 }},
		{"baseline iterations", func(c *Config) { c.BaselineIterations = -1 }},
		{"baseline learning rate", func(c *Config) { c.BaselineLearningRate = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.TrainExamples = 0
	cfg.DataFile = "points.csv"
	assert.NoError(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.BaselineIterations = 0
	cfg.BaselineLearningRate = 0
	assert.NoError(t, cfg.Validate(), "a skipped baseline needs no learning rate")
}
