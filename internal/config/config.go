package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIterations   = 1000
	DefaultLearningRate = 0.009
	DefaultLogEvery     = 100
)

// Config captures the runtime knobs for a training run.
type Config struct {
	TrainPath    string  `yaml:"train_path"`
	TestPath     string  `yaml:"test_path"`
	Iterations   int     `yaml:"iterations"`
	LearningRate float64 `yaml:"learning_rate"`
	LogEvery     int     `yaml:"log_every"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	TrainPath    string
	TestPath     string
	Iterations   int
	LearningRate float64
	LogEvery     int
}

// Default returns a Config with the stock hyperparameters and no data paths.
func Default() *Config {
	return &Config{
		Iterations:   DefaultIterations,
		LearningRate: DefaultLearningRate,
		LogEvery:     DefaultLogEvery,
	}
}

// Load reads a Config from YAML. Keys missing from the file keep their defaults.
// The result is not validated so CLI overrides can still fill in required fields.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.TrainPath != "" {
		c.TrainPath = o.TrainPath
	}
	if o.TestPath != "" {
		c.TestPath = o.TestPath
	}
	if o.Iterations > 0 {
		c.Iterations = o.Iterations
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.TrainPath == "" {
		return errors.New("train_path must be set")
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be > 0 (got %d)", c.Iterations)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = DefaultLogEvery
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}
