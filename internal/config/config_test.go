package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "train_path: data/train.csv\nlearning_rate: 0.05\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TrainPath != "data/train.csv" {
		t.Fatalf("train_path=%q", cfg.TrainPath)
	}
	if cfg.LearningRate != 0.05 {
		t.Fatalf("learning_rate=%g want 0.05", cfg.LearningRate)
	}
	if cfg.Iterations != DefaultIterations || cfg.LogEvery != DefaultLogEvery {
		t.Fatalf("defaults not kept: iterations=%d log_every=%d", cfg.Iterations, cfg.LogEvery)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# nothing here\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Iterations != DefaultIterations || cfg.LearningRate != DefaultLearningRate {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "train_path: a.csv\nmomentum: 0.9\n"))
	if err == nil || !strings.Contains(err.Error(), "momentum") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{TrainPath: "train", Iterations: 50})
	if cfg.TrainPath != "train" || cfg.Iterations != 50 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.LearningRate != DefaultLearningRate {
		t.Fatalf("zero override changed learning rate: %g", cfg.LearningRate)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{name: "missing train path", cfg: Config{Iterations: 1, LearningRate: 0.1}},
		{name: "zero iterations", cfg: Config{TrainPath: "t", LearningRate: 0.1}},
		{name: "negative learning rate", cfg: Config{TrainPath: "t", Iterations: 1, LearningRate: -1}},
	}
	for _, tc := range cases {
		cfg := tc.cfg
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	cfg := Config{TrainPath: "t", Iterations: 1, LearningRate: 0.1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.LogEvery != DefaultLogEvery {
		t.Fatalf("expected log_every default, got %d", cfg.LogEvery)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
