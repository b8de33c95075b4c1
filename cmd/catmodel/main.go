package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catmodel/internal/config"
	"catmodel/internal/dataset"
	"catmodel/internal/metrics"
	"catmodel/internal/model"
	"catmodel/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config")
	trainPath := flag.String("train", "", "Override training CSV file or directory")
	testPath := flag.String("test", "", "Override test CSV file or directory")
	iterations := flag.Int("iterations", 0, "Number of gradient descent iterations")
	learningRate := flag.Float64("learning-rate", 0, "Gradient descent step size")
	logEvery := flag.Int("log-every", 0, "Log cost every N iterations")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		TrainPath:    *trainPath,
		TestPath:     *testPath,
		Iterations:   *iterations,
		LearningRate: *learningRate,
		LogEvery:     *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	train, err := dataset.Load(cfg.TrainPath)
	if err != nil {
		log.Fatalf("load train set: %v", err)
	}
	log.Printf("train=%s features=%d examples=%d", cfg.TrainPath, train.Features(), train.Examples())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := trainer.Train(ctx, train.X, train.Y, trainer.Options{
		Examples:     train.Examples(),
		Iterations:   cfg.Iterations,
		LearningRate: cfg.LearningRate,
		LogEvery:     cfg.LogEvery,
	})
	if errors.Is(err, context.Canceled) {
		log.Printf("training interrupted")
		return
	}
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf("bias=%.6f last_db=%.6g", res.Params.B, res.Grads.DB)

	report("train", res.Params, train)

	if cfg.TestPath == "" {
		return
	}
	test, err := dataset.Load(cfg.TestPath)
	if err != nil {
		log.Fatalf("load test set: %v", err)
	}
	report("test", res.Params, test)
}

func report(name string, params model.Params, b model.Batch) {
	pred, err := model.Predict(params, b.X)
	if err != nil {
		log.Fatalf("predict %s: %v", name, err)
	}
	acc, err := metrics.Accuracy(pred, b.Y)
	if err != nil {
		log.Fatalf("score %s: %v", name, err)
	}
	log.Printf("set=%s examples=%d accuracy=%.2f%%", name, b.Examples(), acc*100)
}
