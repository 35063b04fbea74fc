// Package app wires the batch builder together: logger construction, loader
// selection, experiment assembly and the run pipeline.
package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/skyglowlab/skybatch/internal/ctxlog"
	"github.com/skyglowlab/skybatch/internal/dispatch"
	"github.com/skyglowlab/skybatch/internal/runner"
)

// Config holds everything an App needs to build one batch.
type Config struct {
	// InputPath is the directory holding the experiment document and all
	// static assets.
	InputPath string
	// BatchName, when non-empty, overrides the document's batch_file_name.
	BatchName string
	// SolverPath overrides the solver executable location; empty means
	// <InputPath>/bin/skysim.
	SolverPath string
	// Compact chains similar runs into shared sandboxes.
	Compact bool
	// BatchSize is the number of launches per dispatch batch file.
	BatchSize int
	// Scheduler is the dispatch template name: sequential, parallel, slurm.
	Scheduler string
	// Workers bounds the sandbox worker pool.
	Workers int
	LogLevel  string
	LogFormat string
}

// App is one configured batch builder instance.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config Config
}

// NewApp builds an App with its own isolated logger.
func NewApp(outW io.Writer, cfg Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		config: cfg,
	}
}

// Run loads the experiment and executes the batch pipeline.
func (a *App) Run(ctx context.Context) (*runner.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	scheduler, err := dispatch.Parse(a.config.Scheduler)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(a.config.InputPath)
	if err != nil {
		return nil, err
	}

	exp, err := loadExperiment(ctx, root, a.config)
	if err != nil {
		return nil, err
	}

	run := runner.New(exp, runner.Options{
		Compact:   a.config.Compact,
		Workers:   a.config.Workers,
		BatchSize: a.config.BatchSize,
		Scheduler: scheduler,
	})
	return run.Run(ctx)
}
