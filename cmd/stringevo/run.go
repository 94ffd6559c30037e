package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stringgenetics/internal/config"
	"stringgenetics/internal/evolve"
	"stringgenetics/internal/logging"
	"stringgenetics/internal/metrics"
)

type runOptions struct {
	configPath  string
	target      string
	poolSize    int
	generations int
	seed        int64
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the evolution loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "path to config file")
	f.StringVar(&opts.target, "target", "", "target text (overrides config)")
	f.IntVar(&opts.poolSize, "pool-size", 0, "population size (overrides config)")
	f.IntVar(&opts.generations, "generations", 0, "generation budget (overrides config)")
	f.Int64Var(&opts.seed, "seed", 0, "random seed, 0 for time based (overrides config)")
	return cmd
}

func loadRunConfig(cmd *cobra.Command, opts *runOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Read(opts.configPath); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("target") {
		cfg.Target = opts.target
	}
	if f.Changed("pool-size") {
		cfg.PoolSize = opts.poolSize
	}
	if f.Changed("generations") {
		cfg.Run.Generations = opts.generations
	}
	if f.Changed("seed") {
		cfg.Seed = opts.seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func run(parent context.Context, out io.Writer, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	recorder, err := logging.NewRecorder(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
	if err != nil {
		return fmt.Errorf("creating recorder: %w", err)
	}
	if err := recorder.Init(); err != nil {
		return fmt.Errorf("initializing recorder: %w", err)
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.WithError(err).Warn("failed to close run outputs")
		}
	}()

	runID := uuid.NewString()
	collector := metrics.NewCollector(runID)

	runner, err := evolve.NewRunner(cfg,
		evolve.WithRunID(runID),
		evolve.WithLogger(logger),
		evolve.WithRecorder(recorder),
		evolve.WithMetrics(collector),
	)
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: collector.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("metrics listener stopped")
			}
		}()
		defer srv.Close()
		logger.WithField("addr", cfg.Metrics.Addr).Info("serving metrics")
	}

	res, runErr := runner.Run(ctx)

	if err := runner.History().Save(cfg.Logging.HistoryPath); err != nil {
		logger.WithError(err).Warn("failed to save history")
	}

	fmt.Fprintln(out, "---")
	fmt.Fprintf(out, "Run %s: %d generations in %v\n", res.RunID, res.Generations, res.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "Best: %q (fitness=%.3f, converged=%t)\n", res.Best, res.BestFitness, res.Converged)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
