package evolve

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stringgenetics/internal/config"
	"stringgenetics/internal/ga"
	"stringgenetics/internal/history"
	"stringgenetics/internal/logging"
	"stringgenetics/internal/metrics"
)

// Result describes a finished (or cancelled) run
type Result struct {
	RunID       string        `json:"run_id"`
	Generations int           `json:"generations"`
	Best        string        `json:"best"`
	BestFitness float64       `json:"best_fitness"`
	Converged   bool          `json:"converged"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Runner drives a population until it converges or the generation budget runs out
type Runner struct {
	cfg      *config.Config
	runID    string
	pop      *ga.Population
	recorder *logging.Recorder
	history  *history.History
	metrics  *metrics.Collector
	logger   *logrus.Logger
	rng      ga.Source
}

// Option customises a Runner
type Option func(*Runner)

// WithLogger replaces the logger built from the config
func WithLogger(logger *logrus.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithSource replaces the seeded random source
func WithSource(rng ga.Source) Option {
	return func(r *Runner) { r.rng = rng }
}

// WithRecorder enables CSV/JSONL output. The caller owns Init and Close.
func WithRecorder(rec *logging.Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithMetrics exports every generation to the collector
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = c }
}

// WithRunID overrides the generated run ID
func WithRunID(id string) Option {
	return func(r *Runner) { r.runID = id }
}

// NewRunner validates the config and creates the initial population
func NewRunner(cfg *config.Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Runner{
		cfg:     cfg,
		history: history.New(cfg.Target, cfg.Logging.HistorySize),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logrus.New()
		r.logger.SetOutput(io.Discard)
	}
	if r.runID == "" {
		r.runID = uuid.New().String()
	}
	if r.rng == nil {
		r.rng = ga.NewSource(cfg.Seed)
	}

	target, err := ga.NewCandidate(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	r.pop, err = ga.NewPopulation(target, cfg.PoolSize, r.rng)
	if err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}

	return r, nil
}

// RunID returns the identifier attached to every record of this run
func (r *Runner) RunID() string {
	return r.runID
}

// Population returns the population being evolved
func (r *Runner) Population() *ga.Population {
	return r.pop
}

// History returns the best-of-generation history
func (r *Runner) History() *history.History {
	return r.history
}

// Run steps the population until the best candidate reaches the target
// fitness, the generation budget is spent or ctx is cancelled. On
// cancellation the partial result is returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	log := r.logger.WithField("run_id", r.runID)

	log.WithFields(logrus.Fields{
		"target":      r.cfg.Target,
		"pool_size":   r.cfg.PoolSize,
		"generations": r.cfg.Run.Generations,
		"seed":        r.cfg.Seed,
	}).Info("starting evolution")

	result := Result{RunID: r.runID}
	finish := func(snap *ga.Snapshot) Result {
		result.Generations = snap.Generation
		result.Best = snap.Best.String()
		result.BestFitness = snap.BestFitness
		result.Elapsed = time.Since(start)
		return result
	}

	snap := r.pop.Evaluate()
	for gen := 1; gen <= r.cfg.Run.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("evolution cancelled")
			return finish(snap), err
		}

		// 1. Breed the next generation
		r.pop.Step()

		// 2. Rank it once, reused for logging and the stop check
		snap = r.pop.Evaluate()

		// 3. Record
		summary, err := r.record(snap)
		if err != nil {
			return finish(snap), fmt.Errorf("record generation %d: %w", gen, err)
		}
		if r.cfg.Logging.EveryGenSummary {
			log.WithFields(logrus.Fields{
				"generation":   summary.Generation,
				"best":         summary.Best,
				"best_fitness": fmt.Sprintf("%.3f", summary.BestFitness),
				"mean_fitness": fmt.Sprintf("%.3f", summary.MeanFitness),
			}).Info("generation")
		}

		// 4. Stop once the target fitness is reached
		if snap.BestFitness >= r.cfg.Run.TargetFitness {
			result.Converged = true
			if r.metrics != nil {
				r.metrics.MarkConverged()
			}
			break
		}
	}

	result = finish(snap)
	log.WithFields(logrus.Fields{
		"generations":  result.Generations,
		"best":         result.Best,
		"best_fitness": result.BestFitness,
		"converged":    result.Converged,
		"elapsed":      result.Elapsed,
	}).Info("evolution finished")

	return result, nil
}

func (r *Runner) record(snap *ga.Snapshot) (logging.GenerationSummary, error) {
	var (
		summary logging.GenerationSummary
		err     error
	)
	if r.recorder != nil {
		summary, err = r.recorder.LogGeneration(r.runID, snap)
		if err != nil {
			return summary, err
		}
	} else {
		summary = logging.Summarize(r.runID, snap)
	}

	r.history.Record(summary.Generation, summary.Best, summary.BestFitness)
	if r.metrics != nil {
		r.metrics.Observe(summary)
	}
	return summary, nil
}

// Score returns the fitness of text against target
func Score(target, text string) (float64, error) {
	t, err := ga.NewCandidate(target)
	if err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}
	c, err := ga.NewCandidate(text)
	if err != nil {
		return 0, fmt.Errorf("candidate: %w", err)
	}
	return c.Fitness(t)
}
