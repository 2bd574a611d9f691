// Package retention runs the daily cleanup of logged LLM requests.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// DefaultWindow is how long LLM request events are kept.
const DefaultWindow = 30 * 24 * time.Hour

// Pruner deletes events recorded before a cutoff. store.EventRepo
// satisfies it.
type Pruner interface {
	PruneLLMEvents(ctx context.Context, before time.Time) (int64, error)
}

// Config controls when and how much is pruned.
type Config struct {
	Window time.Duration // non-positive means DefaultWindow
	At     string        // daily run time, "HH:MM" UTC
}

// Job prunes LLM request events once a day.
type Job struct {
	pruner    Pruner
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
	scheduler *gocron.Scheduler
}

// New creates a retention Job. It does nothing until Start.
func New(pruner Pruner, cfg Config, logger *slog.Logger) *Job {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.At == "" {
		cfg.At = "03:00"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{
		pruner:    pruner,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// RunOnce prunes everything older than the window and returns the number
// of events removed.
func (j *Job) RunOnce(ctx context.Context) (int64, error) {
	cutoff := j.now().UTC().Add(-j.cfg.Window)
	n, err := j.pruner.PruneLLMEvents(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune llm events: %w", err)
	}
	j.logger.Info("pruned llm request events", slog.Int64("removed", n), slog.Time("before", cutoff))
	return n, nil
}

// Start schedules the daily run in the background. ctx bounds each run.
func (j *Job) Start(ctx context.Context) error {
	_, err := j.scheduler.Every(1).Day().At(j.cfg.At).Do(func() {
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Warn("retention run failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule retention: %w", err)
	}
	j.scheduler.StartAsync()
	return nil
}

// NextRun reports when the scheduled run fires next. It is zero before
// Start.
func (j *Job) NextRun() time.Time {
	_, next := j.scheduler.NextRun()
	return next
}

// Stop halts the scheduler.
func (j *Job) Stop() {
	j.scheduler.Stop()
}
