// Package jobs runs periodic background work.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const refreshTimeout = 30 * time.Second

// Refresher recomputes derived state, such as the balance gauges.
type Refresher interface {
	RefreshGauges(ctx context.Context) error
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler returns a scheduler with no jobs.
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddBalanceRefresh runs r once immediately and then on schedule
// (standard cron syntax or a descriptor such as "@every 5m").
func (s *Scheduler) AddBalanceRefresh(ctx context.Context, schedule string, r Refresher) error {
	job := func() { runRefresh(ctx, r) }
	if _, err := s.cron.AddFunc(schedule, job); err != nil {
		return err
	}
	job()
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Cron jobs started", "entries", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("Cron jobs still running at shutdown")
	}
}

func runRefresh(ctx context.Context, r Refresher) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	start := time.Now()
	if err := r.RefreshGauges(ctx); err != nil {
		slog.Error("Balance refresh failed", "error", err)
		return
	}
	slog.Debug("Balance gauges refreshed", "duration_ms", time.Since(start).Milliseconds())
}
