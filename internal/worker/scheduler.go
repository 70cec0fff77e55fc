package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/hubsync/common/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler enqueues reconciliation backfills on a cron schedule.
type Scheduler struct {
	spec      string
	scheduler BackfillScheduler
	cron      *cron.Cron
}

func NewScheduler(spec string, scheduler BackfillScheduler) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	s := &Scheduler{spec: spec, scheduler: scheduler, cron: c}
	if spec == "" {
		return s, nil
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parsing backfill cron %q: %w", spec, err)
	}
	return s, nil
}

// Run blocks until ctx is done. With no schedule it only waits.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "hubsync.worker.scheduler"})

	if s.spec == "" {
		slog.InfoContext(ctx, "scheduled backfill disabled")
		<-ctx.Done()
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, func() { s.Tick(ctx) }); err != nil {
		return fmt.Errorf("scheduling backfill: %w", err)
	}

	s.cron.Start()
	slog.InfoContext(ctx, "scheduled backfill started", "cron", s.spec)

	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}

// Tick enqueues one round of backfills.
func (s *Scheduler) Tick(ctx context.Context) {
	n, err := s.scheduler.EnqueueAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "scheduled backfill failed", "error", err)
		return
	}
	slog.InfoContext(ctx, "scheduled backfill enqueued", "owners", n)
}
