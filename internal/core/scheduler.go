// Package core drives the poll cycle: sample volumes, persist the
// snapshot, evaluate alerts, broadcast the update.
package core

import (
	"context"
	"time"

	"diskmon/internal/logger"
)

type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	cycle    func(context.Context) error
}

func NewScheduler(interval time.Duration, log logger.Logger, cycle func(context.Context) error) *Scheduler {
	return &Scheduler{interval: interval, log: log, cycle: cycle}
}

// Start runs cycles until ctx is cancelled. The first cycle runs
// immediately; afterwards the loop sleeps a full interval measured from
// the end of one cycle to the start of the next. A failed cycle is logged
// and the loop carries on without backoff.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		if err := s.cycle(ctx); err != nil {
			s.log.Error("poll cycle failed", "error", err)
		}

		select {
		case <-time.After(s.interval):
		case <-ctx.Done():
			return
		}
	}
}
