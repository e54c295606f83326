package scheduler

import (
	"context"
	"sync"
	"time"

	"iops/internal/shared/biztime"
	"iops/internal/shared/logger"
)

// UsageResetter is the application operation the scheduler fires at each
// month boundary.
type UsageResetter interface {
	ResetMonthlyUsage(ctx context.Context) (int64, error)
}

// UsageResetScheduler zeroes every user's counters at the start of each
// month (00:00 UTC on the 1st). The reset itself is idempotent, so a missed
// or doubled run is an operational hiccup, not a correctness problem.
type UsageResetScheduler struct {
	resetter UsageResetter
	logger   logger.Interface
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewUsageResetScheduler(resetter UsageResetter, logger logger.Interface) *UsageResetScheduler {
	return &UsageResetScheduler{
		resetter: resetter,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the scheduling loop. It returns immediately; the loop runs
// until Stop is called or the context is cancelled.
func (s *UsageResetScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting usage reset scheduler")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop stops the scheduler gracefully. Safe to call multiple times.
func (s *UsageResetScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping usage reset scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("usage reset scheduler stopped")
	})
}

func (s *UsageResetScheduler) run(ctx context.Context) {
	for {
		nextRun := s.nextRunTime(biztime.NowUTC())
		duration := time.Until(nextRun)

		s.logger.Infow("scheduled next monthly usage reset",
			"next_run", nextRun.Format(time.RFC3339),
			"duration", duration,
		)

		timer := time.NewTimer(duration)

		select {
		case <-timer.C:
			s.executeReset(ctx)
		case <-s.stopChan:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// nextRunTime returns the first instant of the month after now.
func (s *UsageResetScheduler) nextRunTime(now time.Time) time.Time {
	return biztime.NextMonthStart(now)
}

func (s *UsageResetScheduler) executeReset(ctx context.Context) {
	start := time.Now()

	affected, err := s.resetter.ResetMonthlyUsage(ctx)
	if err != nil {
		s.logger.Errorw("monthly usage reset failed", "error", err)
		return
	}

	s.logger.Infow("monthly usage reset executed",
		"affected_users", affected,
		"duration", time.Since(start),
	)
}
