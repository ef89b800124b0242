// Package scheduler runs the periodic follow-up sweep over tracker boards.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/jobkit/pkg/logging"
)

const (
	DefaultSpec  = "@every 1h"
	DefaultAfter = 72 * time.Hour
)

// Sweeper flags applications that need a follow-up
type Sweeper interface {
	SweepFollowUps(ctx context.Context, after time.Duration) (int, error)
}

// Scheduler wraps robfig/cron and runs the follow-up sweep.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	spec    string
	after   time.Duration
	logger  *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler firing on spec (cron syntax or "@every 1h")
func New(sweeper Sweeper, spec string, after time.Duration, logger *logging.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if after <= 0 {
		after = DefaultAfter
	}
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.Named("scheduler")

	cronLog := cron.PrintfLogger(logger)
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		sweeper: sweeper,
		spec:    spec,
		after:   after,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start registers the sweep, starts the cron loop and runs one sweep immediately.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runSweep); err != nil {
		return fmt.Errorf("scheduler: add %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("cron started", "spec", s.spec, "after", s.after)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runSweep()
	}()

	return nil
}

// Shutdown stops scheduling and waits for a running sweep to finish
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.cancel()
	stopped := s.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("cron stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runSweep() {
	n, err := s.sweeper.SweepFollowUps(s.ctx, s.after)
	if err != nil {
		s.logger.Warn("follow-up sweep failed", "err", err)
		return
	}
	s.logger.Debug("follow-up sweep complete", "flagged", n)
}
