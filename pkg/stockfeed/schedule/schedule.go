// Package schedule runs the refresh job on a cron cadence.
package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// Job is the unit of work the scheduler runs.
type Job func(ctx context.Context) error

// Scheduler runs one job on a cron expression. Ticks that would overlap a
// still-running execution are skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger

	mu      sync.Mutex
	running bool
}

func New(logger *log.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), logger: logger}
}

// Start registers the job under expr and starts the cron loop. It returns
// immediately; use Stop to shut down.
func (s *Scheduler) Start(ctx context.Context, expr string, job Job) error {
	_, err := s.cron.AddFunc(expr, func() {
		s.mu.Lock()
		if s.running {
			s.mu.Unlock()
			if s.logger != nil {
				s.logger.Warn().Msg("previous refresh still running, skipping tick")
			}
			return
		}
		s.running = true
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := job(ctx); err != nil && s.logger != nil {
			s.logger.Error().Err(err).Msg("scheduled refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.Info().Str("schedule", expr).Msg("scheduler started")
	}
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
