// Package scheduler runs the periodic jobs (risk weekly check, missing-demands
// publication) on plain tickers. Job triggering is deliberately dumb; all
// decision making lives in the handlers it invokes.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Job is a named periodic task.
type Job struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

// Scheduler drives registered jobs until its context is cancelled.
type Scheduler struct {
	jobs []Job
	log  zerolog.Logger
	wg   sync.WaitGroup
}

// New creates an empty scheduler.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
}

// Start launches one goroutine per job. Job errors are logged, never fatal;
// the next tick retries.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			ticker := time.NewTicker(job.Every)
			defer ticker.Stop()

			s.log.Info().Str("job", job.Name).Dur("every", job.Every).Msg("job scheduled")
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := job.Run(ctx); err != nil {
						s.log.Error().Err(err).Str("job", job.Name).Msg("job run failed")
					}
				}
			}
		}(job)
	}
}

// Wait blocks until every job goroutine has stopped.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
