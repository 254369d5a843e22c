package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/scheduler"
)

func TestScheduler_RunsJobsUntilCancelled(t *testing.T) {
	s := scheduler.New(zerolog.Nop())
	var runs atomic.Int32
	s.Register(scheduler.Job{
		Name:  "counter",
		Every: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	ctx, cancel := context.WithCancel(context.Background())

	s.Start(ctx)
	assert.Eventually(t, func() bool { return runs.Load() >= 3 },
		time.Second, time.Millisecond)
	cancel()
	s.Wait()
}

func TestScheduler_FailingJobKeepsTicking(t *testing.T) {
	s := scheduler.New(zerolog.Nop())
	var runs atomic.Int32
	s.Register(scheduler.Job{
		Name:  "flaky",
		Every: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("boom")
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 2 },
		time.Second, time.Millisecond)
}

func TestScheduler_WaitReturnsAfterCancel(t *testing.T) {
	s := scheduler.New(zerolog.Nop())
	s.Register(scheduler.Job{
		Name:  "noop",
		Every: time.Millisecond,
		Run:   func(ctx context.Context) error { return nil },
	})
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
