package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type countingJob struct {
	name string
	runs *atomic.Int64
	err  error
	done chan struct{}
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Execute(context.Context) error {
	j.runs.Add(1)
	if j.done != nil {
		close(j.done)
	}
	return j.err
}

type SchedulerSuite struct {
	suite.Suite
	pool   *Pool
	cancel context.CancelFunc
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerSuite))
}

func (s *SchedulerSuite) start(workers, capacity int) {
	s.pool = NewPool(workers, capacity)
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() { _ = s.pool.Run(ctx) }()
}

func (s *SchedulerSuite) TearDownTest() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *SchedulerSuite) TestSubmitRunsDetached() {
	s.start(2, 16)

	var runs atomic.Int64
	done := make(chan struct{})
	s.pool.Submit(&countingJob{name: "notify", runs: &runs, done: done})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("job never ran")
	}
	s.Equal(int64(1), runs.Load())
}

func (s *SchedulerSuite) TestSubmitAfterHonorsMinimumDelay() {
	s.start(1, 16)

	var runs atomic.Int64
	done := make(chan struct{})
	start := time.Now()
	s.pool.SubmitAfter(&countingJob{name: "delete", runs: &runs, done: done}, 100*time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("delayed job never ran")
	}
	s.GreaterOrEqual(time.Since(start), 100*time.Millisecond)
}

func (s *SchedulerSuite) TestFailureStaysInternal() {
	s.start(1, 16)

	var runs atomic.Int64
	done := make(chan struct{})
	s.pool.Submit(&countingJob{name: "flaky", runs: &runs, err: errors.New("boom"), done: done})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("job never ran")
	}

	// A second job still runs after the first failed.
	var again atomic.Int64
	done2 := make(chan struct{})
	s.pool.Submit(&countingJob{name: "after", runs: &again, done: done2})
	select {
	case <-done2:
	case <-time.After(2 * time.Second):
		s.FailNow("follow-up job never ran")
	}
}

func (s *SchedulerSuite) TestFullQueueDropsInsteadOfBlocking() {
	// No workers draining: pool constructed but never run.
	pool := NewPool(1, 1)

	var runs atomic.Int64
	pool.Submit(&countingJob{name: "first", runs: &runs})

	submitted := make(chan struct{})
	go func() {
		pool.Submit(&countingJob{name: "overflow", runs: &runs})
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		s.FailNow("Submit blocked on a full queue")
	}
}
