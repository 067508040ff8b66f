// Package scheduler runs side-effect jobs detached from the dispatcher's
// acknowledgement path. Jobs are explicit descriptors submitted to a bounded
// queue and drained by a fixed worker pool; a full queue drops the job rather
// than blocking or growing without limit under a join-storm.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
)

var (
	jobsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "policr_scheduler_jobs_dropped_total",
		Help: "Jobs rejected because the queue was full",
	})
	jobsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policr_scheduler_jobs_failed_total",
		Help: "Jobs that returned an error, by job name",
	}, []string{"job"})
	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "policr_scheduler_queue_depth",
		Help: "Jobs currently queued for execution",
	})
)

// Job is a unit of detached work. Implementations are data descriptors, not
// closures over ambient state, so ownership and failure handling stay visible.
type Job interface {
	Name() string
	Execute(ctx context.Context) error
}

type queued struct {
	id  string
	job Job
}

// Pool executes jobs on a fixed number of workers over a bounded queue.
type Pool struct {
	queue   chan queued
	workers int
	logger  *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.logger = logger
	}
}

// NewPool constructs a pool with the given worker count and queue capacity.
func NewPool(workers, capacity int, opts ...PoolOption) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if capacity <= 0 {
		capacity = 256
	}
	p := &Pool{
		queue:   make(chan queued, capacity),
		workers: workers,
		logger:  slog.Default(),
		timers:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run drains the queue until ctx is cancelled. It blocks, so callers start it
// in their lifecycle group.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case item := <-p.queue:
					queueDepth.Dec()
					p.execute(ctx, item)
				}
			}
		})
	}
	err := g.Wait()
	p.stopTimers()
	return err
}

// Submit enqueues a job for execution at the earliest opportunity. The job is
// dropped with a log line when the queue is full.
func (p *Pool) Submit(job Job) {
	item := queued{id: uuid.NewString(), job: job}
	select {
	case p.queue <- item:
		queueDepth.Inc()
	default:
		jobsDropped.Inc()
		p.logger.Warn("scheduler queue full, dropping job", "job", job.Name(), "job_id", item.id)
	}
}

// SubmitAfter enqueues a job no earlier than delay from now. Independent jobs
// carry no ordering guarantee beyond their own minimum delay.
func (p *Pool) SubmitAfter(job Job, delay time.Duration) {
	if delay <= 0 {
		p.Submit(job)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	id := uuid.NewString()
	p.timers[id] = time.AfterFunc(delay, func() {
		p.mu.Lock()
		delete(p.timers, id)
		p.mu.Unlock()
		p.Submit(job)
	})
}

func (p *Pool) execute(ctx context.Context, item queued) {
	defer func() {
		if r := recover(); r != nil {
			jobsFailed.WithLabelValues(item.job.Name()).Inc()
			p.logger.Error("scheduled job panicked", "job", item.job.Name(), "job_id", item.id, "panic", r)
		}
	}()

	if err := item.job.Execute(ctx); err != nil {
		jobsFailed.WithLabelValues(item.job.Name()).Inc()
		p.logger.Error("scheduled job failed", "job", item.job.Name(), "job_id", item.id, "error", err)
	}
}

func (p *Pool) stopTimers() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for id, timer := range p.timers {
		timer.Stop()
		delete(p.timers, id)
	}
}
