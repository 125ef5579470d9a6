package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownJobType is returned when no handler is registered for a job's type.
var ErrUnknownJobType = errors.New("unknown job type")

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job. A returned error schedules a retry until MaxRetries is exhausted.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	// RetryDelay is the wait before the first retry; each further retry doubles it up to MaxBackoff.
	RetryDelay time.Duration
	MaxBackoff time.Duration
	Logger     *zap.Logger
}

// TypeStats counts outcomes for a single job type.
type TypeStats struct {
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Retried   int64 `json:"retried"`
}

// Stats is a point-in-time view of queue counters.
type Stats struct {
	Pending   int                  `json:"pending"`
	InFlight  int64                `json:"in_flight"`
	Succeeded int64                `json:"succeeded"`
	Failed    int64                `json:"failed"`
	ByType    map[string]TypeStats `json:"by_type"`
}

const (
	stateIdle int32 = iota
	stateRunning
	stateStopped
)

// Queue is an in-memory dispatcher routing jobs to handlers by type.
type Queue struct {
	name   string
	cfg    QueueConfig
	logger *zap.Logger
	jobs   chan Job

	mu       sync.RWMutex
	handlers map[string]Handler
	counts   map[string]*TypeStats

	state    atomic.Int32
	inFlight atomic.Int64
	workers  sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewQueue builds a queue. Handlers are attached with Register.
func NewQueue(name string, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxBackoff < cfg.RetryDelay {
		cfg.MaxBackoff = cfg.RetryDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue{
		name:     name,
		cfg:      cfg,
		logger:   cfg.Logger.With(zap.String("queue", name)),
		jobs:     make(chan Job, cfg.BufferSize),
		handlers: make(map[string]Handler),
		counts:   make(map[string]*TypeStats),
	}
}

// Register binds a handler to a job type, replacing any previous binding.
func (q *Queue) Register(jobType string, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = handler
}

// Start launches the workers. Calls after the first are ignored.
func (q *Queue) Start(ctx context.Context) {
	if !q.state.CompareAndSwap(stateIdle, stateRunning) {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.workers.Add(1)
		go q.work()
	}
	q.logger.Info("queue started", zap.Int("workers", q.cfg.Workers))
}

// Drain blocks until every accepted job has finished, including pending retries, or ctx ends.
func (q *Queue) Drain(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for q.inFlight.Load() > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("queue %s drain: %w", q.name, ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}

// Stop cancels the workers and waits for them to exit. Jobs still buffered are discarded.
func (q *Queue) Stop() {
	if !q.state.CompareAndSwap(stateRunning, stateStopped) {
		return
	}
	q.cancel()
	q.workers.Wait()
	q.logger.Info("queue stopped", zap.Int("discarded", len(q.jobs)))
}

// Enqueue accepts a job for processing.
func (q *Queue) Enqueue(job Job) error {
	if q.state.Load() != stateRunning {
		return fmt.Errorf("queue %s is not running", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}
	q.inFlight.Add(1)
	if err := q.push(job); err != nil {
		q.finish()
		return err
	}
	return nil
}

// Stats reports queue depth and per-type outcomes.
func (q *Queue) Stats() Stats {
	q.mu.RLock()
	defer q.mu.RUnlock()
	stats := Stats{Pending: len(q.jobs), InFlight: q.inFlight.Load(), ByType: make(map[string]TypeStats, len(q.counts))}
	for jobType, c := range q.counts {
		stats.ByType[jobType] = *c
		stats.Succeeded += c.Succeeded
		stats.Failed += c.Failed
	}
	return stats
}

func (q *Queue) push(job Job) error {
	select {
	case <-q.ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, q.ctx.Err())
	case q.jobs <- job:
		return nil
	}
}

func (q *Queue) work() {
	defer q.workers.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.run(job)
		}
	}
}

func (q *Queue) run(job Job) {
	log := q.logger.With(zap.String("job_id", job.ID), zap.String("type", job.Type))

	q.mu.RLock()
	handler, ok := q.handlers[job.Type]
	q.mu.RUnlock()
	if !ok {
		q.count(job.Type, func(s *TypeStats) { s.Failed++ })
		log.Error("job dropped", zap.Error(ErrUnknownJobType))
		q.finish()
		return
	}

	err := handler(q.ctx, job)
	if err == nil {
		q.count(job.Type, func(s *TypeStats) { s.Succeeded++ })
		q.finish()
		return
	}

	job.Attempt++
	if job.Attempt > q.cfg.MaxRetries {
		q.count(job.Type, func(s *TypeStats) { s.Failed++ })
		log.Error("job exceeded retries", zap.Int("attempts", job.Attempt), zap.Error(err))
		q.finish()
		return
	}
	delay := q.backoff(job.Attempt)
	q.count(job.Type, func(s *TypeStats) { s.Retried++ })
	log.Warn("job failed, retrying", zap.Int("attempt", job.Attempt), zap.Duration("delay", delay), zap.Error(err))
	go q.retryAfter(job, delay)
}

func (q *Queue) retryAfter(job Job, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-q.ctx.Done():
		q.finish()
	case <-timer.C:
		if err := q.push(job); err != nil {
			q.logger.Error("failed to requeue job", zap.String("job_id", job.ID), zap.Error(err))
			q.finish()
		}
	}
}

// backoff returns RetryDelay doubled once per previous attempt, capped at MaxBackoff.
func (q *Queue) backoff(attempt int) time.Duration {
	delay := q.cfg.RetryDelay
	for i := 1; i < attempt && delay < q.cfg.MaxBackoff; i++ {
		delay *= 2
	}
	if delay > q.cfg.MaxBackoff {
		delay = q.cfg.MaxBackoff
	}
	return delay
}

func (q *Queue) count(jobType string, apply func(*TypeStats)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	c, ok := q.counts[jobType]
	if !ok {
		c = &TypeStats{}
		q.counts[jobType] = c
	}
	apply(c)
}

func (q *Queue) finish() {
	q.inFlight.Add(-1)
}
