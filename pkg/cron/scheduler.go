package cron

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a function executed on a fixed interval.
type Job struct {
	Name      string
	Interval  time.Duration
	Immediate bool
	Fn        func(ctx context.Context) error
}

// Scheduler runs interval jobs until stopped.
type Scheduler struct {
	logger *zap.Logger

	jobs    []Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler; a nil logger discards output.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{logger: logger}
}

// AddJob registers a job. Jobs added after Start are ignored until the next Start.
func (s *Scheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.Interval <= 0 {
		s.logger.Warn("cron job skipped: non-positive interval", zap.String("job", job.Name))
		return
	}
	s.jobs = append(s.jobs, job)
	s.logger.Info("cron job registered", zap.String("job", job.Name), zap.Duration("interval", job.Interval))
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}
	s.started = true
	s.logger.Info("cron scheduler started", zap.Int("job_count", len(s.jobs)))
}

// Stop cancels all jobs and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("cron scheduler stopped")
}

// RunOnce executes every registered job synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		s.execute(ctx, job)
	}
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	if job.Immediate {
		s.execute(s.ctx, job)
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(s.ctx, job)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Fn(ctx); err != nil {
		s.logger.Error("cron job failed", zap.String("job", job.Name), zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	s.logger.Debug("cron job completed", zap.String("job", job.Name), zap.Duration("duration", time.Since(start)))
}
