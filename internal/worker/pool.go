// Package worker runs detached, best-effort background tasks on a bounded
// pool.  The request path submits and moves on: it never waits for a task
// and never learns whether it failed.  Failures and drops are logged and
// counted only.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/metrics"
)

// Task is one unit of background work.
type Task struct {
	// Name labels the task in logs and metrics.
	Name string
	Run  func(ctx context.Context) error
}

// Pool manages the task queue and its goroutines.
type Pool struct {
	config Config
	logger zerolog.Logger
	tasks  chan Task

	mu      sync.RWMutex
	started bool
	stopped bool

	wg sync.WaitGroup
}

// New creates a Pool.  It must be started with Start and stopped with Stop.
func New(config Config, logger zerolog.Logger) (*Pool, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Pool{
		config: config,
		logger: logger.With().Str("component", "worker").Logger(),
		tasks:  make(chan Task, config.QueueSize),
	}, nil
}

// Start launches the configured number of goroutines.  Calling it twice is
// a no-op.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	for i := 0; i < p.config.Concurrency; i++ {
		p.wg.Add(1)
		go p.run(i + 1)
	}
	p.logger.Info().Int("concurrency", p.config.Concurrency).Int("queue_size", p.config.QueueSize).Msg("worker pool started")
}

// Submit enqueues t without blocking.  It returns false when the queue is
// full or the pool is stopped; the task is then dropped.
func (p *Pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.drop(t, "stopped")
		return false
	}
	select {
	case p.tasks <- t:
		return true
	default:
		p.drop(t, "queue_full")
		return false
	}
}

func (p *Pool) drop(t Task, reason string) {
	metrics.BackgroundTasksTotal.WithLabelValues(t.Name, "dropped").Inc()
	p.logger.Warn().Str("task", t.Name).Str("reason", reason).Msg("background task dropped")
}

// Stop refuses new tasks, drains what is queued and waits for the
// goroutines up to ShutdownTimeout.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info().Msg("worker pool stopped gracefully")
	case <-time.After(p.config.ShutdownTimeout):
		p.logger.Warn().Msg("worker pool shutdown timeout exceeded, some tasks may still be running")
	}
}

func (p *Pool) run(workerID int) {
	defer p.wg.Done()
	logger := p.logger.With().Int("worker_id", workerID).Logger()
	for t := range p.tasks {
		p.execute(t, logger)
	}
}

func (p *Pool) execute(t Task, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.TaskTimeout)
	defer cancel()

	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return t.Run(ctx)
	}()

	elapsed := time.Since(start)
	if err != nil {
		metrics.BackgroundTasksTotal.WithLabelValues(t.Name, "failed").Inc()
		logger.Error().Err(err).Str("task", t.Name).Dur("duration", elapsed).Msg("background task failed")
		return
	}
	metrics.BackgroundTasksTotal.WithLabelValues(t.Name, "completed").Inc()
	logger.Debug().Str("task", t.Name).Dur("duration", elapsed).Msg("background task completed")
}
