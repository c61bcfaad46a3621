package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var (
	ErrPoolClosed = errors.New("worker pool is closed")
	ErrTaskPanic  = errors.New("task panicked")
)

// TaskResult carries the outcome of a SubmitWithResult task.
type TaskResult struct {
	Data  interface{}
	Error error
}

// Config configures a Pool.
type Config struct {
	Workers   int // concurrent workers, runtime.NumCPU() when <= 0
	QueueSize int // submitters allowed to block waiting for a worker, 0 = unlimited
}

// DefaultConfig returns one worker per CPU and an unbounded wait queue.
func DefaultConfig() *Config {
	return &Config{
		Workers:   runtime.NumCPU(),
		QueueSize: 0,
	}
}

// Statistics counts tasks over the pool lifetime.
type Statistics struct {
	mu sync.RWMutex

	Submitted int64
	Completed int64
	Failed    int64 // panicked tasks
	Running   int64
}

func (s *Statistics) incSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Submitted++
}

func (s *Statistics) incRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Running++
}

func (s *Statistics) decRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Running--
}

func (s *Statistics) incCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed++
}

func (s *Statistics) incFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
}

// Get returns a snapshot.
func (s *Statistics) Get() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Statistics{
		Submitted: s.Submitted,
		Completed: s.Completed,
		Failed:    s.Failed,
		Running:   s.Running,
	}
}

// Pool runs document jobs on a fixed set of ants workers.
type Pool struct {
	pool   *ants.Pool
	config *Config
	stats  *Statistics
	logger *zap.Logger
}

// New creates a Pool. A nil config selects DefaultConfig.
func New(config *Config, logger *zap.Logger) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if config.QueueSize < 0 {
		return nil, fmt.Errorf("queue size must not be negative, got %d", config.QueueSize)
	}

	antsPool, err := ants.NewPool(workers,
		ants.WithMaxBlockingTasks(config.QueueSize),
		ants.WithPanicHandler(func(err interface{}) {
			logger.Error("worker panic", zap.Any("error", err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}

	return &Pool{
		pool:   antsPool,
		config: config,
		stats:  &Statistics{},
		logger: logger.Named("workerpool"),
	}, nil
}

// Submit queues task. It blocks while every worker is busy, and fails once
// the pool is shut down or the wait queue is full.
func (p *Pool) Submit(task func()) error {
	if p.pool.IsClosed() {
		return ErrPoolClosed
	}

	p.stats.incSubmitted()
	err := p.pool.Submit(p.wrap(task))
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// SubmitWithResult runs task and delivers its outcome. The channel always
// receives exactly one result and is then closed, also when the task panics
// or cannot be submitted.
func (p *Pool) SubmitWithResult(task func() (interface{}, error)) <-chan TaskResult {
	resultCh := make(chan TaskResult, 1)

	err := p.Submit(func() {
		defer close(resultCh)
		defer func() {
			if r := recover(); r != nil {
				resultCh <- TaskResult{Error: fmt.Errorf("%w: %v", ErrTaskPanic, r)}
				panic(r)
			}
		}()

		data, err := task()
		resultCh <- TaskResult{Data: data, Error: err}
	})
	if err != nil {
		resultCh <- TaskResult{Error: err}
		close(resultCh)
	}

	return resultCh
}

func (p *Pool) wrap(task func()) func() {
	return func() {
		p.stats.incRunning()
		defer p.stats.decRunning()
		defer func() {
			if r := recover(); r != nil {
				p.stats.incFailed()
				p.logger.Error("task panic", zap.Any("error", r), zap.Stack("stack"))
				return
			}
			p.stats.incCompleted()
		}()
		task()
	}
}

// Running returns the number of busy workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Free returns the number of idle workers.
func (p *Pool) Free() int {
	return p.pool.Free()
}

// Cap returns the worker count.
func (p *Pool) Cap() int {
	return p.pool.Cap()
}

// Stats returns a snapshot of the task counters.
func (p *Pool) Stats() Statistics {
	return p.stats.Get()
}

// Shutdown releases the workers; later submissions fail with ErrPoolClosed.
func (p *Pool) Shutdown() {
	p.pool.Release()
}
