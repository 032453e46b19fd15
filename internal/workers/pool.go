package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campaign-server/internal/observability"
)

var (
	ErrPoolNotStarted   = errors.New("worker pool not started")
	ErrPoolShuttingDown = errors.New("worker pool is shutting down")
)

// PoolConfig holds configuration for the worker pool.
type PoolConfig struct {
	NumWorkers   int
	QueueSize    int
	DrainTimeout time.Duration
}

// DefaultPoolConfig returns defaults for a worker pool.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		NumWorkers:   2,
		QueueSize:    256,
		DrainTimeout: 10 * time.Second,
	}
}

type pool struct {
	config    PoolConfig
	processor EventProcessor
	logger    *observability.Logger

	queue chan EventMessage
	wg    sync.WaitGroup

	mu       sync.Mutex
	started  bool
	closed   bool
	cancelFn context.CancelFunc
}

// NewWorkerPool creates a pool that runs processor for submitted events.
func NewWorkerPool(config PoolConfig, processor EventProcessor, logger *observability.Logger) WorkerPool {
	defaults := DefaultPoolConfig()
	if config.NumWorkers <= 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = defaults.DrainTimeout
	}

	return &pool{
		config:    config,
		processor: processor,
		logger:    logger,
		queue:     make(chan EventMessage, config.QueueSize),
	}
}

func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	if p.closed {
		return ErrPoolShuttingDown
	}

	workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancelFn = cancel
	p.started = true

	for i := 0; i < p.config.NumWorkers; i++ {
		p.wg.Add(1)
		go p.worker(workerCtx, i)
	}

	p.logger.Info(ctx, fmt.Sprintf("started %d workers for %s", p.config.NumWorkers, p.processor.Name()))
	return nil
}

func (p *pool) Submit(ctx context.Context, event EventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return ErrPoolNotStarted
	}
	if p.closed {
		return ErrPoolShuttingDown
	}

	select {
	case p.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting events; it reports false when already closed.
func (p *pool) close() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.closed = true
	if p.started {
		close(p.queue)
	}
	return true
}

func (p *pool) Drain(ctx context.Context) error {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return ErrPoolNotStarted
	}
	if !p.close() {
		return ErrPoolShuttingDown
	}

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	drainCtx, cancel := context.WithTimeout(ctx, p.config.DrainTimeout)
	defer cancel()

	select {
	case <-finished:
		p.logger.Info(ctx, fmt.Sprintf("drained worker pool for %s", p.processor.Name()))
		return nil
	case <-drainCtx.Done():
		p.logger.Warn(ctx, fmt.Sprintf("drain timeout exceeded for %s", p.processor.Name()))
		p.Stop()
		return fmt.Errorf("drain timeout exceeded")
	}
}

func (p *pool) Stop() {
	p.close()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelFn != nil {
		p.cancelFn()
	}
}

func (p *pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "worker_id", Value: id},
		observability.Field{Key: "processor", Value: p.processor.Name()},
	)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.queue:
			if !ok {
				return
			}
			eventCtx := observability.WithFields(ctx,
				observability.Field{Key: "event_id", Value: event.ID},
				observability.Field{Key: "event_type", Value: event.Type},
			)
			if err := p.processor.Process(eventCtx, event); err != nil {
				p.logger.Error(eventCtx, "failed to process event", err)
			}
		}
	}
}
