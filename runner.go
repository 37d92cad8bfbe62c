package spinpick

import (
	"context"
	"sync"
	"time"
)

// Runner drives an Engine from a ticker.
//
// Every FrameInterval the runner calls Engine.Advance with the wall time that
// passed since the previous tick, which animates spins and fires staged
// reveals. A Runner can be started once.
type Runner struct {
	engine   *Engine
	interval time.Duration
	logger   Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRunner creates a runner for engine using its configured frame interval.
//
// Example:
//
//	runner := spinpick.NewRunner(engine)
//	if err := runner.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer runner.Stop()
func NewRunner(engine *Engine) *Runner {
	return &Runner{
		engine:   engine,
		interval: engine.Config().FrameInterval,
		logger:   engine.logger,
		done:     make(chan struct{}),
	}
}

// Start launches the frame loop in a background goroutine.
//
// The loop exits when ctx is cancelled, Stop is called, or the engine is closed.
//
// Returns:
//   - error: ErrAlreadyStarted if Start was called before
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	go r.loop(loopCtx)

	r.logger.Info("runner started", "frameInterval", r.interval)

	return nil
}

// Stop halts the frame loop and waits for it to exit.
//
// Stop is idempotent once the runner has been started.
//
// Returns:
//   - error: ErrNotStarted if Start was never called
func (r *Runner) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return ErrNotStarted
	}
	cancel := r.cancel
	r.mu.Unlock()

	cancel()
	<-r.done

	return nil
}

// Done returns a channel that is closed when the frame loop has exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("runner stopped", "reason", ctx.Err())
			return
		case <-r.engine.ctx.Done():
			r.logger.Debug("runner stopped", "reason", "engine closed")
			return
		case now := <-ticker.C:
			r.engine.Advance(now.Sub(last))
			last = now
		}
	}
}
