package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FaultInjector periodically degrades the cluster for chaos-style testing:
// on every tick it restores all shards, then takes a random set offline
// through the coordinator's picker. Queries issued between ticks see a
// stable health configuration.
// Thread-safe: Start and Stop may be called from different goroutines.
type FaultInjector struct {
	coord    *Coordinator       // Cluster under fault injection
	failures int                // Shards to take offline per tick
	interval time.Duration      // Time between health reshuffles
	onChange func(failed []int) // Optional callback per reshuffle
	logger   *slog.Logger       // Structured logs

	mu      sync.Mutex         // Protects started/cancel
	started bool               // Whether the loop is running
	cancel  context.CancelFunc // Stops the loop
	wg      sync.WaitGroup     // Waits for the loop on Stop
}

// NewFaultInjector creates an injector that takes failures shards offline
// every interval. It does nothing until Start is called.
func NewFaultInjector(coord *Coordinator, failures int, interval time.Duration) *FaultInjector {
	return &FaultInjector{
		coord:    coord,
		failures: failures,
		interval: interval,
		logger:   coord.logger,
	}
}

// SetOnChange sets a callback invoked with the failed shard indices after
// every reshuffle. Used by tests to observe ticks.
func (f *FaultInjector) SetOnChange(callback func(failed []int)) {
	f.onChange = callback
}

// Start launches the injection loop in its own goroutine. Starting twice is
// a no-op.
func (f *FaultInjector) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started {
		return
	}
	f.started = true

	ctx, f.cancel = context.WithCancel(ctx)
	f.wg.Add(1)
	go f.run(ctx)
}

// Stop halts the loop, restores all shards and waits for the goroutine to
// exit. Stopping an unstarted injector is a no-op.
func (f *FaultInjector) Stop() {
	f.mu.Lock()
	if !f.started {
		f.mu.Unlock()
		return
	}
	f.started = false
	f.cancel()
	f.mu.Unlock()

	f.wg.Wait()
	f.coord.RestoreAll()
}

func (f *FaultInjector) run(ctx context.Context) {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.coord.RestoreAll()
			failed := f.coord.FailRandom(f.failures)
			f.logger.Info("fault injection reshuffle", "failed", failed)
			if f.onChange != nil {
				f.onChange(failed)
			}
		}
	}
}
