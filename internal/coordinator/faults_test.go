package coordinator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFaultInjectorReshuffles verifies that the injector periodically takes
// the configured number of shards offline and restores the rest.
func TestFaultInjectorReshuffles(t *testing.T) {
	c, err := New(5, 1, WithPicker(NewPicker(1)))
	require.NoError(t, err)

	inj := NewFaultInjector(c, 2, 10*time.Millisecond)

	var mu sync.Mutex
	var ticks int
	var lastFailed []int
	inj.SetOnChange(func(failed []int) {
		mu.Lock()
		defer mu.Unlock()
		ticks++
		lastFailed = append([]int(nil), failed...)
	})

	inj.Start(context.Background())
	defer inj.Stop()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ticks >= 2
	}, 2*time.Second, 5*time.Millisecond, "injector never ticked")

	mu.Lock()
	failed := append([]int(nil), lastFailed...)
	mu.Unlock()
	assert.Len(t, failed, 2)

	// Stop restores every shard.
	inj.Stop()
	for _, info := range c.Status() {
		assert.Truef(t, info.Online, "shard %s left offline after Stop", info.ID)
	}
}

// TestFaultInjectorIdempotentLifecycle verifies double Start/Stop are no-ops.
func TestFaultInjectorIdempotentLifecycle(t *testing.T) {
	c, err := New(3, 1)
	require.NoError(t, err)

	inj := NewFaultInjector(c, 1, time.Hour)
	inj.Stop() // never started

	inj.Start(context.Background())
	inj.Start(context.Background())
	inj.Stop()
	inj.Stop()
}
