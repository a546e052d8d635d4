package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures Errorf calls so a failing check can be asserted on
type recordingTB struct {
	testing.TB
	mu     sync.Mutex
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
}

func TestCheckNoGoroutineLeak_Clean(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(5 * time.Millisecond)
		}()
		wg.Wait()
	})
}

func TestCheckNoGoroutineLeak_WaitsForExitingGoroutines(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		go time.Sleep(50 * time.Millisecond)
	})
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	stop := make(chan struct{})
	defer close(stop)

	checker := NewGoroutineChecker(rec)
	go func() { <-stop }()
	checker.Check(0)

	assert.True(t, rec.failed)
}

func TestGoroutineChecker_Tolerance(t *testing.T) {
	rec := &recordingTB{TB: t}
	stop := make(chan struct{})
	defer close(stop)

	checker := NewGoroutineChecker(rec)
	go func() { <-stop }()
	checker.Check(1)

	assert.False(t, rec.failed)
}
