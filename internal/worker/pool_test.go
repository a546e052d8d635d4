package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/ZetaFarm_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func (j *testJob) Name() string { return "test" }

type blockingJob struct {
	started chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)

	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)
	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_FailingJobDoesNotKillWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")})
	pool.Enqueue(&testJob{executed: &executed})

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 2 }, time.Second, 10*time.Millisecond)
}

func TestPool_TryEnqueueWhenFull(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)

	assert.True(t, pool.TryEnqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}), "queue of one is full before start")

	pool.Start()
	pool.Stop()
}

func TestPool_StopCancelsRunningJob(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(1, 1)
		pool.Start()

		job := &blockingJob{started: make(chan struct{})}
		pool.Enqueue(job)
		<-job.started

		pool.Stop()
		pool.Stop()
	})
}

func TestPool_EnqueueAfterStopReturns(t *testing.T) {
	var executed int32
	pool := NewPool(1, 0)
	pool.Start()
	pool.Stop()

	done := make(chan struct{})
	go func() {
		pool.Enqueue(&testJob{executed: &executed})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked after Stop")
	}
}
