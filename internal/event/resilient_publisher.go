package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

type retryEntry struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus. Failed publishes are retried in the
// background with exponential backoff and dead-lettered once retries run out.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts the retry worker and opens the dead-letter file
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead-letter file: %w", err)
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// PublishWithRetry publishes once inline and hands failures to the retry worker.
// It never blocks on retries.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)

	select {
	case <-p.shutdown:
		p.writeDeadLetter(retryEntry{event: event, attempts: 1, lastErr: err}, LogMsgEventDroppedShutdown)
		return
	default:
	}

	select {
	case p.retryQueue <- retryEntry{event: event, attempts: 1, lastErr: err}:
	default:
		p.writeDeadLetter(retryEntry{event: event, attempts: 1, lastErr: err}, LogMsgRetryQueueFull)
	}
}

// Publish satisfies Bus. Delivery failures are absorbed by the retry path.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

func (p *ResilientPublisher) retry(entry retryEntry) {
	ctx := context.Background()
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		select {
		case <-time.After(CalculateRetryDelay(p.retryDelay, attempt)):
		case <-p.shutdown:
		}

		entry.attempts++
		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", attempt)
			return
		}
		entry.lastErr = err
		logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", attempt, "error", err)
	}
	p.writeDeadLetter(entry, LogMsgEventRetryExhausted)
}

// drain makes one last attempt at everything still queued
func (p *ResilientPublisher) drain() {
	ctx := context.Background()
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			drained++
			entry.attempts++
			if err := p.bus.Publish(ctx, entry.event); err != nil {
				entry.lastErr = err
				p.writeDeadLetter(entry, LogMsgEventDroppedShutdown)
			}
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry, reason string) {
	logger.Warn(reason, "event_type", entry.event.Type, "attempts", entry.attempts)
	if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker after draining the queue, then closes the
// dead-letter file. It returns ctx's error if draining outlives ctx.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
