package main

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	defaultWaitAttempts = 30
	waitRetryInterval   = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries) [attempts]"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	attempts := defaultWaitAttempts
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("attempts must be a positive integer, got %q", args[0])
		}
		attempts = n
	}

	return waitForDB(context.Background(), dbURL(""), attempts, waitRetryInterval)
}

func waitForDB(ctx context.Context, url string, attempts int, interval time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		pool, connErr := connect(ctx, url)
		if connErr == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}
		err = connErr

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, attempts, err)
		if i < attempts-1 {
			time.Sleep(interval)
		}
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", attempts, err)
}
