package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/config"
)

const (
	healthTimeout       = 5 * time.Second
	slowResponseWarning = time.Second
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server [base-url]"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := defaultBaseURL()
	if len(args) > 0 {
		base = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))
	return checkHealth(context.Background(), &http.Client{Timeout: healthTimeout}, base)
}

func defaultBaseURL() string {
	return "http://localhost:" + getEnv("PORT", config.DefaultPort)
}

// checkHealth probes /healthz and /readyz and fails on the first non-200
func checkHealth(ctx context.Context, client *http.Client, base string) error {
	base = strings.TrimRight(base, "/")
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		body, err := probe(ctx, client, base+path)
		if err != nil {
			return err
		}
		duration := time.Since(start)

		if duration > slowResponseWarning {
			PrintWarning("%s slow response (%v): %s", path, duration, body)
		} else {
			PrintSuccess("%s ok (%v): %s", path, duration, body)
		}
	}
	return nil
}

func probe(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	text := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, text)
	}
	return text, nil
}
