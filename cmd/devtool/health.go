package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check a running server's /healthz and /readyz"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := getEnv("API_URL", defaultBaseURL)
	if len(args) > 0 {
		baseURL = args[0]
	}
	baseURL = strings.TrimRight(baseURL, "/")

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	start := time.Now()
	if err := checkEndpoint(baseURL + "/healthz"); err != nil {
		PrintError("Health check failed: %v", err)
		return err
	}
	duration := time.Since(start)

	if err := checkEndpoint(baseURL + "/readyz"); err != nil {
		PrintError("Readiness check failed: %v", err)
		return err
	}

	if duration > 1*time.Second {
		PrintWarning("Health check warning: slow response time (%v)", duration)
	} else {
		PrintSuccess("Health check passed (response time: %v)", duration)
	}
	return nil
}

func checkEndpoint(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}
	return nil
}
