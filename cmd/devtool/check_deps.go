package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required dependencies"
}

func (c *CheckDepsCommand) Run(args []string) error {
	PrintHeader("Checking dependencies...")

	hasError := false

	// Output: go version go1.24.0 linux/amd64
	if version, err := getCommandOutput("go", "version"); err == nil {
		PrintSuccess("Go installed: %s", field(version, 2))
	} else {
		PrintError("Go not found! Install from: https://go.dev/dl/")
		hasError = true
	}

	// Only needed for the postgres storage driver
	if version, err := getCommandOutput("docker", "--version"); err == nil {
		PrintSuccess("Docker installed: %s", strings.TrimRight(field(version, 2), ","))
	} else {
		PrintWarning("Docker not found (needed for STORAGE_DRIVER=postgres and integration tests)")
	}

	if version, err := gooseVersion(); err == nil {
		PrintSuccess("Goose installed: %s", version)
	} else {
		PrintWarning("Goose not found. Install: go install github.com/pressly/goose/v3/cmd/goose@v3.26.0")
	}

	if hasError {
		return fmt.Errorf("missing required dependencies")
	}
	PrintSuccess("Environment check complete!")
	return nil
}

func gooseVersion() (string, error) {
	// format might be "goose version:v3.26.0" or "goose version v3.26.0"
	clean := func(out string) string {
		parts := strings.Fields(out)
		return strings.TrimPrefix(parts[len(parts)-1], "version:")
	}
	if out, err := getCommandOutput("goose", "--version"); err == nil && out != "" {
		return clean(out), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	out, err := getCommandOutput(filepath.Join(home, "go", "bin", "goose"), "--version")
	if err != nil || out == "" {
		return "", fmt.Errorf("goose not found")
	}
	return clean(out) + " (in ~/go/bin)", nil
}

// field returns the i-th whitespace separated field, or s when there are fewer
func field(s string, i int) string {
	parts := strings.Fields(s)
	if len(parts) <= i {
		return s
	}
	return parts[i]
}
