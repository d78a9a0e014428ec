package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/database"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	maxRetries := 30
	retryInterval := 2 * time.Second
	dbURL := databaseURL()

	for i := 0; i < maxRetries; i++ {
		err := ping(dbURL)
		if err == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, maxRetries, err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", maxRetries)
}

func ping(dbURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := database.NewPool(ctx, dbURL, 1, time.Minute, time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()
	return pool.Ping(ctx)
}
