package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/queue"
	"github.com/jonathan/jobboard/internal/report"
	"github.com/jonathan/jobboard/internal/storage"
)

var dispatchReportsCmd = &cobra.Command{
	Use:   "dispatch-reports",
	Short: "Generate weekly application reports for every recruiter",
	Long: `Enqueue one weekly report job per recruiter and run them to completion.
Intended to be invoked from cron once a week; the same fan-out backs the
POST /v1/reports/dispatch endpoint.`,
	RunE: runDispatchReports,
}

func init() {
	rootCmd.AddCommand(dispatchReportsCmd)
}

func runDispatchReports(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	storageConfig, err := config.NewStorageConfig()
	if err != nil {
		return fmt.Errorf("failed to create storage config: %w", err)
	}
	store, err := storage.New(storageConfig)
	if err != nil {
		return fmt.Errorf("failed to create blob store: %w", err)
	}

	queueConfig, err := config.NewQueueConfig()
	if err != nil {
		return fmt.Errorf("failed to create queue config: %w", err)
	}

	generator := report.NewGenerator(database, database, store)
	pool := queue.NewPool(queueConfig.Workers, queueConfig.BufferSize, func(ctx context.Context, task queue.Task) error {
		return generator.Execute(ctx, task.RecruiterID)
	})
	pool.Start(ctx)

	scheduler := report.NewScheduler(database, pool)
	count, err := scheduler.DispatchWeekly(ctx)
	if err != nil {
		// Drain whatever made it onto the queue before reporting failure
		pool.Stop()
		return fmt.Errorf("dispatch failed after %d jobs: %w", count, err)
	}

	// Stop closes the queue and waits for the workers to drain it
	pool.Stop()

	log.Printf("[dispatch] %d weekly report jobs completed", count)
	return nil
}
