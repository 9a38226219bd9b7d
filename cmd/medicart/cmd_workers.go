package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hassanmehmood/medicart/app/jobs"
	"github.com/hassanmehmood/medicart/config"
	"github.com/hassanmehmood/medicart/pkg/cache"
	"github.com/hassanmehmood/medicart/pkg/queue"
	"github.com/hassanmehmood/medicart/pkg/schedule"
)

var queueWorkersFlag int

// medicart queue:work — run the queue workers in their own process.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		jobs.Register()
		if config.QueueDriver() == "redis" {
			if err := cache.Connect(); err != nil {
				return fmt.Errorf("redis queue driver: %w", err)
			}
			queue.SetDriver(queue.NewRedisDriver(ctx, cache.RDB))
		}

		workers := queueWorkersFlag
		if workers < 1 {
			workers = config.QueueWorkers()
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

// medicart schedule:list — show registered scheduled tasks.
var scheduleListCmd = &cobra.Command{
	Use:   "schedule:list",
	Short: "List registered scheduled tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks := schedule.List()
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks registered.")
			return nil
		}
		for _, t := range tasks {
			fmt.Println("  •", t)
		}
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 0, "Number of concurrent workers (0 = config default)")
}
