// Package server boots every runtime component and runs the HTTP API
// until it receives a shutdown signal.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hassanmehmood/medicart/app/jobs"
	"github.com/hassanmehmood/medicart/app/routes"
	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/config"
	"github.com/hassanmehmood/medicart/pkg/cache"
	"github.com/hassanmehmood/medicart/pkg/database"
	"github.com/hassanmehmood/medicart/pkg/event"
	"github.com/hassanmehmood/medicart/pkg/grpcserver"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/metrics"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/notification"
	"github.com/hassanmehmood/medicart/pkg/queue"
	"github.com/hassanmehmood/medicart/pkg/reqid"
	"github.com/hassanmehmood/medicart/pkg/router"
	"github.com/hassanmehmood/medicart/pkg/schedule"
	"github.com/hassanmehmood/medicart/pkg/storage"
	"github.com/hassanmehmood/medicart/pkg/ws"
)

// Start boots the application and blocks until SIGINT or SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache and redis queue disabled", "error", err)
	}
	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database notification channel and slack sink.
	notification.SetStore(services.NewNotificationService(database.DB).Store)
	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK", ""))

	// Queue: redis when configured and reachable, in-memory otherwise.
	jobs.Register()
	queue.UseDB(database.DB)
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(ctx, cache.RDB))
	}
	queue.StartWorkers(ctx, config.QueueWorkers())

	// Live order feed for the admin dashboard.
	feed := ws.NewHub()
	go feed.Run(ctx)
	event.Listen("order.placed", func(payload interface{}) {
		feed.BroadcastJSON(map[string]interface{}{"event": "order.placed", "data": payload})
	})
	event.Listen("order.status", func(payload interface{}) {
		feed.BroadcastJSON(map[string]interface{}{"event": "order.status", "data": payload})
	})

	// Nightly inventory sweep.
	schedule.DailyAt("02:00").Do("low-stock-sweep", func() {
		if err := queue.Dispatch(&jobs.LowStockSweepJob{}); err != nil {
			logger.Error("dispatch low stock sweep", "error", err)
		}
	})
	go schedule.Start(ctx)

	grpcSrv, err := grpcserver.Start(config.GRPCPort(), func() bool {
		sqlDB, err := database.DB.DB()
		return err == nil && sqlDB.Ping() == nil
	})
	if err != nil {
		return err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	r.HandleFunc("/metrics", metrics.Handler().ServeHTTP)
	routes.RegisterAPI(r, database.DB, feed)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("medicart listening", "port", config.AppPort(), "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	grpcserver.Stop(grpcSrv)
	event.Flush()
	return nil
}
