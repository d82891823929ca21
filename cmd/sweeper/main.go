package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yungbote/cognify-backend/internal/app"
	"github.com/yungbote/cognify-backend/internal/observability"
	"github.com/yungbote/cognify-backend/internal/temporalx"
	"github.com/yungbote/cognify-backend/internal/temporalx/temporalworker"
)

// The sweeper runs the Temporal worker that refreshes cognitive profiles on
// a schedule. It shares wiring with the API server but serves no HTTP.
func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	log := a.Log

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "cognify-sweeper",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})

	tc, err := temporalx.NewClient(log)
	if err != nil {
		log.Error("Temporal client init failed", "error", err)
		os.Exit(1)
	}
	if tc == nil {
		log.Error("TEMPORAL_ADDRESS is required for the sweeper")
		os.Exit(1)
	}
	defer tc.Close()

	runner, err := temporalworker.NewRunner(log, tc, a.Repos.Session, a.Services.Profile)
	if err != nil {
		log.Error("Temporal worker init failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runner.Start(ctx); err != nil {
		log.Error("Temporal worker start failed", "error", err)
		os.Exit(1)
	}
	if err := runner.EnsureSweepSchedule(ctx); err != nil {
		log.Warn("Sweep schedule setup failed", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down sweeper...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if otelShutdown != nil {
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Warn("Otel shutdown failed", "error", err)
		}
	}
	a.Close(shutdownCtx)
}
