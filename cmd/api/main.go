package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_potential/pkg/api/server"
	"stock_potential/pkg/core/config"
	"stock_potential/pkg/core/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("[FATAL] Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.Init(cfg.Debug)
	defer log.Sync()

	app := server.New(cfg)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalw("[API] server failed to start", "port", cfg.Port, "error", err)
		}
	}()

	log.Infow("[API] server started",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"config", cfg.Source,
	)
	log.Info("  - GET  /")
	log.Info("  - GET  /health")
	log.Info("  - GET  /api/config")
	log.Info("  - GET  /api/calculator/defaults")
	log.Info("  - POST /api/calculator/compute")
	log.Info("  - POST /api/calculator/projection?format=json|csv")
	log.Info("  - POST /api/calculator/chart?format=png|svg")
	log.Info("  - POST /api/calculator/report")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("[API] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Fatalw("[API] forced shutdown", "error", err)
	}
	log.Info("[API] shutdown complete")
}
