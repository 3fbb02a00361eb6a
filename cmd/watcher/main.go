package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"go-trivia-watcher/internal/config"
	"go-trivia-watcher/internal/container"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize dependency injection container
	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ingestion and processing run on dedicated goroutines. A stream
	// failure is terminal for the pipeline: the reader closes the queue,
	// the processor drains and exits, and connected clients simply stop
	// receiving results. The websocket server stays up.
	go func() {
		if err := c.Reader().Run(ctx); err != nil {
			logrus.WithError(err).Error("Stream ingestion terminated")
		}
	}()
	go c.Processor().Run(ctx)

	server := &http.Server{
		Addr:    cfg.ServerAddress(),
		Handler: c.Handler(),
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": cfg.ServerAddress(),
		}).Info("Starting websocket server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.WithFields(logrus.Fields{
		"metrics": c.Metrics().GetMetrics(),
	}).Info("Server exited")
}
