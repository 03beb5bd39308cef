package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"moneydash/internal/amqp"
	"moneydash/internal/api"
	"moneydash/internal/cli"
	apphttp "moneydash/internal/http"
	"moneydash/internal/session"
	"moneydash/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		var err error
		sessionPath, err = session.DefaultPath()
		if err != nil {
			logger.Error("Failed to resolve session path", "error", err)
			os.Exit(1)
		}
	}
	sess, err := session.Open(sessionPath)
	if err != nil {
		logger.Error("Failed to open session", "error", err, "path", sessionPath)
		os.Exit(1)
	}
	if !sess.SignedIn() {
		logger.Warn("No session found, run moneydash-login first", "path", sessionPath)
	}

	client := api.New(cfg.APIBaseURL, sess, cfg.APITimeout)

	var snap store.Snapshot
	if cfg.SnapshotEnabled {
		repo := cli.InitSnapshot(logger, cfg.SnapshotDBPath)
		defer func() { _ = repo.Close() }()
		snap = repo
	}

	var events store.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The event feed is optional; the dashboard works without it.
			logger.Warn("Failed to connect to AMQP, events disabled", "error", err)
		} else {
			defer func() { _ = amqpClient.Close() }()
			events = amqpClient
		}
	}

	st := store.New(client, events, snap)

	startCtx, startCancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	if n, err := st.RestoreSnapshot(startCtx); err != nil {
		logger.Warn("Snapshot restore failed", "error", err)
	} else if n > 0 {
		logger.Info("Restored transactions from snapshot", "count", n)
	}
	if sess.SignedIn() {
		if err := st.Refresh(startCtx); err != nil {
			logger.Warn("Initial refresh failed, serving last known data", "error", err)
		}
	}
	startCancel()

	srv := apphttp.NewServer(":"+cfg.Port, st, sess)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting moneydash server", "port", cfg.Port, "api", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
