package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/XavierBriggs/Scoreboard/internal/config"
	"github.com/XavierBriggs/Scoreboard/internal/console"
	"github.com/XavierBriggs/Scoreboard/internal/metrics"
	"github.com/XavierBriggs/Scoreboard/internal/registry"
	"github.com/XavierBriggs/Scoreboard/internal/scoreboard"
	"github.com/XavierBriggs/Scoreboard/internal/writer"
	"github.com/XavierBriggs/Scoreboard/pkg/models"
	"github.com/XavierBriggs/Scoreboard/sports/football"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Finished match archive is optional
	var db *sql.DB
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			logger.Error("failed to open Postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("failed to ping Postgres", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to Postgres")
	}

	// Match event stream is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to Redis", "addr", cfg.RedisAddr)
	}

	// Initialize sport registry and register active sports
	sportRegistry := registry.NewSportRegistry()
	if err := sportRegistry.Register(football.NewModule()); err != nil {
		logger.Error("failed to register football module", "error", err)
		os.Exit(1)
	}
	for _, sport := range sportRegistry.GetAll() {
		logger.Info("registered sport", "sport", sport.GetSportKey(), "name", sport.GetDisplayName())
	}

	eventWriter := writer.NewWriter(db, redisClient,
		writer.WithBatchSize(cfg.BatchSize),
		writer.WithFlushInterval(cfg.FlushInterval),
		writer.WithSnapshotTTL(cfg.SnapshotTTL),
		writer.WithLogger(logger),
	)
	// The writer outlives the signal context so it can flush on shutdown
	eventWriter.Start(context.Background())

	metricsRegistry := prometheus.NewRegistry()
	store := scoreboard.NewStore(sportRegistry,
		scoreboard.WithEventSink(eventWriter),
		scoreboard.WithMetrics(metrics.New(metricsRegistry)),
		scoreboard.WithLogger(logger),
	)

	logger.Info("scoreboard ready, reading commands from stdin")

	repl := console.New(store, os.Stdout, models.Sport(cfg.DefaultSport))
	done := make(chan error, 1)
	go func() {
		done <- repl.Run(ctx, os.Stdin)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("console stopped", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	eventWriter.Stop()

	totals, err := metrics.Snapshot(metricsRegistry)
	if err != nil {
		logger.Warn("failed to gather metrics", "error", err)
	}
	logger.Info("scoreboard stopped",
		"unflushed_events", eventWriter.Pending(),
		"matches_created", totals["scoreboard_matches_created_total"],
		"creates_ignored", totals["scoreboard_match_creates_ignored_total"],
		"matches_finished", totals["scoreboard_matches_finished_total"],
		"updates_accepted", totals["scoreboard_score_updates_total"],
		"updates_rejected", totals["scoreboard_score_updates_rejected_total"],
	)
}
