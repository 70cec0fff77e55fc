package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"basegraph.app/hubsync/common/id"
	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/common/otel"
	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/core/db"
	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/schema"
	"basegraph.app/hubsync/internal/service"
	"basegraph.app/hubsync/internal/store"
	"basegraph.app/hubsync/internal/tracker"
	"basegraph.app/hubsync/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.Env, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "hubsync worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Redis.Group,
		"consumer_name", cfg.Redis.Consumer,
		"backfill_cron", cfg.Backfill.Cron)

	if err := id.Init(id.NodeWorker); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Redis.Stream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:    cfg.Redis.Stream,
		Group:     cfg.Redis.Group,
		Consumer:  cfg.Redis.Consumer,
		DLQStream: cfg.Redis.DLQStream,
		// A backfill holds the tracker rate limit for minutes; take one at a time.
		BatchSize:    1,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Redis.MaxAttempts,
		RequeueDelay: 10 * time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	validator, err := schema.New()
	if err != nil {
		slog.ErrorContext(ctx, "failed to compile schemas", "error", err)
		os.Exit(1)
	}

	producer := queue.NewRedisProducer(redisClient, cfg.Redis.Stream, nil)
	defer producer.Close()

	services := service.NewServices(service.Deps{
		Stores:    store.NewStores(database.Queries()),
		TxRunner:  service.NewTxRunner(database),
		Envelopes: validator,
		Tracker:   tracker.NewClient(cfg.Tracker),
		Enqueuer:  producer,
	}, cfg)
	backfill := services.Backfill()

	w := worker.New(consumer, backfill, worker.Config{MaxAttempts: cfg.Redis.MaxAttempts})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Redis.Stream,
		Group:     cfg.Redis.Group,
		Consumer:  cfg.Redis.Consumer + "-reclaimer",
		MinIdle:   cfg.Redis.ReclaimIdle,
		Interval:  cfg.Redis.ReclaimEvery,
		BatchSize: 10,
	}, consumer, w)

	scheduler, err := worker.NewScheduler(cfg.Backfill.Cron, backfill)
	if err != nil {
		slog.ErrorContext(ctx, "invalid backfill schedule", "error", err)
		os.Exit(1)
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error { return reclaimer.Run(gctx) })
	g.Go(func() error { return scheduler.Run(gctx) })

	slog.InfoContext(ctx, "worker initialized and running")

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "worker stopped with error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 _           _
| |__  _   _| |__  ___ _   _ _ __   ___
| '_ \| | | | '_ \/ __| | | | '_ \ / __|
| | | | |_| | |_) \__ \ |_| | | | | (__
|_| |_|\__,_|_.__/|___/\__, |_| |_|\___|
                       |___/     worker
`
