package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"basegraph.app/hubsync/common/id"
	"basegraph.app/hubsync/common/logger"
	"basegraph.app/hubsync/common/otel"
	"basegraph.app/hubsync/core/config"
	"basegraph.app/hubsync/core/db"
	"basegraph.app/hubsync/internal/http/middleware"
	httprouter "basegraph.app/hubsync/internal/http/router"
	"basegraph.app/hubsync/internal/queue"
	"basegraph.app/hubsync/internal/schema"
	"basegraph.app/hubsync/internal/service"
	"basegraph.app/hubsync/internal/store"
	"basegraph.app/hubsync/internal/tracker"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.Env, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "hubsync server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(id.NodeServer); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
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

	producer := queue.NewRedisProducer(redisClient, cfg.Redis.Stream, nil)
	defer producer.Close()

	validator, err := schema.New()
	if err != nil {
		slog.ErrorContext(ctx, "failed to compile schemas", "error", err)
		os.Exit(1)
	}

	services := service.NewServices(service.Deps{
		Stores:     store.NewStores(database.Queries()),
		TxRunner:   service.NewTxRunner(database),
		Envelopes:  validator,
		Dedupe:     queue.NewRedisDeduper(redisClient, cfg.Redis.DedupePrefix, cfg.Ingest.DedupeTTL),
		Membership: service.NewWorkOSMembershipChecker(cfg.WorkOS),
		Tracker:    tracker.NewClient(cfg.Tracker),
		Enqueuer:   producer,
	}, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, validator)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Synchronous admin backfills can run long; the tracker deadline bounds them.
		WriteTimeout: cfg.Backfill.Deadline + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, validator *schema.Validator) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		AdminAPIKey:     cfg.AdminAPIKey,
		MemberRole:      cfg.WorkOS.MemberRole,
		SignatureHeader: cfg.Ingest.SignatureHeader,
		DeliveryHeader:  cfg.Ingest.DeliveryHeader,
		Schemas:         validator,
	})

	return router
}

const banner = `
 _           _
| |__  _   _| |__  ___ _   _ _ __   ___
| '_ \| | | | '_ \/ __| | | | '_ \ / __|
| | | | |_| | |_) \__ \ |_| | | | | (__
|_| |_|\__,_|_.__/|___/\__, |_| |_|\___|
                       |___/     server
`
