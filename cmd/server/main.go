package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Drivers
	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	// Instrumentation
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	// Interne
	"github.com/jupiterclapton/plaza/config"
	"github.com/jupiterclapton/plaza/internal/adapters/primary/events"
	"github.com/jupiterclapton/plaza/internal/adapters/primary/httpapi"
	"github.com/jupiterclapton/plaza/internal/adapters/secondary/eventbroker"
	"github.com/jupiterclapton/plaza/internal/adapters/secondary/push"
	"github.com/jupiterclapton/plaza/internal/adapters/secondary/repository"
	"github.com/jupiterclapton/plaza/internal/core/services"
)

func main() {
	// 1. Config & Logger
	cfg := config.Load()
	initLogger(cfg)
	slog.Info("🚀 Starting Plaza Service", "config", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	// 3. Infrastructure: Redis (Driven Adapter)
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	// Instrumentation Redis
	if err := redisotel.InstrumentTracing(rdb); err != nil {
		panic(err)
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to Redis")

	board := repository.NewRedisLeaderboard(rdb)
	cache := repository.NewRedisCache(rdb)
	notifStore := repository.NewRedisNotificationStore(rdb)

	// 4. Infrastructure: Neo4j (Driven Adapter)
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
	if err != nil {
		slog.Error("Unable to create Neo4j driver", "error", err)
		os.Exit(1)
	}
	defer driver.Close(ctx)
	if err := driver.VerifyConnectivity(ctx); err != nil {
		slog.Error("Unable to connect to Neo4j", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to Neo4j")

	graphRepo := repository.NewNeo4jRepo(driver)
	if err := graphRepo.EnsureSchema(ctx); err != nil {
		slog.Error("Failed to ensure graph schema", "error", err)
		os.Exit(1)
	}
	storeRepo := repository.NewStoreRepo(graphRepo)
	productRepo := repository.NewProductRepo(graphRepo)
	ratingRepo := repository.NewRatingRepo(graphRepo)
	socialRepo := repository.NewSocialRepo(graphRepo)

	// 5. Infrastructure: Event Broker NATS (Driven Adapter)
	nc, err := nats.Connect(cfg.NatsUrl)
	if err != nil {
		slog.Error("Unable to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer nc.Close()
	slog.Info("✅ Connected to NATS")

	publisher := eventbroker.NewNatsPublisher(nc)

	// 6. Initialisation du Core
	hub := push.NewHub()
	notifier := services.NewNotificationService(notifStore, hub)
	popularity := services.NewPopularityService(graphRepo, board, notifier)
	storeService := services.NewStoreService(storeRepo, cache, publisher)
	productService := services.NewProductService(productRepo, cache, publisher)
	ratingService := services.NewRatingService(ratingRepo, graphRepo, cache, publisher)
	socialService := services.NewSocialService(socialRepo, cache, publisher)
	policy := services.NewPolicy(cache, popularity, notifier, socialRepo)

	// 7. Initialisation du Consumer NATS (Driving Adapter - Async)
	// C'est ici que la table d'invalidation est branchée sur les mutations
	handler := events.NewEventHandler(policy)
	sub, err := nc.Subscribe(eventbroker.SubjectPrefix+">", handler.HandleMutation)
	if err != nil {
		slog.Error("Failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	defer func() { _ = sub.Unsubscribe() }()
	slog.Info("👂 Listening for events (NATS)", "subject", eventbroker.SubjectPrefix+">")

	// Amorçage : le leaderboard est reconstruit au démarrage pour que
	// /top-stores réponde même avant la première mutation
	if err := popularity.Recompute(ctx); err != nil {
		slog.Warn("Initial leaderboard recompute failed", "error", err)
	}

	// 8. Initialisation du Serveur HTTP (Driving Adapter - Sync)
	server := httpapi.NewServer(storeService, productService, ratingService,
		socialService, popularity, notifier, hub)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.Router(),
	}

	slog.Info("📡 Plaza HTTP listening", "port", cfg.HTTPPort)

	// On lance le serveur HTTP dans une goroutine pour ne pas bloquer
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "error", err)
	}
	slog.Info("👋 Server exited")
}

// --- Helpers ---

func initLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Env == "local" {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if cfg.Env == "local" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func initTracer(ctx context.Context, cfg config.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, _ := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("plaza"), // ⚠️ Important: bien nommer le service
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
