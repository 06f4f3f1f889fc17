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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	// Instrumentation
	"github.com/exaring/otelpgx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	// Interne
	"github.com/soliva-social/soliva/config"
	httpadapter "github.com/soliva-social/soliva/internal/adapters/primary/http"
	"github.com/soliva-social/soliva/internal/adapters/secondary/cache"
	"github.com/soliva-social/soliva/internal/adapters/secondary/eventbroker"
	"github.com/soliva-social/soliva/internal/adapters/secondary/graphstore"
	"github.com/soliva-social/soliva/internal/adapters/secondary/identity"
	"github.com/soliva-social/soliva/internal/adapters/secondary/repository"
	"github.com/soliva-social/soliva/internal/core/ports"
	"github.com/soliva-social/soliva/internal/core/services"
)

func main() {
	// 1. Config & Logger
	_ = godotenv.Load()
	cfg := config.Load()
	initLogger(cfg)
	slog.Info("🚀 Starting Soliva", "env", cfg.Env, "storage", cfg.Storage)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	// 3. Adapters secondaires selon le mode de stockage
	var (
		userRepo  ports.UserRepository
		graphRepo ports.GraphRepository
		postRepo  ports.PostRepository
		notifRepo ports.NotificationRepository
		msgRepo   ports.MessageRepository
		eventPub  ports.EventPublisher
	)

	if cfg.Storage == "memory" {
		// Mode embedded : tout en mémoire, pas de broker.
		userRepo = repository.NewMemoryUserRepo()
		graphRepo = repository.NewMemoryGraphRepo()
		postRepo = repository.NewMemoryPostRepo()
		notifRepo = repository.NewMemoryNotificationRepo()
		msgRepo = repository.NewMemoryMessageRepo()
		eventPub = eventbroker.NewNoopPublisher()
		slog.Info("✅ Using in-memory storage")
	} else {
		// Postgres
		dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
		if err != nil {
			slog.Error("Unable to parse DB config", "error", err)
			os.Exit(1)
		}
		// Instrumentation SQL (Pour voir les requêtes dans Jaeger)
		dbConfig.ConnConfig.Tracer = otelpgx.NewTracer()

		dbPool, err := pgxpool.NewWithConfig(ctx, dbConfig)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		slog.Info("✅ Connected to Postgres")

		if err := repository.EnsureSchema(ctx, dbPool); err != nil {
			slog.Error("Failed to ensure database schema", "error", err)
			os.Exit(1)
		}

		// Neo4j : le graphe de follow est la source de vérité des arêtes.
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jUri, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			slog.Error("Failed to create neo4j driver", "error", err)
			os.Exit(1)
		}
		defer driver.Close(context.Background())

		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := driver.VerifyConnectivity(connectCtx); err != nil {
			connectCancel()
			slog.Error("Failed to connect to Neo4j", "error", err)
			os.Exit(1)
		}
		connectCancel()
		slog.Info("✅ Connected to Neo4j")

		neo4jRepo := graphstore.NewNeo4jGraphRepo(driver)
		if err := neo4jRepo.EnsureSchema(ctx); err != nil {
			slog.Warn("Schema init failed (might be fine if already exists)", "error", err)
		}

		// Redis : cache read-through sur les profils.
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisotel.InstrumentTracing(rdb); err != nil {
			slog.Warn("Failed to instrument redis", "error", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("Unable to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		slog.Info("✅ Connected to Redis")

		// NATS
		nc, err := nats.Connect(cfg.NatsUrl)
		if err != nil {
			slog.Error("Unable to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		slog.Info("✅ Connected to NATS")

		userRepo = cache.NewCachedUserRepo(repository.NewPostgresUserRepo(dbPool), rdb)
		graphRepo = neo4jRepo
		postRepo = repository.NewPostgresPostRepo(dbPool)
		notifRepo = repository.NewPostgresNotificationRepo(dbPool)
		msgRepo = repository.NewPostgresMessageRepo(dbPool)
		eventPub = eventbroker.NewNatsPublisher(nc)
	}

	// 4. Vérification des tokens
	var verifier ports.TokenVerifier
	if cfg.JWTPubKey != "" {
		pem, err := os.ReadFile(cfg.JWTPubKey)
		if err != nil {
			slog.Error("Unable to read JWT public key", "path", cfg.JWTPubKey, "error", err)
			os.Exit(1)
		}
		verifier, err = identity.NewJWTVerifier(pem)
		if err != nil {
			slog.Error("Invalid JWT public key", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("⚠️ No JWT public key configured, tokens are trusted as-is")
		verifier = identity.PassthroughVerifier{}
	}

	// 5. Initialisation du Core (Domain Logic)
	notifService := services.NewNotificationService(notifRepo)
	profileService := services.NewProfileService(userRepo, graphRepo)
	graphService := services.NewGraphService(userRepo, graphRepo, notifService, eventPub)
	contentService := services.NewContentService(userRepo, postRepo, notifService, eventPub)
	feedService := services.NewFeedService(graphRepo, postRepo)
	messagingService := services.NewMessagingService(userRepo, graphRepo, msgRepo, notifService, eventPub)

	// 6. Primary Adapter (HTTP)
	handler := httpadapter.New(
		profileService,
		graphService,
		contentService,
		notifService,
		feedService,
		messagingService,
		verifier,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler.InitRoutes(),
	}

	slog.Info("📡 Soliva listening", "port", cfg.HTTPPort)

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1) // Fatal en prod
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("👋 Server exited")
}

// --- Helpers (À déplacer un jour dans pkg/telemetry et pkg/logger) ---

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
			semconv.ServiceNameKey.String("soliva"),
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
