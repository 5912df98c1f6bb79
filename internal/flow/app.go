// Package flow is the HTTP service that hosts the payment flow: one persisted
// state record per shopper, guarded steps and the calls to the client API and
// the mock API.
package flow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PayFlow/config"
	"PayFlow/internal/domain/checkout"
	"PayFlow/internal/domain/loader"
	"PayFlow/internal/external/clientapi"
	"PayFlow/internal/external/kafka"
	"PayFlow/internal/external/mockapi"
	"PayFlow/internal/messaging"
	flowstate_repo "PayFlow/internal/repo/flowstate"
	"PayFlow/internal/store"
	"PayFlow/pkg/health"
	"PayFlow/pkg/logger"
	"PayFlow/pkg/postgres"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Run bootstraps and runs the flow service until SIGINT or SIGTERM.
func Run(cfg config.Config) {
	l := logger.New(cfg.LogLevel)

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backend, closeBackend, err := newBackend(ctx, cfg)
	if err != nil {
		l.Fatal(fmt.Errorf("flow - Run - newBackend: %w", err))
	}
	defer closeBackend()

	states := store.New(backend, cfg.StorageKey, l)
	checkers := []health.Checker{health.NewStorageChecker(cfg.StorageBackend, states)}

	// Flow events
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.EventsMode == config.EventsModeKafka {
		l.Info("Events mode: kafka - brokers=%v topic=%s", cfg.KafkaBrokers, cfg.KafkaFlowEventsTopic)
		publisher = kafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaFlowEventsTopic)
		checkers = append(checkers, health.Optional(health.NewKafkaChecker(cfg.KafkaBrokers, cfg.KafkaFlowEventsTopic)))
	}
	defer func() { _ = publisher.Close() }()

	// External collaborators
	var mockAPI checkout.MockAPI
	if cfg.UseMockAPI {
		client := mockapi.New(cfg.MockAPIURL, cfg.HTTPMockAPIClientTimeout)
		mockAPI = client
		checkers = append(checkers, health.Optional(health.NewUpstreamChecker("mockapi", client)))
	}
	sessions := clientapi.NewFactory(cfg.HTTPClientAPIClientTimeout)

	service := checkout.NewService(sessions, mockAPI, publisher, loader.NewSet(), l)

	engine := NewGinEngine(l)
	router := NewRouter(NewFlowHandler(service, l), states, cfg.FlowCookieName, health.NewRegistry(checkers...))
	router.SetUp(engine)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("Starting flow HTTP server: port=%d storage=%s mockApi=%t", cfg.Port, cfg.StorageBackend, cfg.UseMockAPI)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down flow service gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Error("HTTP server error: error=%v", err)
	}
	l.Info("Flow service stopped")
}

// newBackend opens the configured state backend and returns its closer.
func newBackend(ctx context.Context, cfg config.Config) (store.Backend, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageMemory, "":
		return store.NewMemoryBackend(), func() {}, nil
	case config.StorageFile:
		backend, err := store.NewFileBackend(cfg.StorageFileDir)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() {}, nil
	case config.StorageRedis:
		client, err := flowstate_repo.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return flowstate_repo.NewRedisFlowStateRepo(client, cfg.RedisTTL), func() { _ = client.Close() }, nil
	case config.StoragePostgres:
		if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
			return nil, nil, fmt.Errorf("ApplyMigrations: %w", err)
		}
		pg, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			return nil, nil, err
		}
		return flowstate_repo.NewPgFlowStateRepo(pg), pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
