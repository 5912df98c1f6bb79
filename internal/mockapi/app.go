// Package mockapi is the local merchant backend used by the demo flow: it
// creates client sessions, forwards payments and keeps the created tokens.
package mockapi

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
	"PayFlow/internal/domain/gateway"
	"PayFlow/internal/external/merchant"
	"PayFlow/internal/store"
	"PayFlow/pkg/health"
	"PayFlow/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Run bootstraps and runs the mock API until SIGINT or SIGTERM.
func Run(cfg config.MockAPIConfig) {
	l := logger.New(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tokens := NewTokenStore(store.NewMemoryBackend())

	provider, clientAPI, err := newProvider(cfg, l)
	if err != nil {
		l.Fatal(fmt.Errorf("mockapi - Run - newProvider: %w", err))
	}

	healthRegistry := health.NewRegistry(health.NewStorageChecker("tokens", tokens))

	engine := NewGinEngine(l, EngineOptions{
		Delay:   time.Duration(cfg.DelayMs) * time.Millisecond,
		With400: cfg.With400,
	})
	router := NewRouter(NewMerchantHandler(provider, tokens, l), clientAPI, healthRegistry)
	router.SetUp(engine)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.BindHost, cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	tls := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheme := "http"
		if tls {
			scheme = "https"
		}
		l.Info("API URL %s://%s/ (merchant mode: %s)", scheme, server.Addr, cfg.MerchantMode)
		if cfg.DelayMs > 0 {
			l.Info("API responses will be delayed for %dms.", cfg.DelayMs)
		}
		if cfg.With400 {
			l.Info("20%% of API responses will result in error 400.")
		}

		var serveErr error
		if tls {
			serveErr = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			serveErr = server.ListenAndServe()
		}
		if errors.Is(serveErr, http.ErrServerClosed) {
			return nil
		}
		return serveErr
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down mock API...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Error("mockapi - Run - server: %v", err)
	}
	l.Info("Mock API stopped")
}

func newProvider(cfg config.MockAPIConfig, l *logger.Logger) (gateway.Provider, *ClientAPIHandler, error) {
	switch cfg.MerchantMode {
	case config.MerchantModePlatform:
		if cfg.MerchantID == "" || cfg.MerchantAPIKey == "" || cfg.MerchantAPISecret == "" {
			return nil, nil, errors.New("MERCHANT_ID, MERCHANT_API_KEY and MERCHANT_API_SECRET are required in platform mode")
		}
		return merchant.NewPlatform(merchant.PlatformConfig{
			Host:       cfg.MerchantHost,
			MerchantID: cfg.MerchantID,
			APIKeyID:   cfg.MerchantAPIKey,
			APISecret:  cfg.MerchantAPISecret,
			Timeout:    cfg.HTTPMerchantClientTimeout,
		}), nil, nil
	case config.MerchantModeSandbox, "":
		sandbox, err := merchant.NewSandbox(cfg.SandboxClientAPIURL, cfg.SandboxAssetURL)
		if err != nil {
			return nil, nil, err
		}
		return sandbox, NewClientAPIHandler(sandbox, l), nil
	default:
		return nil, nil, fmt.Errorf("unknown merchant mode %q", cfg.MerchantMode)
	}
}
