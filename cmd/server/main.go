package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"artvista/internal/auth"
	"artvista/internal/config"
	"artvista/internal/db"
	"artvista/internal/db/mock"
	"artvista/internal/gallery"
	applog "artvista/internal/log"
	"artvista/internal/metrics"
	"artvista/internal/payment"
	"artvista/internal/server"
	"artvista/internal/storage"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	openStorageFunc     = storage.Open
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	defer func() { _ = applog.Sync() }()

	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == config.StorageDatabase {
		database, err = openDatabase(ctx, cfg.Database)
		if err != nil {
			applog.Error(ctx, "failed to configure database", "error", err)
			return 1
		}
	}

	kv, closeStorage, err := openStorageFunc(ctx, cfg.Storage, database)
	if err != nil {
		applog.Error(ctx, "failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		return 1
	}
	defer func() {
		if err := closeStorage(); err != nil {
			applog.Warn(ctx, "storage close failed", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	recorder := metrics.New(registry)

	g, err := gallery.New(ctx, kv, gallery.Options{
		LegacyLogin: auth.LegacyAdmin{
			Enabled:  cfg.Auth.LegacyLogin.Enabled,
			Email:    cfg.Auth.LegacyLogin.AdminEmail,
			Password: cfg.Auth.LegacyLogin.AdminPassword,
		},
		Gateway: payment.NewMockGateway(cfg.Checkout.IntentDelay, cfg.Checkout.VerifyDelay),
		Metrics: recorder,
	})
	if err != nil {
		applog.Error(ctx, "failed to load gallery", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Gallery:      g,
		Metrics:      recorder,
		Gatherer:     registry,
		SessionStore: storage.NewSessionStore(kv),
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	startErr := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr, "storage", cfg.Storage.Driver)
		startErr <- srv.Start()
	}()

	select {
	case err := <-startErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err().Error())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-startErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}

	applog.Info(ctx, "server stopped")
	return 0
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.UseMock || cfg.URL == "" {
		applog.Info(ctx, "using in-memory mock database")
		return newMockDatabaseFunc(ctx)
	}
	applog.Debug(ctx, "connecting to database")
	return configureDatabase(cfg)
}
