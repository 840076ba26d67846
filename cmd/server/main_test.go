package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"gorm.io/gorm"

	"artvista/internal/config"
	"artvista/internal/server"
	"artvista/internal/storage"
)

type stubServer struct {
	startErr       error
	stopErr        error
	blockUntilStop bool

	startCalled bool
	stopCalled  bool

	startGate   chan struct{}
	startNotify chan struct{}
}

func newStubServer(startErr, stopErr error, block bool) *stubServer {
	s := &stubServer{
		startErr:       startErr,
		stopErr:        stopErr,
		blockUntilStop: block,
		startNotify:    make(chan struct{}),
	}
	if block {
		s.startGate = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.startNotify)
	if s.blockUntilStop {
		<-s.startGate
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.blockUntilStop {
		close(s.startGate)
	}
	return s.stopErr
}

// restoreGlobals puts every swappable dependency back once the test finishes.
func restoreGlobals(t *testing.T) {
	t.Helper()

	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalOpenStorage := openStorageFunc
	originalNewServer := newServerFunc
	originalSubscribe := subscribeShutdownSig

	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		openStorageFunc = originalOpenStorage
		newServerFunc = originalNewServer
		subscribeShutdownSig = originalSubscribe
	})
}

// memoryStorage replaces the storage factory so stubbed gorm handles are never queried.
func memoryStorage(seen **gorm.DB) func(context.Context, config.StorageConfig, *gorm.DB) (storage.Store, func() error, error) {
	return func(_ context.Context, _ config.StorageConfig, db *gorm.DB) (storage.Store, func() error, error) {
		if seen != nil {
			*seen = db
		}
		return storage.NewMemory(), func() error { return nil }, nil
	}
}

func TestRunUsesMockDatabaseWhenConfigured(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{
			UseMock: true,
		},
		Storage: config.StorageConfig{Driver: config.StorageDatabase},
		Logging: config.LoggingConfig{Level: "debug"},
		Auth: config.AuthConfig{
			Session: config.SessionConfig{
				Lifetime:     time.Hour,
				CookieName:   "test",
				CookieSecure: true,
			},
		},
	}

	mockDB := &gorm.DB{}
	var mockCalled bool
	var storageDB *gorm.DB
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(level string) error { return nil }
	newMockDatabaseFunc = func(ctx context.Context) (*gorm.DB, error) {
		mockCalled = true
		return mockDB, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase should not be called when mock is enabled")
		return nil, nil
	}
	openStorageFunc = memoryStorage(&storageDB)

	var got server.Config
	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	newServerFunc = func(c server.Config) (serverLifecycle, error) {
		got = c
		return serverStub, nil
	}

	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return shutdownCh, func() {}
	}

	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGTERM
	}()

	code := run(context.Background())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !mockCalled {
		t.Fatal("expected mock database to be used")
	}
	if storageDB != mockDB {
		t.Fatal("expected storage to be opened over the mock database")
	}
	if !serverStub.startCalled || !serverStub.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}
	if got.Gallery == nil || got.Metrics == nil || got.Gatherer == nil {
		t.Fatalf("expected gallery, metrics and gatherer to be wired, got %+v", got)
	}
	if got.SessionStore == nil {
		t.Fatal("expected sessions to be persisted in storage")
	}
	if got.Session.CookieName != "test" || got.Session.Lifetime != time.Hour || !got.Session.CookieSecure {
		t.Fatalf("unexpected session config: %+v", got.Session)
	}
}

func TestRunSkipsDatabaseForMemoryStorage(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Logging: config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be opened for memory storage")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("database should not be configured for memory storage")
		return nil, nil
	}
	openStorageFunc = storage.Open

	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	newServerFunc = func(server.Config) (serverLifecycle, error) { return serverStub, nil }

	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) { return shutdownCh, func() {} }

	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGINT
	}()

	if code := run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunReturnsErrorWhenServerStartFails(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{
			UseMock: true,
		},
		Logging: config.LoggingConfig{Level: "info"},
		Auth:    config.AuthConfig{Session: config.SessionConfig{Lifetime: time.Hour}},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }
	openStorageFunc = memoryStorage(nil)

	serverStub := newStubServer(errors.New("listener failure"), nil, false)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return make(chan os.Signal), func() {}
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if serverStub.stopCalled {
		t.Fatal("server stop should not be called on start error")
	}
}

func TestRunReturnsErrorWhenStorageFails(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Storage: config.StorageConfig{Driver: config.StorageBadger, BadgerPath: "/nonexistent"},
		Logging: config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	openStorageFunc = func(context.Context, config.StorageConfig, *gorm.DB) (storage.Store, func() error, error) {
		return nil, func() error { return nil }, errors.New("badger locked")
	}
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		t.Fatal("server should not be built when storage fails")
		return nil, nil
	}

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 on storage failure, got %d", code)
	}
}

func TestRunHandlesDatabaseConfigurationError(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{URL: "postgres://example", UseMock: false},
		Storage:  config.StorageConfig{Driver: config.StorageDatabase},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be used when URL is configured")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		return nil, errors.New("db connection refused")
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 on database configuration failure, got %d", code)
	}
}

func TestRunReturnsErrorWhenLogLevelInvalid(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{Logging: config.LoggingConfig{Level: "invalid"}}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return errors.New("invalid level") }

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 for invalid log level, got %d", code)
	}
}
