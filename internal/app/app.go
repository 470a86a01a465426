// Package app wires configuration into the running client.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtroode/counterparty-client/internal/api/rest"
	"github.com/dtroode/counterparty-client/internal/config"
	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/metrics"
	"github.com/dtroode/counterparty-client/internal/model"
	"github.com/dtroode/counterparty-client/internal/repository/postgres"
	"github.com/dtroode/counterparty-client/internal/repository/sqlite"
	"github.com/dtroode/counterparty-client/internal/secrets"
	"github.com/dtroode/counterparty-client/internal/server"
	"github.com/dtroode/counterparty-client/internal/service"
	"github.com/dtroode/counterparty-client/internal/storage/filesystem"
	storage "github.com/dtroode/counterparty-client/internal/storage/minio"
	"github.com/dtroode/counterparty-client/internal/token"
)

// secretsPrefix keeps sealed credentials apart from other objects in a
// shared bucket.
const secretsPrefix = "credentials/"

// App holds the wired client components.
type App struct {
	Config      *config.Config
	Logger      *logger.Logger
	Registry    *prometheus.Registry
	Tokens      *token.Manager
	Client      *rest.Client
	Session     *service.Session
	Auth        *service.Auth
	Contractors *service.Contractors

	closers []func() error
}

// New builds every component described by cfg. Close releases them.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   log,
		Registry: prometheus.NewRegistry(),
	}
	m := metrics.New(a.Registry)

	secretStore, err := newSecretStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := a.newContractorStore(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	opts := []rest.Option{
		rest.WithTimeout(cfg.API.Timeout),
		rest.WithMetrics(m),
	}
	if cfg.API.CAFile != "" || cfg.API.CertFile != "" {
		tlsConfig, err := rest.NewTLSConfig(cfg.API.CAFile, cfg.API.CertFile, cfg.API.KeyFile)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
		opts = append(opts, rest.WithTLS(tlsConfig))
	}

	decoder := token.NewDecoder(m)
	authAPI := rest.NewAuthAPI(cfg.API.BaseURL, log, opts...)
	a.Tokens = token.NewManager(secretStore, decoder, authAPI, log, token.WithMetrics(m))
	a.Client = rest.NewClient(cfg.API.BaseURL, a.Tokens, decoder, log, opts...)
	a.closers = append(a.closers, func() error {
		a.Client.WaitBackground()
		return nil
	})

	a.Session = service.NewSession(a.Tokens, log)
	a.Session.OnLogout(func(_ context.Context, reason model.LogoutReason) {
		a.Tokens.CancelRefresh()
		log.Debug("App: session ended", "reason", string(reason))
	})

	a.Auth = service.NewAuth(a.Client, a.Tokens, a.Session, log)
	reconciler := service.NewReconciler(a.Client, store, log, m)
	a.Contractors = service.NewContractors(reconciler, a.Session, log)

	return a, nil
}

// MetricsServer returns the metrics endpoint and its security layer, or nil
// when no address is configured.
func (a *App) MetricsServer() (model.Server, model.SecurityLayer) {
	if a.Config.Metrics.Addr == "" {
		return nil, nil
	}
	return server.NewMetricsServer(a.Config.Metrics.Addr, a.Registry, a.Logger),
		server.NewListener(a.Config.Metrics.CertFile, a.Config.Metrics.KeyFile)
}

// Close waits for background work and releases storage, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newSecretStore(ctx context.Context, cfg *config.Config) (model.SecretStore, error) {
	var blobs model.BlobStorage

	switch cfg.Secrets.Backend {
	case "memory":
		return secrets.NewMemory(), nil

	case "file":
		dir, err := filesystem.NewStore(cfg.Secrets.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize secrets directory: %w", err)
		}
		blobs = dir

	case "minio":
		client, err := storage.NewClient(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
			Prefix:    secretsPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage client: %w", err)
		}
		blobs = client

	default:
		return nil, fmt.Errorf("unsupported secrets backend %q", cfg.Secrets.Backend)
	}

	identity, err := secrets.LoadOrCreateIdentity(cfg.Secrets.IdentityFile)
	if err != nil {
		return nil, err
	}
	return secrets.NewSealedStore(blobs, identity), nil
}

func (a *App) newContractorStore(ctx context.Context, cfg *config.Config) (model.ContractorStore, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return sqlite.NewContractorRepository(db), nil

	case "postgres":
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewContractorRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
