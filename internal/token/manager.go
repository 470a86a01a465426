package token

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/metrics"
	"github.com/dtroode/counterparty-client/internal/model"
)

// Secret store keys of the credential halves.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

const refreshFlightKey = "refresh"

// Manager stores the credential pair, decides whether the access token is
// still usable and coordinates refreshes so that at most one refresh call is
// in flight at a time.
type Manager struct {
	store     model.SecretStore
	decoder   model.ClaimsDecoder
	refresher model.TokenRefresher
	logger    *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	group  singleflight.Group
	mu     sync.Mutex
	flight *flight
}

type flight struct {
	cancel context.CancelFunc
}

var _ model.TokenManager = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithMetrics records refresh outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

// WithClock replaces time.Now for validity checks.
func WithClock(now func() time.Time) Option {
	return func(mgr *Manager) {
		mgr.now = now
	}
}

// NewManager creates a token manager.
func NewManager(
	store model.SecretStore,
	decoder model.ClaimsDecoder,
	refresher model.TokenRefresher,
	logger *logger.Logger,
	opts ...Option,
) *Manager {
	m := &Manager{
		store:     store,
		decoder:   decoder,
		refresher: refresher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadSaved returns the stored credential pair. The second result is false
// when either half is missing or unreadable.
func (m *Manager) LoadSaved(ctx context.Context) (model.Credential, bool) {
	access, ok := m.read(ctx, AccessTokenKey)
	if !ok {
		return model.Credential{}, false
	}
	refresh, ok := m.read(ctx, RefreshTokenKey)
	if !ok {
		return model.Credential{}, false
	}

	return model.Credential{AccessToken: access, RefreshToken: refresh}, true
}

func (m *Manager) read(ctx context.Context, key string) (string, bool) {
	value, err := m.store.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrSecretNotFound) {
			m.logger.Error("Token manager: failed to read secret", "key", key, "error", err)
		}
		return "", false
	}
	return value, value != ""
}

// Save stores a new credential pair. The access token is written first; a
// failed refresh token write leaves the new access token in place.
func (m *Manager) Save(ctx context.Context, accessToken, refreshToken string) error {
	previous, _ := m.read(ctx, AccessTokenKey)

	if err := m.store.Save(ctx, AccessTokenKey, accessToken); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if previous != "" && previous != accessToken {
		m.decoder.Remove(previous)
	}

	if err := m.store.Save(ctx, RefreshTokenKey, refreshToken); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}

	m.logger.Debug("Token manager: credential saved", "access_token", logger.RedactToken(accessToken))
	return nil
}

// Clear removes both credential halves and every cached decode.
func (m *Manager) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{AccessTokenKey, RefreshTokenKey} {
		if err := m.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	m.decoder.Clear()

	if err := errors.Join(errs...); err != nil {
		m.logger.Error("Token manager: failed to clear credential", "error", err)
		return err
	}

	m.logger.Debug("Token manager: credential cleared")
	return nil
}

// GetValidAccessToken returns the stored access token if it is valid for
// longer than model.ValiditySkew, refreshing it otherwise.
func (m *Manager) GetValidAccessToken(ctx context.Context) (string, error) {
	if cred, ok := m.LoadSaved(ctx); ok {
		claims, err := m.decoder.Decode(cred.AccessToken)
		if err == nil && claims.IsValid(m.now()) {
			return cred.AccessToken, nil
		}
		if err != nil {
			m.logger.Debug("Token manager: stored access token is undecodable", "error", err)
		}
	}

	cred, err := m.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return cred.AccessToken, nil
}

// Refresh exchanges the stored refresh token for a new pair. Concurrent
// callers share one refresh call. The call itself is not bound to ctx: a
// caller whose ctx ends stops waiting, while the refresh completes for the
// others. Use CancelRefresh to abort it.
func (m *Manager) Refresh(ctx context.Context) (model.Credential, error) {
	ch := m.group.DoChan(refreshFlightKey, func() (any, error) {
		flightCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f := &flight{cancel: cancel}

		m.mu.Lock()
		m.flight = f
		m.mu.Unlock()

		defer func() {
			cancel()
			m.mu.Lock()
			if m.flight == f {
				m.flight = nil
			}
			m.mu.Unlock()
		}()

		return m.refresh(flightCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return model.Credential{}, res.Err
		}
		return res.Val.(model.Credential), nil
	case <-ctx.Done():
		return model.Credential{}, ctx.Err()
	}
}

// CancelRefresh aborts the in-flight refresh, if any. Callers waiting on it
// receive its error and the next Refresh starts a new call.
func (m *Manager) CancelRefresh() {
	m.mu.Lock()
	f := m.flight
	m.flight = nil
	m.mu.Unlock()

	if f != nil {
		f.cancel()
		m.logger.Info("Token manager: refresh cancelled")
	}
	m.group.Forget(refreshFlightKey)
}

func (m *Manager) refresh(ctx context.Context) (model.Credential, error) {
	refreshToken, ok := m.read(ctx, RefreshTokenKey)
	if !ok {
		m.metrics.TokenRefresh("no_credential")
		return model.Credential{}, model.ErrNoCredential
	}

	cred, err := m.refresher.RefreshTokens(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			m.metrics.TokenRefresh("unauthorized")
			m.logger.Info("Token manager: refresh token rejected, clearing credential")
			if clearErr := m.Clear(ctx); clearErr != nil {
				m.logger.Error("Token manager: failed to clear rejected credential", "error", clearErr)
			}
			return model.Credential{}, model.ErrUnauthorized
		}

		m.metrics.TokenRefresh("error")
		m.logger.Error("Token manager: refresh failed", "error", err)
		return model.Credential{}, fmt.Errorf("%w: %w", model.ErrRefreshFailed, err)
	}

	if err := m.Save(ctx, cred.AccessToken, cred.RefreshToken); err != nil {
		m.metrics.TokenRefresh("error")
		return model.Credential{}, fmt.Errorf("%w: %w", model.ErrRefreshFailed, err)
	}

	m.metrics.TokenRefresh("success")
	m.logger.Info("Token manager: credential refreshed")
	return cred, nil
}
