package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/counterparty-client/internal/config"
	"github.com/dtroode/counterparty-client/internal/model"
	"github.com/dtroode/counterparty-client/internal/testutil"
)

func newTestConfig(t *testing.T, baseURL, backend string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	return &config.Config{
		API: config.API{BaseURL: baseURL, Timeout: 5 * time.Second},
		Database: config.Database{
			Driver: "sqlite",
			DSN:    filepath.Join(dir, "counterparty.db"),
		},
		Secrets: config.Secrets{
			Backend:      backend,
			Dir:          filepath.Join(dir, "secrets"),
			IdentityFile: filepath.Join(dir, "identity.txt"),
		},
	}
}

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	access := testutil.MakeAccessToken(t, time.Hour, "ROLE_USER")
	mux := http.NewServeMux()
	mux.HandleFunc("/login_check", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"token": access, "refresh_token": "r1"})
	})
	mux.HandleFunc("/counterparty", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+access {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 2, "name": "Zeta", "inn": "7800000000"},
			{"id": 1, "name": "Acme", "inn": "7700000000"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestApp_LoginAndFetch(t *testing.T) {
	for _, backend := range []string{"memory", "file"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			srv := newFakeAPI(t)

			a, err := New(ctx, newTestConfig(t, srv.URL, backend), testutil.MakeNoopLogger())
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close() })

			assert.False(t, a.Auth.IsAuthenticated(ctx))
			require.NoError(t, a.Auth.Login(ctx, "user", "secret"))
			assert.True(t, a.Auth.IsAuthenticated(ctx))

			list, err := a.Contractors.Fetch(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)

			local, err := a.Contractors.LoadLocal(ctx)
			require.NoError(t, err)
			require.Len(t, local, 2)
			assert.Equal(t, model.ContractorID("1"), local[0].ID)

			require.NoError(t, a.Auth.Logout(ctx))
			assert.False(t, a.Auth.IsAuthenticated(ctx))
		})
	}
}

func TestApp_FileBackendPersistsCredential(t *testing.T) {
	ctx := context.Background()
	srv := newFakeAPI(t)
	cfg := newTestConfig(t, srv.URL, "file")

	first, err := New(ctx, cfg, testutil.MakeNoopLogger())
	require.NoError(t, err)
	require.NoError(t, first.Auth.Login(ctx, "user", "secret"))
	require.NoError(t, first.Close())

	second, err := New(ctx, cfg, testutil.MakeNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	assert.True(t, second.Auth.IsAuthenticated(ctx))
}

func TestApp_MetricsServer(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t, "http://127.0.0.1:1", "memory")

	a, err := New(ctx, cfg, testutil.MakeNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	s, sl := a.MetricsServer()
	assert.Nil(t, s)
	assert.Nil(t, sl)

	a.Config.Metrics.Addr = "127.0.0.1:0"
	s, sl = a.MetricsServer()
	require.NotNil(t, s)
	require.NotNil(t, sl)
	assert.Equal(t, "127.0.0.1:0", s.Address())
}

func TestApp_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	cfg := newTestConfig(t, "http://127.0.0.1:1", "keychain")
	_, err := New(ctx, cfg, testutil.MakeNoopLogger())
	require.Error(t, err)

	cfg = newTestConfig(t, "http://127.0.0.1:1", "memory")
	cfg.Database.Driver = "mysql"
	_, err = New(ctx, cfg, testutil.MakeNoopLogger())
	require.Error(t, err)

	cfg = newTestConfig(t, "http://127.0.0.1:1", "memory")
	cfg.API.CAFile = filepath.Join(t.TempDir(), "missing.pem")
	_, err = New(ctx, cfg, testutil.MakeNoopLogger())
	require.Error(t, err)
}
