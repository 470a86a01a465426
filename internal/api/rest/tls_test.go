package rest

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/counterparty-client/internal/testutil"
)

func TestNewTLSConfig_Empty(t *testing.T) {
	cfg, err := NewTLSConfig("", "", "")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestNewTLSConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	notPEM := filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(notPEM, []byte("not a certificate"), 0o600))

	_, err := NewTLSConfig(filepath.Join(dir, "missing.pem"), "", "")
	assert.Error(t, err)

	_, err = NewTLSConfig(notPEM, "", "")
	assert.Error(t, err)

	_, err = NewTLSConfig("", filepath.Join(dir, "cert.pem"), filepath.Join(dir, "key.pem"))
	assert.Error(t, err)
}

func TestNewTLSConfig_TrustsCustomCA(t *testing.T) {
	tlsSrv := httptest.NewTLSServer(writeJSON(http.StatusOK, map[string]any{"token": "a2", "refresh_token": "r2"}))
	t.Cleanup(tlsSrv.Close)
	caFile := filepath.Join(t.TempDir(), "ca.pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: tlsSrv.Certificate().Raw})
	require.NoError(t, os.WriteFile(caFile, certPEM, 0o600))

	cfg, err := NewTLSConfig(caFile, "", "")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	api := NewAuthAPI(tlsSrv.URL, testutil.MakeNoopLogger(), WithTLS(cfg))
	cred, err := api.RefreshTokens(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r2", cred.RefreshToken)

	untrusted := NewAuthAPI(tlsSrv.URL, testutil.MakeNoopLogger())
	_, err = untrusted.RefreshTokens(context.Background(), "r1")
	assert.Error(t, err)
}
