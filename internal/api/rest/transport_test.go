package rest

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/counterparty-client/internal/logger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestRequestIDTransport(t *testing.T) {
	var seen []string
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = append(seen, r.Header.Get(RequestIDHeader))
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})
	rt := NewRequestIDTransport(next)

	req := httptest.NewRequest(http.MethodGet, "http://api/counterparty", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get(RequestIDHeader), "original request must not be mutated")

	req = httptest.NewRequest(http.MethodGet, "http://api/counterparty", nil)
	req.Header.Set(RequestIDHeader, "preset")
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "http://api/counterparty", nil)
	req = req.WithContext(WithRequestID(req.Context(), "from-ctx"))
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	require.Len(t, seen, 3)
	assert.Len(t, seen[0], 36)
	assert.Equal(t, "preset", seen[1])
	assert.Equal(t, "from-ctx", seen[2])
}

func TestLoggingTransport(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(0, &buf)

	ok := NewLoggingTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusCreated, Body: http.NoBody, Request: r}, nil
	}), log)

	req := httptest.NewRequest(http.MethodPost, "http://api/counterparty/add", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	resp, err := ok.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	out := buf.String()
	assert.Contains(t, out, "HTTP request completed")
	assert.Contains(t, out, "/counterparty/add")
	assert.Contains(t, out, "201")
	assert.NotContains(t, out, "secret-token")

	buf.Reset()
	failing := NewLoggingTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}), log)

	_, err = failing.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api/counterparty", nil))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "HTTP request failed")
}
