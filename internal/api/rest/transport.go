package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/counterparty-client/internal/logger"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID stores a request id in ctx. Requests sent with this context
// carry it instead of a generated one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

type requestIDTransport struct {
	next http.RoundTripper
}

// NewRequestIDTransport sets the X-Request-ID header on every request that
// does not already have one.
func NewRequestIDTransport(next http.RoundTripper) http.RoundTripper {
	return &requestIDTransport{next: next}
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.next.RoundTrip(req)
	}

	id, ok := RequestIDFromContext(req.Context())
	if !ok {
		id = uuid.NewString()
	}

	clone := req.Clone(req.Context())
	clone.Header.Set(RequestIDHeader, id)
	return t.next.RoundTrip(clone)
}

type loggingTransport struct {
	next   http.RoundTripper
	logger *logger.Logger
}

// NewLoggingTransport logs method, path, status and duration of each
// request. Headers and bodies are never logged.
func NewLoggingTransport(next http.RoundTripper, log *logger.Logger) http.RoundTripper {
	return &loggingTransport{next: next, logger: log}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	if err != nil {
		t.logger.Error("HTTP request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get(RequestIDHeader),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error())
		return nil, err
	}

	t.logger.Info("HTTP request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(RequestIDHeader),
		"duration_ms", duration.Milliseconds(),
		"status", resp.StatusCode)

	return resp, nil
}
