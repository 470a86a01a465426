package rest

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/metrics"
)

const defaultTimeout = 30 * time.Second

// Option configures a Client or an AuthAPI.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	tlsConfig  *tls.Config
	metrics    *metrics.Metrics
}

// WithHTTPClient sets a custom HTTP client. It is used as is: timeout, TLS
// and request middleware options do not apply to it.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithTLS sets the TLS configuration of the underlying transport.
func WithTLS(cfg *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = cfg
	}
}

// WithMetrics records response counters in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func buildOptions(opts []Option) options {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) client(log *logger.Logger) *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if o.tlsConfig != nil {
		base.TLSClientConfig = o.tlsConfig
	}

	return &http.Client{
		Timeout:   o.timeout,
		Transport: NewRequestIDTransport(NewLoggingTransport(base, log)),
	}
}
