// Package metrics exposes client-side Prometheus counters. All methods are
// safe to call on a nil *Metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "counterparty_client"

// Access check outcomes.
const (
	AccessRolesChanged   = "roles_changed"
	AccessRolesUnchanged = "roles_unchanged"
	AccessRefreshFailed  = "refresh_failed"
	AccessPanicked       = "panicked"
)

// Metrics groups the counters recorded by the token and transport layers.
type Metrics struct {
	tokenRefreshes *prometheus.CounterVec
	httpResponses  *prometheus.CounterVec
	accessChecks   *prometheus.CounterVec
	localFallbacks prometheus.Counter
	claimsCache    *prometheus.CounterVec
}

// New creates the counters and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "Token refresh attempts by result.",
		}, []string{"result"}),
		httpResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_responses_total",
			Help:      "Remote API responses by method and status code.",
		}, []string{"method", "status"}),
		accessChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_checks_total",
			Help:      "Background access checks after a 403 by outcome.",
		}, []string{"outcome"}),
		localFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "local_fallbacks_total",
			Help:      "Contractor fetches served from the local cache.",
		}),
		claimsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_cache_lookups_total",
			Help:      "Decoded claims cache lookups by result.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(m.tokenRefreshes, m.httpResponses, m.accessChecks, m.localFallbacks, m.claimsCache)
	}

	return m
}

// TokenRefresh counts a refresh by result ("success", "unauthorized", "error").
func (m *Metrics) TokenRefresh(result string) {
	if m == nil {
		return
	}
	m.tokenRefreshes.WithLabelValues(result).Inc()
}

// HTTPResponse counts a remote API response. Status 0 means no response.
func (m *Metrics) HTTPResponse(method string, status int) {
	if m == nil {
		return
	}
	m.httpResponses.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) AccessCheck(outcome string) {
	if m == nil {
		return
	}
	m.accessChecks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) LocalFallback() {
	if m == nil {
		return
	}
	m.localFallbacks.Inc()
}

// ClaimsCacheLookup counts a cache hit or miss.
func (m *Metrics) ClaimsCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.claimsCache.WithLabelValues(result).Inc()
}
