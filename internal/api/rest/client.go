// Package rest is the authenticated client of the counterparty REST API.
package rest

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/metrics"
	"github.com/dtroode/counterparty-client/internal/model"
)

const accessCheckTimeout = 30 * time.Second

// TokenSource supplies and renews the bearer token.
type TokenSource interface {
	LoadSaved(ctx context.Context) (model.Credential, bool)
	Save(ctx context.Context, accessToken, refreshToken string) error
	GetValidAccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (model.Credential, error)
}

// Request describes one API call. Body is marshalled to JSON once and
// resent unchanged on retry.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values
}

// Client sends authenticated requests. A 401 triggers one token refresh and
// a single retry; a 403 fails immediately and starts an access check in the
// background.
type Client struct {
	endpoint
	tokens TokenSource
	claims model.ClaimsDecoder
	logger *logger.Logger

	background sync.WaitGroup
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, tokens TokenSource, claims model.ClaimsDecoder, log *logger.Logger, opts ...Option) *Client {
	o := buildOptions(opts)
	return &Client{
		endpoint: endpoint{
			baseURL:    strings.TrimSuffix(baseURL, "/"),
			httpClient: o.client(log),
			metrics:    o.metrics,
		},
		tokens: tokens,
		claims: claims,
		logger: log,
	}
}

// Do performs req and decodes a successful response into out.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	body, err := marshalBody(req.Body)
	if err != nil {
		return err
	}
	return c.do(ctx, req, body, out, false)
}

// Call performs req and returns the decoded response.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	if err := c.Do(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, req Request, body []byte, out any, isRetry bool) error {
	var bearer string
	if requiresAuth(req.Path) {
		token, err := c.tokens.GetValidAccessToken(ctx)
		if err != nil {
			return tokenError(err)
		}
		bearer = token
	}

	resp, err := c.send(ctx, req.Method, req.Path, req.Query, body, bearer)
	if err != nil {
		return err
	}

	switch {
	case resp.ok():
		return decode(resp.Body, out)

	case resp.StatusCode == http.StatusUnauthorized:
		if isRetry {
			return model.ErrUnauthorized
		}
		if _, err := c.tokens.Refresh(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			c.logger.Info("API client: refresh after 401 failed", "path", req.Path, "error", err)
			return model.ErrUnauthorized
		}
		return c.do(ctx, req, body, out, true)

	case resp.StatusCode == http.StatusForbidden:
		c.checkAccessInBackground(ctx)
		return model.ErrAccessDenied

	default:
		return statusError(resp)
	}
}

// checkAccessInBackground refreshes the credential after a 403 to find out
// whether the user's roles changed. It never affects the failed request.
func (c *Client) checkAccessInBackground(ctx context.Context) {
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		defer func() {
			if r := recover(); r != nil {
				c.metrics.AccessCheck(metrics.AccessPanicked)
				c.logger.Error("API client: access check panicked", "panic", r)
			}
		}()

		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), accessCheckTimeout)
		defer cancel()

		c.checkAccess(checkCtx)
	}()
}

func (c *Client) checkAccess(ctx context.Context) {
	saved, ok := c.tokens.LoadSaved(ctx)
	if !ok {
		return
	}

	var oldRoles []string
	if claims, err := c.claims.Decode(saved.AccessToken); err == nil {
		oldRoles = claims.Roles
	}

	fresh, err := c.tokens.Refresh(ctx)
	if err != nil {
		c.claims.Clear()
		c.metrics.AccessCheck(metrics.AccessRefreshFailed)
		c.logger.Error("API client: access check refresh failed", "error", err)
		return
	}

	var newRoles []string
	if claims, err := c.claims.Decode(fresh.AccessToken); err == nil {
		newRoles = claims.Roles
	}
	c.claims.Remove(saved.AccessToken)

	if sameRoles(oldRoles, newRoles) {
		c.metrics.AccessCheck(metrics.AccessRolesUnchanged)
		c.logger.Info("API client: access denied, roles unchanged", "roles", newRoles)
		return
	}

	c.metrics.AccessCheck(metrics.AccessRolesChanged)
	c.logger.Info("API client: access denied, roles changed", "old_roles", oldRoles, "new_roles", newRoles)
}

// sameRoles compares role sets, ignoring order and duplicates.
func sameRoles(a, b []string) bool {
	return slices.Equal(roleSet(a), roleSet(b))
}

func roleSet(roles []string) []string {
	out := slices.Clone(roles)
	slices.Sort(out)
	return slices.Compact(out)
}

// WaitBackground blocks until every background access check has finished.
func (c *Client) WaitBackground() {
	c.background.Wait()
}
