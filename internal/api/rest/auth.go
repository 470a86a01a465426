package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/model"
)

const (
	loginPath   = "/login_check"
	refreshPath = "/token/refresh"
)

// requiresAuth reports whether a bearer token is attached for path.
func requiresAuth(path string) bool {
	path = "/" + strings.TrimPrefix(path, "/")
	return path != loginPath && path != refreshPath
}

// AuthAPI calls the unauthenticated token endpoints. It is the
// model.TokenRefresher of the token manager.
type AuthAPI struct {
	endpoint
	logger *logger.Logger
}

var _ model.TokenRefresher = (*AuthAPI)(nil)

// NewAuthAPI creates an AuthAPI for baseURL.
func NewAuthAPI(baseURL string, log *logger.Logger, opts ...Option) *AuthAPI {
	o := buildOptions(opts)
	return &AuthAPI{
		endpoint: endpoint{
			baseURL:    strings.TrimSuffix(baseURL, "/"),
			httpClient: o.client(log),
			metrics:    o.metrics,
		},
		logger: log,
	}
}

// RefreshTokens exchanges refreshToken for a new pair. A 401 means the
// refresh token is no longer accepted and returns model.ErrUnauthorized.
func (a *AuthAPI) RefreshTokens(ctx context.Context, refreshToken string) (model.Credential, error) {
	body, err := marshalBody(model.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return model.Credential{}, err
	}

	resp, err := a.send(ctx, http.MethodPost, refreshPath, nil, body, "")
	if err != nil {
		return model.Credential{}, err
	}

	if !resp.ok() {
		if resp.StatusCode == http.StatusUnauthorized {
			return model.Credential{}, model.ErrUnauthorized
		}
		return model.Credential{}, statusError(resp)
	}

	return decodeCredential(resp.Body)
}

func decodeCredential(data []byte) (model.Credential, error) {
	var tr model.TokenResponse
	if err := decode(data, &tr); err != nil {
		return model.Credential{}, err
	}
	if tr.Token == "" || tr.RefreshToken == "" {
		return model.Credential{}, fmt.Errorf("%w: %w", model.ErrDecoding, errEmptyToken)
	}
	return tr.Credential(), nil
}

// Authenticate logs in with username and password and stores the issued
// credential in the token source.
func (c *Client) Authenticate(ctx context.Context, username, password string) (model.Credential, error) {
	body, err := marshalBody(model.LoginRequest{Username: username, Password: password})
	if err != nil {
		return model.Credential{}, err
	}

	resp, err := c.send(ctx, http.MethodPost, loginPath, nil, body, "")
	if err != nil {
		return model.Credential{}, err
	}

	if !resp.ok() {
		c.logger.Info("API client: login rejected", "status", resp.StatusCode)
		return model.Credential{}, loginStatusError(resp)
	}

	cred, err := decodeCredential(resp.Body)
	if err != nil {
		return model.Credential{}, err
	}

	if err := c.tokens.Save(ctx, cred.AccessToken, cred.RefreshToken); err != nil {
		return model.Credential{}, fmt.Errorf("failed to store credential: %w", err)
	}

	c.logger.Info("API client: logged in", "username", username)
	return cred, nil
}
