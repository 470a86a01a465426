package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/model"
)

type Auth struct {
	api     model.Authenticator
	tokens  model.TokenManager
	session *Session
	logger  *logger.Logger
}

func NewAuth(
	api model.Authenticator,
	tokens model.TokenManager,
	session *Session,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		api:     api,
		tokens:  tokens,
		session: session,
		logger:  logger,
	}
}

// Login authenticates against the remote API. The credential is persisted by
// the authenticator.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", model.ErrValidation)
	}

	a.logger.Debug("Auth service: logging in", "username", username)

	if _, err := a.api.Authenticate(ctx, username, password); err != nil {
		a.logger.Info("Auth service: login failed",
			"username", username,
			"error", err.Error())
		return err
	}

	a.session.MarkAuthenticated()
	a.logger.Info("Auth service: logged in", "username", username)
	return nil
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.session.ForceLogout(ctx, model.LogoutUser)
}

// IsAuthenticated reports whether a stored credential exists and syncs the
// session flag with it.
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	if _, ok := a.tokens.LoadSaved(ctx); !ok {
		return false
	}
	a.session.MarkAuthenticated()
	return true
}
