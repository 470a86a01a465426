package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/counterparty-client/internal/logger"
	"github.com/dtroode/counterparty-client/internal/model"
)

// LogoutListener is notified after the session ends.
type LogoutListener func(ctx context.Context, reason model.LogoutReason)

// Session is the application-wide authentication state.
type Session struct {
	tokens model.TokenManager
	logger *logger.Logger

	mu            sync.RWMutex
	authenticated bool
	listeners     []LogoutListener
}

func NewSession(tokens model.TokenManager, logger *logger.Logger) *Session {
	return &Session{
		tokens: tokens,
		logger: logger,
	}
}

func (s *Session) MarkAuthenticated() {
	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// OnLogout registers fn to run on every logout, in registration order.
func (s *Session) OnLogout(fn LogoutListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// ForceLogout clears the stored credential and notifies listeners. Listeners
// run even when clearing fails.
func (s *Session) ForceLogout(ctx context.Context, reason model.LogoutReason) error {
	s.logger.Info("Session: logging out", "reason", string(reason))

	err := s.tokens.Clear(ctx)
	if err != nil {
		s.logger.Error("Session: failed to clear credential",
			"reason", string(reason),
			"error", err.Error())
		err = fmt.Errorf("failed to clear credential: %w", err)
	}

	s.mu.Lock()
	s.authenticated = false
	listeners := make([]LogoutListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, reason)
	}

	return err
}
