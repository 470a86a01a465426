package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/counterparty-client/internal/mocks"
	"github.com/dtroode/counterparty-client/internal/model"
	"github.com/dtroode/counterparty-client/internal/testutil"
)

func TestSession_ForceLogout(t *testing.T) {
	ctx := context.Background()
	tokens := mocks.NewTokenManager(t)
	tokens.On("Clear", mock.Anything).Return(nil).Once()

	s := NewSession(tokens, testutil.MakeNoopLogger())
	s.MarkAuthenticated()
	require.True(t, s.IsAuthenticated())

	var reasons []model.LogoutReason
	s.OnLogout(func(_ context.Context, reason model.LogoutReason) { reasons = append(reasons, reason) })
	s.OnLogout(func(_ context.Context, reason model.LogoutReason) { reasons = append(reasons, "second:"+reason) })

	require.NoError(t, s.ForceLogout(ctx, model.LogoutUnauthorized))
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, []model.LogoutReason{model.LogoutUnauthorized, "second:" + model.LogoutUnauthorized}, reasons)
}

func TestSession_ForceLogout_ClearFails(t *testing.T) {
	ctx := context.Background()
	clearErr := errors.New("keyring locked")
	tokens := mocks.NewTokenManager(t)
	tokens.On("Clear", mock.Anything).Return(clearErr)

	s := NewSession(tokens, testutil.MakeNoopLogger())
	s.MarkAuthenticated()

	notified := false
	s.OnLogout(func(context.Context, model.LogoutReason) { notified = true })

	err := s.ForceLogout(ctx, model.LogoutUser)
	assert.ErrorIs(t, err, clearErr)
	assert.True(t, notified)
	assert.False(t, s.IsAuthenticated())
}
