package model

import "context"

// TokenRefresher exchanges a refresh token for a new credential pair.
type TokenRefresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (Credential, error)
}

// TokenManager owns the stored credential pair and its refresh lifecycle.
type TokenManager interface {
	LoadSaved(ctx context.Context) (Credential, bool)
	Save(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
	GetValidAccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (Credential, error)
}

// ClaimsDecoder decodes access token claims and memoizes the result.
type ClaimsDecoder interface {
	Decode(token string) (Claims, error)
	Remove(token string)
	Clear()
}
