package model

// LoginRequest is the body of POST /login_check.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /token/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by both the login and the refresh endpoints.
type TokenResponse struct {
	Token                  string `json:"token"`
	RefreshToken           string `json:"refresh_token"`
	RefreshTokenExpiration int64  `json:"refresh_token_expiration"`
}

// Credential converts the response into a credential pair.
func (r TokenResponse) Credential() Credential {
	return Credential{AccessToken: r.Token, RefreshToken: r.RefreshToken}
}
