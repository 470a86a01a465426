package model

import "time"

// ValiditySkew is the margin subtracted from an access token expiry so that a
// token never expires while a request is in flight.
const ValiditySkew = 60 * time.Second

// Credential is the access/refresh token pair issued by the auth endpoints.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Claims holds the fields decoded from an access token payload.
type Claims struct {
	// ExpiresAt is zero when the token carries no decodable expiry.
	ExpiresAt time.Time
	Roles     []string
	// Subject is empty when neither username nor sub is present.
	Subject string
}

// HasExpiry reports whether the token carried a decodable expiry.
func (c Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// IsExpired reports whether the token is past its expiry. Tokens without an
// expiry count as expired.
func (c Claims) IsExpired(now time.Time) bool {
	if !c.HasExpiry() {
		return true
	}
	return !now.Before(c.ExpiresAt)
}

// IsValid reports whether the token expires strictly more than ValiditySkew
// after now.
func (c Claims) IsValid(now time.Time) bool {
	if !c.HasExpiry() {
		return false
	}
	return c.ExpiresAt.Sub(now) > ValiditySkew
}
