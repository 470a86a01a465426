package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/counterparty-client/internal/metrics"
	"github.com/dtroode/counterparty-client/internal/model"
)

// DefaultCacheSize is the number of decoded tokens kept by a Decoder.
const DefaultCacheSize = 10

var base64URLReplacer = strings.NewReplacer("-", "+", "_", "/")

// DecodeClaims extracts claims from the payload segment of a JWT. The
// signature is not verified: the token is only inspected to decide when to
// refresh it.
func DecodeClaims(token string) (model.Claims, error) {
	payload, err := decodePayload(token)
	if err != nil {
		return model.Claims{}, err
	}

	return model.Claims{
		ExpiresAt: expiresAt(payload),
		Roles:     roles(payload),
		Subject:   subject(payload),
	}, nil
}

func decodePayload(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, model.ErrTokenMalformed
	}

	segment := base64URLReplacer.Replace(parts[1])
	if rem := len(segment) % 4; rem != 0 {
		segment += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTokenInvalidBase64, err)
	}

	var claims jwt.MapClaims
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTokenInvalidJSON, err)
	}
	if claims == nil {
		return nil, model.ErrTokenInvalidJSON
	}

	return claims, nil
}

func expiresAt(claims jwt.MapClaims) time.Time {
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		return exp.Time
	}

	// Some issuers send exp as a numeric string.
	if s, ok := claims["exp"].(string); ok {
		if secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			whole := int64(secs)
			return time.Unix(whole, int64((secs-float64(whole))*float64(time.Second)))
		}
	}

	return time.Time{}
}

func roles(claims jwt.MapClaims) []string {
	if list, ok := stringSlice(claims["roles"]); ok {
		return list
	}

	if role, ok := claims["role"].(string); ok {
		return []string{role}
	}

	if joined, ok := claims["roles"].(string); ok {
		var out []string
		for _, part := range strings.Split(joined, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if out == nil {
			return []string{}
		}
		return out
	}

	return []string{}
}

func stringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}

	return out, true
}

func subject(claims jwt.MapClaims) string {
	if username, ok := claims["username"].(string); ok && username != "" {
		return username
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}

// Decoder decodes access token claims and memoizes them in a bounded cache.
type Decoder struct {
	cache   *Cache
	metrics *metrics.Metrics
}

var _ model.ClaimsDecoder = (*Decoder)(nil)

// NewDecoder creates a Decoder with a cache of DefaultCacheSize entries.
// m may be nil.
func NewDecoder(m *metrics.Metrics) *Decoder {
	return &Decoder{
		cache:   NewCache(DefaultCacheSize),
		metrics: m,
	}
}

// Decode returns the claims of token, from cache when possible.
func (d *Decoder) Decode(token string) (model.Claims, error) {
	if claims, ok := d.cache.Get(token); ok {
		d.metrics.ClaimsCacheLookup(true)
		return claims, nil
	}
	d.metrics.ClaimsCacheLookup(false)

	claims, err := DecodeClaims(token)
	if err != nil {
		return model.Claims{}, err
	}

	d.cache.Put(token, claims)
	return claims, nil
}

// Remove drops the cached claims of token.
func (d *Decoder) Remove(token string) {
	d.cache.Remove(token)
}

// Clear drops every cached entry.
func (d *Decoder) Clear() {
	d.cache.Clear()
}
