package model

import "errors"

var (
	ErrTokenMalformed     = errors.New("token must have exactly three segments")
	ErrTokenInvalidBase64 = errors.New("token payload is not valid base64")
	ErrTokenInvalidJSON   = errors.New("token payload is not a JSON object")

	ErrNoCredential  = errors.New("no stored refresh token")
	ErrRefreshFailed = errors.New("token refresh failed")
)
