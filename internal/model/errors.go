package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrUnauthorized = errors.New("unauthorized")
	ErrAccessDenied = errors.New("access denied")
	ErrDecoding     = errors.New("failed to decode response")
	ErrNetwork      = errors.New("network error")

	ErrSecretNotFound     = errors.New("secret not found")
	ErrSecretSaveFailed   = errors.New("failed to save secret")
	ErrSecretReadFailed   = errors.New("failed to read secret")
	ErrSecretDeleteFailed = errors.New("failed to delete secret")

	ErrValidation          = errors.New("validation failed")
	ErrInvalidContractorID = errors.New("contractor id must be a server-assigned number")
	ErrRejected            = errors.New("rejected by server")
)

// HTTPError is returned for non-2xx responses that have no dedicated error kind.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}
