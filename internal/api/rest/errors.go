package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/counterparty-client/internal/model"
)

// statusError maps a non-2xx response that has no dedicated handling.
func statusError(resp response) error {
	return &model.HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
}

// loginStatusError maps a failed login. The login endpoint answers bad
// credentials with 400, 401 or 500 depending on the failure.
func loginStatusError(resp response) error {
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError:
		return model.ErrUnauthorized
	case http.StatusForbidden:
		return model.ErrAccessDenied
	default:
		return statusError(resp)
	}
}

// tokenError maps a failure to obtain an access token. A missing or
// rejected credential becomes model.ErrUnauthorized; transient refresh
// failures keep their own kind.
func tokenError(err error) error {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return model.ErrUnauthorized
	case errors.Is(err, model.ErrNoCredential):
		return fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	default:
		return err
	}
}
