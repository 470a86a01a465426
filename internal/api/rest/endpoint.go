package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dtroode/counterparty-client/internal/metrics"
	"github.com/dtroode/counterparty-client/internal/model"
)

const maxResponseBody = 10 << 20

// endpoint sends JSON requests to the API base URL.
type endpoint struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

type response struct {
	StatusCode int
	Body       []byte
}

func (r response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (e *endpoint) url(path string, query url.Values) string {
	u := e.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// send performs the request and reads the whole response. Transport
// failures are reported as model.ErrNetwork unless ctx ended.
func (e *endpoint) send(ctx context.Context, method, path string, query url.Values, body []byte, bearer string) (response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.url(path, query), reader)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.metrics.HTTPResponse(method, 0)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return response{}, ctxErr
		}
		return response{}, fmt.Errorf("%w: %w", model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	e.metrics.HTTPResponse(method, resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return response{}, fmt.Errorf("%w: reading response: %w", model.ErrNetwork, err)
	}

	return response{StatusCode: resp.StatusCode, Body: data}, nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

// decode unmarshals a successful response body into out. A nil out
// discards the body; a *json.RawMessage receives it unparsed.
func decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", model.ErrDecoding, err)
	}
	return nil
}

var errEmptyToken = errors.New("response carries no token")
