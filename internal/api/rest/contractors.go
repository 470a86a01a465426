package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/dtroode/counterparty-client/internal/model"
)

const (
	contractorsPath      = "/counterparty"
	addContractorPath    = "/counterparty/add"
	updateContractorPath = "/counterparty/edit"
)

// ListContractors returns the full remote contractor list.
func (c *Client) ListContractors(ctx context.Context) ([]model.Contractor, error) {
	list, err := Call[[]model.Contractor](ctx, c, Request{Method: http.MethodGet, Path: contractorsPath})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CreateContractor adds a contractor remotely.
func (c *Client) CreateContractor(ctx context.Context, req model.CreateContractorRequest) (model.MutationResult, error) {
	return c.mutate(ctx, addContractorPath, req)
}

// UpdateContractor edits a contractor remotely.
func (c *Client) UpdateContractor(ctx context.Context, req model.UpdateContractorRequest) (model.MutationResult, error) {
	return c.mutate(ctx, updateContractorPath, req)
}

func (c *Client) mutate(ctx context.Context, path string, body any) (model.MutationResult, error) {
	raw, err := Call[json.RawMessage](ctx, c, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		if result, ok := AcceptedFromError(err); ok {
			c.logger.Warn("API client: mutation reported success with error status",
				"path", path)
			return result, nil
		}
		return model.MutationResult{}, err
	}
	return ParseMutationResult(raw)
}

// ParseMutationResult decodes the body of an add or edit response. The
// server answers with either a bare id array, an object of id arrays, or a
// {"success": ..., "message": ...} object. An empty body counts as accepted.
// Only integer ids are taken from the body; anything else is a decoding error.
func ParseMutationResult(data []byte) (model.MutationResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return model.MutationResult{Accepted: true}, nil
	}

	if data[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return model.MutationResult{}, fmt.Errorf("%w: %w", model.ErrDecoding, err)
		}
		return parseMutationObject(fields)
	}

	ids, err := serverIDs(data)
	if err != nil {
		return model.MutationResult{}, fmt.Errorf("%w: %w", model.ErrDecoding, err)
	}
	return model.MutationResult{IDs: ids}, nil
}

func parseMutationObject(fields map[string]json.RawMessage) (model.MutationResult, error) {
	var result model.MutationResult

	if raw, ok := fields["success"]; ok {
		if err := json.Unmarshal(raw, &result.Accepted); err != nil {
			return model.MutationResult{}, fmt.Errorf("%w: success flag: %w", model.ErrDecoding, err)
		}
		if raw, ok := fields["message"]; ok {
			_ = json.Unmarshal(raw, &result.Message)
		}
		return result, nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Values that are not integer ids (warnings, validation messages) are skipped.
	for _, key := range keys {
		ids, err := serverIDs(fields[key])
		if err != nil {
			continue
		}
		result.IDs = append(result.IDs, ids...)
	}

	if len(result.IDs) == 0 {
		return model.MutationResult{}, fmt.Errorf("%w: no contractor ids in response", model.ErrDecoding)
	}
	return result, nil
}

// serverIDs decodes a single id or an array of ids, accepting only
// server-assigned integer ids.
func serverIDs(raw json.RawMessage) ([]model.ContractorID, error) {
	raw = bytes.TrimSpace(raw)

	var ids []model.ContractorID
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, err
		}
	} else {
		var id model.ContractorID
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
		ids = []model.ContractorID{id}
	}

	if len(ids) == 0 {
		return nil, errors.New("empty id list")
	}
	for _, id := range ids {
		if !id.IsServerAssigned() {
			return nil, fmt.Errorf("not a contractor id: %q", id.String())
		}
	}
	return ids, nil
}

// AcceptedFromError recognizes an error response whose body nevertheless
// reports success, which the add and edit endpoints are known to send.
func AcceptedFromError(err error) (model.MutationResult, bool) {
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		return model.MutationResult{}, false
	}

	result, parseErr := ParseMutationResult(httpErr.Body)
	if parseErr != nil || !result.Accepted || len(bytes.TrimSpace(httpErr.Body)) == 0 {
		return model.MutationResult{}, false
	}
	return result, true
}
