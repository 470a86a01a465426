package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ContractorID identifies a contractor. Server ids are integers on the wire;
// ids generated on the device before the server assigned one are UUIDs.
type ContractorID string

// IsServerAssigned reports whether the id is a server-issued integer in
// canonical decimal form. "007" and "+5" are not.
func (id ContractorID) IsServerAssigned() bool {
	if id == "" {
		return false
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

func (id ContractorID) String() string {
	return string(id)
}

// MarshalJSON writes server ids as JSON numbers and everything else as strings.
func (id ContractorID) MarshalJSON() ([]byte, error) {
	if id.IsServerAssigned() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts both numeric and string ids.
func (id *ContractorID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ContractorID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("contractor id: %w", err)
	}
	*id = ContractorID(n.String())
	return nil
}

// Contractor is a counterparty business record.
type Contractor struct {
	ID        ContractorID `json:"id"`
	Name      string       `json:"name"`
	FullName  string       `json:"fullName,omitempty"`
	INN       string       `json:"inn"`
	KPP       string       `json:"kpp,omitempty"`
	UpdatedAt time.Time    `json:"-"`
}

// CreateContractorRequest is the body of POST /counterparty/add.
type CreateContractorRequest struct {
	FullName string `json:"fullName,omitempty"`
	Name     string `json:"name"`
	INN      string `json:"inn"`
	KPP      string `json:"kpp,omitempty"`
}

// UpdateContractorRequest is the body of POST /counterparty/edit.
type UpdateContractorRequest struct {
	ID       ContractorID `json:"id"`
	FullName string       `json:"fullName,omitempty"`
	Name     string       `json:"name"`
	INN      string       `json:"inn"`
	KPP      string       `json:"kpp,omitempty"`
}

// MutationResult is the normalized outcome of an add or edit call.
type MutationResult struct {
	IDs []ContractorID
	// Accepted is set when the server confirmed the change without
	// returning ids.
	Accepted bool
	Message  string
}

// ContractorBatch is a set of local changes applied in one transaction.
type ContractorBatch struct {
	Upserts []Contractor
	Deletes []ContractorID
}

// IsEmpty reports whether the batch carries no changes.
func (b ContractorBatch) IsEmpty() bool {
	return len(b.Upserts) == 0 && len(b.Deletes) == 0
}
