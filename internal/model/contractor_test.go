package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractorID_IsServerAssigned(t *testing.T) {
	tests := []struct {
		id   ContractorID
		want bool
	}{
		{id: "7", want: true},
		{id: "0", want: true},
		{id: "-3", want: true},
		{id: "", want: false},
		{id: "007", want: false},
		{id: "+5", want: false},
		{id: "kpp ignored", want: false},
		{id: "0b7c6a4e-0000-4000-8000-000000000000", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.IsServerAssigned())
		})
	}
}

func TestContractorID_MarshalJSON(t *testing.T) {
	tests := []struct {
		id   ContractorID
		want string
	}{
		{id: "42", want: `42`},
		{id: "007", want: `"007"`},
		{id: "+5", want: `"+5"`},
		{id: "local-1", want: `"local-1"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			data, err := json.Marshal(UpdateContractorRequest{ID: tt.id})
			require.NoError(t, err)

			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &fields))
			assert.Equal(t, tt.want, string(fields["id"]))
		})
	}
}

func TestContractorID_UnmarshalJSON(t *testing.T) {
	var got struct {
		A ContractorID `json:"a"`
		B ContractorID `json:"b"`
		C ContractorID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12,"b":"13","c":null}`), &got))
	assert.Equal(t, ContractorID("12"), got.A)
	assert.Equal(t, ContractorID("13"), got.B)
	assert.Equal(t, ContractorID(""), got.C)
}
