package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoice_RoundTrip(t *testing.T) {
	choice := NewChoice[Nsid]("slpf", map[string]any{"rule_number": float64(31)})

	raw, err := json.Marshal(choice)
	require.NoError(t, err)
	assert.JSONEq(t, `{"slpf":{"rule_number":31}}`, string(raw))

	var parsed Choice[Nsid, map[string]any]
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, choice, parsed)
}

func TestChoice_UnmarshalRejectsEmpty(t *testing.T) {
	var parsed Choice[string, any]
	err := json.Unmarshal([]byte(`{}`), &parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a single key-value pair")
}

func TestChoice_UnmarshalRejectsMultiple(t *testing.T) {
	var parsed Choice[string, any]
	err := json.Unmarshal([]byte(`{"a":1,"b":2}`), &parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a single key-value pair")
}

func TestChoice_Nested(t *testing.T) {
	var parsed Choice[Nsid, Choice[string, Value]]
	require.NoError(t, json.Unmarshal([]byte(`{"crwd":{"hostgroup":{"id":"hg-1"}}}`), &parsed))
	assert.Equal(t, Nsid("crwd"), parsed.Key)
	assert.Equal(t, "hostgroup", parsed.Value.Key)

	var payload struct {
		ID string `json:"id"`
	}
	require.NoError(t, parsed.Value.Value.ToTyped(&payload))
	assert.Equal(t, "hg-1", payload.ID)
}
