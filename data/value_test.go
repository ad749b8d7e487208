package data

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type containment struct {
	Mode    string   `json:"mode"`
	Allowed []string `json:"allowed,omitempty"`
}

func TestValue_JSONRoundTrip(t *testing.T) {
	original := containment{Mode: "network_isolation", Allowed: []string{"10.0.0.1"}}

	v, err := FromTyped(EncodingJSON, &original)
	require.NoError(t, err)
	assert.Equal(t, EncodingJSON, v.Encoding())

	var restored containment
	require.NoError(t, v.ToTyped(&restored))
	assert.Equal(t, original, restored)
}

func TestValue_CBORRoundTrip(t *testing.T) {
	original := containment{Mode: "app_restriction"}

	v, err := FromTyped(EncodingCBOR, &original)
	require.NoError(t, err)
	assert.Equal(t, EncodingCBOR, v.Encoding())

	var restored containment
	require.NoError(t, v.ToTyped(&restored))
	assert.Equal(t, original, restored)
}

func TestValue_ToTypedMismatch(t *testing.T) {
	v, err := FromTyped(EncodingJSON, []int{1, 2, 3})
	require.NoError(t, err)

	var out containment
	assert.Error(t, v.ToTyped(&out))
}

func TestValue_EmptyFails(t *testing.T) {
	var v Value
	assert.True(t, v.IsZero())

	var out any
	assert.Error(t, v.ToTyped(&out))
}

func TestValue_CapturesRawJSON(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"depth":"deep"}`), &v))

	var out map[string]string
	require.NoError(t, v.ToTyped(&out))
	assert.Equal(t, "deep", out["depth"])

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"depth":"deep"}`, string(raw))
}

func TestValue_TranscodesCBORToJSON(t *testing.T) {
	encoded, err := cbor.Marshal(map[string]any{"depth": "shallow"})
	require.NoError(t, err)

	var v Value
	require.NoError(t, v.UnmarshalCBOR(encoded))

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"depth":"shallow"}`, string(raw))
}
