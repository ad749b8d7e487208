package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
)

func TestStatusCode_Text(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.Text())
	assert.Equal(t, "Processing", StatusProcessing.Text())
	assert.Equal(t, "Not Implemented", StatusNotImplemented.Text())
	assert.Equal(t, "Status 418", StatusCode(418).Text())
}

func TestStatusCode_Classification(t *testing.T) {
	assert.True(t, StatusProcessing.IsInterim())
	assert.False(t, StatusOK.IsInterim())
	assert.True(t, StatusBadRequest.IsError())
	assert.True(t, StatusServiceUnavailable.IsError())
	assert.False(t, StatusOK.IsError())
}

func TestResponseFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected StatusCode
	}{
		{name: "validation", err: errors.Validation("bad field"), expected: StatusBadRequest},
		{name: "not implemented", err: errors.NotImplemented("no handler"), expected: StatusNotImplemented},
		{name: "custom", err: errors.Custom("boom"), expected: StatusInternalError},
		{name: "codec", err: errors.Codec("bad payload"), expected: StatusInternalError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := ResponseFromError(test.err)
			assert.Equal(t, test.expected, resp.Status)
			assert.NotEmpty(t, resp.StatusText)
		})
	}
}

func TestResponse_CheckRequiresStatus(t *testing.T) {
	resp := Response{}
	acc := errors.NewAccumulator()
	resp.Check(acc)
	err := acc.Finish()
	require.Error(t, err)
	assert.Equal(t, "status", errors.From(err).Path().String())
}

func TestResults_RoundTrip(t *testing.T) {
	pairs := make(ActionTargets)
	pairs.Add(ActionScan, TargetTypeFile)

	results := Results{
		Versions: []data.Version{{Major: 2, Minor: 0}},
		Profiles: []data.Nsid{data.NsidER},
		Pairs:    pairs,
	}

	raw, err := json.Marshal(results)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"versions": ["2.0"],
		"profiles": ["er"],
		"pairs": {"scan": ["file"]}
	}`, string(raw))

	var decoded Results
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, results, decoded)
}

func TestResults_ExtensionsFlatten(t *testing.T) {
	ext := make(data.Extensions)
	require.NoError(t, data.SetExtension(ext, data.EncodingJSON, data.NsidER, map[string]bool{
		"contained": true,
	}))
	results := Results{Extensions: ext}

	raw, err := json.Marshal(results)
	require.NoError(t, err)
	assert.JSONEq(t, `{"er": {"contained": true}}`, string(raw))

	var decoded Results
	require.NoError(t, json.Unmarshal(raw, &decoded))
	state, ok, err := data.GetExtension[map[string]bool](decoded.Extensions, data.NsidER)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, state["contained"])
}
