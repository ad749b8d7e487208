package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/openc2/message"
)

const validCapabilities = `
capabilities:
  - profile: er
    actions:
      scan: [file, device]
      query: [features]
  - actions:
      delete: [file]
`

func TestLoadCapabilities(t *testing.T) {
	opts, err := LoadCapabilities(strings.NewReader(validCapabilities))
	require.NoError(t, err)

	reg := NewRegistration(&echoConsumer{name: "a"}, opts...)
	assert.True(t, reg.Matches(message.ActionScan, message.TargetTypeFile, "er"))
	assert.True(t, reg.Matches(message.ActionScan, message.TargetTypeDevice, "er"))
	assert.True(t, reg.Matches(message.ActionQuery, message.TargetTypeFeatures, "er"))
	assert.True(t, reg.Matches(message.ActionDelete, message.TargetTypeFile, ""))
	assert.False(t, reg.Matches(message.ActionDelete, message.TargetTypeFile, "er"))
	assert.Equal(t, []string{"er"}, nsidsToStrings(reg.Profiles()))
}

func TestLoadCapabilities_ProfileDefinedTargets(t *testing.T) {
	opts, err := LoadCapabilities(strings.NewReader(`
capabilities:
  - profile: er
    actions:
      deny: [er/account, er/service]
`))
	require.NoError(t, err)

	reg := NewRegistration(&echoConsumer{name: "a"}, opts...)
	assert.True(t, reg.Matches(message.ActionDeny, message.ProfileTargetType("er", "account"), "er"))
	assert.True(t, reg.Matches(message.ActionDeny, message.ProfileTargetType("er", "service"), "er"))
}

func TestLoadCapabilities_RejectsMalformedShape(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing capabilities", doc: `other: 1`},
		{name: "empty actions", doc: "capabilities:\n  - actions: {}\n"},
		{name: "unknown field", doc: "capabilities:\n  - actions:\n      scan: [file]\n    extra: true\n"},
		{name: "not yaml", doc: `{{`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadCapabilities(strings.NewReader(test.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadCapabilities_RejectsBadIdentifiers(t *testing.T) {
	_, err := LoadCapabilities(strings.NewReader(`
capabilities:
  - profile: thisprofilenameiswaytoolong
    actions:
      scan: [file]
`))
	require.Error(t, err)

	_, err = LoadCapabilities(strings.NewReader(`
capabilities:
  - actions:
      scan: [no_such_kind]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capabilities[0]")
}

func nsidsToStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
