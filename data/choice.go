package data

import (
	"encoding/json"

	"github.com/c360/openc2/errors"
)

// Choice is a map guaranteed to contain exactly one key-value pair. It is
// the wire primitive for "one of an open set of named variants": the key
// names the variant, the value carries its payload. Deserializing a map with
// zero or more than one entry is a hard codec failure.
type Choice[K ~string, V any] struct {
	Key   K
	Value V
}

// NewChoice returns a Choice pairing key with value.
func NewChoice[K ~string, V any](key K, value V) Choice[K, V] {
	return Choice[K, V]{Key: key, Value: value}
}

// MarshalJSON serializes the choice as a single-entry object.
func (c Choice[K, V]) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(c.Value)
	if err != nil {
		return nil, errors.CodecErr(err)
	}
	return json.Marshal(map[string]json.RawMessage{string(c.Key): payload})
}

// UnmarshalJSON deserializes a single-entry object into the choice.
func (c *Choice[K, V]) UnmarshalJSON(data []byte) error {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return errors.CodecErr(err)
	}
	if len(entries) != 1 {
		return errors.Codec("expected a single key-value pair")
	}
	for key, raw := range entries {
		var value V
		if err := json.Unmarshal(raw, &value); err != nil {
			return errors.CodecErr(err)
		}
		c.Key = K(key)
		c.Value = value
	}
	return nil
}
