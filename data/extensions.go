package data

import (
	"github.com/c360/openc2/errors"
)

// Extensions maps profile namespaces to opaque payloads. Profiles attach
// their own structures to commands and results through this map; the core
// never interprets the payloads.
type Extensions map[Nsid]Value

// IsEmpty reports whether no extensions are present.
func (e Extensions) IsEmpty() bool {
	return len(e) == 0
}

// Contains reports whether an extension exists for the given namespace.
func (e Extensions) Contains(key Nsid) bool {
	_, ok := e[key]
	return ok
}

// GetRaw returns the raw payload for a namespace, if present.
func (e Extensions) GetRaw(key Nsid) (Value, bool) {
	v, ok := e[key]
	return v, ok
}

// GetExtension extracts the extension payload for a namespace into T.
// The second return is false when the namespace is absent; a present payload
// that does not convert reports a codec error.
func GetExtension[T any](e Extensions, key Nsid) (T, bool, error) {
	var out T
	raw, ok := e[key]
	if !ok {
		return out, false, nil
	}
	if err := raw.ToTyped(&out); err != nil {
		return out, true, err
	}
	return out, true, nil
}

// RequireExtension is like GetExtension but fails when the namespace is
// absent.
func RequireExtension[T any](e Extensions, key Nsid) (T, error) {
	out, ok, err := GetExtension[T](e, key)
	if err != nil {
		return out, err
	}
	if !ok {
		return out, errors.Codec("extension '" + string(key) + "' is required")
	}
	return out, nil
}

// SetExtension serializes v under the given namespace using the encoding.
func SetExtension[T any](e Extensions, enc Encoding, key Nsid, v T) error {
	value, err := FromTyped(enc, v)
	if err != nil {
		return err
	}
	e[key] = value
	return nil
}
