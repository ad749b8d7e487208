package data

import (
	"github.com/c360/openc2/errors"
)

// MaxNsidLength is the maximum length of a namespace identifier.
const MaxNsidLength = 16

// Nsid is a namespace identifier naming an actuator profile. Valid
// identifiers are at most 16 characters; construct through ParseNsid or
// MustNsid to enforce the bound.
type Nsid string

// Well-known profile namespaces.
const (
	// NsidSLPF is the stateless packet filtering profile.
	NsidSLPF Nsid = "slpf"
	// NsidSFPF is the stateful packet filtering profile.
	NsidSFPF Nsid = "sfpf"
	// NsidER is the endpoint response profile.
	NsidER Nsid = "er"
)

// ParseNsid validates s and returns it as an Nsid. Inputs longer than
// MaxNsidLength fail with a validation error.
func ParseNsid(s string) (Nsid, error) {
	if len(s) > MaxNsidLength {
		return "", errors.Validationf("NSID must be %d characters or fewer", MaxNsidLength)
	}
	return Nsid(s), nil
}

// MustNsid is like ParseNsid but panics on invalid input. Intended for
// package-level constants in profile implementations.
func MustNsid(s string) Nsid {
	n, err := ParseNsid(s)
	if err != nil {
		panic("data: invalid NSID: " + s)
	}
	return n
}

// String returns the identifier as a string.
func (n Nsid) String() string {
	return string(n)
}

// Valid reports whether the identifier satisfies the length bound.
func (n Nsid) Valid() bool {
	return len(n) <= MaxNsidLength
}

// MarshalText implements encoding.TextMarshaler, making Nsid usable as a
// JSON object key.
func (n Nsid) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, errors.Validationf("NSID must be %d characters or fewer", MaxNsidLength)
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, validating the length
// bound at the codec boundary.
func (n *Nsid) UnmarshalText(text []byte) error {
	parsed, err := ParseNsid(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
