package data

import (
	"bytes"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"

	"github.com/c360/openc2/errors"
)

// Encoding identifies the wire representation a Value was captured in.
type Encoding int

const (
	// EncodingJSON is a JSON document tree.
	EncodingJSON Encoding = iota
	// EncodingCBOR is a CBOR document tree.
	EncodingCBOR
)

// String returns the string representation of Encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingJSON:
		return "json"
	case EncodingCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// Value is an opaque payload for open extension points: profile-defined
// targets, args extensions, and results extensions. It captures the raw wire
// bytes at decode time along with their encoding so the payload can later be
// converted into a strongly typed structure with ToTyped, without the core
// ever interpreting it.
//
// The zero Value is empty; converting it fails with a codec error.
type Value struct {
	enc Encoding
	raw []byte
}

// FromTyped serializes a strongly typed structure into a Value using the
// given encoding. Failures are reported as codec errors.
func FromTyped(enc Encoding, in any) (Value, error) {
	var raw []byte
	var err error
	switch enc {
	case EncodingJSON:
		raw, err = json.Marshal(in)
	case EncodingCBOR:
		raw, err = cbor.Marshal(in)
	default:
		return Value{}, errors.Codec("unknown value encoding")
	}
	if err != nil {
		return Value{}, errors.CodecErr(err)
	}
	return Value{enc: enc, raw: raw}, nil
}

// ToTyped converts the captured payload into the strongly typed structure
// pointed to by out. Mismatches between the payload and the target type are
// reported as codec errors.
func (v Value) ToTyped(out any) error {
	if v.IsZero() {
		return errors.Codec("empty value")
	}
	var err error
	switch v.enc {
	case EncodingJSON:
		err = json.Unmarshal(v.raw, out)
	case EncodingCBOR:
		err = cbor.Unmarshal(v.raw, out)
	}
	if err != nil {
		return errors.CodecErr(err)
	}
	return nil
}

// Encoding returns the encoding the payload was captured in.
func (v Value) Encoding() Encoding {
	return v.enc
}

// IsZero reports whether the value holds no payload.
func (v Value) IsZero() bool {
	return len(v.raw) == 0
}

// Equal reports whether two values hold byte-identical payloads in the same
// encoding.
func (v Value) Equal(other Value) bool {
	return v.enc == other.enc && bytes.Equal(v.raw, other.raw)
}

// MarshalJSON emits the payload as a JSON tree, transcoding from CBOR when
// necessary. An empty value marshals as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}
	if v.enc == EncodingJSON {
		return v.raw, nil
	}
	var tree any
	if err := cbor.Unmarshal(v.raw, &tree); err != nil {
		return nil, errors.CodecErr(err)
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.CodecErr(err)
	}
	return out, nil
}

// UnmarshalJSON captures the raw JSON tree without interpreting it.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.enc = EncodingJSON
	v.raw = append(v.raw[:0], data...)
	return nil
}

// MarshalCBOR emits the payload as a CBOR tree, transcoding from JSON when
// necessary.
func (v Value) MarshalCBOR() ([]byte, error) {
	if v.IsZero() {
		return cbor.Marshal(nil)
	}
	if v.enc == EncodingCBOR {
		return v.raw, nil
	}
	var tree any
	if err := json.Unmarshal(v.raw, &tree); err != nil {
		return nil, errors.CodecErr(err)
	}
	out, err := cbor.Marshal(tree)
	if err != nil {
		return nil, errors.CodecErr(err)
	}
	return out, nil
}

// UnmarshalCBOR captures the raw CBOR tree without interpreting it.
func (v *Value) UnmarshalCBOR(data []byte) error {
	v.enc = EncodingCBOR
	v.raw = append(v.raw[:0], data...)
	return nil
}
