package message

import (
	"encoding/json"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
)

// Notification is a one-way event: no response is expected and no
// additional constraint applies at this layer. Its content is
// profile-defined.
type Notification struct {
	Extensions data.Extensions
}

// MarshalJSON implements json.Marshaler.
func (n Notification) MarshalJSON() ([]byte, error) {
	if n.Extensions.IsEmpty() {
		return []byte("{}"), nil
	}
	return json.Marshal(n.Extensions)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Notification) UnmarshalJSON(raw []byte) error {
	var ext data.Extensions
	if err := json.Unmarshal(raw, &ext); err != nil {
		return errors.CodecErr(err)
	}
	if len(ext) == 0 {
		ext = nil
	}
	n.Extensions = ext
	return nil
}
