package data

import (
	"net"

	"github.com/c360/openc2/errors"
)

// MacAddr is a MAC address in either EUI-48 or EUI-64 format.
type MacAddr struct {
	addr net.HardwareAddr
}

// ParseMacAddr parses a MAC address; only 6- and 8-octet addresses are
// accepted.
func ParseMacAddr(s string) (MacAddr, error) {
	addr, err := net.ParseMAC(s)
	if err != nil {
		return MacAddr{}, errors.Validationf("invalid MAC address: %v", err)
	}
	if len(addr) != 6 && len(addr) != 8 {
		return MacAddr{}, errors.Validation("MAC address must be EUI-48 or EUI-64")
	}
	return MacAddr{addr: addr}, nil
}

// IsEUI64 reports whether the address is in 8-octet EUI-64 format.
func (m MacAddr) IsEUI64() bool {
	return len(m.addr) == 8
}

// HardwareAddr returns the underlying address bytes.
func (m MacAddr) HardwareAddr() net.HardwareAddr {
	return m.addr
}

// String returns the canonical colon-separated form.
func (m MacAddr) String() string {
	return m.addr.String()
}

// MarshalText implements encoding.TextMarshaler.
func (m MacAddr) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MacAddr) UnmarshalText(text []byte) error {
	parsed, err := ParseMacAddr(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
