package data

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/c360/openc2/errors"
)

const noPrefix = -1

// IPv4Net is an IPv4 address with an optional CIDR prefix length. Without a
// prefix it addresses a single host.
type IPv4Net struct {
	addr      netip.Addr
	prefixLen int
}

// NewIPv4Net builds an IPv4Net from an address and a prefix length; pass a
// negative prefix length to address a single host.
func NewIPv4Net(addr netip.Addr, prefixLen int) (IPv4Net, error) {
	if !addr.Is4() {
		return IPv4Net{}, errors.Validation("address is not IPv4")
	}
	if prefixLen > 32 {
		return IPv4Net{}, errors.Validation("prefix length must be between 0 and 32")
	}
	if prefixLen < 0 {
		prefixLen = noPrefix
	}
	return IPv4Net{addr: addr, prefixLen: prefixLen}, nil
}

// ParseIPv4Net parses "a.b.c.d" or "a.b.c.d/nn".
func ParseIPv4Net(s string) (IPv4Net, error) {
	addr, prefixLen, err := parseIPNet(s, 32)
	if err != nil {
		return IPv4Net{}, err
	}
	return NewIPv4Net(addr, prefixLen)
}

// Addr returns the network address.
func (n IPv4Net) Addr() netip.Addr {
	return n.addr
}

// PrefixLen returns the prefix length and whether one was set.
func (n IPv4Net) PrefixLen() (int, bool) {
	return n.prefixLen, n.prefixLen != noPrefix
}

// String returns the canonical wire form.
func (n IPv4Net) String() string {
	return formatIPNet(n.addr, n.prefixLen)
}

// MarshalText implements encoding.TextMarshaler.
func (n IPv4Net) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *IPv4Net) UnmarshalText(text []byte) error {
	parsed, err := ParseIPv4Net(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// IPv6Net is an IPv6 address with an optional CIDR prefix length.
type IPv6Net struct {
	addr      netip.Addr
	prefixLen int
}

// NewIPv6Net builds an IPv6Net from an address and a prefix length; pass a
// negative prefix length to address a single host.
func NewIPv6Net(addr netip.Addr, prefixLen int) (IPv6Net, error) {
	if !addr.Is6() || addr.Is4In6() {
		return IPv6Net{}, errors.Validation("address is not IPv6")
	}
	if prefixLen > 128 {
		return IPv6Net{}, errors.Validation("prefix length must be between 0 and 128")
	}
	if prefixLen < 0 {
		prefixLen = noPrefix
	}
	return IPv6Net{addr: addr, prefixLen: prefixLen}, nil
}

// ParseIPv6Net parses an IPv6 address with an optional "/nn" prefix.
func ParseIPv6Net(s string) (IPv6Net, error) {
	addr, prefixLen, err := parseIPNet(s, 128)
	if err != nil {
		return IPv6Net{}, err
	}
	return NewIPv6Net(addr, prefixLen)
}

// Addr returns the network address.
func (n IPv6Net) Addr() netip.Addr {
	return n.addr
}

// PrefixLen returns the prefix length and whether one was set.
func (n IPv6Net) PrefixLen() (int, bool) {
	return n.prefixLen, n.prefixLen != noPrefix
}

// String returns the canonical wire form.
func (n IPv6Net) String() string {
	return formatIPNet(n.addr, n.prefixLen)
}

// MarshalText implements encoding.TextMarshaler.
func (n IPv6Net) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *IPv6Net) UnmarshalText(text []byte) error {
	parsed, err := ParseIPv6Net(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func parseIPNet(s string, maxPrefix int) (netip.Addr, int, error) {
	addrStr, prefixStr, hasPrefix := strings.Cut(s, "/")
	addr, err := netip.ParseAddr(addrStr)
	if err != nil {
		return netip.Addr{}, 0, errors.Validationf("invalid IP address: %v", err)
	}
	if !hasPrefix {
		return addr, noPrefix, nil
	}
	prefixLen, err := strconv.Atoi(prefixStr)
	if err != nil || prefixLen < 0 || prefixLen > maxPrefix {
		return netip.Addr{}, 0, errors.Validationf("prefix length must be between 0 and %d", maxPrefix)
	}
	return addr, prefixLen, nil
}

func formatIPNet(addr netip.Addr, prefixLen int) string {
	if prefixLen == noPrefix {
		return addr.String()
	}
	return fmt.Sprintf("%s/%d", addr, prefixLen)
}
