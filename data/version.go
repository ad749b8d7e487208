package data

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c360/openc2/errors"
)

// Version is an OpenC2 language version in "Major.Minor" form.
type Version struct {
	Major uint8
	Minor uint8
}

// ParseVersion parses a "Major.Minor" string.
func ParseVersion(s string) (Version, error) {
	majorStr, minorStr, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, errors.Validation("invalid version format")
	}
	major, err := strconv.ParseUint(majorStr, 10, 8)
	if err != nil {
		return Version{}, errors.Validationf("invalid version: %v", err).At(errors.Key("major"))
	}
	minor, err := strconv.ParseUint(minorStr, 10, 8)
	if err != nil {
		return Version{}, errors.Validationf("invalid version: %v", err).At(errors.Key("minor"))
	}
	return Version{Major: uint8(major), Minor: uint8(minor)}, nil
}

// String returns the "Major.Minor" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
