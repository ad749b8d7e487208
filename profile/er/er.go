// Package er implements the endpoint-response actuator profile: targets
// and command arguments for containing, scanning, and remediating managed
// endpoints.
package er

import (
	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
	"github.com/c360/openc2/message"
)

// NS is the namespace identifier of the endpoint-response profile.
const NS = data.NsidER

// Profile-defined target type keys.
var (
	TargetTypeAccount       = message.ProfileTargetType(NS, "account")
	TargetTypeService       = message.ProfileTargetType(NS, "service")
	TargetTypeRegistryEntry = message.ProfileTargetType(NS, "registry_entry")
)

// Account is a user account on a managed endpoint.
type Account struct {
	UID         string `json:"uid,omitempty"`
	AccountName string `json:"account_name,omitempty"`
	Directory   string `json:"directory,omitempty"`
}

// Service is a managed operating-system service.
type Service struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// RegistryEntry is a Windows registry value.
type RegistryEntry struct {
	// Key is the full registry key including the hive.
	Key string `json:"key"`
	// ValueType is the registry value type as defined in the Winnt.h
	// header.
	ValueType string `json:"type"`
	Value     string `json:"value,omitempty"`
}

// Target is a target defined by the endpoint-response profile: exactly one
// of the fields is set.
type Target struct {
	Account       *Account
	Service       *Service
	RegistryEntry *RegistryEntry
}

// TargetAccount returns an account target.
func TargetAccount(a Account) Target { return Target{Account: &a} }

// TargetService returns a service target.
func TargetService(s Service) Target { return Target{Service: &s} }

// TargetRegistryEntry returns a registry-entry target.
func TargetRegistryEntry(r RegistryEntry) Target { return Target{RegistryEntry: &r} }

// Kind returns the target's type key.
func (t Target) Kind() message.TargetType {
	switch {
	case t.Account != nil:
		return TargetTypeAccount
	case t.Service != nil:
		return TargetTypeService
	case t.RegistryEntry != nil:
		return TargetTypeRegistryEntry
	default:
		return message.TargetType{}
	}
}

// variant returns the profile-local name and payload of the set variant.
func (t *Target) variant() (string, any) {
	switch {
	case t.Account != nil:
		return "account", t.Account
	case t.Service != nil:
		return "service", t.Service
	case t.RegistryEntry != nil:
		return "registry_entry", t.RegistryEntry
	default:
		return "", nil
	}
}

// Generic converts the profile target into a generic profile-defined
// target, encoding the payload with the given encoding.
func (t Target) Generic(enc data.Encoding) (message.Target, error) {
	name, payload := t.variant()
	if name == "" {
		return message.Target{}, errors.Validation("target has no variant set")
	}
	value, err := data.FromTyped(enc, payload)
	if err != nil {
		return message.Target{}, err
	}
	return message.TargetProfileDefined(NS, name, value), nil
}

// FromGeneric extracts a profile target from a generic one. It fails with
// a custom error when the target is not defined by this profile, and a
// codec error when the payload does not match the named type.
func FromGeneric(generic message.Target) (Target, error) {
	pd := generic.ProfileDefined
	if pd == nil || pd.Profile() != NS {
		return Target{}, errors.Custom("target is not defined by the ER profile")
	}

	var target Target
	var err error
	switch pd.TypeName() {
	case "account":
		var a Account
		err = pd.ToTyped(&a)
		target.Account = &a
	case "service":
		var s Service
		err = pd.ToTyped(&s)
		target.Service = &s
	case "registry_entry":
		var r RegistryEntry
		err = pd.ToTyped(&r)
		target.RegistryEntry = &r
	default:
		err = errors.Validationf("unknown ER target type %q", pd.TypeName())
	}
	if err != nil {
		return Target{}, err
	}
	return target, nil
}
