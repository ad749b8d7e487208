package message

import (
	"encoding/json"
	"strings"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
)

// Artifact is a data blob identified by content, reference, or digest.
type Artifact struct {
	MediaType string                `json:"media_type,omitempty"`
	Payload   *data.ArtifactPayload `json:"payload,omitempty"`
	Hashes    *data.Hashes          `json:"hashes,omitempty"`
}

// File is a file identified by name, path, or digest.
type File struct {
	Name   string       `json:"name,omitempty"`
	Hashes *data.Hashes `json:"hashes,omitempty"`
	Path   string       `json:"path,omitempty"`
}

// Device is an endpoint identified by hostname or device identifier.
type Device struct {
	Hostname    string `json:"hostname,omitempty"`
	IDNHostname string `json:"idn_hostname,omitempty"`
	DeviceID    string `json:"device_id,omitempty"`
}

// DeviceWithHostname returns a Device identified only by hostname.
func DeviceWithHostname(hostname string) Device {
	return Device{Hostname: hostname}
}

// Process is an operating-system process.
type Process struct {
	PID         int      `json:"pid,omitempty"`
	Name        string   `json:"name,omitempty"`
	CWD         string   `json:"cwd,omitempty"`
	Executable  *File    `json:"executable,omitempty"`
	Parent      *Process `json:"parent,omitempty"`
	CommandLine string   `json:"command_line,omitempty"`
}

// L4Protocol is a transport-layer protocol in a connection descriptor.
type L4Protocol string

// Transport-layer protocols.
const (
	ProtocolICMP L4Protocol = "icmp"
	ProtocolTCP  L4Protocol = "tcp"
	ProtocolUDP  L4Protocol = "udp"
	ProtocolSCTP L4Protocol = "sctp"
)

// IPv4Connection is a 5-tuple connection descriptor over IPv4.
type IPv4Connection struct {
	SrcAddr  *data.IPv4Net `json:"src_addr,omitempty"`
	SrcPort  *uint16       `json:"src_port,omitempty"`
	DstAddr  *data.IPv4Net `json:"dst_addr,omitempty"`
	DstPort  *uint16       `json:"dst_port,omitempty"`
	Protocol L4Protocol    `json:"protocol,omitempty"`
}

// IPv6Connection is a 5-tuple connection descriptor over IPv6.
type IPv6Connection struct {
	SrcAddr  *data.IPv6Net `json:"src_addr,omitempty"`
	SrcPort  *uint16       `json:"src_port,omitempty"`
	DstAddr  *data.IPv6Net `json:"dst_addr,omitempty"`
	DstPort  *uint16       `json:"dst_port,omitempty"`
	Protocol L4Protocol    `json:"protocol,omitempty"`
}

// Features is the list of capabilities named by a query-features command.
type Features []data.Feature

// Contains reports whether the list names the given feature.
func (f Features) Contains(feature data.Feature) bool {
	for _, have := range f {
		if have == feature {
			return true
		}
	}
	return false
}

// ProfileTarget is the open target variant: a profile namespace keyed to a
// type name keyed to an opaque payload. On the wire it nests two
// single-pair maps: {"<profile-nsid>": {"<type-name>": <value>}}.
type ProfileTarget struct {
	choice data.Choice[data.Nsid, data.Choice[string, data.Value]]
}

// NewProfileTarget builds a profile-defined target from its parts.
func NewProfileTarget(profile data.Nsid, typeName string, value data.Value) *ProfileTarget {
	return &ProfileTarget{
		choice: data.NewChoice(profile, data.NewChoice(typeName, value)),
	}
}

// Profile returns the namespace that defines this target.
func (p *ProfileTarget) Profile() data.Nsid {
	return p.choice.Key
}

// TypeName returns the profile-local type name.
func (p *ProfileTarget) TypeName() string {
	return p.choice.Value.Key
}

// Value returns the opaque payload.
func (p *ProfileTarget) Value() data.Value {
	return p.choice.Value.Value
}

// ToTyped extracts the payload into a strongly typed structure, reporting a
// codec error on mismatch.
func (p *ProfileTarget) ToTyped(out any) error {
	return p.choice.Value.Value.ToTyped(out)
}

// MarshalJSON implements json.Marshaler.
func (p ProfileTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.choice)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProfileTarget) UnmarshalJSON(raw []byte) error {
	if err := json.Unmarshal(raw, &p.choice); err != nil {
		return err
	}
	if !p.choice.Key.Valid() {
		return errors.Validationf("NSID must be %d characters or fewer", data.MaxNsidLength).
			At(errors.Key("profile"))
	}
	return nil
}

// Target is the object of a command's action: exactly one of the fields is
// set. Builtin kinds are statically typed; ProfileDefined carries an open
// payload for targets defined by an actuator profile.
type Target struct {
	Artifact       *Artifact
	Command        *data.CommandID
	Device         *Device
	DomainName     *data.DomainName
	Features       *Features
	File           *File
	IPv4Connection *IPv4Connection
	IPv6Connection *IPv6Connection
	IPv4Net        *data.IPv4Net
	IPv6Net        *data.IPv6Net
	MacAddr        *data.MacAddr
	Process        *Process
	URI            *string
	ProfileDefined *ProfileTarget
}

// Constructors for the common target kinds.

// TargetFile returns a file target.
func TargetFile(f File) Target { return Target{File: &f} }

// TargetDevice returns a device target.
func TargetDevice(d Device) Target { return Target{Device: &d} }

// TargetArtifact returns an artifact target.
func TargetArtifact(a Artifact) Target { return Target{Artifact: &a} }

// TargetProcess returns a process target.
func TargetProcess(p Process) Target { return Target{Process: &p} }

// TargetCommand returns a command-id target referencing a prior command.
func TargetCommand(id data.CommandID) Target { return Target{Command: &id} }

// TargetDomainName returns a domain-name target.
func TargetDomainName(name data.DomainName) Target { return Target{DomainName: &name} }

// TargetIPv4Net returns an IPv4 network target.
func TargetIPv4Net(n data.IPv4Net) Target { return Target{IPv4Net: &n} }

// TargetIPv6Net returns an IPv6 network target.
func TargetIPv6Net(n data.IPv6Net) Target { return Target{IPv6Net: &n} }

// TargetMacAddr returns a MAC address target.
func TargetMacAddr(m data.MacAddr) Target { return Target{MacAddr: &m} }

// TargetURI returns a URI target.
func TargetURI(uri string) Target { return Target{URI: &uri} }

// TargetFeatures returns a feature-list target for query commands.
func TargetFeatures(features ...data.Feature) Target {
	f := Features(features)
	return Target{Features: &f}
}

// TargetProfileDefined returns an open target defined by an actuator
// profile.
func TargetProfileDefined(profile data.Nsid, typeName string, value data.Value) Target {
	return Target{ProfileDefined: NewProfileTarget(profile, typeName, value)}
}

// Kind returns the key-only projection used for capability declaration and
// registry lookup. It is a pure O(1) projection with no side effects.
func (t Target) Kind() TargetType {
	switch {
	case t.Artifact != nil:
		return TargetTypeArtifact
	case t.Command != nil:
		return TargetTypeCommand
	case t.Device != nil:
		return TargetTypeDevice
	case t.DomainName != nil:
		return TargetTypeDomainName
	case t.Features != nil:
		return TargetTypeFeatures
	case t.File != nil:
		return TargetTypeFile
	case t.IPv4Connection != nil:
		return TargetTypeIPv4Connection
	case t.IPv6Connection != nil:
		return TargetTypeIPv6Connection
	case t.IPv4Net != nil:
		return TargetTypeIPv4Net
	case t.IPv6Net != nil:
		return TargetTypeIPv6Net
	case t.MacAddr != nil:
		return TargetTypeMacAddr
	case t.Process != nil:
		return TargetTypeProcess
	case t.URI != nil:
		return TargetTypeURI
	case t.ProfileDefined != nil:
		return ProfileTargetType(t.ProfileDefined.Profile(), t.ProfileDefined.TypeName())
	default:
		return TargetType{}
	}
}

// variant returns the wire key and payload of the set builtin variant.
func (t *Target) variant() (string, any) {
	switch {
	case t.Artifact != nil:
		return "artifact", t.Artifact
	case t.Command != nil:
		return "command", t.Command
	case t.Device != nil:
		return "device", t.Device
	case t.DomainName != nil:
		return "domain_name", t.DomainName
	case t.Features != nil:
		return "features", t.Features
	case t.File != nil:
		return "file", t.File
	case t.IPv4Connection != nil:
		return "ipv4_connection", t.IPv4Connection
	case t.IPv6Connection != nil:
		return "ipv6_connection", t.IPv6Connection
	case t.IPv4Net != nil:
		return "ipv4_net", t.IPv4Net
	case t.IPv6Net != nil:
		return "ipv6_net", t.IPv6Net
	case t.MacAddr != nil:
		return "mac_addr", t.MacAddr
	case t.Process != nil:
		return "process", t.Process
	case t.URI != nil:
		return "uri", t.URI
	default:
		return "", nil
	}
}

// MarshalJSON serializes the target as a single-key map.
func (t Target) MarshalJSON() ([]byte, error) {
	if t.ProfileDefined != nil {
		return json.Marshal(t.ProfileDefined)
	}
	key, payload := t.variant()
	if key == "" {
		return nil, errors.Validation("target has no variant set")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.CodecErr(err)
	}
	return json.Marshal(map[string]json.RawMessage{key: raw})
}

// UnmarshalJSON deserializes a single-key map into the matching variant.
// Unknown keys become profile-defined targets; their inner payload must
// itself be a single-pair map.
func (t *Target) UnmarshalJSON(raw []byte) error {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return errors.CodecErr(err)
	}
	if len(entries) != 1 {
		return errors.Codec("expected a single key-value pair")
	}

	*t = Target{}
	for key, payload := range entries {
		var err error
		switch key {
		case "artifact":
			err = decodeInto(payload, &t.Artifact)
		case "command":
			err = decodeInto(payload, &t.Command)
		case "device":
			err = decodeInto(payload, &t.Device)
		case "domain_name":
			err = decodeInto(payload, &t.DomainName)
		case "features":
			err = decodeInto(payload, &t.Features)
		case "file":
			err = decodeInto(payload, &t.File)
		case "ipv4_connection":
			err = decodeInto(payload, &t.IPv4Connection)
		case "ipv6_connection":
			err = decodeInto(payload, &t.IPv6Connection)
		case "ipv4_net":
			err = decodeInto(payload, &t.IPv4Net)
		case "ipv6_net":
			err = decodeInto(payload, &t.IPv6Net)
		case "mac_addr":
			err = decodeInto(payload, &t.MacAddr)
		case "process":
			err = decodeInto(payload, &t.Process)
		case "uri":
			err = decodeInto(payload, &t.URI)
		default:
			err = t.decodeProfileDefined(raw)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeInto[T any](raw json.RawMessage, field **T) error {
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return errors.CodecErr(err)
	}
	*field = &value
	return nil
}

func (t *Target) decodeProfileDefined(raw []byte) error {
	var pt ProfileTarget
	if err := json.Unmarshal(raw, &pt); err != nil {
		return errors.CodecErr(err)
	}
	t.ProfileDefined = &pt
	return nil
}

// TargetType is the key-only projection of a Target: the target's kind with
// no payload. Builtin kinds carry only a name; profile-defined kinds carry
// the profile namespace and type name, and compare equal only when both
// match exactly. TargetType is comparable and usable as a map key.
type TargetType struct {
	name    string
	profile data.Nsid
}

// Builtin target type keys.
var (
	TargetTypeArtifact       = TargetType{name: "artifact"}
	TargetTypeCommand        = TargetType{name: "command"}
	TargetTypeDevice         = TargetType{name: "device"}
	TargetTypeDomainName     = TargetType{name: "domain_name"}
	TargetTypeFeatures       = TargetType{name: "features"}
	TargetTypeFile           = TargetType{name: "file"}
	TargetTypeIPv4Connection = TargetType{name: "ipv4_connection"}
	TargetTypeIPv6Connection = TargetType{name: "ipv6_connection"}
	TargetTypeIPv4Net        = TargetType{name: "ipv4_net"}
	TargetTypeIPv6Net        = TargetType{name: "ipv6_net"}
	TargetTypeMacAddr        = TargetType{name: "mac_addr"}
	TargetTypeProcess        = TargetType{name: "process"}
	TargetTypeURI            = TargetType{name: "uri"}
)

var builtinTargetTypes = map[string]TargetType{
	"artifact":        TargetTypeArtifact,
	"command":         TargetTypeCommand,
	"device":          TargetTypeDevice,
	"domain_name":     TargetTypeDomainName,
	"features":        TargetTypeFeatures,
	"file":            TargetTypeFile,
	"ipv4_connection": TargetTypeIPv4Connection,
	"ipv6_connection": TargetTypeIPv6Connection,
	"ipv4_net":        TargetTypeIPv4Net,
	"ipv6_net":        TargetTypeIPv6Net,
	"mac_addr":        TargetTypeMacAddr,
	"process":         TargetTypeProcess,
	"uri":             TargetTypeURI,
}

// ProfileTargetType returns the lookup key for a target type defined by a
// profile.
func ProfileTargetType(profile data.Nsid, name string) TargetType {
	return TargetType{name: name, profile: profile}
}

// ParseTargetType parses a builtin kind name ("file") or a profile-defined
// key in "profile/name" form ("er/account").
func ParseTargetType(s string) (TargetType, error) {
	if tt, ok := builtinTargetTypes[s]; ok {
		return tt, nil
	}
	profileStr, name, ok := strings.Cut(s, "/")
	if !ok {
		return TargetType{}, errors.Validation("profile target must be in the format 'profile/name'")
	}
	profile, err := data.ParseNsid(profileStr)
	if err != nil {
		return TargetType{}, errors.From(err).At(errors.Key("profile"))
	}
	return ProfileTargetType(profile, name), nil
}

// IsProfileDefined reports whether the key names a profile-defined kind.
func (tt TargetType) IsProfileDefined() bool {
	return tt.profile != ""
}

// Profile returns the defining namespace for profile-defined kinds, or the
// empty Nsid for builtin ones.
func (tt TargetType) Profile() data.Nsid {
	return tt.profile
}

// Name returns the kind name: the builtin kind or the profile-local type
// name.
func (tt TargetType) Name() string {
	return tt.name
}

// String returns the wire form: the kind name for builtin types,
// "profile/name" for profile-defined ones.
func (tt TargetType) String() string {
	if tt.profile != "" {
		return string(tt.profile) + "/" + tt.name
	}
	return tt.name
}

// Less orders target types by their string form, giving ActionTargets a
// stable serialization.
func (tt TargetType) Less(other TargetType) bool {
	return tt.String() < other.String()
}

// MarshalText implements encoding.TextMarshaler.
func (tt TargetType) MarshalText() ([]byte, error) {
	return []byte(tt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (tt *TargetType) UnmarshalText(text []byte) error {
	parsed, err := ParseTargetType(string(text))
	if err != nil {
		return err
	}
	*tt = parsed
	return nil
}
