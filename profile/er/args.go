package er

import (
	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
	"github.com/c360/openc2/message"
)

// AccountStatus enables or disables an account.
type AccountStatus string

// Account statuses.
const (
	AccountEnabled  AccountStatus = "enabled"
	AccountDisabled AccountStatus = "disabled"
)

// DeviceContainment selects how a contained device is restricted.
type DeviceContainment string

// Containment modes.
const (
	// ContainmentNetworkIsolation isolates the endpoint from other
	// networked entities. May be combined with PermittedAddresses to allow
	// communication with select addresses.
	ContainmentNetworkIsolation DeviceContainment = "network_isolation"
	// ContainmentAppRestriction restricts execution to applications signed
	// by a trusted party.
	ContainmentAppRestriction DeviceContainment = "app_restriction"
	// ContainmentDisableNic disables the endpoint's network interface
	// controllers.
	ContainmentDisableNic DeviceContainment = "disable_nic"
)

// PeriodicScan enables or disables recurring scans.
type PeriodicScan string

// Periodic scan settings.
const (
	PeriodicScanEnabled  PeriodicScan = "enabled"
	PeriodicScanDisabled PeriodicScan = "disabled"
)

// ScanDepth selects how thorough a scan is.
type ScanDepth string

// Scan depths.
const (
	ScanShallow ScanDepth = "shallow"
	ScanDeep    ScanDepth = "deep"
)

// PermittedAddresses lists the addresses a contained device may still
// reach.
type PermittedAddresses struct {
	IPv4Net     []data.IPv4Net    `json:"ipv4_net,omitempty"`
	IPv6Net     []data.IPv6Net    `json:"ipv6_net,omitempty"`
	DomainNames []data.DomainName `json:"domain_names,omitempty"`
}

// IsEmpty reports whether no address is listed.
func (p *PermittedAddresses) IsEmpty() bool {
	return len(p.IPv4Net) == 0 && len(p.IPv6Net) == 0 && len(p.DomainNames) == 0
}

// DownstreamDevice addresses devices managed through an intermediary.
type DownstreamDevice struct {
	Devices      []message.Device `json:"devices,omitempty"`
	DeviceGroups []string         `json:"device_groups,omitempty"`
	TenantID     string           `json:"tenant_id,omitempty"`
}

// IsEmpty reports whether the selector addresses nothing.
func (d *DownstreamDevice) IsEmpty() bool {
	return len(d.Devices) == 0 && len(d.DeviceGroups) == 0 && d.TenantID == ""
}

// Check requires every listed device to carry the device_id the
// intermediary routes on.
func (d *DownstreamDevice) Check(acc *errors.Accumulator) {
	for i, device := range d.Devices {
		if device.DeviceID == "" {
			acc.Push(errors.MissingRequiredField("device_id").
				At(errors.Index(i)).
				At(errors.Key("devices")))
		}
	}
}

// Args carries the command arguments defined by the endpoint-response
// profile. On the wire they live in the command's args map under the
// profile namespace.
type Args struct {
	AccountStatus      *AccountStatus      `json:"account_status,omitempty"`
	DeviceContainment  *DeviceContainment  `json:"device_containment,omitempty"`
	PermittedAddresses *PermittedAddresses `json:"permitted_addresses,omitempty"`
	ScanDepth          *ScanDepth          `json:"scan_depth,omitempty"`
	PeriodicScan       *PeriodicScan       `json:"periodic_scan,omitempty"`
	DownstreamDevice   *DownstreamDevice   `json:"downstream_device,omitempty"`
}

// IsEmpty reports whether no argument is set.
func (a *Args) IsEmpty() bool {
	return a.AccountStatus == nil && a.DeviceContainment == nil &&
		a.PermittedAddresses == nil && a.ScanDepth == nil &&
		a.PeriodicScan == nil && a.DownstreamDevice == nil
}

// Check validates the profile arguments. Violations are qualified relative
// to the profile's entry in the command args.
func (a *Args) Check(acc *errors.Accumulator) {
	if a.DownstreamDevice != nil {
		acc.Push(message.CheckAt(a.DownstreamDevice, "downstream_device"))
	}
}

// SetArgs attaches the profile arguments to a command's args under the
// profile namespace.
func SetArgs(args *message.Args, enc data.Encoding, profileArgs Args) error {
	if args.Extensions == nil {
		args.Extensions = make(data.Extensions)
	}
	return data.SetExtension(args.Extensions, enc, NS, profileArgs)
}

// GetArgs extracts the profile arguments from a command's args. The second
// return reports whether the profile entry was present.
func GetArgs(args *message.Args) (Args, bool, error) {
	return data.GetExtension[Args](args.Extensions, NS)
}
