package registry

import (
	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
	"github.com/c360/openc2/message"
)

// SupportedVersions lists the language versions this implementation speaks.
var SupportedVersions = []data.Version{{Major: 2, Minor: 0}}

// noProfile keys capability declarations not tied to an actuator profile.
const noProfile data.Nsid = ""

// Registration binds a consumer to the (action, target type) pairs it
// handles, grouped by the actuator profile that defines them.
// Profile-agnostic capabilities are declared without a profile.
type Registration struct {
	consumer Consumer
	actions  map[data.Nsid]message.ActionTargets
}

// NewRegistration builds a registration for the given consumer.
func NewRegistration(consumer Consumer, opts ...RegistrationOption) Registration {
	reg := Registration{
		consumer: consumer,
		actions:  make(map[data.Nsid]message.ActionTargets),
	}
	for _, opt := range opts {
		opt(&reg)
	}
	return reg
}

// RegistrationOption configures a Registration.
type RegistrationOption func(*Registration)

// WithActions declares capabilities defined by an actuator profile.
func WithActions(profile data.Nsid, targets message.ActionTargets) RegistrationOption {
	return func(reg *Registration) {
		declared, ok := reg.actions[profile]
		if !ok {
			declared = make(message.ActionTargets)
			reg.actions[profile] = declared
		}
		declared.Merge(targets)
	}
}

// WithActionsWithoutProfile declares capabilities not tied to any profile.
func WithActionsWithoutProfile(targets message.ActionTargets) RegistrationOption {
	return WithActions(noProfile, targets)
}

// Consumer returns the registered consumer.
func (r *Registration) Consumer() Consumer {
	return r.consumer
}

// Matches reports whether the registration handles the pair. An empty
// profile matches any declaration; a named profile matches only
// declarations under that profile.
func (r *Registration) Matches(action message.Action, target message.TargetType, profile data.Nsid) bool {
	if profile != noProfile {
		return r.actions[profile].Contains(action, target)
	}
	for _, declared := range r.actions {
		if declared.Contains(action, target) {
			return true
		}
	}
	return false
}

// Profiles returns the actuator profiles this registration declares
// capabilities under.
func (r *Registration) Profiles() []data.Nsid {
	profiles := make([]data.Nsid, 0, len(r.actions))
	for profile := range r.actions {
		if profile != noProfile {
			profiles = append(profiles, profile)
		}
	}
	return profiles
}

// PairsByProfile returns the declared capabilities grouped by profile,
// omitting the profile-agnostic declarations.
func (r *Registration) PairsByProfile() map[data.Nsid]message.ActionTargets {
	grouped := make(map[data.Nsid]message.ActionTargets)
	for profile, declared := range r.actions {
		if profile == noProfile {
			continue
		}
		union, ok := grouped[profile]
		if !ok {
			union = make(message.ActionTargets)
			grouped[profile] = union
		}
		union.Merge(declared)
	}
	return grouped
}

// Pairs returns the union of declared capabilities across all profiles.
func (r *Registration) Pairs() message.ActionTargets {
	union := make(message.ActionTargets)
	for _, declared := range r.actions {
		union.Merge(declared)
	}
	return union
}

// QueryFeatures answers a query-features command against this
// registration's declarations. Requesting the rate-limit feature fails:
// rate limiting is not supported.
func (r *Registration) QueryFeatures(features message.Features) (message.Results, error) {
	var results message.Results
	for _, feature := range features {
		switch feature {
		case data.FeatureVersions:
			results.Versions = SupportedVersions
		case data.FeatureProfiles:
			results.Profiles = r.Profiles()
		case data.FeaturePairs:
			results.Pairs = r.Pairs()
		case data.FeatureRateLimit:
			return message.Results{}, errors.NotImplemented("rate limiting is not supported").
				At(errors.Key("features"))
		default:
			return message.Results{}, errors.NotImplementedf("unknown feature %q", feature).
				At(errors.Key("features"))
		}
	}
	return results, nil
}
