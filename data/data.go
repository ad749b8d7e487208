package data

import (
	"github.com/google/uuid"
)

// CommandID uniquely identifies a command for acknowledgment and tracking.
type CommandID = string

// NewCommandID returns a fresh unique command identifier.
func NewCommandID() CommandID {
	return uuid.New().String()
}

// DomainName is a fully qualified domain name.
type DomainName = string

// Feature names a capability a producer can query a consumer for.
type Feature string

const (
	// FeatureVersions asks for the protocol versions the consumer supports.
	FeatureVersions Feature = "versions"
	// FeatureProfiles asks for the actuator profiles the consumer supports.
	FeatureProfiles Feature = "profiles"
	// FeaturePairs asks for the action/target pairs the consumer supports.
	FeaturePairs Feature = "pairs"
	// FeatureRateLimit asks for the consumer's command rate limit.
	FeatureRateLimit Feature = "rate_limit"
)

// Valid reports whether the feature is part of the standard vocabulary.
func (f Feature) Valid() bool {
	switch f {
	case FeatureVersions, FeatureProfiles, FeaturePairs, FeatureRateLimit:
		return true
	default:
		return false
	}
}

// Hashes holds cryptographic digests of an artifact or file.
type Hashes struct {
	MD5    string `json:"md5,omitempty"`
	SHA1   string `json:"sha1,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
}

// IsEmpty reports whether no digest is set.
func (h Hashes) IsEmpty() bool {
	return h.MD5 == "" && h.SHA1 == "" && h.SHA256 == ""
}

// ArtifactPayload carries artifact content either inline or by reference.
// Exactly one of Bin and URL should be set.
type ArtifactPayload struct {
	Bin []byte `json:"bin,omitempty"`
	URL string `json:"url,omitempty"`
}

// ResponseType states what kind of response a producer expects for a
// command.
type ResponseType string

const (
	// ResponseNone requests no response.
	ResponseNone ResponseType = "none"
	// ResponseAck requests an acknowledgment of receipt.
	ResponseAck ResponseType = "ack"
	// ResponseStatus requests interim status responses.
	ResponseStatus ResponseType = "status"
	// ResponseComplete requests a response when the command completes.
	ResponseComplete ResponseType = "complete"
)

// RequiresRequestID reports whether a command asking for this response type
// must carry a request identifier so responses can be correlated.
func (r ResponseType) RequiresRequestID() bool {
	return r != ResponseNone
}
