package message

import (
	"fmt"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
)

// StatusCode classifies the outcome of a command, following HTTP semantics.
type StatusCode uint16

// Status codes.
const (
	StatusProcessing         StatusCode = 102
	StatusOK                 StatusCode = 200
	StatusBadRequest         StatusCode = 400
	StatusUnauthorized       StatusCode = 401
	StatusForbidden          StatusCode = 403
	StatusNotFound           StatusCode = 404
	StatusInternalError      StatusCode = 500
	StatusNotImplemented     StatusCode = 501
	StatusServiceUnavailable StatusCode = 503
)

// IsError reports whether the code signals a failure.
func (s StatusCode) IsError() bool {
	return s >= 400
}

// IsInterim reports whether the code signals that more responses follow.
func (s StatusCode) IsInterim() bool {
	return s == StatusProcessing
}

// Text returns the conventional reason phrase for the code.
func (s StatusCode) Text() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "Bad Request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Not Found"
	case StatusInternalError:
		return "Internal Error"
	case StatusNotImplemented:
		return "Not Implemented"
	case StatusServiceUnavailable:
		return "Service Unavailable"
	default:
		return fmt.Sprintf("Status %d", uint16(s))
	}
}

// Results carries the payload of a successful response. Profile-defined
// results live in Extensions; on the wire they sit alongside the standard
// fields in one flat map.
type Results struct {
	Versions   []data.Version
	Profiles   []data.Nsid
	Pairs      ActionTargets
	RateLimit  *uint
	Extensions data.Extensions
}

// IsEmpty reports whether no result field is set.
func (r *Results) IsEmpty() bool {
	return len(r.Versions) == 0 && len(r.Profiles) == 0 && len(r.Pairs) == 0 &&
		r.RateLimit == nil && r.Extensions.IsEmpty()
}

type wireResults struct {
	Versions  []data.Version `json:"versions,omitempty"`
	Profiles  []data.Nsid    `json:"profiles,omitempty"`
	Pairs     ActionTargets  `json:"pairs,omitempty"`
	RateLimit *uint          `json:"rate_limit,omitempty"`
}

var resultsKeys = []string{"versions", "profiles", "pairs", "rate_limit"}

// MarshalJSON flattens the standard fields and extensions into one map.
func (r Results) MarshalJSON() ([]byte, error) {
	return marshalFlat(wireResults{
		Versions:  r.Versions,
		Profiles:  r.Profiles,
		Pairs:     r.Pairs,
		RateLimit: r.RateLimit,
	}, r.Extensions)
}

// UnmarshalJSON splits the flat map back into standard fields and
// extensions.
func (r *Results) UnmarshalJSON(raw []byte) error {
	var wire wireResults
	ext, err := unmarshalFlat(raw, &wire, resultsKeys)
	if err != nil {
		return err
	}
	*r = Results{
		Versions:   wire.Versions,
		Profiles:   wire.Profiles,
		Pairs:      wire.Pairs,
		RateLimit:  wire.RateLimit,
		Extensions: ext,
	}
	return nil
}

// ProfileFeatures is the per-profile capability listing attached to
// query-features results as an extension under the profile's namespace.
type ProfileFeatures struct {
	Pairs ActionTargets `json:"pairs"`
}

// Response reports the outcome of a command back to its producer.
type Response struct {
	Status     StatusCode `json:"status"`
	StatusText string     `json:"status_text,omitempty"`
	Results    *Results   `json:"results,omitempty"`
}

// NewResponse builds a response with the given status and its conventional
// reason phrase.
func NewResponse(status StatusCode) Response {
	return Response{Status: status, StatusText: status.Text()}
}

// ResponseOK builds a 200 response carrying the given results.
func ResponseOK(results Results) Response {
	r := NewResponse(StatusOK)
	if !results.IsEmpty() {
		r.Results = &results
	}
	return r
}

// ResponseProcessing builds the interim 102 acknowledgment.
func ResponseProcessing() Response {
	return NewResponse(StatusProcessing)
}

// ResponseFromError builds a failure response whose status is the error's
// projection: validation failures map to 400, declined capabilities to 501,
// everything else to 500. The error message becomes the status text.
func ResponseFromError(err error) Response {
	return Response{
		Status:     StatusCode(errors.From(err).StatusCode()),
		StatusText: err.Error(),
	}
}

// Check validates the response's semantic rules.
func (r *Response) Check(acc *errors.Accumulator) {
	if r.Status == 0 {
		acc.Push(errors.MissingRequiredField("status"))
	}
}
