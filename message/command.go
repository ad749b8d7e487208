package message

import (
	"encoding/json"
	"slices"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
)

// Period bounds when and for how long a command's effect applies. Start and
// stop are absolute times; duration is relative to whichever bound is set.
type Period struct {
	StartTime *data.DateTime
	StopTime  *data.DateTime
	Duration  *data.Duration
}

// IsEmpty reports whether no bound is set.
func (p *Period) IsEmpty() bool {
	return p.StartTime == nil && p.StopTime == nil && p.Duration == nil
}

// Check rejects the ambiguous case of all three bounds set at once. Any two
// determine the third; three of them can contradict each other.
func (p *Period) Check(acc *errors.Accumulator) {
	if p.StartTime != nil && p.StopTime != nil && p.Duration != nil {
		acc.Push(errors.Validation("cannot declare start, stop, and duration").
			At(errors.Key("duration")))
	}
}

// RequireEmpty reports each set bound as unsupported. Profiles whose
// commands take effect immediately use this instead of Check.
func (p *Period) RequireEmpty(acc *errors.Accumulator) {
	if p.StartTime != nil {
		acc.Push(errors.NotImplemented("time bounds are not supported").At(errors.Key("start_time")))
	}
	if p.StopTime != nil {
		acc.Push(errors.NotImplemented("time bounds are not supported").At(errors.Key("stop_time")))
	}
	if p.Duration != nil {
		acc.Push(errors.NotImplemented("time bounds are not supported").At(errors.Key("duration")))
	}
}

// Args carries the optional modifiers of a command. Profile-defined
// arguments live in Extensions keyed by their namespace; on the wire they
// sit alongside the standard fields in one flat map.
type Args struct {
	Period            Period
	ResponseRequested *data.ResponseType
	Comment           string
	Extensions        data.Extensions
}

// IsEmpty reports whether no argument is set.
func (a *Args) IsEmpty() bool {
	return a.Period.IsEmpty() && a.ResponseRequested == nil && a.Comment == "" &&
		a.Extensions.IsEmpty()
}

// Check validates the generic argument rules.
func (a *Args) Check(acc *errors.Accumulator) {
	a.Period.Check(acc)
}

type wireArgs struct {
	StartTime         *data.DateTime     `json:"start_time,omitempty"`
	StopTime          *data.DateTime     `json:"stop_time,omitempty"`
	Duration          *data.Duration     `json:"duration,omitempty"`
	ResponseRequested *data.ResponseType `json:"response_requested,omitempty"`
	Comment           string             `json:"comment,omitempty"`
}

// MarshalJSON flattens the standard fields and extensions into one map.
func (a Args) MarshalJSON() ([]byte, error) {
	return marshalFlat(wireArgs{
		StartTime:         a.Period.StartTime,
		StopTime:          a.Period.StopTime,
		Duration:          a.Period.Duration,
		ResponseRequested: a.ResponseRequested,
		Comment:           a.Comment,
	}, a.Extensions)
}

var argsKeys = []string{"start_time", "stop_time", "duration", "response_requested", "comment"}

// UnmarshalJSON splits the flat map back into standard fields and
// extensions.
func (a *Args) UnmarshalJSON(raw []byte) error {
	var wire wireArgs
	ext, err := unmarshalFlat(raw, &wire, argsKeys)
	if err != nil {
		return err
	}
	*a = Args{
		Period: Period{
			StartTime: wire.StartTime,
			StopTime:  wire.StopTime,
			Duration:  wire.Duration,
		},
		ResponseRequested: wire.ResponseRequested,
		Comment:           wire.Comment,
		Extensions:        ext,
	}
	return nil
}

// marshalFlat serializes known fields and merges extension entries into the
// same JSON object.
func marshalFlat(known any, ext data.Extensions) ([]byte, error) {
	raw, err := json.Marshal(known)
	if err != nil {
		return nil, errors.CodecErr(err)
	}
	if ext.IsEmpty() {
		return raw, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, errors.CodecErr(err)
	}
	for nsid, value := range ext {
		entry, err := json.Marshal(value)
		if err != nil {
			return nil, errors.CodecErr(err)
		}
		merged[string(nsid)] = entry
	}
	return json.Marshal(merged)
}

// unmarshalFlat decodes known fields from a flat JSON object and collects
// every remaining key as an extension entry.
func unmarshalFlat(raw []byte, known any, knownKeys []string) (data.Extensions, error) {
	if err := json.Unmarshal(raw, known); err != nil {
		return nil, errors.CodecErr(err)
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.CodecErr(err)
	}

	var ext data.Extensions
	for key, entry := range entries {
		if slices.Contains(knownKeys, key) {
			continue
		}
		nsid, err := data.ParseNsid(key)
		if err != nil {
			return nil, errors.From(err).At(errors.Key(key))
		}
		var value data.Value
		if err := json.Unmarshal(entry, &value); err != nil {
			return nil, errors.CodecErr(err)
		}
		if ext == nil {
			ext = make(data.Extensions)
		}
		ext[nsid] = value
	}
	return ext, nil
}

// Command instructs an actuator to perform an action on a target.
type Command struct {
	Action    Action         `json:"action"`
	Target    Target         `json:"target"`
	Args      *Args          `json:"args,omitempty"`
	Profile   data.Nsid      `json:"profile,omitempty"`
	CommandID data.CommandID `json:"command_id,omitempty"`
}

// NewCommand builds a command with no arguments.
func NewCommand(action Action, target Target) Command {
	return Command{Action: action, Target: target}
}

// WithArgs returns a copy of the command carrying the given arguments.
func (c Command) WithArgs(args Args) Command {
	c.Args = &args
	return c
}

// WithProfile returns a copy of the command addressed to the given
// actuator profile.
func (c Command) WithProfile(profile data.Nsid) Command {
	c.Profile = profile
	return c
}

// ResponseRequested returns the requested response type, defaulting to a
// complete response when args are silent.
func (c *Command) ResponseRequested() data.ResponseType {
	if c.Args != nil && c.Args.ResponseRequested != nil {
		return *c.Args.ResponseRequested
	}
	return data.ResponseComplete
}

// Check validates the command's semantic rules, qualifying argument errors
// with their position in the document.
func (c *Command) Check(acc *errors.Accumulator) {
	if c.Args != nil {
		acc.Push(CheckAt(c.Args, "args"))
	}
}
