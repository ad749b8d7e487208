package message

import (
	"encoding/json"
	"sort"

	"github.com/c360/openc2/errors"
)

// TargetTypeSet is an unordered set of target type keys. It serializes as a
// sorted array so capability listings are stable across runs.
type TargetTypeSet map[TargetType]struct{}

// NewTargetTypeSet builds a set from the given keys.
func NewTargetTypeSet(types ...TargetType) TargetTypeSet {
	set := make(TargetTypeSet, len(types))
	for _, tt := range types {
		set[tt] = struct{}{}
	}
	return set
}

// Add inserts a key into the set.
func (s TargetTypeSet) Add(tt TargetType) {
	s[tt] = struct{}{}
}

// Contains reports whether the set holds the given key.
func (s TargetTypeSet) Contains(tt TargetType) bool {
	_, ok := s[tt]
	return ok
}

// Sorted returns the members ordered by their string form.
func (s TargetTypeSet) Sorted() []TargetType {
	types := make([]TargetType, 0, len(s))
	for tt := range s {
		types = append(types, tt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Less(types[j]) })
	return types
}

// MarshalJSON implements json.Marshaler.
func (s TargetTypeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *TargetTypeSet) UnmarshalJSON(raw []byte) error {
	var types []TargetType
	if err := json.Unmarshal(raw, &types); err != nil {
		return errors.CodecErr(err)
	}
	*s = NewTargetTypeSet(types...)
	return nil
}

// ActionTargets declares which (action, target type) pairs a consumer
// handles: for each action, the set of target kinds it accepts.
type ActionTargets map[Action]TargetTypeSet

// Add records that the action accepts the given target types.
func (at ActionTargets) Add(action Action, types ...TargetType) {
	set, ok := at[action]
	if !ok {
		set = make(TargetTypeSet, len(types))
		at[action] = set
	}
	for _, tt := range types {
		set.Add(tt)
	}
}

// Contains reports whether the declaration covers the pair.
func (at ActionTargets) Contains(action Action, tt TargetType) bool {
	return at[action].Contains(tt)
}

// Merge folds another declaration into this one.
func (at ActionTargets) Merge(other ActionTargets) {
	for action, types := range other {
		for tt := range types {
			at.Add(action, tt)
		}
	}
}

// Pair is one (action, target type) element of a capability declaration.
type Pair struct {
	Action Action     `json:"action"`
	Target TargetType `json:"target"`
}

// Pairs flattens the declaration into its elements, sorted by action then
// target type.
func (at ActionTargets) Pairs() []Pair {
	var pairs []Pair
	for action, types := range at {
		for _, tt := range types.Sorted() {
			pairs = append(pairs, Pair{Action: action, Target: tt})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Action != pairs[j].Action {
			return pairs[i].Action < pairs[j].Action
		}
		return pairs[i].Target.Less(pairs[j].Target)
	})
	return pairs
}
