package message

import "github.com/c360/openc2/errors"

// Checker is implemented by message components whose semantic rules go
// beyond what the wire shape can express. Implementations push every
// violation onto the accumulator instead of returning on the first one.
type Checker interface {
	Check(acc *errors.Accumulator)
}

// Check runs a component's checks through a fresh accumulator and collapses
// the result: nil when everything holds, the single error, or a Multiple
// error carrying all violations.
func Check(c Checker) error {
	acc := errors.NewAccumulator()
	c.Check(acc)
	return acc.Finish()
}

// CheckAt runs a component's checks and qualifies any violations with the
// field the caller owns, for validators composing a child component's
// checks into their own.
func CheckAt(c Checker, field string) *errors.Error {
	if err := Check(c); err != nil {
		return errors.From(err).At(errors.Key(field))
	}
	return nil
}
