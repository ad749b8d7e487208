// Package errors provides the structured error model for OpenC2 message
// validation and dispatch.
//
// Errors are classified by kind (Validation, NotImplemented, Custom, Codec,
// Multiple) and carry a Path locating the offending field inside a message
// document. Paths are assembled outside-in: a validator reports an error
// relative to the fields it owns, and each caller prepends its own field name
// with At as the error bubbles upward. The result is a fully qualified
// location such as "args.downstream_device.devices[0].device_id" without any
// single validator knowing the whole document shape.
//
// The Accumulator collects every violation found in one document so callers
// see all of them at once rather than one at a time:
//
//	acc := errors.NewAccumulator()
//	acc.Handle(period.Check())
//	acc.Handle(target.Check())
//	return acc.Finish()
//
// Finish consumes the Accumulator. Finalizing twice, or pushing after
// finalizing, is a programming error and panics: accumulated validation
// state must never be silently dropped.
package errors
