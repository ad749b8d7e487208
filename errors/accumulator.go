package errors

// Accumulator collects every validation failure found in one document so a
// single check surfaces all of them together. The zero value is not usable;
// construct with NewAccumulator.
//
// Finish is the only way to obtain a result and consumes the Accumulator.
// Pushing after Finish, or calling Finish twice, panics: callers must not
// silently drop accumulated validation state.
type Accumulator struct {
	errs     []*Error
	finished bool
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{errs: make([]*Error, 0, 4)}
}

// Push records an error. Nil errors are ignored so results of helpers that
// may succeed can be pushed unconditionally.
func (a *Accumulator) Push(err *Error) {
	a.assertLive()
	if err == nil {
		return
	}
	a.errs = append(a.errs, err)
}

// Handle records a failed result and reports whether it succeeded, letting
// the caller keep extracting other fields after a failure.
func (a *Accumulator) Handle(err error) bool {
	a.assertLive()
	if err == nil {
		return true
	}
	a.errs = append(a.errs, From(err))
	return false
}

// Handle records the error from a (value, error) pair into the accumulator
// and passes the value through, reporting whether the result was usable.
func Handle[T any](a *Accumulator, value T, err error) (T, bool) {
	return value, a.Handle(err)
}

// Len returns the number of errors recorded so far.
func (a *Accumulator) Len() int {
	a.assertLive()
	return len(a.errs)
}

// Finish consumes the Accumulator and collapses its contents: zero errors
// yield nil, exactly one yields that error, two or more yield a Multiple
// error containing all of them in push order.
func (a *Accumulator) Finish() error {
	a.assertLive()
	a.finished = true
	switch len(a.errs) {
	case 0:
		return nil
	case 1:
		return a.errs[0]
	default:
		return &Error{kind: KindMultiple, errs: a.errs}
	}
}

func (a *Accumulator) assertLive() {
	if a.finished {
		panic("errors: Accumulator already finalized")
	}
}
