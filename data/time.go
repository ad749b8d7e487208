package data

import "time"

// DateTime is a point in time expressed as epoch milliseconds, matching the
// OpenC2 wire representation.
type DateTime uint64

// Now returns the current system time as a DateTime.
func Now() DateTime {
	return DateTimeOf(time.Now())
}

// DateTimeOf converts a time.Time into epoch milliseconds.
func DateTimeOf(t time.Time) DateTime {
	return DateTime(t.UnixMilli())
}

// Time converts the DateTime back into a time.Time in UTC.
func (d DateTime) Time() time.Time {
	return time.UnixMilli(int64(d)).UTC()
}

// Millis returns the raw epoch-millisecond value.
func (d DateTime) Millis() uint64 {
	return uint64(d)
}

// Duration is a span of time expressed in milliseconds.
type Duration uint64

// DurationOf converts a time.Duration into wire milliseconds.
func DurationOf(d time.Duration) Duration {
	return Duration(d.Milliseconds())
}

// Std converts the Duration into a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d) * time.Millisecond
}

// Millis returns the raw millisecond value.
func (d Duration) Millis() uint64 {
	return uint64(d)
}
