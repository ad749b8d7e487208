// Package registry routes OpenC2 command messages to registered consumers.
//
// A Registration binds a Consumer to the (action, target type) pairs it
// handles, optionally grouped under actuator profiles. The Registry keeps
// registrations in append-only slots with a reverse index from each pair to
// the slots handling it; removal tombstones a slot so tokens held by other
// callers never shift. Consume validates a message, answers query-features
// commands itself from the union of live declarations, and fans every other
// command out to its matching consumers concurrently.
//
// Capability declarations can be loaded from YAML files with
// LoadCapabilities; Prometheus metrics are enabled with WithMetrics.
package registry
