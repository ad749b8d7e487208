// Package openc2 is the root of a typed implementation of the OpenC2
// command and control language: message construction and validation plus
// capability-indexed dispatch, independent of any transport.
//
// # Layout
//
// The module is split into small packages, each owning one concern:
//
//   - errors: structured errors with field paths and an accumulating
//     validator, projecting onto OpenC2 status codes
//   - data: wire primitives (Nsid, Choice, Value, times, networks,
//     extensions) shared by every layer above
//   - message: the Action and Target taxonomy, Command/Response bodies,
//     and the Message transfer envelope with its semantic checks
//   - registry: routing of command messages to registered consumers by
//     (action, target type) pair and actuator profile
//   - profile/er: the endpoint-response actuator profile
//
// # Scope
//
// The module stops at the document tree. Producers and consumers bring
// their own transport (HTTP, MQTT, message bus) and hand fully parsed
// messages to the registry; nothing here opens a socket.
package openc2
