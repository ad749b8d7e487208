// Package data provides the primitive wire types shared by OpenC2 commands,
// responses, and messages: bounded namespace identifiers (Nsid), the
// single-pair Choice map used for open named variants, the codec-agnostic
// Value capability for open payloads, and the small scalar types (versions,
// timestamps, network addresses) the language specification defines.
package data
