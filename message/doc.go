// Package message defines the OpenC2 protocol document shapes: the
// action/target taxonomy, the Command and Response contents, and the Message
// envelope that carries them.
//
// # Taxonomy
//
// Action is a closed vocabulary of standard verbs; unknown verbs are
// accepted and preserved for forward compatibility, with Valid reporting
// membership. Target is a closed set of builtin kinds plus one open
// profile-defined variant whose payload stays opaque (data.Value) until a
// profile implementation extracts it. TargetType is the key-only projection
// of a Target used for capability declaration and registry lookup.
//
// # Validation
//
// Check methods accumulate every semantic violation in a document rather
// than stopping at the first, each with a fully qualified field path.
// Structural failures (malformed target shape, wrong body nesting) fail fast
// at the codec boundary instead.
//
// # Wire shape
//
// Messages serialize as
//
//	{
//	    "headers": {"request_id": "..."},
//	    "content_type": "application/openc2",
//	    "body": {"openc2": {"request": {...}}},
//	    "status_code": 200
//	}
//
// with builtin targets as {"<kind>": {...}} and profile-defined targets
// nested one level deeper: {"<profile-nsid>": {"<type-name>": <value>}}.
package message
