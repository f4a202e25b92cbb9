// Package event owns the canonical event reference data.
//
// The resolver maps (course, distance, stroke token, gender, relay flag)
// onto deterministic identifiers of the form
// {course}_{kind}_{distance}_{stroke}_{gender}. It only resolves — events
// are reference data it never creates. The HTTP surface exposes filtered
// reverse lookup for manual entry, an identifier duplicate check, and field
// edits that re-derive the identifier with an explicit duplicate guard.
package event
