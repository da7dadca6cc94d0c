// Package attribute reads and writes the serialized multi-value directory
// attribute that holds a user's encrypted one-time-code secret.
//
// The attribute is free-form text carrying tokens of the form
//
//	<Prefix><serial>: <value>
//
// with the prefixes Secret, Salt and Iv. A value runs until the first ',',
// '}' or ']' or the end of the text and is returned untrimmed. Tokens may
// appear in any order; several serials may coexist and the highest one is
// authoritative.
//
// # Usage
//
//	snap := attribute.Parse(raw)
//	rec, ok := snap.Current()
//	if !ok {
//		// malformed or empty attribute: treat as a failed login
//	}
//
// New records are rendered with Render and always use snap.NextSerial():
//
//	line := attribute.Render(attribute.Record{Serial: snap.NextSerial(), Secret: ct, Salt: salt, IV: iv})
//
// # Gaps
//
// Serials are probed upward from 0. A single missing serial is skipped; two
// consecutive missing serials end the scan, so anything written after such a
// gap is invisible to readers.
package attribute
