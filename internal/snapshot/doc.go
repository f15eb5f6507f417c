// Package snapshot provides canonical serialization and content-addressed
// fingerprints for keyed test data.
//
// Canonical form follows RFC 8785 restricted to string maps:
//   - keys ordered by UTF-16 code units
//   - keys and values NFC normalized
//   - no HTML escaping, U+2028/U+2029 written literally
//
// Fingerprints are SHA-256 over domain || 0x00 || canonical bytes. Two
// snapshots have the same fingerprint iff their canonical forms are equal,
// which is how campaigns recognise mutations that changed nothing.
package snapshot
