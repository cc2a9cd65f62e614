// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package contenthash fingerprints content read by lib/contents.
//
// A [Digest] is a BLAKE3 keyed hash whose key is the ASCII domain name
// "netcore.contents" zero-padded to 32 bytes. Keying keeps these
// digests distinct from a plain BLAKE3 of the same bytes, so a
// fingerprint printed for a secret file cannot be matched against a
// public BLAKE3 lookup table of common values.
//
// Digests are formatted as 64 lowercase hex characters by [Format] and
// parsed back by [Parse]. [Verify] compares in constant time.
package contenthash
