// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides netcore's standard CBOR encoding
// configuration.
//
// netcore tools emit machine-readable reports (byte counts, digests,
// search results) in two formats with a clear boundary:
//
//   - JSON for people and scripts reading tool output directly.
//   - CBOR for consumers that store or forward reports and need the
//     same logical report to produce identical bytes every time.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(report)
//	err = codec.Unmarshal(data, &report)
//
// For stream-oriented operations (stdout, pipes):
//
//	encoder := codec.NewEncoder(os.Stdout)
//	decoder := codec.NewDecoder(reader)
//
// [Diagnose] renders CBOR in diagnostic notation (RFC 8949 §8) for
// human inspection.
//
// # Struct Tag Rules
//
// Report types use `json` tags: fxamacker/cbor v2 reads `json` tags as
// fallback when `cbor` tags are absent, so a single tag controls field
// naming and omitempty for both formats. Types that are only ever CBOR
// use `cbor` tags. Never use both on the same field.
//
// Types implementing encoding.TextMarshaler (contenthash.Digest)
// serialize as text strings in both formats.
package codec
