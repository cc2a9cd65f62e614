// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte keyed BLAKE3 hash.
type Digest [32]byte

// contentsKey is the domain key. Changing it changes every digest.
var contentsKey = [32]byte{
	'n', 'e', 't', 'c', 'o', 'r', 'e', '.', 'c', 'o', 'n', 't', 'e', 'n', 't', 's',
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Hasher computes a Digest incrementally. It implements io.Writer.
type Hasher struct {
	state *blake3.Hasher
}

// New returns a Hasher in its initial keyed state.
func New() *Hasher {
	// NewKeyed only fails for a key that is not 32 bytes.
	state, err := blake3.NewKeyed(contentsKey[:])
	if err != nil {
		panic("contenthash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return &Hasher{state: state}
}

// Write adds data to the hash. It never returns an error.
func (h *Hasher) Write(data []byte) (int, error) {
	return h.state.Write(data)
}

// Digest returns the hash of everything written so far. The Hasher
// can keep accepting writes afterwards.
func (h *Hasher) Digest() Digest {
	var digest Digest
	copy(digest[:], h.state.Sum(nil))
	return digest
}

// Reset returns the Hasher to its initial keyed state.
func (h *Hasher) Reset() {
	h.state.Reset()
}

// Sum returns the Digest of data.
func Sum(data []byte) Digest {
	hasher := New()
	hasher.Write(data)
	return hasher.Digest()
}

// Verify reports whether data hashes to expected. The comparison does
// not leak how many leading bytes matched.
func Verify(data []byte, expected Digest) bool {
	actual := Sum(data)
	return subtle.ConstantTimeCompare(actual[:], expected[:]) == 1
}

// Format returns the lowercase hex encoding of digest.
func Format(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return Format(d)
}

// Parse decodes a 64-character hex string produced by Format.
func Parse(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, fmt.Errorf("contenthash: parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("contenthash: digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// MarshalText implements encoding.TextMarshaler, so digests appear as
// hex strings in JSON and CBOR reports.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(Format(d)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
