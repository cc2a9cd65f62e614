// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contenthash

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zeebo/blake3"
)

func TestSum_Deterministic(t *testing.T) {
	first := Sum([]byte("[connection]\nid=home\n"))
	second := Sum([]byte("[connection]\nid=home\n"))
	if first != second {
		t.Fatalf("same input produced %s and %s", first, second)
	}
	if other := Sum([]byte("[connection]\nid=work\n")); other == first {
		t.Fatalf("different inputs produced the same digest %s", first)
	}
}

func TestSum_KeyedDiffersFromPlain(t *testing.T) {
	data := []byte("hunter2")
	plain := blake3.Sum256(data)
	if keyed := Sum(data); bytes.Equal(keyed[:], plain[:]) {
		t.Fatal("keyed digest equals unkeyed BLAKE3")
	}
}

func TestHasher_MatchesSum(t *testing.T) {
	data := bytes.Repeat([]byte("chunked input "), 2000)

	hasher := New()
	for offset := 0; offset < len(data); offset += 4096 {
		end := min(offset+4096, len(data))
		hasher.Write(data[offset:end])
	}
	if got, want := hasher.Digest(), Sum(data); got != want {
		t.Errorf("incremental digest %s, want %s", got, want)
	}

	hasher.Reset()
	if got, want := hasher.Digest(), Sum(nil); got != want {
		t.Errorf("digest after Reset %s, want empty-input digest %s", got, want)
	}
}

func TestVerify(t *testing.T) {
	digest := Sum([]byte("payload"))
	if !Verify([]byte("payload"), digest) {
		t.Error("Verify rejected matching data")
	}
	if Verify([]byte("payloaD"), digest) {
		t.Error("Verify accepted different data")
	}
}

func TestFormatParse(t *testing.T) {
	digest := Sum([]byte("round trip"))
	text := Format(digest)
	if len(text) != 64 || strings.ToLower(text) != text {
		t.Fatalf("Format = %q, want 64 lowercase hex characters", text)
	}
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed != digest {
		t.Errorf("Parse(Format(d)) = %s, want %s", parsed, digest)
	}
	if digest.String() != text {
		t.Errorf("String() = %q, want %q", digest.String(), text)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "zz", strings.Repeat("ab", 31), strings.Repeat("ab", 33)} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestDigest_TextMarshaling(t *testing.T) {
	digest := Sum([]byte("text form"))
	text, err := digest.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(text) != Format(digest) {
		t.Errorf("MarshalText = %q, want %q", text, Format(digest))
	}

	var decoded Digest
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if decoded != digest {
		t.Errorf("UnmarshalText = %s, want %s", decoded, digest)
	}
	if err := decoded.UnmarshalText([]byte("not hex")); err == nil {
		t.Error("UnmarshalText accepted invalid input")
	}
}
