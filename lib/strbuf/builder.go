// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package strbuf

import (
	"github.com/bureau-foundation/netcore/lib/growth"
	"github.com/bureau-foundation/netcore/lib/secret"
)

// Builder accumulates bytes in storage sized by [growth.NextSize].
// Growing always copies into a fresh array, so capacities follow the
// no-realloc (always doubling) schedule.
//
// A secret Builder zeroes each superseded array before dropping it.
// The caller owns the final storage returned by Finish and is
// responsible for wiping it; Wipe discards everything without
// returning it.
type Builder struct {
	buf    []byte
	secret bool
}

// NewBuilder returns a builder with room for at least capacity bytes.
func NewBuilder(capacity int, secret bool) *Builder {
	builder := &Builder{secret: secret}
	if capacity > 0 {
		builder.buf = make([]byte, 0, growth.Grow(capacity, false))
	}
	return builder
}

// Len returns the number of bytes appended.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the current storage.
func (b *Builder) Cap() int {
	return cap(b.buf)
}

// Bytes returns the accumulated bytes. The slice aliases the builder's
// storage and is invalidated by the next append.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// AppendByte appends one byte.
func (b *Builder) AppendByte(ch byte) {
	b.reserve(1)
	b.buf = append(b.buf, ch)
}

// Append2 appends two bytes.
func (b *Builder) Append2(ch0, ch1 byte) {
	b.reserve(2)
	b.buf = append(b.buf, ch0, ch1)
}

// Append4 appends four bytes.
func (b *Builder) Append4(ch0, ch1, ch2, ch3 byte) {
	b.reserve(4)
	b.buf = append(b.buf, ch0, ch1, ch2, ch3)
}

// AppendString appends s.
func (b *Builder) AppendString(s string) {
	b.reserve(len(s))
	b.buf = append(b.buf, s...)
}

// AppendBytes appends data.
func (b *Builder) AppendBytes(data []byte) {
	b.reserve(len(data))
	b.buf = append(b.buf, data...)
}

// Finish returns the accumulated bytes and detaches them from the
// builder, which is left empty. The result's capacity is trimmed to its
// length; for a secret builder the untrimmed array is wiped.
func (b *Builder) Finish() []byte {
	result := b.buf
	b.buf = nil
	if cap(result) == len(result) {
		return result
	}
	exact := make([]byte, len(result))
	copy(exact, result)
	if b.secret {
		secret.Zero(result[:cap(result)])
	}
	return exact
}

// Wipe zeroes the storage and resets the builder to empty. Call it on
// every exit path that abandons a secret builder.
func (b *Builder) Wipe() {
	secret.Zero(b.buf[:cap(b.buf)])
	b.buf = b.buf[:0]
}

// reserve guarantees room for extra more bytes without append
// reallocating behind the builder's back.
func (b *Builder) reserve(extra int) {
	needed := len(b.buf) + extra
	if needed <= cap(b.buf) {
		return
	}
	next := make([]byte, len(b.buf), growth.Grow(needed, false))
	copy(next, b.buf)
	if b.secret {
		secret.Zero(b.buf[:cap(b.buf)])
	}
	b.buf = next
}
