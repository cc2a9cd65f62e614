// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"crypto/subtle"
	"fmt"
	"io"
	"sync"
)

// Buffer holds sensitive data in memory obtained from an [Allocator]
// and zeroed before it is returned.
//
// A Buffer must not be copied after creation. It ends its life in one
// of two ways: Close zeroes and frees it immediately, or Share hands
// the memory to a reference-counted [Shared] handle. After either, any
// direct access to the buffer's contents panics.
type Buffer struct {
	mu        sync.Mutex
	data      []byte
	length    int
	allocator Allocator
	closed    bool
	shared    bool
}

// New allocates a secret buffer of the given size from
// [LockedAllocator]. The memory starts zero-filled.
//
// size must be positive; a zero or negative size is a caller bug and
// panics. The returned error reports allocation failure (for example,
// RLIMIT_MEMLOCK exhaustion).
func New(size int) (*Buffer, error) {
	return NewWithAllocator(size, LockedAllocator())
}

// NewWithAllocator is New with an explicit allocator.
func NewWithAllocator(size int, allocator Allocator) (*Buffer, error) {
	if size <= 0 {
		panic(fmt.Sprintf("secret: buffer size must be positive, got %d", size))
	}

	data, err := allocator.Allocate(size)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		allocator.Free(data)
		return nil, fmt.Errorf("secret: allocator returned %d bytes, want %d", len(data), size)
	}

	return &Buffer{
		data:      data,
		length:    size,
		allocator: allocator,
	}, nil
}

// NewFromBytes creates a secret buffer from existing data. The source
// bytes are copied into the protected region and then zeroed in place,
// so the caller's original slice no longer holds the secret.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(source))
	if err != nil {
		Zero(source)
		return nil, err
	}

	copy(buffer.data, source)
	Zero(source)

	return buffer, nil
}

// Bytes returns the secret data. The returned slice points directly into
// the protected region; do not hold references to it beyond the
// lifetime of the Buffer. Panics if the buffer has been closed or
// shared.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkUsable("read from")
	return b.data[:b.length]
}

// String returns the secret data as a string. The returned string is
// backed by a heap-allocated copy (Go strings are immutable and must
// live on the heap), so this should only be used at API boundaries
// that require string arguments. Prefer Bytes() when possible.
//
// Panics if the buffer has been closed or shared.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkUsable("read from")
	return string(b.data[:b.length])
}

// Len returns the size of the secret data.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.length
}

// Equal reports whether the buffer holds exactly other, in time that
// does not depend on the contents.
func (b *Buffer) Equal(other []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkUsable("compare")
	return subtle.ConstantTimeCompare(b.data[:b.length], other) == 1
}

// WriteTo writes the secret to w without an intermediate heap copy.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkUsable("write from")
	written, err := w.Write(b.data[:b.length])
	return int64(written), err
}

// Close zeros the buffer contents and returns the memory to the
// allocator. After Close, any access to the buffer's contents panics.
// Close is idempotent. Closing a buffer that was handed to Share is a
// caller bug and panics: release the Shared handle instead.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shared {
		panic("secret: Close on a shared buffer")
	}
	if b.closed {
		return nil
	}
	b.closed = true
	return b.wipeAndFree()
}

// Share converts the buffer into a reference-counted handle exposing
// the first logicalLength bytes. The handle starts with one reference.
// The Buffer itself becomes unusable; the memory is wiped and freed by
// the last [Shared.Release].
//
// logicalLength must lie within [0, Len()]; anything else panics.
func (b *Buffer) Share(logicalLength int) *Shared {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkUsable("share")
	if logicalLength < 0 || logicalLength > b.length {
		panic(fmt.Sprintf("secret: logical length %d outside allocation of %d bytes", logicalLength, b.length))
	}
	b.shared = true

	shared := &Shared{
		data:      b.data,
		logical:   logicalLength,
		allocator: b.allocator,
	}
	shared.references.Store(1)
	return shared
}

// checkUsable panics when the buffer no longer owns its memory. The
// caller must hold mu.
func (b *Buffer) checkUsable(operation string) {
	if b.closed {
		panic("secret: " + operation + " closed buffer")
	}
	if b.shared {
		panic("secret: " + operation + " buffer after Share")
	}
}

// wipeAndFree zeroes the whole allocation and releases it. The caller
// must hold mu.
func (b *Buffer) wipeAndFree() error {
	Zero(b.data)
	err := b.allocator.Free(b.data)
	b.data = nil
	return err
}
