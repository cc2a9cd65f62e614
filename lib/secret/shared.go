// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"sync/atomic"
)

// Shared is a reference-counted, read-only view of a secret
// allocation. Create one with [Buffer.Share] or [Copy]; take extra
// references with Ref; drop each with Release. The final Release
// zeroes the whole allocation (including any bytes beyond the logical
// view, such as a NUL terminator) and frees it.
type Shared struct {
	data       []byte
	logical    int
	allocator  Allocator
	references atomic.Int32
}

// Copy copies mem into a fresh locked allocation of len(mem)+1 bytes
// whose last byte is NUL, and returns a handle exposing len(mem)
// bytes. The terminator makes the secret safe to pass to APIs that
// expect C strings. An empty mem yields an empty handle that owns no
// memory.
func Copy(mem []byte) (*Shared, error) {
	return CopyWithAllocator(mem, LockedAllocator())
}

// CopyWithAllocator is Copy with an explicit allocator.
func CopyWithAllocator(mem []byte, allocator Allocator) (*Shared, error) {
	if len(mem) == 0 {
		shared := &Shared{}
		shared.references.Store(1)
		return shared, nil
	}

	buffer, err := NewWithAllocator(len(mem)+1, allocator)
	if err != nil {
		return nil, err
	}
	data := buffer.Bytes()
	copy(data, mem)
	data[len(mem)] = 0
	return buffer.Share(len(mem)), nil
}

// Bytes returns the logical view. The slice is only valid while the
// caller holds a reference. Panics after the last Release.
func (s *Shared) Bytes() []byte {
	s.checkAlive()
	return s.data[:s.logical:s.logical]
}

// Allocated returns the whole allocation behind the logical view,
// including bytes past it such as the NUL terminator Copy appends. An
// empty handle returns nil. Same lifetime rules as Bytes.
func (s *Shared) Allocated() []byte {
	s.checkAlive()
	return s.data[:len(s.data):len(s.data)]
}

// Len returns the logical length.
func (s *Shared) Len() int {
	return s.logical
}

// String returns a heap copy of the logical view. See [Buffer.String]
// for why this should be rare.
func (s *Shared) String() string {
	return string(s.Bytes())
}

// Ref adds a reference and returns s.
func (s *Shared) Ref() *Shared {
	for {
		current := s.references.Load()
		if current <= 0 {
			panic("secret: Ref on released handle")
		}
		if s.references.CompareAndSwap(current, current+1) {
			return s
		}
	}
}

// Release drops one reference. Dropping the last one zeroes the entire
// allocation and frees it; the returned error is the allocator's. A
// Release beyond the last reference panics.
func (s *Shared) Release() error {
	remaining := s.references.Add(-1)
	switch {
	case remaining > 0:
		return nil
	case remaining < 0:
		panic(fmt.Sprintf("secret: Release on released handle (count %d)", remaining))
	}

	if s.data == nil {
		return nil
	}
	data := s.data
	s.data = nil
	Zero(data)
	return s.allocator.Free(data)
}

func (s *Shared) checkAlive() {
	if s.references.Load() <= 0 {
		panic("secret: read from released handle")
	}
}
