// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package growth

import "math"

// MaxSize is the largest size NextSize can return. It is returned
// unchanged when a request is too large to round up.
const MaxSize = math.MaxUint

// headRoom is subtracted from power-of-two and page-sized capacities so
// the allocation plus the allocator's bookkeeping stays on the boundary.
const headRoom = 24

const (
	pageMask = 0x0FFF
	// midLimit is the largest request served by the doubling scheme
	// when the caller actually reallocates in place.
	midLimit = 0x2000 - headRoom
	// midLimitNoRealloc extends doubling to half the address space for
	// callers that always copy into a fresh buffer.
	midLimitNoRealloc = (MaxSize/2 + 1) - headRoom
)

// NextSize returns the capacity to allocate for a buffer that must hold
// at least requested bytes.
//
// trueRealloc reports whether the caller grows the buffer with an
// in-place reallocation. When false, the buffer is copied on every
// growth and NextSize keeps growing exponentially for all sizes up to
// half of MaxSize.
//
// The result is never smaller than requested, except that requests
// within one page of MaxSize saturate at MaxSize.
func NextSize(trueRealloc bool, requested uint) uint {
	if requested <= 40 {
		switch {
		case requested <= 8:
			return 8
		case requested <= 16:
			return 16
		case requested <= 32:
			return 32
		default:
			return 40
		}
	}

	if requested <= midLimit || (!trueRealloc && requested <= midLimitNoRealloc) {
		size := uint(128)
		for size-headRoom < requested {
			size <<= 1
		}
		return size - headRoom
	}

	if requested > MaxSize-pageMask-headRoom {
		return MaxSize
	}

	// Round requested plus the head-room up to a page so subtracting the
	// head-room afterwards cannot drop below requested.
	return ((requested + headRoom + pageMask) &^ uint(pageMask)) - headRoom
}

// Grow is NextSize for int-sized buffers. It panics if needed is
// negative and clamps the result to math.MaxInt.
func Grow(needed int, trueRealloc bool) int {
	if needed < 0 {
		panic("growth: negative size")
	}
	size := NextSize(trueRealloc, uint(needed))
	if size > math.MaxInt {
		return math.MaxInt
	}
	return int(size)
}
