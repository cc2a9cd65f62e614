// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Allocator provides the backing memory for secret buffers. Free is
// only ever called with memory that has already been zeroed.
type Allocator interface {
	// Allocate returns a writable region of exactly size bytes.
	Allocate(size int) ([]byte, error)

	// Free releases a region previously returned by Allocate.
	Free(data []byte) error
}

// LockedAllocator returns the default allocator: anonymous mmap
// regions that are
//   - locked into physical RAM (mlock), preventing swap
//   - excluded from core dumps (MADV_DONTDUMP)
//   - outside the Go heap, invisible to the garbage collector
func LockedAllocator() Allocator {
	return lockedAllocator{}
}

type lockedAllocator struct{}

func (lockedAllocator) Allocate(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	// Lock the memory to prevent it from being swapped to disk.
	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	// MADV_DONTDUMP may not be supported on all kernels, but a secret
	// that could land in a core file is not one we hand out.
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return data, nil
}

func (lockedAllocator) Free(data []byte) error {
	var firstError error
	if err := unix.Munlock(data); err != nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}
	return firstError
}
