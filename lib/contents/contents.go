// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contents

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/netcore/lib/growth"
	"github.com/bureau-foundation/netcore/lib/secret"
)

// DefaultMaxLength is the limit used when Options.MaxLength is zero.
const DefaultMaxLength = 2 * 1024 * 1024

// chunkSize is the read size for sources without a usable stat size.
const chunkSize = 4096

// Options controls a bounded read.
type Options struct {
	// MaxLength bounds the result including its NUL terminator: at most
	// MaxLength-1 bytes of content are accepted. Zero selects
	// DefaultMaxLength. Negative values panic.
	MaxLength int

	// Secret keeps the result in secret memory and zeroes every
	// intermediate copy.
	Secret bool

	// Allocator supplies secret memory. Nil selects
	// secret.LockedAllocator. Ignored unless Secret is set.
	Allocator secret.Allocator
}

func (o Options) maxLength() int {
	switch {
	case o.MaxLength < 0:
		panic(fmt.Sprintf("contents: negative max length %d", o.MaxLength))
	case o.MaxLength == 0:
		return DefaultMaxLength
	}
	return o.MaxLength
}

func (o Options) allocator() secret.Allocator {
	if o.Allocator != nil {
		return o.Allocator
	}
	return secret.LockedAllocator()
}

// Contents is the result of a bounded read: Len bytes of data followed
// by a NUL. Release it when done; for secret reads this wipes and
// unlocks the memory.
type Contents struct {
	plain    []byte
	shared   *secret.Shared
	length   int
	released bool
}

// Bytes returns the data without the terminator.
func (c *Contents) Bytes() []byte {
	c.checkAlive()
	if c.shared != nil {
		return c.shared.Bytes()
	}
	return c.plain[:c.length:c.length]
}

// Terminated returns the data followed by its NUL terminator.
func (c *Contents) Terminated() []byte {
	c.checkAlive()
	if c.shared != nil {
		if c.length == 0 {
			return []byte{0}
		}
		return c.shared.Allocated()[:c.length+1]
	}
	return c.plain[: c.length+1 : c.length+1]
}

// Len returns the number of bytes read, excluding the terminator.
func (c *Contents) Len() int {
	return c.length
}

// Secret reports whether the data lives in secret memory.
func (c *Contents) Secret() bool {
	return c.shared != nil
}

// Release drops the data. Secret data is zeroed and its memory
// returned to the allocator. Calling Release more than once is a
// no-op.
func (c *Contents) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	c.plain = nil
	if c.shared == nil {
		return nil
	}
	shared := c.shared
	c.shared = nil
	return shared.Release()
}

func (c *Contents) checkAlive() {
	if c.released {
		panic("contents: use after Release")
	}
}

// ReadFD reads everything from fd, which stays open. The read starts
// at the current file offset.
func ReadFD(fd int, options Options) (*Contents, error) {
	if fd < 0 {
		panic(fmt.Sprintf("contents: invalid file descriptor %d", fd))
	}
	maxLength := options.maxLength()

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return nil, fmt.Errorf("contents: %w: fd %d: %w", ErrStat, fd, err)
	}

	if stat.Size > 0 && stat.Mode&unix.S_IFMT == unix.S_IFREG {
		return readSized(fd, stat.Size, maxLength, options)
	}
	return readStream(fd, maxLength, options)
}

// ReadFile opens path relative to dirfd (the working directory when
// dirfd is negative) with O_RDONLY|O_CLOEXEC, reads it with ReadFD and
// closes it.
func ReadFile(dirfd int, path string, options Options) (*Contents, error) {
	if path == "" {
		return nil, fmt.Errorf("contents: %w: empty path: %w", ErrOpen, unix.EINVAL)
	}
	if dirfd < 0 {
		dirfd = unix.AT_FDCWD
	}

	var fd int
	var err error
	for {
		fd, err = unix.Openat(dirfd, path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("contents: %w %q: %w", ErrOpen, path, err)
	}
	defer unix.Close(fd)

	result, err := ReadFD(fd, options)
	if err != nil {
		return nil, fmt.Errorf("%w (reading %q)", err, path)
	}
	return result, nil
}

func tooLarge(size int64, maxLength int) error {
	return fmt.Errorf("contents: %w (%d+1 bytes with maximum %d bytes): %w", ErrTooLarge, size, maxLength, unix.EMSGSIZE)
}

// readSized reads a regular file whose stat size is known.
func readSized(fd int, size int64, maxLength int, options Options) (*Contents, error) {
	if size > int64(maxLength-1) {
		return nil, tooLarge(size, maxLength)
	}
	length := int(size)

	if !options.Secret {
		data := make([]byte, length+1)
		count, err := ReadLoop(fd, data[:length], true)
		if err != nil {
			return nil, fmt.Errorf("contents: reading %d bytes from fd %d: %w", length, fd, err)
		}
		data[count] = 0
		if count < length {
			data = append([]byte(nil), data[:count+1]...)
		}
		return &Contents{plain: data, length: count}, nil
	}

	allocator := options.allocator()
	buffer, err := secret.NewWithAllocator(length+1, allocator)
	if err != nil {
		return nil, fmt.Errorf("contents: %w: %d+1 bytes: %w", ErrAllocation, length, err)
	}
	data := buffer.Bytes()
	count, err := ReadLoop(fd, data[:length], true)
	if err != nil {
		buffer.Close()
		return nil, fmt.Errorf("contents: reading %d bytes from fd %d: %w", length, fd, err)
	}
	data[count] = 0
	if count == length {
		return &Contents{shared: buffer.Share(count), length: count}, nil
	}

	// The file shrank: move the bytes into an allocation of the
	// right size and wipe the oversized one.
	shared, err := secret.CopyWithAllocator(data[:count], allocator)
	buffer.Close()
	if err != nil {
		return nil, fmt.Errorf("contents: %w: %d+1 bytes: %w", ErrAllocation, count, err)
	}
	return &Contents{shared: shared, length: count}, nil
}

// readStream reads a source of unknown size chunk by chunk.
func readStream(fd int, maxLength int, options Options) (*Contents, error) {
	var chunk [chunkSize]byte
	if options.Secret {
		defer secret.Zero(chunk[:])
	}

	var storage []byte
	discard := func() {
		if options.Secret {
			secret.Zero(storage)
		}
	}

	have := 0
	for {
		count, err := ReadLoop(fd, chunk[:], true)
		if err != nil {
			discard()
			return nil, fmt.Errorf("contents: reading stream fd %d: %w", fd, err)
		}
		if count == 0 {
			break
		}

		needed := have + count + 1
		if needed > maxLength {
			discard()
			return nil, tooLarge(int64(have+count), maxLength)
		}
		if needed > len(storage) {
			storage = growStorage(storage, have, needed, maxLength, options.Secret)
		}
		copy(storage[have:], chunk[:count])
		have += count
	}

	if options.Secret {
		shared, err := secret.CopyWithAllocator(storage[:have], options.allocator())
		discard()
		if err != nil {
			return nil, fmt.Errorf("contents: %w: %d+1 bytes: %w", ErrAllocation, have, err)
		}
		return &Contents{shared: shared, length: have}, nil
	}

	if len(storage) != have+1 {
		trimmed := make([]byte, have+1)
		copy(trimmed, storage[:have])
		storage = trimmed
	}
	storage[have] = 0
	return &Contents{plain: storage, length: have}, nil
}

// growStorage returns storage enlarged to hold at least needed bytes
// but never more than maxLength, with the first have bytes preserved.
// When wipe is set the superseded array is zeroed.
func growStorage(storage []byte, have, needed, maxLength int, wipe bool) []byte {
	size := growth.Grow(needed, true)
	if size > maxLength {
		size = maxLength
	}
	grown := make([]byte, size)
	copy(grown, storage[:have])
	if wipe {
		secret.Zero(storage)
	}
	return grown
}
