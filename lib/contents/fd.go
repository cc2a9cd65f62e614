// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contents

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ReadLoop reads from fd until buffer is full or end of file, and
// returns the number of bytes read. Reads interrupted by a signal are
// retried. When poll is true and fd is non-blocking, EAGAIN waits for
// POLLIN and retries instead of failing.
//
// An error after some bytes have arrived is not reported: the partial
// count is returned and the next call sees the error. An empty buffer
// still performs one read, which validates the descriptor.
func ReadLoop(fd int, buffer []byte, poll bool) (int, error) {
	total := 0
	for {
		count, err := unix.Read(fd, buffer[total:])
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if err == unix.EAGAIN && poll {
				// Errors and hangups on fd surface through the next read.
				if _, err = waitForEvent(fd, unix.POLLIN, -1); err == nil {
					continue
				}
			}
			if total > 0 {
				return total, nil
			}
			return 0, fmt.Errorf("%w: %w", ErrRead, err)
		}
		if count == 0 {
			return total, nil
		}
		total += count
		if total == len(buffer) {
			return total, nil
		}
	}
}

// waitForEvent is the readiness wait ReadLoop uses. Tests replace it.
var waitForEvent = WaitForEvent

// ReadLoopExact is ReadLoop that fails with ErrShortRead (wrapped with
// EIO) unless buffer was filled completely.
func ReadLoopExact(fd int, buffer []byte, poll bool) error {
	count, err := ReadLoop(fd, buffer, poll)
	if err != nil {
		return err
	}
	if count != len(buffer) {
		return fmt.Errorf("%w: got %d of %d bytes: %w", ErrShortRead, count, len(buffer), unix.EIO)
	}
	return nil
}

// WaitForEvent blocks until one of events (POLLIN, POLLOUT, ...) is
// pending on fd or timeout elapses, and returns the reported revents.
// A negative timeout waits forever. A timeout returns zero revents and
// no error. A wait interrupted by a signal resumes with whatever time
// is left.
func WaitForEvent(fd int, events int16, timeout time.Duration) (int16, error) {
	pollFDs := []unix.PollFd{{Fd: int32(fd), Events: events}}

	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		var remaining *unix.Timespec
		if timeout >= 0 {
			timespec := unix.NsecToTimespec(max(time.Until(deadline), 0).Nanoseconds())
			remaining = &timespec
		}

		ready, err := unix.Ppoll(pollFDs, remaining, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("contents: ppoll on fd %d: %w", fd, err)
		}
		if ready == 0 {
			return 0, nil
		}
		return pollFDs[0].Revents, nil
	}
}
