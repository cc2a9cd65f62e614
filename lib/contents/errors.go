// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contents

import "errors"

var (
	// ErrOpen reports that the path could not be opened.
	ErrOpen = errors.New("cannot open")

	// ErrStat reports that fstat failed on the descriptor.
	ErrStat = errors.New("cannot stat")

	// ErrTooLarge reports that the source holds MaxLength bytes or
	// more. It is wrapped together with EMSGSIZE.
	ErrTooLarge = errors.New("content too large")

	// ErrRead reports a read failure other than EINTR, or EAGAIN when
	// polling was requested.
	ErrRead = errors.New("read failed")

	// ErrAllocation reports that secret memory could not be obtained.
	ErrAllocation = errors.New("allocation failed")

	// ErrShortRead reports end of file before the requested byte
	// count. It is wrapped together with EIO.
	ErrShortRead = errors.New("short read")
)
