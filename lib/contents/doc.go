// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package contents reads whole files and descriptors into memory under
// a hard size limit.
//
// [ReadFD] and [ReadFile] return a [Contents] holding at most
// MaxLength-1 bytes followed by a NUL, so the data can be handed to
// anything that expects a C string. MaxLength of zero means 2 MiB.
// Two strategies are used:
//
//   - Regular files with a non-zero size are checked against the limit
//     before anything is read, then read with one allocation of
//     size+1. A file that shrinks underneath the read is trimmed to the
//     bytes that arrived.
//   - Everything else (pipes, sockets, character devices, and procfs
//     or sysfs files that report a size of zero) is read in 4096-byte
//     chunks into storage grown by [growth.NextSize], with the
//     cumulative limit enforced before every growth step.
//
// With Options.Secret set, the final bytes live in a [secret.Shared]
// region (mlocked, excluded from core dumps, wiped on release) and
// every intermediate heap copy, including the stack chunk, is zeroed
// before it is dropped.
//
// The low-level helpers mirror what the readers are built on:
// [ReadLoop] retries reads interrupted by signals and optionally waits
// with ppoll when a non-blocking descriptor has no data yet;
// [ReadLoopExact] fails with [ErrShortRead] unless the buffer is
// filled; [WaitForEvent] is ppoll with an optional timeout that
// resumes after signals.
//
// [WriteFile] replaces a file atomically, and [ReadSecretFromPath]
// reads a password or token from a file or standard input.
//
// Failures are reported as one of the sentinel errors ([ErrOpen],
// [ErrStat], [ErrTooLarge], [ErrRead], [ErrAllocation],
// [ErrShortRead]) wrapped together with the underlying errno, so
// callers can match either with errors.Is.
package contents
