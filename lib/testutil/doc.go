// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for netcore packages.
//
// [TempFile] writes a file into the test's temporary directory and
// returns its path. [Fifo] creates a named pipe there, for exercising
// code paths that must treat a path as a stream rather than a regular
// file. Both are removed when the test completes.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls when waiting on a helper goroutine,
// such as the writer side of a pipe.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation, used for file names that must not collide within a
// test.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no netcore-internal dependencies.
package testutil
