// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for netcore
// binaries. It centralizes the raw I/O that happens outside the
// structured logger:
//
//   - Fatal error reporting to stderr when the logger may not be
//     initialized (pre-logger).
//   - Process exit after an unrecoverable error in main(), honoring
//     errors that carry their own exit code.
package process
