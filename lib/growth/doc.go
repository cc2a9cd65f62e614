// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package growth computes allocation sizes for buffers that grow on
// demand.
//
// [NextSize] maps a requested byte count to the capacity a buffer
// owner should allocate. Small requests land in four fixed tiers (8,
// 16, 32, 40). Mid-sized requests double from 128 and subtract 24
// bytes of allocator head-room, giving 104, 232, 488, 1000, 2024, ...
// Large requests round up to whole 4 KiB pages (again minus the
// head-room), on the assumption that such allocations are page-backed
// and cheap to extend. Requests that cannot be rounded without
// wrapping saturate at [MaxSize].
//
// [Grow] is the int-typed convenience used by lib/strbuf and
// lib/contents.
//
// This package has no dependencies.
package growth
