// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides memory for sensitive data such as Wi-Fi
// passphrases, VPN keys, and 802.1X credentials that is guaranteed to
// be zeroed before it is released.
//
// [Buffer] is an exclusively owned region obtained from an [Allocator].
// The default allocator ([LockedAllocator]) maps anonymous memory
// outside the Go heap via mmap(MAP_ANONYMOUS), locks it into RAM via
// mlock, and excludes it from core dumps via madvise(MADV_DONTDUMP).
// Because the memory never lives on the Go heap, the garbage collector
// cannot copy or relocate it.
//
// A Buffer is either closed directly ([Buffer.Close]) or converted with
// [Buffer.Share] into a reference-counted [Shared] handle that exposes
// a logical prefix of the allocation. The common pattern allocates one
// extra byte for a NUL terminator and shares only the payload:
//
//	buffer, err := secret.New(len(passphrase) + 1)
//	...
//	copy(buffer.Bytes(), passphrase)
//	shared := buffer.Share(len(passphrase))
//	defer shared.Release()
//
// The last [Shared.Release] zeroes the entire allocated region, not
// just the logical view, before handing it back to the allocator.
//
// [Zero] is the wipe primitive used for every secret intermediate in
// this module (lib/strbuf, lib/utf8safe, lib/contents). It is not
// inlined and keeps its argument alive past the loop, so the compiler
// cannot treat the stores as dead.
//
// Depends on golang.org/x/sys/unix. No other netcore dependencies.
package secret
