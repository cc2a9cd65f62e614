// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dbuspath orders D-Bus object paths the way a person reading
// a device list expects: "/Devices/2" before "/Devices/10".
//
// [Compare] behaves like a byte-wise string comparison except when two
// paths share everything up to their last slash. In that case a last
// component that is a canonical non-negative decimal ("0", or a
// non-zero digit followed by digits, fitting in an int64) compares by
// value. When exactly one of the two components is numeric the
// non-numeric one sorts first, so "010", "0x" and "8" under the same
// parent always order as 010 < 0x < 8 and no three siblings can form a
// cycle.
//
// Paths under different parents compare as whole strings. Numeric
// ordering therefore only holds among siblings; a sibling set can
// straddle a path under another parent ("/x/9" and "/x/10" around
// "/x/2/y"). Sort and Index assume the collection is consistent under
// Compare, which holds for a list of children of one object.
package dbuspath
