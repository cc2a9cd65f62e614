// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package strbuf provides bounded, NUL-terminated text buffers for code
// that renders log lines, D-Bus error messages and ifcfg fragments into
// fixed-size storage.
//
// [Cursor] is a write position inside a caller-owned byte slice. Every
// append keeps the written text NUL-terminated and never writes past
// the slice; output that does not fit is truncated and the cursor
// becomes inert (Remaining() == 0). Truncation is not an error: callers
// check Remaining() when they care. [Cursor.Window] and
// [Cursor.SeekEnd] let foreign formatters write into the tail and then
// resynchronize the cursor.
//
// [Quote] renders an optional string in double quotes into a fixed
// buffer and marks truncation by replacing the closing quote with '^',
// so "abc" and a cut-off "ab^ are distinguishable.
//
// [Builder] is the growable counterpart used by lib/utf8safe. It sizes
// its storage with lib/growth and, for secret content, wipes every
// superseded backing array with lib/secret's [secret.Zero].
package strbuf
