// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package utf8safe renders arbitrary bytes (SSIDs, interface names,
// file contents from ifcfg files) as valid UTF-8 and reverses the
// transformation.
//
// [Escape] keeps valid UTF-8 runs as they are and replaces every byte
// that is not part of one, including NUL, with a backslash and three
// octal digits. The backslash itself becomes "\\". [Flags] optionally
// extend escaping to control bytes (below 0x20) and to every byte at
// or above 0x7F. If nothing needs escaping the input is returned as
// is, without a copy.
//
// [Unescape] undoes C-style escapes: \b \f \n \r \t \v, one to three
// octal digits, and any other escaped character taken literally. It
// never fails: a trailing lone backslash is dropped. Text without a
// backslash is returned as is.
//
//	escaped := utf8safe.EscapeString(ssid, utf8safe.EscapeControl)
//	original := utf8safe.UnescapeString(escaped)
//
// With the [Secret] flag, every intermediate buffer is wiped before it
// is released (see lib/strbuf).
package utf8safe
