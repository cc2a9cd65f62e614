// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package strbuf

const (
	// NullText is written by Quote for a nil value.
	NullText = "(null)"

	// TruncationMarker replaces the closing quote when the value did
	// not fit.
	TruncationMarker = '^'
)

// Quote writes value in double quotes into buf and returns the text
// written. The result is NUL-terminated unless buf is empty. A nil
// value writes NullText without quotes (truncated like any cursor
// append). When the quoted value does not fit, the last visible
// character becomes TruncationMarker instead of the closing quote:
//
//	Quote(make([]byte, 8), &hi)     // "hi"
//	Quote(make([]byte, 6), &hello)  // "hel^
//
// Buffers of one or two bytes cannot hold any quote characters: one
// byte yields an empty string, two yield "^".
func Quote(buf []byte, value *string) string {
	if value == nil {
		cursor := NewCursor(buf)
		cursor.AppendString(NullText)
		return cursor.String()
	}

	switch len(buf) {
	case 0:
		return ""
	case 1:
		buf[0] = 0
		return ""
	case 2:
		buf[0] = TruncationMarker
		buf[1] = 0
		return string(buf[:1])
	}

	buf[0] = '"'
	cursor := &Cursor{buf: buf, pos: 1}
	cursor.AppendString(*value)

	switch cursor.Remaining() {
	case 0:
		// Truncated: the final slot holds the terminator, so the
		// marker replaces the last copied character.
		buf[cursor.pos-2] = TruncationMarker
	case 1:
		// The value fit exactly but the closing quote does not.
		buf[cursor.pos-1] = TruncationMarker
	default:
		buf[cursor.pos] = '"'
		buf[cursor.pos+1] = 0
	}
	return cString(buf)
}

// QuoteString quotes value into a fresh buffer with room for maxChars
// characters of value plus the quotes and terminator.
func QuoteString(value string, maxChars int) string {
	if maxChars < 0 {
		maxChars = 0
	}
	return Quote(make([]byte, maxChars+3), &value)
}
