// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package strbuf

import (
	"bytes"
	"fmt"
	"strings"
)

// Cursor tracks a write position inside a fixed-capacity buffer. The
// bytes from the position to the end of the buffer are the remaining
// space. Once any append has happened the byte at the position is NUL
// while space remains; when Remaining reaches zero the last byte of the
// buffer is NUL and the cursor ignores further writes.
//
// A Cursor is owned by one goroutine.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor at the start of buf. buf is not cleared.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining returns the number of bytes between the cursor and the end
// of the buffer, including the slot reserved for the terminator.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Window returns the unwritten tail of the buffer for use by external
// formatters. Call SeekEnd afterwards.
func (c *Cursor) Window() []byte {
	return c.buf[c.pos:]
}

// Len returns the number of text bytes written before the terminator.
func (c *Cursor) Len() int {
	if c.Remaining() == 0 && len(c.buf) > 0 {
		return len(c.buf) - 1
	}
	return c.pos
}

// String returns the text written so far.
func (c *Cursor) String() string {
	return string(c.buf[:c.Len()])
}

// AppendByte appends ch. With exactly one byte left, the terminator
// takes that byte instead and the cursor is exhausted; a non-NUL byte
// never occupies the final slot.
func (c *Cursor) AppendByte(ch byte) {
	switch c.Remaining() {
	case 0:
		return
	case 1:
		c.buf[c.pos] = 0
		c.pos++
	default:
		c.buf[c.pos] = ch
		c.buf[c.pos+1] = 0
		c.pos++
	}
}

// AppendString appends s with C string semantics: s ends at its first
// NUL byte. An empty s only writes the terminator and consumes nothing.
// If s does not fit, as much as fits is copied, the buffer is
// terminated, and the cursor is exhausted.
func (c *Cursor) AppendString(s string) {
	if index := strings.IndexByte(s, 0); index >= 0 {
		s = s[:index]
	}
	c.appendTruncating(s)
}

// Appendf appends fmt.Sprintf(format, args...). Output that does not
// fit is truncated and the cursor is exhausted; unlike SeekEnd there is
// no attempt to recover a position inside the truncated text.
func (c *Cursor) Appendf(format string, args ...any) {
	// Skips formatting on an exhausted cursor.
	if c.Remaining() == 0 {
		return
	}
	c.appendTruncating(fmt.Sprintf(format, args...))
}

func (c *Cursor) appendTruncating(s string) {
	remaining := c.Remaining()
	switch {
	case remaining == 0:
		return
	case s == "":
		c.buf[c.pos] = 0
	case len(s) >= remaining:
		copy(c.buf[c.pos:], s[:remaining-1])
		c.buf[len(c.buf)-1] = 0
		c.pos = len(c.buf)
	default:
		copy(c.buf[c.pos:], s)
		c.pos += len(s)
		c.buf[c.pos] = 0
	}
}

// SeekEnd resynchronizes the cursor after something else wrote into
// Window. If a NUL lies within the remaining bytes the cursor moves to
// it and at least one byte remains, even when the NUL is in the final
// slot; whether the foreign writer truncated at exactly that boundary
// cannot be told apart from an exact fit. If there is no NUL, the last
// byte is overwritten with NUL and the cursor is exhausted.
func (c *Cursor) SeekEnd() {
	remaining := c.Remaining()
	if remaining <= 1 {
		if remaining == 1 && c.buf[c.pos] != 0 {
			c.exhaust()
		}
		return
	}

	if index := bytes.IndexByte(c.buf[c.pos:], 0); index >= 0 {
		c.pos += index
		return
	}
	c.exhaust()
}

func (c *Cursor) exhaust() {
	c.buf[len(c.buf)-1] = 0
	c.pos = len(c.buf)
}

// cString returns buf up to its first NUL.
func cString(buf []byte) string {
	if index := bytes.IndexByte(buf, 0); index >= 0 {
		return string(buf[:index])
	}
	return string(buf)
}
