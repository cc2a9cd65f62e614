// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package utf8safe

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/netcore/lib/strbuf"
)

// Flags select which additional bytes Escape replaces.
type Flags uint8

const (
	// EscapeControl escapes ASCII control bytes below 0x20.
	EscapeControl Flags = 1 << iota

	// EscapeNonASCII escapes every byte at or above 0x7F, including
	// the bytes of valid multi-byte sequences.
	EscapeNonASCII

	// Secret wipes intermediate buffers. Set it when the input is a
	// credential.
	Secret
)

// Has reports whether every bit of flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

type text interface {
	~string | ~[]byte
}

// Escape returns data with invalid UTF-8, NUL, backslashes and the
// bytes selected by flags escaped. When nothing needs escaping it
// returns data itself.
func Escape(data []byte, flags Flags) []byte {
	builder := escape(data, flags)
	if builder == nil {
		return data
	}
	return builder.Finish()
}

// EscapeString is Escape for strings. It returns s itself when nothing
// needs escaping.
func EscapeString(s string, flags Flags) string {
	builder := escape(s, flags)
	if builder == nil {
		return s
	}
	return finishString(builder, flags)
}

// EscapeCopy is Escape but always returns a new slice.
func EscapeCopy(data []byte, flags Flags) []byte {
	if builder := escape(data, flags); builder != nil {
		return builder.Finish()
	}
	return bytes.Clone(data)
}

// escape returns nil when data needs no escaping, otherwise a builder
// holding the escaped form.
func escape[T text](data T, flags Flags) *strbuf.Builder {
	start := firstEscape(data, flags)
	if start < 0 {
		return nil
	}

	// Most inputs need a handful of escapes; the slack avoids an early
	// regrowth for them.
	builder := strbuf.NewBuilder(len(data)+5, flags.Has(Secret))
	appendText(builder, data[:start])

	for index := start; index < len(data); {
		ch := data[index]
		if ch < utf8.RuneSelf {
			switch {
			case ch == '\\':
				builder.Append2('\\', '\\')
			case needsEscape(ch, flags):
				appendOctal(builder, ch)
			default:
				builder.AppendByte(ch)
			}
			index++
			continue
		}

		_, size := decodeRune(data[index:])
		if size == 1 {
			// Not the start of a valid sequence.
			appendOctal(builder, ch)
			index++
			continue
		}
		for end := index + size; index < end; index++ {
			if needsEscape(data[index], flags) {
				appendOctal(builder, data[index])
			} else {
				builder.AppendByte(data[index])
			}
		}
	}
	return builder
}

// firstEscape returns the index of the first byte Escape would change,
// or -1.
func firstEscape[T text](data T, flags Flags) int {
	for index := 0; index < len(data); {
		ch := data[index]
		if ch < utf8.RuneSelf {
			if ch == '\\' || needsEscape(ch, flags) {
				return index
			}
			index++
			continue
		}
		_, size := decodeRune(data[index:])
		if size == 1 || flags.Has(EscapeNonASCII) {
			return index
		}
		index += size
	}
	return -1
}

// needsEscape reports whether a byte that is not a backslash must be
// escaped. NUL is always escaped so the output never embeds it.
func needsEscape(ch byte, flags Flags) bool {
	switch {
	case ch == 0:
		return true
	case ch < 0x20:
		return flags.Has(EscapeControl)
	case ch >= 0x7F:
		return flags.Has(EscapeNonASCII)
	}
	return false
}

func appendOctal(builder *strbuf.Builder, ch byte) {
	builder.Append4('\\', '0'+(ch>>6)&07, '0'+(ch>>3)&07, '0'+ch&07)
}

// decodeRune returns the size of the valid UTF-8 sequence starting
// data, or 1 for an invalid byte. Surrogates, overlong forms and code
// points above U+10FFFF are invalid.
func decodeRune[T text](data T) (rune, int) {
	switch value := any(data).(type) {
	case string:
		return utf8.DecodeRuneInString(value)
	case []byte:
		return utf8.DecodeRune(value)
	}
	return utf8.DecodeRuneInString(string(data))
}

func appendText[T text](builder *strbuf.Builder, data T) {
	switch value := any(data).(type) {
	case string:
		builder.AppendString(value)
	case []byte:
		builder.AppendBytes(value)
	default:
		builder.AppendString(string(data))
	}
}

func indexBackslash[T text](data T) int {
	switch value := any(data).(type) {
	case string:
		return strings.IndexByte(value, '\\')
	case []byte:
		return bytes.IndexByte(value, '\\')
	}
	return strings.IndexByte(string(data), '\\')
}

// finishString converts the builder's content to a string and, for
// secret input, wipes the bytes it was built in. The string itself is
// immutable heap memory and cannot be wiped; secret callers should
// prefer the []byte functions.
func finishString(builder *strbuf.Builder, flags Flags) string {
	result := string(builder.Bytes())
	if flags.Has(Secret) {
		builder.Wipe()
	}
	return result
}
