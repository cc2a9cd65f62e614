// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package utf8safe

import (
	"bytes"

	"github.com/bureau-foundation/netcore/lib/strbuf"
)

// Unescape reverses Escape. Unknown escapes keep the escaped character
// and drop the backslash; a trailing backslash is dropped. Octal
// escapes take one to three digits (the first may be any decimal
// digit, the rest must be octal) and are masked to eight bits. Returns
// text itself when it contains no backslash.
func Unescape(text []byte) []byte {
	builder := unescape(text)
	if builder == nil {
		return text
	}
	return builder.Finish()
}

// UnescapeString is Unescape for strings.
func UnescapeString(s string) string {
	builder := unescape(s)
	if builder == nil {
		return s
	}
	return string(builder.Bytes())
}

// UnescapeCopy is Unescape but always returns a new slice.
func UnescapeCopy(text []byte) []byte {
	if bytes.IndexByte(text, '\\') < 0 {
		return bytes.Clone(text)
	}
	return Unescape(text)
}

func unescape[T text](data T) *strbuf.Builder {
	index := indexBackslash(data)
	if index < 0 {
		return nil
	}

	builder := strbuf.NewBuilder(len(data), false)
	appendText(builder, data[:index])

	for {
		// data[index] is a backslash.
		index++
		if index == len(data) {
			break
		}

		ch := data[index]
		if ch >= '0' && ch <= '9' {
			value := uint(ch - '0')
			index++
			for digits := 1; digits < 3 && index < len(data) && isOctal(data[index]); digits++ {
				value = value*8 + uint(data[index]-'0')
				index++
			}
			ch = byte(value)
		} else {
			switch ch {
			case 'b':
				ch = '\b'
			case 'f':
				ch = '\f'
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case 't':
				ch = '\t'
			case 'v':
				ch = '\v'
			}
			index++
		}
		builder.AppendByte(ch)

		next := indexBackslash(data[index:])
		if next < 0 {
			appendText(builder, data[index:])
			break
		}
		appendText(builder, data[index:index+next])
		index += next
	}
	return builder
}

func isOctal(ch byte) bool {
	return ch >= '0' && ch <= '7'
}
