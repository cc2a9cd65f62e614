// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"runtime"
)

// Zero overwrites every byte of data with zero.
//
//go:noinline
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
	runtime.KeepAlive(data)
}

// ChompSpace zeroes trailing ASCII whitespace of data in place and
// returns data without it. Unlike bytes.TrimRight, the trimmed bytes
// do not survive in the backing array.
func ChompSpace(data []byte) []byte {
	end := len(data)
	for end > 0 && isASCIISpace(data[end-1]) {
		end--
	}
	Zero(data[end:])
	return data[:end]
}

// TrimSpace zeroes leading and trailing ASCII whitespace of data in
// place and returns the remaining middle.
func TrimSpace(data []byte) []byte {
	data = ChompSpace(data)
	start := 0
	for start < len(data) && isASCIISpace(data[start]) {
		start++
	}
	Zero(data[:start])
	return data[start:]
}

// IsZero reports whether every byte of data is zero.
func IsZero(data []byte) bool {
	return len(bytes.Trim(data, "\x00")) == 0
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
