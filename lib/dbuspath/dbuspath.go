// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dbuspath

import (
	"slices"
	"strconv"
	"strings"

	"github.com/bureau-foundation/netcore/lib/bsearch"
)

// LastComponent returns the text after the final '/' of path. The
// second result is false when path contains no '/'.
func LastComponent(path string) (string, bool) {
	slash := strings.LastIndexByte(path, '/')
	if slash < 0 {
		return "", false
	}
	return path[slash+1:], true
}

// componentNumber parses a canonical decimal component. It returns -1
// for anything else: leading zeros, signs, non-digits, the empty
// string, or a value beyond int64.
func componentNumber(component string) int64 {
	if component == "" {
		return -1
	}
	if component[0] == '0' {
		if len(component) == 1 {
			return 0
		}
		return -1
	}
	for index := 0; index < len(component); index++ {
		if component[index] < '0' || component[index] > '9' {
			return -1
		}
	}
	value, err := strconv.ParseInt(component, 10, 64)
	if err != nil {
		return -1
	}
	return value
}

// Compare returns -1, 0 or +1 as a sorts before, equal to, or after b.
func Compare(a, b string) int {
	if a == b {
		return 0
	}

	lastA, okA := LastComponent(a)
	lastB, okB := LastComponent(b)
	if !okA || !okB {
		return strings.Compare(a, b)
	}

	prefixA := a[:len(a)-len(lastA)]
	prefixB := b[:len(b)-len(lastB)]
	if prefixA != prefixB {
		return strings.Compare(a, b)
	}

	numberA := componentNumber(lastA)
	numberB := componentNumber(lastB)
	switch {
	case numberA == -1 && numberB == -1:
		return strings.Compare(lastA, lastB)
	case numberA == -1:
		return -1
	case numberB == -1:
		return 1
	case numberA < numberB:
		return -1
	case numberA > numberB:
		return 1
	}
	// Canonical numbers with equal values are equal strings, which
	// returned above.
	panic("dbuspath: distinct paths compared equal: " + strconv.Quote(a) + ", " + strconv.Quote(b))
}

// Sort orders paths by Compare. Equal paths keep their relative order.
func Sort(paths []string) {
	slices.SortStableFunc(paths, Compare)
}

// Index searches sorted, which must be ordered by Compare, for path.
// The result is encoded as for [bsearch.Find]: the index on a hit,
// ^insertion on a miss.
func Index(sorted []string, path string) int {
	return bsearch.Find(sorted, path, Compare)
}

// Insert adds path to sorted at its ordered position unless it is
// already present, and returns the updated slice.
func Insert(sorted []string, path string) []string {
	position, found := bsearch.InsertionPoint(Index(sorted, path))
	if found {
		return sorted
	}
	return slices.Insert(sorted, position, path)
}
