// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bsearch

import "fmt"

// Find searches list, sorted according to compare, for needle. compare
// returns a negative number when the element sorts before the needle,
// zero when they are equal, and a positive number otherwise.
//
// With several equal elements, any of their indices may be returned.
// On a miss Find returns ^insertion.
func Find[E, T any](list []E, needle T, compare func(E, T) int) int {
	low, high := 0, len(list)-1
	for low <= high {
		middle := low + (high-low)/2
		result := compare(list[middle], needle)
		switch {
		case result == 0:
			return middle
		case result < 0:
			low = middle + 1
		default:
			high = middle - 1
		}
	}
	return ^low
}

// FindRange is Find that also reports the first and last index of the
// elements equal to needle. On a miss all three results equal
// ^insertion.
func FindRange[E, T any](list []E, needle T, compare func(E, T) int) (index, first, last int) {
	low, high := 0, len(list)-1
	for low <= high {
		middle := low + (high-low)/2
		result := compare(list[middle], needle)
		switch {
		case result == 0:
			first = firstEqual(list, needle, compare, low, middle)
			last = lastEqual(list, needle, compare, middle, high)
			return middle, first, last
		case result < 0:
			low = middle + 1
		default:
			high = middle - 1
		}
	}
	return ^low, ^low, ^low
}

// firstEqual finds the first element equal to needle in
// list[low:match+1], knowing list[match] is equal and everything before
// low sorts before the needle.
func firstEqual[E, T any](list []E, needle T, compare func(E, T) int, low, match int) int {
	high := match - 1
	for low <= high {
		middle := low + (high-low)/2
		if compare(list[middle], needle) == 0 {
			high = middle - 1
		} else {
			low = middle + 1
		}
	}
	return low
}

// lastEqual finds the last element equal to needle in
// list[match:high+1], knowing list[match] is equal and everything after
// high sorts after the needle.
func lastEqual[E, T any](list []E, needle T, compare func(E, T) int, match, high int) int {
	low := match + 1
	for low <= high {
		middle := low + (high-low)/2
		if compare(list[middle], needle) == 0 {
			low = middle + 1
		} else {
			high = middle - 1
		}
	}
	return low - 1
}

// FindStride searches data, a packed array of elementSize-byte records
// sorted according to compare. Each call to compare receives one
// record. Results are record indices, encoded as for Find.
//
// elementSize must be positive and divide len(data); anything else
// panics.
func FindStride[T any](data []byte, elementSize int, needle T, compare func([]byte, T) int) int {
	if elementSize <= 0 {
		panic(fmt.Sprintf("bsearch: element size must be positive, got %d", elementSize))
	}
	if len(data)%elementSize != 0 {
		panic(fmt.Sprintf("bsearch: %d bytes is not a whole number of %d-byte records", len(data), elementSize))
	}

	low, high := 0, len(data)/elementSize-1
	for low <= high {
		middle := low + (high-low)/2
		offset := middle * elementSize
		result := compare(data[offset:offset+elementSize:offset+elementSize], needle)
		switch {
		case result == 0:
			return middle
		case result < 0:
			low = middle + 1
		default:
			high = middle - 1
		}
	}
	return ^low
}

// InsertionPoint decodes a search result into an index and whether the
// needle was found. For a miss the index is where the needle belongs.
func InsertionPoint(result int) (index int, found bool) {
	if result < 0 {
		return ^result, false
	}
	return result, true
}
