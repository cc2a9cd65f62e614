// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bsearch implements binary search over sorted slices with a
// single signed result: a non-negative value is the index of a
// matching element, a negative value is the bitwise complement of the
// index where the needle would be inserted to keep the slice sorted.
//
//	index := bsearch.Find(list, needle, compare)
//	if position, found := bsearch.InsertionPoint(index); !found {
//	    list = slices.Insert(list, position, needle)
//	}
//
// The comparator receives a list element first and the needle second,
// so the needle may be a different type than the elements (a key
// searched in a slice of records, a name searched in a slice of
// pointers).
//
// [FindRange] additionally reports the first and last index of the run
// of elements equal to the needle, using two secondary searches
// bounded by the match so the whole query stays O(log n).
// [FindStride] searches fixed-size records packed into one byte slice.
package bsearch
