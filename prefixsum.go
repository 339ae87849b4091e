// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: prefixsum.go
// Summary: Mutable prefix-sum index over non-negative integers (§4.1).
//
// Architecture:
//
//	PrefixSumComputer keeps a values slice alongside a cached prefix-sum
//	array, the same split the teacher's PhysicalLineIndex uses between
//	perLine and prefixSum: mutations edit only the values slice and mark the
//	cache dirty; the first read after a mutation rebuilds the whole cache in
//	O(N). Reads between mutations reuse it: getAccumulatedValue and
//	getTotalValue are O(1), getIndexOf is an O(log N) binary search.

package viewline

import "sort"

// PrefixSumComputer is a mutable sequence of non-negative integers
// supporting prefix-sum queries and by-accumulated-value lookups (§4.1).
// The first read after a mutation rebuilds the cached prefix sums in O(N).
type PrefixSumComputer struct {
	values []int
	// prefix[i] = sum(values[0:i]); length is always len(values)+1.
	prefix []int
	dirty  bool
}

// NewPrefixSumComputer builds a computer over a copy of values.
func NewPrefixSumComputer(values []int) *PrefixSumComputer {
	v := make([]int, len(values))
	copy(v, values)
	c := &PrefixSumComputer{values: v}
	c.rebuild()
	return c
}

func (c *PrefixSumComputer) rebuild() {
	c.prefix = make([]int, len(c.values)+1)
	for i, v := range c.values {
		c.prefix[i+1] = c.prefix[i] + v
	}
	c.dirty = false
}

func (c *PrefixSumComputer) ensureFresh() {
	if c.dirty {
		c.rebuild()
	}
}

// Len returns the number of tracked values.
func (c *PrefixSumComputer) Len() int {
	return len(c.values)
}

// GetTotalValue returns the sum of all values.
func (c *PrefixSumComputer) GetTotalValue() int {
	c.ensureFresh()
	return c.prefix[len(c.prefix)-1]
}

// GetAccumulatedValue returns sum(values[0..i]) inclusive.
func (c *PrefixSumComputer) GetAccumulatedValue(i int) int {
	c.ensureFresh()
	return c.prefix[i+1]
}

// ChangeValue sets values[i] = v.
func (c *PrefixSumComputer) ChangeValue(i, v int) {
	c.values[i] = v
	c.dirty = true
}

// InsertValues splices vs into the sequence starting at index i.
func (c *PrefixSumComputer) InsertValues(i int, vs []int) {
	if len(vs) == 0 {
		return
	}
	grown := make([]int, 0, len(c.values)+len(vs))
	grown = append(grown, c.values[:i]...)
	grown = append(grown, vs...)
	grown = append(grown, c.values[i:]...)
	c.values = grown
	c.dirty = true
}

// RemoveValues deletes k values starting at index i.
func (c *PrefixSumComputer) RemoveValues(i, k int) {
	if k <= 0 {
		return
	}
	c.values = append(c.values[:i], c.values[i+k:]...)
	c.dirty = true
}

// IndexResult is the result of GetIndexOf: the value index owning the
// accumulated position, and the remainder within that value.
type IndexResult struct {
	Index     int
	Remainder int
}

// GetIndexOf finds the smallest i such that GetAccumulatedValue(i) >
// accumulated, and the remainder of accumulated past the previous entries'
// total. Entries with value 0 are transparently skipped — the search never
// stops on one, which is what lets hidden lines contribute no output rows
// without special-casing lookups. Defined only for 0 <= accumulated <
// GetTotalValue().
func (c *PrefixSumComputer) GetIndexOf(accumulated int) IndexResult {
	c.ensureFresh()
	n := len(c.values)
	// Smallest i such that prefix[i+1] > accumulated, i.e. cumulative sum
	// through index i exceeds accumulated.
	i := sort.Search(n, func(j int) bool {
		return c.prefix[j+1] > accumulated
	})
	if i >= n {
		i = n - 1
	}
	return IndexResult{Index: i, Remainder: accumulated - c.prefix[i]}
}
