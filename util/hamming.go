// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package util

import "math"

// HugeDistance is returned by Hamming once the mismatch budget is exceeded.
// It is larger than any real distance.
const HugeDistance = math.MaxInt32

// MaxMismatches is the number of substitutions tolerated when comparing n
// bases at the given fractional identity: floor((1-similarity)*n). A
// comparison qualifies iff its distance is <= MaxMismatches.
func MaxMismatches(similarity float64, n int) int {
	if n <= 0 {
		return 0
	}
	// The epsilon keeps e.g. (1-0.9)*40 = 3.9999999999999996 from rounding
	// down to 3.
	m := int(math.Floor((1-similarity)*float64(n) + 1e-9))
	if m < 0 {
		return 0
	}
	return m
}

// Hamming counts mismatches between s1[off1:off1+n] and s2[off2:off2+n].
// Positions that fall outside either string are skipped. Once the count
// exceeds maxDist, it gives up and returns HugeDistance.
func Hamming(s1, s2 string, off1, off2, n, maxDist int) int {
	// Restrict i to the range where both offsets are in bounds.
	lo, hi := 0, n
	if -off1 > lo {
		lo = -off1
	}
	if -off2 > lo {
		lo = -off2
	}
	if len(s1)-off1 < hi {
		hi = len(s1) - off1
	}
	if len(s2)-off2 < hi {
		hi = len(s2) - off2
	}
	d := 0
	for i := lo; i < hi; i++ {
		if s1[off1+i] != s2[off2+i] {
			d++
			if d > maxDist {
				return HugeDistance
			}
		}
	}
	return d
}

// HammingMatch finds query in target allowing substitutions only, and returns
// the offset in target where query starts, or len(target) if there is no
// acceptable match. The offset is negative when only a suffix of query hangs
// off the front of target.
//
// The search has two phases. Phase 1 tries every placement of query fully
// inside target with a budget of MaxMismatches(similarity, len(query)). If
// none qualifies, phase 2 tries partial placements at the two edges of target
// with overlap length i from len(query)-1 down to minOverlap: query's last i
// bases against target's first i bases, then query's first i bases against
// target's last i bases, each with a budget of MaxMismatches(similarity, i).
//
// In both phases a candidate replaces the incumbent only if its distance is
// strictly smaller, so the first minimum in scan order wins: the leftmost
// placement in phase 1; the longest overlap, front before back, in phase 2.
//
// A query at least as long as target never matches.
func HammingMatch(target, query string, minOverlap int, similarity float64) int {
	l1, l2 := len(target), len(query)
	if l2 >= l1 {
		return l1
	}
	best, bestDist := l1, HugeDistance
	maxDist := MaxMismatches(similarity, l2)
	for i := 0; i <= l1-l2; i++ {
		limit := maxDist
		if bestDist <= limit {
			// Only a strictly better placement can win, so stop counting early.
			limit = bestDist - 1
		}
		if d := Hamming(target, query, i, 0, l2, limit); d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				return best
			}
		}
	}
	if best < l1 {
		return best
	}

	if minOverlap < 1 {
		minOverlap = 1
	}
	for i := l2 - 1; i >= minOverlap; i-- {
		maxDist = MaxMismatches(similarity, i)
		if d := Hamming(target, query, 0, l2-i, i, maxDist); d < bestDist {
			best, bestDist = i-l2, d
		}
		if d := Hamming(target, query, l1-i, 0, i, maxDist); d < bestDist {
			best, bestDist = l1-i, d
		}
	}
	return best
}

// Overlap returns the length of the best overlap between a suffix of s1 and a
// prefix of s2, or 0 if none qualifies. Lengths from minOverlap to
// min(len(s1), len(s2))-1 are tried, each with a budget of
// MaxMismatches(similarity, length). The smallest distance wins; among equal
// distances the longest overlap wins.
func Overlap(s1, s2 string, minOverlap int, similarity float64) int {
	n := len(s1)
	if len(s2) < n {
		n = len(s2)
	}
	if n < minOverlap {
		return 0
	}
	if minOverlap < 1 {
		minOverlap = 1
	}
	best, bestDist := 0, HugeDistance
	for i := minOverlap; i < n; i++ {
		d := Hamming(s1, s2, len(s1)-i, 0, i, MaxMismatches(similarity, i))
		if d != HugeDistance && d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// AlignEnd slides s2 along s1, starting flush with s1's right end and moving
// left one base at a time, and returns the offset in s1 just past the best
// qualifying placement (budget MaxMismatches(similarity, len(s2))). It returns
// len(s1) when nothing qualifies or s2 is longer than s1. The first minimum,
// i.e. the rightmost placement, wins ties.
func AlignEnd(s1, s2 string, similarity float64) int {
	l1, l2 := len(s1), len(s2)
	if l2 > l1 {
		return l1
	}
	maxDist := MaxMismatches(similarity, l2)
	best, bestDist := l1, HugeDistance
	for end := l1; end >= l2; end-- {
		if d := Hamming(s1, s2, end-l2, 0, l2, maxDist); d < bestDist {
			best, bestDist = end, d
		}
	}
	return best
}

// ScanTail looks for a prefix of query running off the right end of s. Every
// start offset in [from, len(s)-minOverlap) is tried, comparing the remaining
// len(s)-start bases against the head of query with a budget of
// MaxMismatches(similarity, len(s)-start). It returns the start with the
// smallest distance (first wins ties), or len(s).
func ScanTail(s, query string, from, minOverlap int, similarity float64) int {
	if from < 0 {
		from = 0
	}
	best, bestDist := len(s), HugeDistance
	for i := from; i < len(s)-minOverlap; i++ {
		n := len(s) - i
		if d := Hamming(s, query, i, 0, n, MaxMismatches(similarity, n)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
