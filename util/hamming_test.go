// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/antzucaro/matchr"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestMaxMismatches(t *testing.T) {
	tests := []struct {
		similarity float64
		n          int
		want       int
	}{
		{1, 40, 0},
		{0.9, 40, 4},
		{0.85, 40, 6},
		{0.85, 38, 5},
		{0.85, 12, 1},
		{0.85, 6, 0},
		{0.5, 3, 1},
		{0.85, 0, 0},
		{1.5, 10, 0},
	}
	for _, test := range tests {
		expect.EQ(t, MaxMismatches(test.similarity, test.n), test.want, "similarity %v, n %d", test.similarity, test.n)
	}
}

func TestHamming(t *testing.T) {
	tests := []struct {
		s1, s2     string
		off1, off2 int
		n, maxDist int
		want       int
	}{
		{"ACGT", "ACGT", 0, 0, 4, 4, 0},
		{"ACGT", "AGGA", 0, 0, 4, 4, 2},
		{"ACGT", "AGGA", 0, 0, 4, 1, HugeDistance},
		{"ACGT", "AGGA", 0, 0, 4, 2, 2},
		// Positions outside either string are skipped.
		{"ACGT", "GTCC", 2, 0, 4, 4, 0},
		{"ACGT", "TTAC", -2, 0, 4, 4, 0},
		{"ACGTAC", "CG", 0, -1, 3, 3, 0},
		{"", "ACGT", 0, 0, 4, 0, 0},
	}
	for _, test := range tests {
		expect.EQ(t, Hamming(test.s1, test.s2, test.off1, test.off2, test.n, test.maxDist), test.want,
			"%+v", test)
	}
}

// TestHammingOracle cross-checks Hamming against an independent
// implementation.
func TestHammingOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		n := 1 + rnd.Intn(60)
		s1, s2 := randomSeq(rnd, n), randomSeq(rnd, n)
		want, err := matchr.Hamming(s1, s2)
		assert.NoError(t, err)
		expect.EQ(t, Hamming(s1, s2, 0, 0, n, n), want)
	}
}

func randomSeq(rnd *rand.Rand, n int) string {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[rnd.Intn(len(bases))]
	}
	return string(b)
}

func TestHammingMatchFull(t *testing.T) {
	const query = "AGTAGTAGTAGTAGTAGTAG"
	pad := strings.Repeat("C", 10)
	target := pad + query + pad
	expect.EQ(t, HammingMatch(target, query, 12, 1), 10)

	// 0.85 * 20 tolerates 3 substitutions.
	mutate := func(k int) string {
		b := []byte(query)
		for i := 0; i < k; i++ {
			b[1+4*i] = 'C'
		}
		return pad + string(b) + pad
	}
	expect.EQ(t, HammingMatch(mutate(3), query, 12, 0.85), 10)
	expect.EQ(t, HammingMatch(mutate(4), query, 12, 0.85), 40)

	expect.EQ(t, HammingMatch("ACGT", "ACGTA", 1, 1), 4)
	expect.EQ(t, HammingMatch("ACGT", "ACGT", 1, 1), 4)
}

func TestHammingMatchTieBreak(t *testing.T) {
	// Exact copies at 0 and 5: the leftmost wins.
	expect.EQ(t, HammingMatch("ACGTTACGTT", "ACGT", 4, 1), 0)
	// One mismatch at offsets 0, 1, 5 and 6: the leftmost wins.
	expect.EQ(t, HammingMatch("CAAAGCAAAG", "AAAA", 4, 0.75), 0)
}

func TestHammingMatchEdges(t *testing.T) {
	const query = "AAAAGGGG"
	// Query's tail at the front of target.
	expect.EQ(t, HammingMatch("GGGGCCCCCCCCCCCC", query, 3, 1), -4)
	// Query's head at the back of target.
	expect.EQ(t, HammingMatch("CCCCCCCCCCCCAAAA", query, 3, 1), 12)
	// Both edges at the same overlap length: the front is tried first.
	expect.EQ(t, HammingMatch("GGGGCCCCCCCCAAAA", query, 3, 1), -4)
	// Longer overlaps are tried before shorter ones.
	expect.EQ(t, HammingMatch("GGGGCCCCCCCAAAAG", query, 3, 1), 11)
	// Overlaps shorter than minOverlap are not considered.
	expect.EQ(t, HammingMatch("GGGGCCCCCCCCCCCC", query, 5, 1), 16)
}

func TestOverlap(t *testing.T) {
	const (
		s1 = "TTTTTTTTACGTACGTAA"
		s2 = "ACGTACGTAAGGGGGGGG"
	)
	expect.EQ(t, Overlap(s1, s2, 4, 1), 10)
	expect.EQ(t, Overlap(s1, s2, 4, 0.9), 10)
	expect.EQ(t, Overlap(s1, s2, 11, 1), 0)
	expect.EQ(t, Overlap("ACG", s2, 4, 1), 0)
	expect.EQ(t, Overlap(s2, s1, 4, 1), 0)
	// One substitution inside the overlap needs a budget of at least 1.
	const s1mut = "TTTTTTTTACGAACGTAA"
	expect.EQ(t, Overlap(s1mut, s2, 4, 1), 0)
	expect.EQ(t, Overlap(s1mut, s2, 4, 0.9), 10)
}

func TestAlignEnd(t *testing.T) {
	s1 := strings.Repeat("C", 10) + "ACGTGCAT" + strings.Repeat("G", 10)
	expect.EQ(t, AlignEnd(s1, "ACGTGCAT", 1), 18)
	expect.EQ(t, AlignEnd(s1, "TTTTTTTT", 0.9), len(s1))
	expect.EQ(t, AlignEnd("ACGT", "ACGTACGT", 1), 4)
}

func TestScanTail(t *testing.T) {
	const adapter = "CTGTCTCTTATACACATCT"
	s := strings.Repeat("G", 20) + "CTGTC"
	expect.EQ(t, ScanTail(s, adapter, len(s)-12, 1, 0.85), 20)
	expect.EQ(t, ScanTail(s, adapter, len(s)-12, 6, 0.85), len(s))
	expect.EQ(t, ScanTail(strings.Repeat("G", 25), adapter, 13, 1, 0.85), 25)
}
