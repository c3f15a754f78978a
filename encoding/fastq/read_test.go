// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func testRead(seq, qual string) Read {
	return Read{ID: "@r 1:N:0:ACGT", Seq: seq, Unk: "+", Qual: qual}
}

func TestWindow(t *testing.T) {
	r := testRead("ACGTACGTAA", "ABCDEFGHIJ")
	tests := []struct {
		start, end int
		seq, qual  string
	}{
		{0, 4, "ACGT", "ABCD"},
		{6, 10, "GTAA", "GHIJ"},
		{-3, 2, "AC", "AB"},
		{8, 20, "AA", "IJ"},
		{5, 5, "", ""},
		{7, 3, "", ""},
	}
	for _, test := range tests {
		w := r.Window(test.start, test.end)
		expect.EQ(t, w.Seq, test.seq, "window %d-%d", test.start, test.end)
		expect.EQ(t, w.Qual, test.qual, "window %d-%d", test.start, test.end)
		expect.EQ(t, w.ID, r.ID)
		expect.EQ(t, w.Unk, r.Unk)
	}
}

func TestMask(t *testing.T) {
	r := testRead("ACGTACGTAA", "ABCDEFGHIJ")
	m := r.Mask(2, 5)
	expect.EQ(t, m.Seq, "ACNNNCGTAA")
	expect.EQ(t, m.Qual, r.Qual)
	expect.EQ(t, r.Seq, "ACGTACGTAA")

	expect.EQ(t, r.Mask(-1, 100).Seq, "NNNNNNNNNN")
	expect.EQ(t, r.MaskAll().Len(), r.Len())
	expect.EQ(t, r.Mask(4, 4).Seq, r.Seq)
}

func TestReverseComplement(t *testing.T) {
	r := testRead("AACGTNacgt", "ABCDEFGHIJ")
	rc := r.ReverseComplement()
	expect.EQ(t, rc.Seq, "ACGTNACGTT")
	expect.EQ(t, rc.Qual, "JIHGFEDCBA")
	expect.EQ(t, rc.ID, r.ID)
	expect.EQ(t, ReverseComplementSeq(""), "")
}

func TestReverseComplementInvolution(t *testing.T) {
	const bases = "ACGTN"
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 200; i++ {
		n := rnd.Intn(300)
		seq := make([]byte, n)
		qual := make([]byte, n)
		for j := range seq {
			seq[j] = bases[rnd.Intn(len(bases))]
			qual[j] = byte('!' + rnd.Intn(42))
		}
		r := testRead(string(seq), string(qual))
		expect.EQ(t, r.ReverseComplement().ReverseComplement(), r)
	}
}

func TestNotN(t *testing.T) {
	r := testRead("NNACGNNTNN", "IIIIIIIIII")
	expect.EQ(t, r.NotN(0, r.Len()), 4)
	expect.EQ(t, r.NotN(0, 2), 0)
	expect.EQ(t, r.NotN(2, 5), 3)
	expect.EQ(t, r.NotN(-5, 3), 1)
	expect.EQ(t, r.MaskAll().NotN(0, 10), 0)
}

func TestFiltered(t *testing.T) {
	expect.False(t, Read{ID: "@M:1:FC:1:1:1:1 1:N:0:ACGT"}.Filtered())
	expect.True(t, Read{ID: "@M:1:FC:1:1:1:1 2:Y:0:ACGT"}.Filtered())
	expect.False(t, Read{ID: "@M:1:FC:1:1:1:1"}.Filtered())
	expect.False(t, Read{ID: "@SRR001 length=100"}.Filtered())
}
