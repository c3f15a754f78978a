// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/grailbio/nxtrim/util"
)

// trimExternal handles pairs with no junction adapter whose fragment is
// shorter than the reads. Such a fragment shows either the external
// sequencing adapter inside a read, or R1 overlapping the reverse complement
// of R2 directly. The pair is a hit only if one of the cut points falls
// strictly inside its read; each read is then cut before its adapter or
// overhang. It returns false, and an empty Result, if there is no hit.
func (c *Classifier) trimExternal(r1, r2 fastq.Read) (Result, bool) {
	l1, l2 := r1.Len(), r2.Len()
	a, _ := c.r1External.find(r1.Seq)
	b, _ := c.r2External.find(r2.Seq)
	inside := func(x, l int) bool { return x > 0 && x < l }
	if !inside(a, l1) && !inside(b, l2) {
		if shift, ok := c.mateOverlap(r1, r2); ok {
			a, b = l1-shift, l2-shift
		}
	}
	if !inside(a, l1) && !inside(b, l2) {
		return Result{}, false
	}
	// Once the pair is a hit, an adapter at or before the start of a read
	// leaves nothing of that read.
	cut1, cut2 := a < l1, b < l2
	res := Result{Verdict: External}
	if c.opts.JustMP {
		mp := newPair(r1, r2)
		if cut1 {
			mp.R1 = r1.MaskAll()
		}
		if cut2 {
			mp.R2 = r2.MaskAll()
		}
		res.MP = mp
		return res, true
	}
	pe := newPair(r1, r2)
	if cut1 {
		pe.R1 = r1.Window(0, a)
	}
	if cut2 {
		pe.R2 = r2.Window(0, b)
	}
	res.PE = pe
	return res, true
}

// mateOverlap looks for R1's start inside the reverse complement of R2, as
// happens when the fragment is shorter than R2. It tries every shift i that
// leaves more than MinLength bases to compare, matching r1[0:] against
// rc(r2)[i:], and returns the shift with the fewest mismatches (the smallest
// shift on ties).
func (c *Classifier) mateOverlap(r1, r2 fastq.Read) (int, bool) {
	l1, l2, ml := r1.Len(), r2.Len(), c.opts.MinLength
	rc2 := fastq.ReverseComplementSeq(r2.Seq)
	best, bestDist := l1, util.HugeDistance
	for i := 0; i < l1-ml && l2-i > ml; i++ {
		n := l2 - i
		if d := util.Hamming(r1.Seq, rc2, 0, i, n, util.MaxMismatches(c.opts.Similarity, n)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best < l1
}
