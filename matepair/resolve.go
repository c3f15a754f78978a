// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/grailbio/nxtrim/util"
)

// joinReads merges r1 and r2 into one read when a suffix of r1 overlaps a
// prefix of r2. Inside the overlap each position takes the base with the
// higher quality; ties keep r1's base. The merged read keeps r1's ID.
func (c *Classifier) joinReads(r1, r2 fastq.Read) (fastq.Read, bool) {
	mo := c.opts.MinOverlap
	if !c.opts.JoinReads || r1.Len() < mo || r2.Len() < mo {
		return fastq.Read{}, false
	}
	w := util.Overlap(r1.Seq, r2.Seq, mo, c.opts.Similarity)
	if w == 0 {
		return fastq.Read{}, false
	}
	n := r1.Len() + r2.Len() - w
	seq := make([]byte, 0, n)
	seq = append(append(seq, r1.Seq...), r2.Seq[w:]...)
	qual := make([]byte, 0, n)
	qual = append(append(qual, r1.Qual...), r2.Qual[w:]...)
	off := r1.Len() - w
	for i := 0; i < w; i++ {
		if r1.Qual[off+i] < r2.Qual[i] {
			seq[off+i] = r2.Seq[i]
			qual[off+i] = r2.Qual[i]
		}
	}
	return fastq.Read{
		ID:   r1.ID,
		Seq:  gunsafe.BytesToString(seq),
		Unk:  r1.Unk,
		Qual: gunsafe.BytesToString(qual),
	}, true
}

// resolveOverhang handles a pair where only r1 shows the adapter, at [a, b),
// and bases follow it. Those bases (the overhang) come from the far side of
// the junction, so they may duplicate r2's fragment or extend it.
func (c *Classifier) resolveOverhang(r1, r2 fastq.Read, a, b int) (mp, pe *fastq.Pair, se *fastq.Read) {
	ml := c.opts.MinLength
	overhang := r1.Window(b, r1.Len())
	if a < ml {
		// Nothing usable before the adapter.
		if c.opts.JustMP {
			return newPair(r1.MaskAll(), r2), nil, nil
		}
		return nil, newPair(overhang, r2), nil
	}
	arm := r1.Window(0, a)
	if joined, ok := c.joinReads(r2, overhang.ReverseComplement()); ok {
		return newPair(arm, joined), nil, nil
	}
	if r1.NotN(b, r1.Len()) > r1.NotN(0, a) && !c.opts.PreserveMP {
		return nil, newPair(overhang, r2), &arm
	}
	if overhang.Len() >= ml {
		se = &overhang
	}
	return newPair(arm, r2), nil, se
}

// trimUnknown clips a prefix of Adapter1, too short for the adapter search,
// off the end of a read that showed no adapter. The longest prefix of 3 to
// MinOverlap bases that matches wins.
func (c *Classifier) trimUnknown(r fastq.Read) fastq.Read {
	cut := 0
	for i := 3; i <= c.opts.MinOverlap; i++ {
		off := r.Len() - i
		if off <= 0 {
			break
		}
		maxDist := util.MaxMismatches(c.opts.Similarity, i)
		if util.Hamming(r.Seq, Adapter1, off, 0, i, maxDist) <= maxDist {
			cut = off
		}
	}
	if cut > 0 {
		return r.Window(0, cut)
	}
	return r
}
