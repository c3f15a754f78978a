// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/grailbio/nxtrim/util"
)

// Classifier sorts mate-pair library read pairs by where the junction adapter
// shows up in them. A Classifier holds only read-only state, so one instance
// may be shared by any number of goroutines.
type Classifier struct {
	opts       Opts
	junction   *Locator
	r1External finder
	r2External finder
}

// NewClassifier creates a Classifier. It fails if the options are invalid,
// which should abort the run.
func NewClassifier(opts Opts) (*Classifier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		opts:       opts,
		junction:   NewLocator(opts),
		r1External: newExternalFinder(R1ExternalAdapter, opts),
		r2External: newExternalFinder(R2ExternalAdapter, opts),
	}, nil
}

// Opts returns the options the classifier was created with.
func (c *Classifier) Opts() Opts { return c.opts }

// hits holds the junction adapter start (a) and end (b) in each read, and the
// read lengths. a == l means no adapter was found in that read.
type hits struct {
	a1, b1, l1 int
	a2, b2, l2 int
}

func (h *hits) setEnds() {
	h.b1 = h.a1 + len(JunctionAdapter)
	h.b2 = h.a2 + len(JunctionAdapter)
}

func (h hits) in1() bool { return h.a1 < h.l1 }
func (h hits) in2() bool { return h.a2 < h.l2 }

// Classify classifies one read pair. The pair is not modified, and the Reads
// in the Result may share storage with it.
func (c *Classifier) Classify(p *fastq.Pair) Result {
	r1, r2 := p.R1, p.R2
	h := hits{l1: r1.Len(), l2: r2.Len()}
	if h.l1 < c.opts.MinOverlap || h.l2 < c.opts.MinOverlap {
		log.Error.Printf("read with length < minimum overlap length (%d), discarding read pair:\n%s\n%s\n%s\n%s\n%s\n%s",
			c.opts.MinOverlap, r1.ID, r1.Seq, r1.Qual, r2.ID, r2.Seq, r2.Qual)
		return Result{Verdict: Skipped}
	}
	h.a1 = c.junction.Find(r1.Seq)
	h.a2 = c.junction.Find(r2.Seq)
	h.setEnds()
	if c.hasSecondAdapter(r1, h.a1, h.b1) || c.hasSecondAdapter(r2, h.a2, h.b2) {
		return Result{Verdict: Ambiguous}
	}
	c.recoverAdapter(r1, r2, &h)
	v := decide(h, c.opts)
	if v == Unknown {
		if res, ok := c.trimExternal(r1, r2); ok {
			return res
		}
	}
	return c.emit(v, r1, r2, h)
}

// hasSecondAdapter reports whether r still shows an adapter once the one at
// [a, b) is masked out.
func (c *Classifier) hasSecondAdapter(r fastq.Read, a, b int) bool {
	if a >= r.Len() {
		return false
	}
	return c.junction.Find(r.Mask(a, b).Seq) < r.Len()
}

// recoverAdapter looks harder for the adapter in a read when only its mate
// showed one. The mate's bases past its adapter were read from the other side
// of the junction, so, reverse-complemented, they should align in front of
// the adapter in this read. Failing that, a short prefix of Adapter1 at the
// very end of the read is accepted as a last resort.
func (c *Classifier) recoverAdapter(r1, r2 fastq.Read, h *hits) {
	minOverlap, sim := c.opts.MinOverlap, c.opts.Similarity
	if !h.in1() && h.b2 < h.l2-minOverlap {
		h.a1 = util.AlignEnd(r1.Seq, fastq.ReverseComplementSeq(r2.Window(h.b2, h.l2).Seq), sim)
		h.setEnds()
	}
	if !h.in2() && h.b1 < h.l1-minOverlap {
		h.a2 = util.AlignEnd(r2.Seq, fastq.ReverseComplementSeq(r1.Window(h.b1, h.l1).Seq), sim)
		h.setEnds()
	}
	switch {
	case h.in1() && !h.in2():
		h.a2 = util.ScanTail(r2.Seq, Adapter1, h.l2-minOverlap, 1, sim)
		h.setEnds()
	case h.in2() && !h.in1():
		h.a1 = util.ScanTail(r1.Seq, Adapter1, h.l1-minOverlap, 1, sim)
		h.setEnds()
	}
}

// decide picks the verdict for a pair from its adapter positions. The rules
// are tried in order and the first match wins.
func decide(h hits, opts Opts) Verdict {
	ml, mo := opts.MinLength, opts.MinOverlap
	switch {
	case !h.in1() && !h.in2():
		return Unknown
	case h.a1 < ml && h.a2 < ml:
		return TooShort
	case h.a1 < h.l1-mo && h.a2 < ml:
		return R2Redundant
	case h.a2 < h.l2-mo && h.a1 < ml:
		return R1Redundant
	case h.a1 >= h.l1-mo && h.a2 < ml:
		return ObviousPER1
	case h.a2 >= h.l2-mo && h.a1 < ml:
		return ObviousPER2
	case (h.in1() && h.in2()) || (h.in1() && h.b1 >= h.l1-ml) || (h.in2() && h.b2 >= h.l2-ml):
		return MatePair
	case h.b1 < h.l1 && !h.in2():
		return OverhangR1
	case h.b2 < h.l2 && !h.in1():
		return OverhangR2
	}
	log.Panicf("adapter hits fit no rule: %+v", h)
	return Unknown
}

// emit builds the Result for verdict v.
func (c *Classifier) emit(v Verdict, r1, r2 fastq.Read, h hits) Result {
	res := Result{Verdict: v}
	ml, justMP := c.opts.MinLength, c.opts.JustMP
	switch v {
	case Unknown:
		res.Unknown = newPair(c.trimUnknown(r1), c.trimUnknown(r2))
	case R2Redundant:
		if justMP {
			res.MP = newPair(r1.Window(0, h.a1), r2.MaskAll())
		} else {
			se := r1.Window(0, h.a1)
			res.SE = &se
		}
	case R1Redundant:
		if justMP {
			res.MP = newPair(r1.MaskAll(), r2.Window(0, h.a2))
		} else {
			se := r2.Window(0, h.a2)
			res.SE = &se
		}
	case ObviousPER1:
		if h.a1 >= ml && h.l2-h.b2 >= ml {
			if justMP {
				res.MP = newPair(r1.Window(0, h.a1), r2.MaskAll())
			} else {
				res.PE = newPair(r1.Window(0, h.a1), r2.Window(h.b2, h.b2+h.a1))
			}
		}
	case ObviousPER2:
		if h.a2 >= ml && h.l1-h.b1 >= ml {
			if justMP {
				res.MP = newPair(r1.MaskAll(), r2.Window(0, h.a2))
			} else {
				res.PE = newPair(r1.Window(h.b1, h.b1+h.a2), r2.Window(0, h.a2))
			}
		}
	case MatePair:
		res.MP = newPair(r1.Window(0, h.a1), r2.Window(0, h.a2))
	case OverhangR1:
		res.MP, res.PE, res.SE = c.resolveOverhang(r1, r2, h.a1, h.b1)
	case OverhangR2:
		mp, pe, se := c.resolveOverhang(r2, r1, h.a2, h.b2)
		res.MP, res.PE, res.SE = swapped(mp), swapped(pe), se
	}
	return res
}
