// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"strings"

	"github.com/grailbio/nxtrim/util"
)

// Nextera mate-pair junction adapter. The circularized fragment is joined
// through Adapter1+Adapter2, so a read crossing the junction shows the two
// arms back to back.
const (
	Adapter1        = "CTGTCTCTTATACACATCT"
	Adapter2        = "AGATGTGTATAAGAGACAG"
	JunctionAdapter = Adapter1 + Adapter2
)

// External (sequencing) adapters. They appear only when the fragment is
// shorter than the read, so that R1 runs into R2's adapter and vice versa.
const (
	R1ExternalAdapter = "GATCGGAAGAGCACACGTCTGAACTCCAGTCAC"
	R2ExternalAdapter = "GATCGGAAGAGCGTCGTGTAGGGAAAGAGTGT"
)

// seedLength is the k-mer length of the aggressive seed scan.
const seedLength = len(Adapter1)

// seeds lists every seedLength-mer of JunctionAdapter; seeds[i] starts at
// offset i of the adapter. Read-only after init.
var seeds []string

func init() {
	for i := 0; i+seedLength <= len(JunctionAdapter); i++ {
		seeds = append(seeds, JunctionAdapter[i:i+seedLength])
	}
}

// A finder looks for adapter-like evidence in a read sequence. On a hit it
// returns the implied adapter start, which may lie outside the sequence.
type finder interface {
	find(seq string) (start int, ok bool)
}

// approxFinder locates query with util.HammingMatch. Shift is added to the
// match offset, to map a hit on part of an adapter back to the adapter start.
type approxFinder struct {
	query      string
	shift      int
	minOverlap int
	similarity float64
}

func (f approxFinder) find(seq string) (int, bool) {
	a := util.HammingMatch(seq, f.query, f.minOverlap, f.similarity)
	if a >= len(seq) {
		return len(seq), false
	}
	return a + f.shift, true
}

// exactFinder locates the first exact occurrence of query.
type exactFinder struct {
	query string
}

func (f exactFinder) find(seq string) (int, bool) {
	if a := strings.Index(seq, f.query); a >= 0 {
		return a, true
	}
	return len(seq), false
}

// seedFinder tries each seed of the junction adapter in turn; seedFinder[i]
// finds seeds[i]. Only whole seeds count.
type seedFinder []finder

func newSeedFinder(similarity float64) seedFinder {
	sf := make(seedFinder, len(seeds))
	for i, s := range seeds {
		if similarity < 1 {
			sf[i] = approxFinder{query: s, minOverlap: len(s), similarity: similarity}
		} else {
			sf[i] = exactFinder{query: s}
		}
	}
	return sf
}

func (sf seedFinder) find(seq string) (int, bool) {
	for i, f := range sf {
		if a, ok := f.find(seq); ok {
			return a - i, true
		}
	}
	return len(seq), false
}

// firstOf tries finders in order and returns the first hit.
type firstOf []finder

func (fs firstOf) find(seq string) (int, bool) {
	for _, f := range fs {
		if a, ok := f.find(seq); ok {
			return a, true
		}
	}
	return len(seq), false
}

// newJunctionFinder builds the layered junction adapter search: the whole
// adapter, then its first arm (the read ends inside the adapter), then its
// second arm (the read starts inside the adapter), then optionally the seeds.
func newJunctionFinder(opts Opts) finder {
	layers := firstOf{
		approxFinder{query: JunctionAdapter, minOverlap: opts.MinOverlap, similarity: opts.Similarity},
		approxFinder{query: Adapter1, minOverlap: opts.MinOverlap, similarity: opts.Similarity},
		approxFinder{query: Adapter2, shift: -len(Adapter1), minOverlap: opts.MinOverlap, similarity: opts.Similarity},
	}
	if opts.Aggressive {
		layers = append(layers, newSeedFinder(opts.Similarity))
	}
	return layers
}

// newExternalFinder builds the search for an external adapter: an exact hit
// first, then an approximate one.
func newExternalFinder(adapter string, opts Opts) finder {
	return firstOf{
		exactFinder{query: adapter},
		approxFinder{query: adapter, minOverlap: opts.MinOverlap, similarity: opts.Similarity},
	}
}

// Locator finds the junction adapter in reads.
type Locator struct {
	f finder
}

// NewLocator creates a Locator for the given options.
func NewLocator(opts Opts) *Locator {
	return &Locator{f: newJunctionFinder(opts)}
}

// Find returns the offset where the junction adapter starts in seq, or
// len(seq) if it is not found. The offset is negative when only the tail of
// the adapter is visible at the start of seq.
func (l *Locator) Find(seq string) int {
	a, _ := l.f.find(seq)
	return a
}
