// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"fmt"

	"github.com/grailbio/nxtrim/encoding/fastq"
)

// Verdict names the rule that classified a read pair.
type Verdict uint8

const (
	// Skipped: a read was shorter than Opts.MinOverlap. Nothing is emitted.
	Skipped Verdict = iota
	// Ambiguous: a read holds more than one adapter copy. Nothing is emitted.
	Ambiguous
	// Unknown: no adapter evidence. The pair goes to the unknown output after
	// clipping adapter prefixes too short to detect.
	Unknown
	// External: no junction adapter, but an external adapter or a direct
	// R1/R2 overlap shows a fragment shorter than the reads.
	External
	// TooShort: both reads start with the adapter. Nothing is emitted.
	TooShort
	// R2Redundant: R2 is mostly adapter; R1's arm is a single-end read.
	R2Redundant
	// R1Redundant: R1 is mostly adapter; R2's arm is a single-end read.
	R1Redundant
	// ObviousPER1: R1 has at most a partial adapter at its end and R2 starts
	// with the adapter, so the pair is a short paired-end fragment.
	ObviousPER1
	// ObviousPER2 is ObviousPER1 with the reads swapped.
	ObviousPER2
	// MatePair: both arms are usable mate-pair reads.
	MatePair
	// OverhangR1: only R1 has the adapter, and bases follow it.
	OverhangR1
	// OverhangR2: only R2 has the adapter, and bases follow it.
	OverhangR2

	numVerdicts
)

var verdictNames = [numVerdicts]string{
	Skipped:     "skipped",
	Ambiguous:   "ambiguous",
	Unknown:     "unknown",
	External:    "external",
	TooShort:    "too_short",
	R2Redundant: "r2_redundant",
	R1Redundant: "r1_redundant",
	ObviousPER1: "obvious_pe_r1",
	ObviousPER2: "obvious_pe_r2",
	MatePair:    "mate_pair",
	OverhangR1:  "overhang_r1",
	OverhangR2:  "overhang_r2",
}

// String implements fmt.Stringer.
func (v Verdict) String() string {
	if v < numVerdicts {
		return verdictNames[v]
	}
	return fmt.Sprintf("verdict(%d)", uint8(v))
}

// Result is the outcome of classifying one read pair. A nil field means
// nothing was emitted for that category. Most verdicts fill at most one
// field, but resolving an overhang can emit a single-end read alongside a
// mate-pair or paired-end pair.
type Result struct {
	Verdict Verdict
	MP      *fastq.Pair
	PE      *fastq.Pair
	Unknown *fastq.Pair
	SE      *fastq.Read
}

// Discarded reports whether the pair produced no output at all.
func (r Result) Discarded() bool {
	return r.MP == nil && r.PE == nil && r.Unknown == nil && r.SE == nil
}

func newPair(r1, r2 fastq.Read) *fastq.Pair {
	return &fastq.Pair{R1: r1, R2: r2}
}

func swapped(p *fastq.Pair) *fastq.Pair {
	if p == nil {
		return nil
	}
	return &fastq.Pair{R1: p.R2, R2: p.R1}
}
