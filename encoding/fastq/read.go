// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"strings"

	"github.com/grailbio/base/simd"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/nxtrim/biosimd"
)

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string. ID includes the leading '@' and Unk the
// leading '+', so that a Read round-trips through Scanner and Writer.
//
// Seq and Qual must have equal length. The transforms below never modify the
// receiver; they return new Reads which may share storage with it.
type Read struct {
	ID, Seq, Unk, Qual string
}

// Pair is the two ends of one sequenced fragment.
type Pair struct {
	R1, R2 Read
}

// Len returns the number of bases in the read.
func (r Read) Len() int { return len(r.Seq) }

func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

// Window returns the bases in [start, end). The range is clamped to the read,
// so out-of-range or inverted arguments yield a shorter (possibly empty) read
// rather than a panic.
func (r Read) Window(start, end int) Read {
	start, end = clampRange(start, end, len(r.Seq))
	return Read{
		ID:   r.ID,
		Seq:  r.Seq[start:end],
		Unk:  r.Unk,
		Qual: r.Qual[start:end],
	}
}

// Mask returns a copy of the read with the bases in [start, end) replaced by
// 'N'. Unlike Window, the length is preserved. Qualities are left alone.
func (r Read) Mask(start, end int) Read {
	start, end = clampRange(start, end, len(r.Seq))
	if start == end {
		return r
	}
	buf := []byte(r.Seq)
	simd.Memset8(buf[start:end], 'N')
	r.Seq = gunsafe.BytesToString(buf)
	return r
}

// MaskAll masks the whole read.
func (r Read) MaskAll() Read { return r.Mask(0, len(r.Seq)) }

// ReverseComplementSeq returns the reverse complement of a DNA sequence.
// Lowercase bases come back capitalized and anything non-ACGT becomes 'N'.
func ReverseComplementSeq(seq string) string {
	buf := make([]byte, len(seq))
	biosimd.ReverseComp8(buf, gunsafe.StringToBytes(seq))
	return gunsafe.BytesToString(buf)
}

// ReverseComplement returns the read as seen from the opposite strand: the
// sequence is reverse-complemented and the qualities reversed.
func (r Read) ReverseComplement() Read {
	qual := make([]byte, len(r.Qual))
	simd.Reverse8(qual, gunsafe.StringToBytes(r.Qual))
	r.Seq = ReverseComplementSeq(r.Seq)
	r.Qual = gunsafe.BytesToString(qual)
	return r
}

// NotN counts the bases in [start, end) that are not 'N'.
func (r Read) NotN(start, end int) int {
	start, end = clampRange(start, end, len(r.Seq))
	w := r.Seq[start:end]
	return len(w) - strings.Count(w, "N")
}

// Filtered reports whether the Illumina chastity filter flagged the read,
// i.e. the header comment looks like "<read>:Y:<control>:<index>".
func (r Read) Filtered() bool {
	sp := strings.IndexByte(r.ID, ' ')
	if sp < 0 {
		return false
	}
	comment := r.ID[sp+1:]
	colon := strings.IndexByte(comment, ':')
	return colon >= 0 && strings.HasPrefix(comment[colon+1:], "Y:")
}
