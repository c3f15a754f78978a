// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

type testOutputs struct {
	mp, pe, se, unk bytes.Buffer
}

func (o *testOutputs) writer() *OutputWriter {
	return &OutputWriter{
		MP:      fastq.NewInterleavedWriter(&o.mp),
		PE:      fastq.NewInterleavedWriter(&o.pe),
		SE:      fastq.NewWriter(&o.se),
		Unknown: fastq.NewInterleavedWriter(&o.unk),
	}
}

func fastqText(reads ...fastq.Read) string {
	var b strings.Builder
	for _, r := range reads {
		b.WriteString(r.ID + "\n" + r.Seq + "\n" + r.Unk + "\n" + r.Qual + "\n")
	}
	return b.String()
}

func TestOutputWriter(t *testing.T) {
	r1, r2 := newRead("ACGTT"), newRead("GGCA")
	results := []Result{
		{Verdict: MatePair, MP: newPair(r1, r2)},
		{Verdict: OverhangR1, PE: newPair(r2, r1), SE: &r1},
		{Verdict: Unknown, Unknown: newPair(r1, r2)},
		{Verdict: TooShort},
	}

	var out testOutputs
	w := out.writer()
	for _, r := range results {
		require.NoError(t, w.Write(r))
	}
	// Mate-pairs are flipped to forward-reverse.
	expect.EQ(t, out.mp.String(), fastqText(newRead("AACGT"), newRead("TGCC")))
	expect.EQ(t, out.pe.String(), fastqText(r2, r1))
	expect.EQ(t, out.se.String(), fastqText(r1))
	expect.EQ(t, out.unk.String(), fastqText(r1, r2))

	expect.EQ(t, w.Stats.Pairs, 4)
	expect.EQ(t, w.Stats.MP, 1)
	expect.EQ(t, w.Stats.PE, 1)
	expect.EQ(t, w.Stats.SE, 1)
	expect.EQ(t, w.Stats.Unknown, 1)
	expect.EQ(t, w.Stats.Verdicts[TooShort], 1)
	expect.EQ(t, w.Stats.Verdicts[Skipped], 0)
}

func TestOutputWriterRF(t *testing.T) {
	r1, r2 := newRead("ACGTT"), newRead("GGCA")
	r1.Qual = "ABCDE"
	var out testOutputs
	w := out.writer()
	w.RF = true
	require.NoError(t, w.Write(Result{Verdict: MatePair, MP: newPair(r1, r2)}))
	expect.EQ(t, out.mp.String(), fastqText(r1, r2))

	out.mp.Reset()
	w.RF = false
	require.NoError(t, w.Write(Result{Verdict: MatePair, MP: newPair(r1, r2)}))
	flipped := r1.ReverseComplement()
	expect.EQ(t, flipped.Qual, "EDCBA")
	expect.EQ(t, out.mp.String(), fastqText(flipped, r2.ReverseComplement()))
}

func TestOutputWriterJustMP(t *testing.T) {
	r1, r2 := newRead("ACGTT"), newRead("GGCA")
	var out testOutputs
	w := out.writer()
	w.JustMP = true
	require.NoError(t, w.Write(Result{Verdict: OverhangR1, PE: newPair(r1, r2), SE: &r1}))
	expect.EQ(t, out.pe.Len(), 0)
	expect.EQ(t, out.se.Len(), 0)
	expect.EQ(t, w.Stats.PE, 1)
}

func TestOutputWriterSeparate(t *testing.T) {
	var b1, b2 bytes.Buffer
	w := OutputWriter{PE: fastq.NewPairWriter(&b1, &b2)}
	r1, r2 := newRead("ACGTT"), newRead("GGCA")
	require.NoError(t, w.Write(Result{Verdict: ObviousPER1, PE: newPair(r1, r2)}))
	// Categories without a writer are dropped.
	require.NoError(t, w.Write(Result{Verdict: MatePair, MP: newPair(r1, r2)}))
	expect.EQ(t, b1.String(), fastqText(r1))
	expect.EQ(t, b2.String(), fastqText(r2))
}

func TestStats(t *testing.T) {
	var a, b Stats
	a.Add(Result{Verdict: MatePair, MP: &fastq.Pair{}})
	b.Add(Result{Verdict: OverhangR1, PE: &fastq.Pair{}, SE: &fastq.Read{}})
	b.Add(Result{Verdict: Skipped})
	s := a.Merge(b)
	expect.EQ(t, s.Pairs, 3)
	expect.EQ(t, s.MP, 1)
	expect.EQ(t, s.PE, 1)
	expect.EQ(t, s.SE, 1)
	expect.EQ(t, s.Verdicts[MatePair], 1)
	expect.EQ(t, s.Verdicts[OverhangR1], 1)
	expect.EQ(t, s.Verdicts[Skipped], 1)
	// Merge does not modify its receiver.
	expect.EQ(t, a.Pairs, 1)

	var buf bytes.Buffer
	assert.NoError(t, s.WriteTSV(&buf))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	expect.EQ(t, len(lines), 1+5+int(numVerdicts))
	expect.EQ(t, lines[0], "#name\tcount")
	expect.EQ(t, lines[1], "pairs\t3")
	expect.EQ(t, lines[6], "verdict.skipped\t1")
	expect.True(t, strings.Contains(buf.String(), "verdict.mate_pair\t1\n"))
	expect.True(t, strings.Contains(s.String(), "overhang_r1: 1"))
}

func TestVerdictString(t *testing.T) {
	expect.EQ(t, MatePair.String(), "mate_pair")
	expect.EQ(t, Verdict(200).String(), "verdict(200)")
}
