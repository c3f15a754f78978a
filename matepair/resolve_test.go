// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"strings"
	"testing"

	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/grailbio/testutil/expect"
)

func TestJoinReads(t *testing.T) {
	opts := DefaultOpts
	opts.MinOverlap = 10
	opts.Similarity = 0.8
	c := newTestClassifier(t, opts)

	// r2 overlaps the last 10 bases of r1, with two substitutions. The first
	// has the better quality in r2, the second ties.
	r1 := fastq.Read{ID: "@r1", Seq: x[:60], Unk: "+", Qual: strings.Repeat("5", 60)}
	r2seq := mutate(x[50:100], 0, 1)
	r2 := fastq.Read{ID: "@r2", Seq: r2seq, Unk: "+", Qual: "I" + strings.Repeat("5", 49)}
	joined, ok := c.joinReads(r1, r2)
	expect.True(t, ok)
	expect.EQ(t, joined.Len(), r1.Len()+r2.Len()-10)
	expect.EQ(t, joined.ID, "@r1")
	expect.EQ(t, joined.Seq, x[:50]+r2seq[:1]+x[51:100])
	expect.EQ(t, joined.Qual, strings.Repeat("5", 50)+"I"+strings.Repeat("5", 49))

	_, ok = c.joinReads(r1, newRead(y[:50]))
	expect.False(t, ok)

	opts.JoinReads = false
	c = newTestClassifier(t, opts)
	_, ok = c.joinReads(r1, r2)
	expect.False(t, ok)
}

func TestTrimUnknown(t *testing.T) {
	c := newTestClassifier(t, DefaultOpts)
	tests := []struct {
		seq, want string
	}{
		{x[:100], x[:100]},
		{x[:92] + Adapter1[:8], x[:92]},
		{x[:97] + Adapter1[:3], x[:97]},
		// Adapter1[:12] with one substitution.
		{x[:88] + mutate(Adapter1[:12], 5), x[:88]},
		// Two bases are too few.
		{x[:98] + Adapter1[:2], x[:98] + Adapter1[:2]},
		{Adapter1[:5], Adapter1[:5]},
	}
	for _, test := range tests {
		expect.EQ(t, c.trimUnknown(newRead(test.seq)).Seq, test.want, "%s", test.seq)
	}
}
