// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/tsv"
)

// Stats counts classification outcomes.
type Stats struct {
	// Pairs is the # of read pairs classified.
	Pairs int
	// Verdicts[v] is the # of pairs that got verdict v.
	Verdicts [numVerdicts]int
	// MP, PE, Unknown count emitted pairs; SE counts emitted single reads.
	MP, PE, SE, Unknown int
}

// Add records one Result.
func (s *Stats) Add(r Result) {
	s.Pairs++
	s.Verdicts[r.Verdict]++
	if r.MP != nil {
		s.MP++
	}
	if r.PE != nil {
		s.PE++
	}
	if r.SE != nil {
		s.SE++
	}
	if r.Unknown != nil {
		s.Unknown++
	}
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Pairs += o.Pairs
	for i, n := range o.Verdicts {
		s.Verdicts[i] += n
	}
	s.MP += o.MP
	s.PE += o.PE
	s.SE += o.SE
	s.Unknown += o.Unknown
	return s
}

// String returns a one-line summary for logging.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pairs: %d, mp: %d, pe: %d, se: %d, unknown: %d", s.Pairs, s.MP, s.PE, s.SE, s.Unknown)
	for v, n := range s.Verdicts {
		if n > 0 {
			fmt.Fprintf(&b, ", %v: %d", Verdict(v), n)
		}
	}
	return b.String()
}

// WriteTSV writes the counts as a two-column "name count" table.
func (s Stats) WriteTSV(w io.Writer) error {
	out := tsv.NewWriter(w)
	row := func(name string, n int) error {
		out.WriteString(name)
		out.WriteUint32(uint32(n))
		return out.EndLine()
	}
	out.WriteString("#name")
	out.WriteString("count")
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, r := range []struct {
		name string
		n    int
	}{{"pairs", s.Pairs}, {"mp", s.MP}, {"pe", s.PE}, {"se", s.SE}, {"unknown", s.Unknown}} {
		if err := row(r.name, r.n); err != nil {
			return err
		}
	}
	for v, n := range s.Verdicts {
		if err := row("verdict."+Verdict(v).String(), n); err != nil {
			return err
		}
	}
	return out.Flush()
}
