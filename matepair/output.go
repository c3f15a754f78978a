// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/pkg/errors"
)

// OutputWriter routes classification Results to per-category FASTQ writers.
// A nil writer drops its category. OutputWriter is not threadsafe.
type OutputWriter struct {
	MP, PE, Unknown *fastq.PairWriter
	SE              *fastq.Writer
	// JustMP drops paired-end and single-end output.
	JustMP bool
	// RF writes mate-pair reads as sequenced (reverse-forward). By default they
	// are reverse-complemented into forward-reverse orientation.
	RF bool

	// Stats counts every Result passed to Write.
	Stats Stats
}

// Write writes the reads in r.
func (w *OutputWriter) Write(r Result) error {
	w.Stats.Add(r)
	if r.MP != nil && w.MP != nil {
		p := r.MP
		if !w.RF {
			p = &fastq.Pair{R1: r.MP.R1.ReverseComplement(), R2: r.MP.R2.ReverseComplement()}
		}
		if err := w.MP.Write(p); err != nil {
			return errors.Wrap(err, "mate-pair output")
		}
	}
	if r.Unknown != nil && w.Unknown != nil {
		if err := w.Unknown.Write(r.Unknown); err != nil {
			return errors.Wrap(err, "unknown output")
		}
	}
	if w.JustMP {
		return nil
	}
	if r.PE != nil && w.PE != nil {
		if err := w.PE.Write(r.PE); err != nil {
			return errors.Wrap(err, "paired-end output")
		}
	}
	if r.SE != nil && w.SE != nil {
		if err := w.SE.Write(r.SE); err != nil {
			return errors.Wrap(err, "single-end output")
		}
	}
	return nil
}
