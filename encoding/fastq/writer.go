// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fastq

import (
	"io"

	"github.com/pkg/errors"
)

var newline = []byte{'\n'}

// Writer is a FASTQ file writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new FASTQ writer
// that writes reads to the underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the read r in FASTQ format. An empty Unk is written as "+".
// An error is returned if the write failed; once a write fails, all later
// writes fail with the same error.
func (w *Writer) Write(r *Read) error {
	unk := r.Unk
	if unk == "" {
		unk = "+"
	}
	w.writeln(r.ID)
	w.writeln(r.Seq)
	w.writeln(unk)
	w.writeln(r.Qual)
	return w.err
}

func (w *Writer) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
	if w.err != nil {
		w.err = errors.Wrap(w.err, "write FASTQ")
	}
}

// PairWriter writes read pairs either interleaved into one stream or split
// across an R1 and an R2 stream.
type PairWriter struct {
	r1, r2 *Writer
}

// NewPairWriter creates a PairWriter that writes R1 reads to w1 and R2 reads to
// w2. Passing the same writer twice, or using NewInterleavedWriter, interleaves
// the pairs.
func NewPairWriter(w1, w2 io.Writer) *PairWriter {
	r1 := NewWriter(w1)
	if w1 == w2 {
		return &PairWriter{r1: r1, r2: r1}
	}
	return &PairWriter{r1: r1, r2: NewWriter(w2)}
}

// NewInterleavedWriter creates a PairWriter that writes R1 then R2 of each pair
// to w.
func NewInterleavedWriter(w io.Writer) *PairWriter {
	return NewPairWriter(w, w)
}

// Write writes both reads of p.
func (w *PairWriter) Write(p *Pair) error {
	if err := w.r1.Write(&p.R1); err != nil {
		return errors.Wrap(err, "R1")
	}
	return errors.Wrap(w.r2.Write(&p.R2), "R2")
}
