// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/grailbio/nxtrim/matepair"
	"github.com/klauspost/compress/gzip"
)

// gzipFile is a gzip-compressed output file.
type gzipFile struct {
	path string
	f    file.File
	gz   *gzip.Writer
	buf  *bufio.Writer
}

func createGzip(ctx context.Context, path string) (*gzipFile, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	gz := gzip.NewWriter(f.Writer(ctx))
	return &gzipFile{path: path, f: f, gz: gz, buf: bufio.NewWriterSize(gz, 1<<20)}, nil
}

func (g *gzipFile) Write(p []byte) (int, error) { return g.buf.Write(p) }

func (g *gzipFile) Close(ctx context.Context) error {
	once := errors.Once{}
	once.Set(g.buf.Flush())
	once.Set(g.gz.Close())
	once.Set(g.f.Close(ctx))
	if err := once.Err(); err != nil {
		return errors.E(err, "close", g.path)
	}
	return nil
}

// outputs owns the destinations behind a matepair.OutputWriter.
type outputs struct {
	w      matepair.OutputWriter
	files  []*gzipFile
	stdout *bufio.Writer
}

// createOutputs opens the destinations selected by flags. Paired-end and
// single-end files are not created when justMP is set.
func createOutputs(ctx context.Context, flags nxtrimFlags, justMP bool, stdout io.Writer) (*outputs, error) {
	out := &outputs{}
	out.w.JustMP = justMP
	out.w.RF = flags.rf
	if flags.toStdout() {
		out.stdout = bufio.NewWriterSize(stdout, 1<<20)
		w := fastq.NewInterleavedWriter(out.stdout)
		if flags.stdout || flags.stdoutMP {
			out.w.MP = w
		}
		if flags.stdout || flags.stdoutUn {
			out.w.Unknown = w
		}
		out.w.JustMP = true
		return out, nil
	}

	create := func(path string) (io.Writer, error) {
		g, err := createGzip(ctx, path)
		if err != nil {
			return nil, err
		}
		out.files = append(out.files, g)
		return g, nil
	}
	pairWriter := func(kind string) (*fastq.PairWriter, error) {
		if !flags.separate {
			w, err := create(flags.outputPrefix + "." + kind + ".fastq.gz")
			if err != nil {
				return nil, err
			}
			return fastq.NewInterleavedWriter(w), nil
		}
		w1, err := create(flags.outputPrefix + "_R1." + kind + ".fastq.gz")
		if err != nil {
			return nil, err
		}
		w2, err := create(flags.outputPrefix + "_R2." + kind + ".fastq.gz")
		if err != nil {
			return nil, err
		}
		return fastq.NewPairWriter(w1, w2), nil
	}

	var err error
	if out.w.MP, err = pairWriter("mp"); err != nil {
		out.close(ctx)
		return nil, err
	}
	if out.w.Unknown, err = pairWriter("unknown"); err != nil {
		out.close(ctx)
		return nil, err
	}
	if justMP {
		return out, nil
	}
	if out.w.PE, err = pairWriter("pe"); err != nil {
		out.close(ctx)
		return nil, err
	}
	se, err := create(flags.outputPrefix + ".se.fastq.gz")
	if err != nil {
		out.close(ctx)
		return nil, err
	}
	out.w.SE = fastq.NewWriter(se)
	return out, nil
}

// close flushes and closes every destination.
func (o *outputs) close(ctx context.Context) error {
	once := errors.Once{}
	if o.stdout != nil {
		once.Set(o.stdout.Flush())
	}
	for _, g := range o.files {
		once.Set(g.Close(ctx))
		log.Debug.Printf("closed %s", g.path)
	}
	return once.Err()
}
