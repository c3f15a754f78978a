// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/nxtrim/encoding/fastq"
	"github.com/grailbio/nxtrim/matepair"
)

// Collection of options set via cmdline flags
type nxtrimFlags struct {
	r1, r2       string
	outputPrefix string
	separate     bool
	stdout       bool
	stdoutMP     bool
	stdoutUn     bool
	rf           bool
	ignorePF     bool
	parallelism  int
	batchSize    int
	statsPath    string
}

func (f nxtrimFlags) toStdout() bool { return f.stdout || f.stdoutMP || f.stdoutUn }

// run classifies the pairs in flags.r1 and flags.r2 and writes the results.
// Stdout receives the reads in the -stdout modes.
func run(ctx context.Context, flags nxtrimFlags, opts matepair.Opts, stdout io.Writer) (matepair.Stats, error) {
	c, err := matepair.NewClassifier(opts)
	if err != nil {
		return matepair.Stats{}, err
	}
	if flags.r1 == "" || flags.r2 == "" {
		return matepair.Stats{}, errors.E(errors.Invalid, "-r1 and -r2 are required")
	}
	if flags.outputPrefix == "" && !flags.toStdout() {
		return matepair.Stats{}, errors.E(errors.Invalid, "-output-prefix is required unless writing to stdout")
	}
	if flags.batchSize <= 0 {
		flags.batchSize = 1
	}
	if flags.parallelism <= 0 {
		flags.parallelism = 1
	}

	in1, err := openFASTQ(ctx, flags.r1)
	if err != nil {
		return matepair.Stats{}, err
	}
	in2, err := openFASTQ(ctx, flags.r2)
	if err != nil {
		in1.close(ctx)
		return matepair.Stats{}, err
	}
	out, err := createOutputs(ctx, flags, opts.JustMP, stdout)
	if err != nil {
		in1.close(ctx)
		in2.close(ctx)
		return matepair.Stats{}, err
	}

	var (
		sc        = fastq.NewPairScanner(in1.r, in2.r, fastq.All)
		batch     = make([]fastq.Pair, 0, flags.batchSize)
		results   = make([]matepair.Result, flags.batchSize)
		nFiltered int
		nextLog   = 1 << 20
		once      errors.Once
	)
	for {
		batch = batch[:0]
		var p fastq.Pair
		for len(batch) < flags.batchSize && sc.Scan(&p) {
			if !flags.ignorePF && (p.R1.Filtered() || p.R2.Filtered()) {
				nFiltered++
				continue
			}
			batch = append(batch, p)
		}
		if len(batch) == 0 {
			break
		}
		if err := classifyBatch(c, batch, results, flags.parallelism); err != nil {
			once.Set(err)
			break
		}
		for _, r := range results[:len(batch)] {
			if err := out.w.Write(r); err != nil {
				once.Set(err)
				break
			}
		}
		if once.Err() != nil {
			break
		}
		if n := sc.N(); n >= nextLog {
			log.Printf("%s: %dMi readpairs", flags.r1, n>>20)
			nextLog = (n>>20 + 1) << 20
		}
	}
	once.Set(sc.Err())
	once.Set(out.close(ctx))
	once.Set(in1.close(ctx))
	once.Set(in2.close(ctx))
	stats := out.w.Stats
	if nFiltered > 0 {
		log.Printf("Dropped %d pairs that failed the chastity filter", nFiltered)
	}
	log.Debug.Printf("Processed %d of %d pairs from %s, %s", stats.Pairs, sc.N(), flags.r1, flags.r2)
	if err := once.Err(); err != nil {
		return stats, err
	}
	if flags.statsPath != "" {
		if err := writeStats(ctx, flags.statsPath, stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// classifyBatch classifies batch into results[:len(batch)]. The batch is split
// into parallelism contiguous shards so the results stay in input order.
func classifyBatch(c *matepair.Classifier, batch []fastq.Pair, results []matepair.Result, parallelism int) error {
	n := len(batch)
	if parallelism > n {
		parallelism = n
	}
	return traverse.Each(parallelism, func(shard int) error {
		start, end := shard*n/parallelism, (shard+1)*n/parallelism
		for i := start; i < end; i++ {
			results[i] = c.Classify(&batch[i])
		}
		return nil
	})
}

type inputFile struct {
	f file.File
	r io.Reader
}

// openFASTQ opens a FASTQ file, decompressing it if its name says so.
func openFASTQ(ctx context.Context, path string) (inputFile, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return inputFile{}, errors.E(err, "open", path)
	}
	var r io.Reader = f.Reader(ctx)
	if u := compress.NewReaderPath(r, f.Name()); u != nil {
		r = u
	}
	return inputFile{f: f, r: r}, nil
}

func (in inputFile) close(ctx context.Context) error {
	if in.f == nil {
		return nil
	}
	return in.f.Close(ctx)
}

func writeStats(ctx context.Context, path string, stats matepair.Stats) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	once := errors.Once{}
	once.Set(stats.WriteTSV(out.Writer(ctx)))
	once.Set(out.Close(ctx))
	return once.Err()
}
