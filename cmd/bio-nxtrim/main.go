// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

// bio-nxtrim sorts the read pairs of a Nextera mate-pair library by where the
// junction adapter appears in them, and trims the adapter off.
//
// Example:
//
//   bio-nxtrim -r1 sample_R1.fastq.gz -r2 sample_R2.fastq.gz -output-prefix out/sample
//
// writes out/sample.{mp,pe,se,unknown}.fastq.gz. Mate-pair reads are written
// in forward-reverse orientation unless -rf is given.

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/nxtrim/matepair"
)

func usage() {
	fmt.Fprintln(os.Stderr, `
bio-nxtrim classifies and trims read pairs from a Nextera mate-pair library.

Usage:
  bio-nxtrim -r1 R1.fastq.gz -r2 R2.fastq.gz -output-prefix PREFIX [flags]

Outputs (interleaved unless -separate):
  PREFIX.mp.fastq.gz       mate-pairs, adapter and beyond removed
  PREFIX.pe.fastq.gz       short paired-end fragments
  PREFIX.se.fastq.gz       single reads whose mate was unusable
  PREFIX.unknown.fastq.gz  pairs without adapter evidence

Flags:`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	opts := matepair.DefaultOpts
	flags := nxtrimFlags{}
	flag.StringVar(&flags.r1, "r1", "", "FASTQ file containing R1 reads. May be compressed.")
	flag.StringVar(&flags.r2, "r2", "", "FASTQ file containing R2 reads. May be compressed.")
	flag.StringVar(&flags.outputPrefix, "output-prefix", "", "Prefix of the output files.")
	flag.BoolVar(&flags.separate, "separate", false, "Write R1 and R2 reads to separate files instead of interleaving them.")
	flag.BoolVar(&flags.stdout, "stdout", false, "Write mate-pair and unknown pairs, interleaved and uncompressed, to stdout. Implies -justmp.")
	flag.BoolVar(&flags.stdoutMP, "stdout-mp", false, "Write only mate-pairs to stdout. Implies -justmp.")
	flag.BoolVar(&flags.stdoutUn, "stdout-un", false, "Write only unknown pairs to stdout. Implies -justmp.")
	flag.BoolVar(&flags.rf, "rf", false, "Write mate-pairs in reverse-forward orientation, as sequenced.")
	flag.BoolVar(&flags.ignorePF, "ignore-pf", false, "Keep pairs that failed the Illumina chastity filter.")
	flag.IntVar(&flags.parallelism, "parallelism", runtime.NumCPU(), "Number of goroutines classifying reads.")
	flag.IntVar(&flags.batchSize, "batch-size", 64*1024, "Number of read pairs classified per batch.")
	flag.StringVar(&flags.statsPath, "stats", "", "If set, write per-verdict counts to this TSV file.")

	flag.BoolVar(&opts.JustMP, "justmp", matepair.DefaultOpts.JustMP,
		`Write everything to the mate-pair and unknown outputs. Reads that would be
paired-end or single-end are kept as mate-pairs with the redundant mate masked.`)
	flag.Float64Var(&opts.Similarity, "similarity", matepair.DefaultOpts.Similarity, "Minimum fractional identity of an adapter match.")
	flag.IntVar(&opts.MinOverlap, "minoverlap", matepair.DefaultOpts.MinOverlap, "Minimum length of a partial adapter match or read overlap.")
	flag.IntVar(&opts.MinLength, "minlength", matepair.DefaultOpts.MinLength, "Minimum length of a trimmed read.")
	flag.BoolVar(&opts.PreserveMP, "preserve-mp", matepair.DefaultOpts.PreserveMP,
		"Keep pairs as mate-pairs even when the overhang past the adapter is longer than the arm before it.")
	flag.BoolVar(&opts.JoinReads, "join-reads", matepair.DefaultOpts.JoinReads, "Merge an adapter overhang with the overlapping mate.")
	flag.BoolVar(&opts.Aggressive, "aggressive", matepair.DefaultOpts.Aggressive, "Also search for short fragments of the junction adapter.")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flags.stdout || flags.stdoutMP || flags.stdoutUn {
		opts.JustMP = true
	}
	stats, err := run(ctx, flags, opts, os.Stdout)
	if err != nil {
		log.Fatalf("bio-nxtrim: %v", err)
	}
	log.Printf("Stats: %v", stats)
	log.Printf("All done")
}
