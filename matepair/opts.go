// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package matepair

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Opts configures a Classifier. It is copied into the Classifier and never
// modified afterwards.
type Opts struct {
	// MinOverlap is the shortest partial adapter, or read overlap, that counts
	// as evidence. Pairs with a read shorter than this are skipped.
	MinOverlap int
	// Similarity is the fractional identity a match must reach. A comparison
	// of n bases tolerates floor((1-Similarity)*n) substitutions.
	Similarity float64
	// MinLength is the shortest fragment worth keeping.
	MinLength int
	// JoinReads allows an adapter overhang to be merged with the other mate
	// when they overlap.
	JoinReads bool
	// UseHamming selects substitution-only matching. It is the only algorithm
	// implemented; false is a configuration error.
	UseHamming bool
	// PreserveMP keeps ambiguous overhang pairs as mate-pairs instead of
	// downgrading them to paired-end.
	PreserveMP bool
	// JustMP routes everything that would be paired-end or single-end to the
	// mate-pair output, masking the redundant mate instead of dropping it.
	JustMP bool
	// Aggressive enables the adapter seed scan, which also finds short
	// fragments of the junction adapter.
	Aggressive bool
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	MinOverlap: 12,
	Similarity: 0.85,
	MinLength:  21,
	JoinReads:  true,
	UseHamming: true,
	PreserveMP: false,
	JustMP:     false,
	Aggressive: false,
}

// Validate checks that the options are usable. An error here should abort
// the run.
func (o Opts) Validate() error {
	if !o.UseHamming {
		return errors.E(errors.NotSupported, "only hamming distance adapter matching is available")
	}
	if o.MinOverlap < 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("minoverlap must be at least 1, got %d", o.MinOverlap))
	}
	if !(o.Similarity > 0 && o.Similarity <= 1) {
		return errors.E(errors.Invalid, fmt.Sprintf("similarity must be in (0, 1], got %v", o.Similarity))
	}
	if o.MinLength < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("minlength must be non-negative, got %d", o.MinLength))
	}
	return nil
}
