// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package matepair classifies read pairs from a Nextera mate-pair library.
//
// A mate-pair fragment is circularized around a junction adapter and then
// sheared, so a read pair may cross the junction. Where the adapter shows up
// in each read decides whether the pair yields mate-pair reads (the arms
// before the adapter), a short paired-end fragment, a single-end read, or
// nothing. Pairs with no adapter evidence are "unknown": they may be either
// kind.
//
// Usage:
//
//   c, err := matepair.NewClassifier(matepair.DefaultOpts)
//   ...
//   out := matepair.OutputWriter{MP: mp, PE: pe, SE: se, Unknown: unk}
//   for scanner.Scan(&pair) {
//     if err := out.Write(c.Classify(&pair)); err != nil {
//       ...
//     }
//   }
package matepair
