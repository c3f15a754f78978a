// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides table-driven reverse-complement operations on
// ASCII-encoded DNA.
//
// See base/simd/doc.go for more comments on the overall design.
package biosimd
