// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

// revComp8Table maps 'A'/'a' to 'T', 'C'/'c' to 'G', 'G'/'g' to 'C', 'T'/'t'
// to 'A', and everything else to 'N'.
var revComp8Table [256]byte

func init() {
	for i := range revComp8Table {
		revComp8Table[i] = 'N'
	}
	for _, pair := range []string{"AT", "CG", "GC", "TA"} {
		base, comp := pair[0], pair[1]
		revComp8Table[base] = comp
		revComp8Table[base|0x20] = comp
	}
}

// ReverseComp8 writes the reverse-complement of src[] to dst[], assuming that
// it's using ASCII encoding.  More precisely, it maps 'A'/'a' to 'T', 'C'/'c'
// to 'G', 'G'/'g' to 'C', 'T'/'t' to 'A', and everything else to 'N'.
//
// It panics if len(dst) != len(src).
func ReverseComp8(dst, src []byte) {
	nByte := len(src)
	if len(dst) != nByte {
		panic("ReverseComp8 requires len(dst) == len(src).")
	}
	for idx, invIdx := 0, nByte-1; idx != nByte; idx, invIdx = idx+1, invIdx-1 {
		dst[idx] = revComp8Table[src[invIdx]]
	}
}
