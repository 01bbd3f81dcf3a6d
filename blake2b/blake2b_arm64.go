// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build arm64 && gc && !purego

package blake2b

import "golang.org/x/sys/cpu"

//go:noescape
func hashBlockNEON(h *[8]uint64, m *[BlockSize]byte, c0, c1, flag uint64)

func resolveCompress() compressFunc {
	// AArch64 mandates Advanced SIMD; the flag check keeps the
	// resolve a pure function of the feature record all the same.
	if cpu.ARM64.HasASIMD {
		return hashBlockNEON
	}
	return compressGeneric
}
