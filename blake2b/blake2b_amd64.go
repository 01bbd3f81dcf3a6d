// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 && gc && !purego

package blake2b

import "golang.org/x/sys/cpu"

//go:noescape
func hashBlockAVX2(h *[8]uint64, m *[BlockSize]byte, c0, c1, flag uint64)

//go:noescape
func hashBlockAVX512(h *[8]uint64, m *[BlockSize]byte, c0, c1, flag uint64)

// resolveCompress picks the fastest back-end the host supports. The
// cpu package has already masked off features the OS does not save
// and restore across context switches.
func resolveCompress() compressFunc {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512VL && cpu.X86.HasAVX512VBMI2:
		return hashBlockAVX512
	case cpu.X86.HasAVX2:
		return hashBlockAVX2
	default:
		return compressGeneric
	}
}
