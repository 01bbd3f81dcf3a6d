// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 && gc && !purego

package blake2b

import (
	"testing"

	"golang.org/x/sys/cpu"
)

func TestAVX2Backend(t *testing.T) {
	if !cpu.X86.HasAVX2 {
		t.Skip("AVX2 not available")
	}
	testBackend(t, hashBlockAVX2)
}

func TestAVX512Backend(t *testing.T) {
	if !(cpu.X86.HasAVX512F && cpu.X86.HasAVX512VL && cpu.X86.HasAVX512VBMI2) {
		t.Skip("AVX-512 F+VL+VBMI2 not available")
	}
	testBackend(t, hashBlockAVX512)
}
