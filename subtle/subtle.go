// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subtle provides the defensive memory primitives the rest of
// the module builds on: guaranteed erasure of secret buffers and
// constant-time comparison of digests.
package subtle

import "runtime"

// Wipe overwrites b with zero bytes. The KeepAlive barrier keeps the
// stores observable so the compiler may not treat them as dead even
// when b is about to go out of scope.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// WipeUint64 overwrites w with zero words. Used for chaining values
// and counters, which are held as uint64 slices rather than bytes.
func WipeUint64(w []uint64) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}

// ConstantTimeCompare returns 1 if a and b have equal length and equal
// contents, and 0 otherwise. The running time depends only on the
// length of the slices: every byte pair is XORed into a single
// accumulator with no early exit. Two empty slices compare equal.
func ConstantTimeCompare(a, b []byte) int {
	if len(a) != len(b) {
		return 0
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	// Reduce the accumulator to 0/1 without branching on its value.
	return int((uint32(diff) - 1) >> 31)
}
