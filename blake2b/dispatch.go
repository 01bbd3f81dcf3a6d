// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blake2b

import "sync/atomic"

// compressFunc is the contract every compression back-end satisfies:
// absorb one 128-byte block into h under the given byte counter and
// finalization flag. Back-ends are pure and mutate only *h.
type compressFunc func(h *[8]uint64, block *[BlockSize]byte, c0, c1, flag uint64)

// backend is the process-wide dispatch slot. It is filled lazily on
// the first compression: an atomic load either yields the resolved
// back-end or nil, in which case the caller resolves one — a pure
// function of the cached CPU feature record — and publishes it with
// an atomic store. Racing initializers compute identical values, so
// no lock is needed.
var backend atomic.Pointer[compressFunc]

func compressBlock(h *[8]uint64, block *[BlockSize]byte, c0, c1, flag uint64) {
	fn := backend.Load()
	if fn == nil {
		f := resolveCompress()
		fn = &f
		backend.Store(fn)
	}
	(*fn)(h, block, c0, c1, flag)
}
