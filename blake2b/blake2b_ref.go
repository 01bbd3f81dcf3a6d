// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (!amd64 && !arm64) || !gc || purego

package blake2b

func resolveCompress() compressFunc {
	return compressGeneric
}
