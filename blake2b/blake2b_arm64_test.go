// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build arm64 && gc && !purego

package blake2b

import (
	"testing"

	"golang.org/x/sys/cpu"
)

func TestNEONBackend(t *testing.T) {
	if !cpu.ARM64.HasASIMD {
		t.Skip("ASIMD not available")
	}
	testBackend(t, hashBlockNEON)
}
