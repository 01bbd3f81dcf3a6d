// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pbkdf2 implements PBKDF2 as defined by RFC 8018 with the
// PRF fixed to HMAC-BLAKE2b-512 (hLen = 64).
package pbkdf2

import (
	"encoding/binary"
	"errors"

	"github.com/tinyblake/tinyblake-go/hmac"
	"github.com/tinyblake/tinyblake-go/subtle"
)

// maxKeyLen is the RFC 8018 dkLen bound: (2^32 - 1) PRF blocks.
const maxKeyLen = (1<<32 - 1) * hmac.Size

// Key derives a keyLen-byte key from password and salt using rounds
// iterations of HMAC-BLAKE2b-512. The password must not be empty (it
// keys the PRF); rounds must be at least 1 and keyLen at least 1.
//
// Intermediate PRF outputs are wiped before Key returns, on success
// and on error alike.
func Key(password, salt []byte, rounds, keyLen int) ([]byte, error) {
	if rounds < 1 {
		return nil, errors.New("pbkdf2: rounds must be at least 1")
	}
	if keyLen < 1 {
		return nil, errors.New("pbkdf2: key length must be at least 1")
	}
	if uint64(keyLen) > maxKeyLen {
		return nil, errors.New("pbkdf2: key length too long")
	}

	prf, err := hmac.New(password)
	if err != nil {
		return nil, err
	}
	defer prf.Close()

	var u, t [hmac.Size]byte
	defer subtle.Wipe(u[:])
	defer subtle.Wipe(t[:])

	numBlocks := (keyLen + hmac.Size - 1) / hmac.Size
	dk := make([]byte, 0, numBlocks*hmac.Size)
	var blockIndex [4]byte
	for block := 1; block <= numBlocks; block++ {
		// U1 = PRF(password, salt || BE32(block))
		prf.Reset()
		if _, err := prf.Write(salt); err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint32(blockIndex[:], uint32(block))
		if _, err := prf.Write(blockIndex[:]); err != nil {
			return nil, err
		}
		prf.Sum(u[:0])
		copy(t[:], u[:])

		// Uj = PRF(password, U_{j-1}); T ^= Uj
		for j := 2; j <= rounds; j++ {
			prf.Reset()
			if _, err := prf.Write(u[:]); err != nil {
				return nil, err
			}
			prf.Sum(u[:0])
			for k := range t {
				t[k] ^= u[k]
			}
		}
		dk = append(dk, t[:]...)
	}

	// The final block may extend past keyLen; wipe the slack before
	// handing the backing array to the caller.
	subtle.Wipe(dk[keyLen:])
	return dk[:keyLen], nil
}
