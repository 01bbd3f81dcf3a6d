// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hmac implements HMAC-BLAKE2b-512 as defined by RFC 2104,
// with B = 128 (the BLAKE2b block size) and L = 64.
//
// Keys longer than 128 bytes are replaced by their BLAKE2b-512
// digest; shorter keys are zero-padded. Every buffer that touches key
// material is wiped before the function holding it returns.
package hmac

import (
	"errors"
	"hash"

	"github.com/tinyblake/tinyblake-go/blake2b"
	"github.com/tinyblake/tinyblake-go/subtle"
)

const (
	// Size is the HMAC-BLAKE2b-512 output size in bytes.
	Size = 64
	// BlockSize is the underlying hash's block size in bytes.
	BlockSize = 128
)

var (
	ErrEmptyKey    = errors.New("hmac: key must not be empty")
	ErrFinalized   = errors.New("hmac: mac already finalized")
	ErrShortOutput = errors.New("hmac: output buffer smaller than 64 bytes")
)

// MAC is the state of an in-progress HMAC-BLAKE2b-512 computation. It
// implements hash.Hash. A MAC must not be used from multiple
// goroutines concurrently.
type MAC struct {
	inner *blake2b.Digest
	outer *blake2b.Digest

	// Retained so Reset can reproduce the post-init state. Wiped by
	// Close.
	ipad [BlockSize]byte
	opad [BlockSize]byte

	done bool
}

var _ hash.Hash = (*MAC)(nil)

// New returns a MAC keyed with key, which must not be empty.
func New(key []byte) (*MAC, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	m := new(MAC)
	var keyBlock [BlockSize]byte
	if len(key) > BlockSize {
		sum := blake2b.Sum512(key)
		copy(keyBlock[:], sum[:])
		subtle.Wipe(sum[:])
	} else {
		copy(keyBlock[:], key)
	}
	for i := range keyBlock {
		m.ipad[i] = keyBlock[i] ^ 0x36
		m.opad[i] = keyBlock[i] ^ 0x5c
	}
	subtle.Wipe(keyBlock[:])

	var err error
	if m.inner, err = blake2b.New512(nil); err != nil {
		m.wipe()
		return nil, err
	}
	if m.outer, err = blake2b.New512(nil); err != nil {
		m.wipe()
		return nil, err
	}
	if _, err = m.inner.Write(m.ipad[:]); err != nil {
		m.wipe()
		return nil, err
	}
	if _, err = m.outer.Write(m.opad[:]); err != nil {
		m.wipe()
		return nil, err
	}
	return m, nil
}

func (m *MAC) wipe() {
	subtle.Wipe(m.ipad[:])
	subtle.Wipe(m.opad[:])
	if m.inner != nil {
		m.inner.Close()
	}
	if m.outer != nil {
		m.outer.Close()
	}
}

// Size returns the MAC output size, 64 bytes.
func (m *MAC) Size() int { return Size }

// BlockSize returns the underlying block size, 128 bytes.
func (m *MAC) BlockSize() int { return BlockSize }

// Write feeds p to the inner hash.
func (m *MAC) Write(p []byte) (int, error) {
	if m.done {
		return 0, ErrFinalized
	}
	return m.inner.Write(p)
}

// Finalize computes the MAC into out, which must hold at least 64
// bytes, and wipes the inner and outer hash states. The retained pads
// survive so Reset can revive the MAC.
func (m *MAC) Finalize(out []byte) error {
	if m.done {
		return ErrFinalized
	}
	if len(out) < Size {
		return ErrShortOutput
	}

	var innerSum [Size]byte
	if err := m.inner.Finalize(innerSum[:]); err != nil {
		subtle.Wipe(innerSum[:])
		m.wipe()
		return err
	}
	if _, err := m.outer.Write(innerSum[:]); err != nil {
		subtle.Wipe(innerSum[:])
		m.wipe()
		return err
	}
	err := m.outer.Finalize(out)
	subtle.Wipe(innerSum[:])
	if err != nil {
		m.wipe()
		return err
	}
	m.done = true
	return nil
}

// Sum appends the current MAC to b without changing the underlying
// state; the finalization runs on copies. Sum panics if the MAC has
// been finalized.
func (m *MAC) Sum(b []byte) []byte {
	if m.done {
		panic("hmac: Sum after Finalize")
	}
	inner := *m.inner
	outer := *m.outer

	var innerSum, sum [Size]byte
	if err := inner.Finalize(innerSum[:]); err != nil {
		panic("hmac: " + err.Error())
	}
	outer.Write(innerSum[:])
	if err := outer.Finalize(sum[:]); err != nil {
		panic("hmac: " + err.Error())
	}
	b = append(b, sum[:]...)
	subtle.Wipe(innerSum[:])
	subtle.Wipe(sum[:])
	inner.Close()
	outer.Close()
	return b
}

// Reset restores the post-init state from the retained pads.
func (m *MAC) Reset() {
	m.inner.Reset()
	m.inner.Write(m.ipad[:])
	m.outer.Reset()
	m.outer.Write(m.opad[:])
	m.done = false
}

// Close wipes the pads and both hash states. The MAC is dead
// afterwards.
func (m *MAC) Close() error {
	m.wipe()
	m.done = true
	return nil
}

// Sum computes the one-shot HMAC-BLAKE2b-512 of data under key.
func Sum(key, data []byte) ([Size]byte, error) {
	var sum [Size]byte
	m, err := New(key)
	if err != nil {
		return sum, err
	}
	defer m.Close()
	if _, err := m.Write(data); err != nil {
		return sum, err
	}
	if err := m.Finalize(sum[:]); err != nil {
		return sum, err
	}
	return sum, nil
}

// Equal compares two MACs in constant time. Use this rather than
// bytes.Equal to verify authenticators.
func Equal(mac1, mac2 []byte) bool {
	return subtle.ConstantTimeCompare(mac1, mac2) == 1
}
