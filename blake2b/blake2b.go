// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blake2b implements the BLAKE2b hash algorithm defined by
// RFC 7693, with support for keying, salting and personalization.
//
// BLAKE2b is optimized for 64-bit platforms and produces digests of
// any size between 1 and 64 bytes. The compression function is
// selected at runtime from portable, AVX2, AVX-512 and NEON
// back-ends; all back-ends produce identical output.
package blake2b

import (
	"encoding/binary"
	"errors"
	"hash"

	"github.com/tinyblake/tinyblake-go/subtle"
)

const (
	// BlockSize is the block size of BLAKE2b in bytes.
	BlockSize = 128
	// Size is the maximum digest size in bytes.
	Size = 64
	// Size256 is the digest size of BLAKE2b-256 in bytes.
	Size256 = 32
	// KeySize is the maximum key size in bytes.
	KeySize = 64
	// SaltSize is the maximum salt size in bytes.
	SaltSize = 16
	// PersonSize is the maximum personalization string size in bytes.
	PersonSize = 16
	// ParamSize is the size of a BLAKE2b parameter block in bytes.
	ParamSize = 64
)

var (
	ErrInvalidDigestSize = errors.New("blake2b: digest size must be between 1 and 64")
	ErrInvalidKeySize    = errors.New("blake2b: key is larger than 64 bytes")
	ErrInvalidSaltSize   = errors.New("blake2b: salt is larger than 16 bytes")
	ErrInvalidPersonSize = errors.New("blake2b: personalization is larger than 16 bytes")
	ErrInvalidParamBlock = errors.New("blake2b: parameter block must be 64 bytes")
	ErrFinalized         = errors.New("blake2b: hash already finalized")
	ErrShortOutput       = errors.New("blake2b: output buffer smaller than digest size")
	ErrStateCorrupt      = errors.New("blake2b: corrupt hash state")
)

var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// lastBlockFlag is mixed into the working state when the final block
// is compressed.
const lastBlockFlag = 0xffffffffffffffff

// Config collects the user-visible BLAKE2b parameters. All fields are
// optional; the zero Config describes an unkeyed BLAKE2b-512.
type Config struct {
	Size   int    // digest size in bytes; 0 means 64
	Key    []byte // key for keyed hashing (MAC), up to 64 bytes
	Salt   []byte // up to 16 bytes, zero-padded on the right
	Person []byte // personalization, up to 16 bytes, zero-padded
}

// Digest is the state of an in-progress BLAKE2b computation. It
// implements hash.Hash. A Digest must not be used from multiple
// goroutines concurrently.
type Digest struct {
	h      [8]uint64
	c      [2]uint64
	buf    [BlockSize]byte
	buflen int
	size   int

	// Retained so Reset can reproduce the post-init state. Wiped by
	// Close, not by Finalize.
	param  [ParamSize]byte
	key    [BlockSize]byte
	keyLen int

	done bool
}

var _ hash.Hash = (*Digest)(nil)

// New returns a Digest configured by c. A nil c is equivalent to
// &Config{}: an unkeyed BLAKE2b-512.
func New(c *Config) (*Digest, error) {
	if c == nil {
		c = &Config{}
	}
	size := c.Size
	if size == 0 {
		size = Size
	}
	if size < 0 || size > Size {
		return nil, ErrInvalidDigestSize
	}
	if len(c.Key) > KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(c.Salt) > SaltSize {
		return nil, ErrInvalidSaltSize
	}
	if len(c.Person) > PersonSize {
		return nil, ErrInvalidPersonSize
	}

	d := new(Digest)
	d.param[0] = byte(size)
	d.param[1] = byte(len(c.Key))
	d.param[2] = 1 // fanout: sequential hashing
	d.param[3] = 1 // depth: sequential hashing
	copy(d.param[32:48], c.Salt)
	copy(d.param[48:64], c.Person)
	if len(c.Key) > 0 {
		d.keyLen = copy(d.key[:], c.Key)
	}
	d.Reset()
	return d, nil
}

// New512 returns a Digest computing the 64-byte BLAKE2b-512 checksum.
// A non-nil, non-empty key turns the hash into a MAC; the key must be
// at most 64 bytes long.
func New512(key []byte) (*Digest, error) {
	return New(&Config{Size: Size, Key: key})
}

// New256 returns a Digest computing the 32-byte BLAKE2b-256 checksum,
// optionally keyed.
func New256(key []byte) (*Digest, error) {
	return New(&Config{Size: Size256, Key: key})
}

// NewFromParamBlock returns a Digest initialized from a verbatim
// 64-byte parameter block. The block is consumed as-is apart from
// validation of the digest length at offset 0. If the block declares
// a key length, the caller is responsible for feeding the zero-padded
// 128-byte key block through Write before any message data.
func NewFromParamBlock(raw []byte) (*Digest, error) {
	if len(raw) != ParamSize {
		return nil, ErrInvalidParamBlock
	}
	if raw[0] == 0 || raw[0] > Size {
		return nil, ErrInvalidDigestSize
	}
	d := new(Digest)
	copy(d.param[:], raw)
	d.Reset()
	return d, nil
}

// Reset restores the post-initialization state: the parameter block
// is reapplied and, for keyed digests, the padded key block is fed
// through the ordinary update path again.
func (d *Digest) Reset() {
	if d.param[0] == 0 {
		// Closed digest: there is no parameter block left to
		// restore from, and the done latch stays set.
		return
	}
	for i := 0; i < 8; i++ {
		d.h[i] = iv[i] ^ binary.LittleEndian.Uint64(d.param[i*8:])
	}
	d.c[0], d.c[1] = 0, 0
	d.buflen = 0
	d.size = int(d.param[0])
	d.done = false
	if d.keyLen > 0 {
		// The key block stays in the buffer: if no message data
		// follows, it must be compressed as the final block.
		copy(d.buf[:], d.key[:])
		d.buflen = BlockSize
	}
}

// Size returns the number of bytes Sum and Finalize will produce.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the BLAKE2b block size.
func (d *Digest) BlockSize() int { return BlockSize }

// Write absorbs p into the hash state. It never returns an error on a
// live digest; after Finalize it returns ErrFinalized.
func (d *Digest) Write(p []byte) (int, error) {
	if d.done {
		return 0, ErrFinalized
	}
	if d.buflen > BlockSize {
		return 0, ErrStateCorrupt
	}
	nn := len(p)
	if nn == 0 {
		return 0, nil
	}

	// Top up the buffer, but only compress it once more input is
	// known to follow: a full buffer may still become the final
	// block.
	left := BlockSize - d.buflen
	if len(p) > left {
		copy(d.buf[d.buflen:], p[:left])
		p = p[left:]
		d.compress(&d.buf, BlockSize, 0)
		d.buflen = 0
	} else {
		d.buflen += copy(d.buf[d.buflen:], p)
		return nn, nil
	}

	// Bulk blocks straight from the caller's slice, always holding
	// back at least one byte for final.
	for len(p) > BlockSize {
		d.compress((*[BlockSize]byte)(p), BlockSize, 0)
		p = p[BlockSize:]
	}

	d.buflen = copy(d.buf[:], p)
	return nn, nil
}

// compress advances the byte counter by inc and runs the dispatched
// compression function over one block.
func (d *Digest) compress(block *[BlockSize]byte, inc uint64, flag uint64) {
	d.c[0] += inc
	if d.c[0] < inc {
		d.c[1]++
	}
	compressBlock(&d.h, block, d.c[0], d.c[1], flag)
}

// Finalize compresses the remaining buffered input as the final block
// and writes the digest to out, which must hold at least Size()
// bytes. The hash state is wiped before returning; afterwards only
// Reset (or Close) is legal. The retained parameter block and key
// survive so Reset can revive the digest.
func (d *Digest) Finalize(out []byte) error {
	if d.done {
		return ErrFinalized
	}
	if len(out) < d.size {
		return ErrShortOutput
	}
	for i := d.buflen; i < BlockSize; i++ {
		d.buf[i] = 0
	}
	d.compress(&d.buf, uint64(d.buflen), lastBlockFlag)

	var tmp [Size]byte
	for i, v := range d.h {
		binary.LittleEndian.PutUint64(tmp[8*i:], v)
	}
	copy(out, tmp[:d.size])
	subtle.Wipe(tmp[:])

	subtle.WipeUint64(d.h[:])
	subtle.WipeUint64(d.c[:])
	subtle.Wipe(d.buf[:])
	d.buflen = 0
	d.size = 0
	d.done = true
	return nil
}

// Sum appends the current digest to b and returns the resulting
// slice. It does not change the underlying hash state; the final
// block is compressed on a copy. Sum panics if the digest has been
// finalized.
func (d *Digest) Sum(b []byte) []byte {
	if d.done {
		panic("blake2b: Sum after Finalize")
	}
	dd := *d
	size := dd.size
	var sum [Size]byte
	if err := dd.Finalize(sum[:]); err != nil {
		panic("blake2b: " + err.Error())
	}
	b = append(b, sum[:size]...)
	subtle.Wipe(sum[:])
	dd.Close()
	return b
}

// Close wipes the entire digest, including the retained key and
// parameter block. The digest cannot be revived afterwards: Reset
// becomes a no-op and Write and Finalize keep failing through the
// done latch.
func (d *Digest) Close() error {
	subtle.WipeUint64(d.h[:])
	subtle.WipeUint64(d.c[:])
	subtle.Wipe(d.buf[:])
	subtle.Wipe(d.param[:])
	subtle.Wipe(d.key[:])
	d.buflen = 0
	d.size = 0
	d.keyLen = 0
	d.done = true
	return nil
}

// Sum computes a one-shot BLAKE2b digest of data into out. The digest
// length is len(out), which must be between 1 and 64. A non-empty key
// (up to 64 bytes) turns the hash into a MAC. On error no output is
// written.
func Sum(out, data, key []byte) error {
	if len(out) == 0 || len(out) > Size {
		return ErrInvalidDigestSize
	}
	d, err := New(&Config{Size: len(out), Key: key})
	if err != nil {
		return err
	}
	defer d.Close()
	d.Write(data)
	return d.Finalize(out)
}

// Sum512 returns the BLAKE2b-512 checksum of data.
func Sum512(data []byte) [Size]byte {
	var sum [Size]byte
	d, _ := New512(nil)
	d.Write(data)
	d.Finalize(sum[:])
	return sum
}

// Sum256 returns the BLAKE2b-256 checksum of data.
func Sum256(data []byte) [Size256]byte {
	var sum [Size256]byte
	d, _ := New256(nil)
	d.Write(data)
	d.Finalize(sum[:])
	return sum
}
