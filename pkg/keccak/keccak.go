// Package keccak computes Keccak digests with the original Keccak padding,
// not the padding standardized later as SHA-3. The distinction matters: the
// two constructions produce different outputs for every input, and all key,
// signature, and address material in this module is bound to the original
// Keccak-256 convention.
package keccak

import (
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/sha3"
)

// DigestLength is the byte length of a Keccak-256 digest.
const DigestLength = 32

// Digest represents the fixed 32-byte output of Keccak-256.
type Digest [DigestLength]byte

// Bytes returns the digest as a byte slice.
func (d Digest) Bytes() []byte {
	return d[:]
}

// Hex returns the digest as a 0x-prefixed hex string.
func (d Digest) Hex() string {
	return "0x" + hex.EncodeToString(d[:])
}

// State supports squeezing output from the sponge without finalizing it.
// Read is faster than Sum because it avoids copying the internal state.
type State interface {
	hash.Hash
	Read([]byte) (int, error)
}

// New256 returns a Keccak-256 hash state.
func New256() State {
	return sha3.NewLegacyKeccak256().(State)
}

// New512 returns a Keccak-512 hash state.
func New512() State {
	return sha3.NewLegacyKeccak512().(State)
}

// Sum256 computes the Keccak-256 digest of the concatenation of data.
func Sum256(data ...[]byte) []byte {
	b := make([]byte, DigestLength)
	d := New256()
	for _, chunk := range data {
		d.Write(chunk)
	}
	d.Read(b)
	return b
}

// Hash256 computes the Keccak-256 digest of the concatenation of data and
// returns it as a Digest value.
func Hash256(data ...[]byte) (h Digest) {
	d := New256()
	for _, chunk := range data {
		d.Write(chunk)
	}
	d.Read(h[:])
	return h
}

// Sum512 computes the Keccak-512 digest of the concatenation of data.
func Sum512(data ...[]byte) []byte {
	b := make([]byte, 64)
	d := New512()
	for _, chunk := range data {
		d.Write(chunk)
	}
	d.Read(b)
	return b
}
