package ecdsa

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PrivKeyBytesLen is the number of bytes of a serialized private key.
	PrivKeyBytesLen = 32

	// maxEntropyRetries bounds how many times key generation re-reads the
	// system entropy source before giving up with ErrRandomness.
	maxEntropyRetries = 8
)

// PrivateKey is a secp256k1 private key: a scalar in the range [1, N-1] where
// N is the group order.  The zero value is not a valid key; use
// GeneratePrivateKey or one of the parse functions to obtain one.
type PrivateKey struct {
	key secp256k1.ModNScalar
}

// GeneratePrivateKey returns a private key generated from the system entropy
// source.  The entropy read is retried a bounded number of times before the
// failure surfaces as ErrRandomness.
func GeneratePrivateKey() (*PrivateKey, error) {
	var buf [PrivKeyBytesLen]byte
	var lastErr error
	for retries := 0; retries < maxEntropyRetries; retries++ {
		if _, err := rand.Read(buf[:]); err != nil {
			lastErr = err
			continue
		}

		// Candidates of zero or >= N are rejected and fresh entropy is drawn.
		// The probability of hitting one is negligible (~2^-128), so this does
		// not meaningfully consume the retry budget.
		var priv PrivateKey
		if overflow := priv.key.SetBytes(&buf); overflow != 0 || priv.key.IsZero() {
			priv.key.Zero()
			continue
		}
		zeroArray32(&buf)
		return &priv, nil
	}
	desc := "entropy source unavailable"
	if lastErr != nil {
		desc = fmt.Sprintf("entropy source unavailable: %v", lastErr)
	}
	return nil, makeError(ErrRandomness, desc)
}

// PrivateKeyFromBytes returns the private key encoded by the given 32-byte
// big-endian scalar.  Inputs of the wrong length or encoding zero or a value
// greater than or equal to the group order fail with ErrInvalidScalar.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivKeyBytesLen {
		desc := fmt.Sprintf("private key must be %d bytes, got %d",
			PrivKeyBytesLen, len(b))
		return nil, makeError(ErrInvalidScalar, desc)
	}
	var priv PrivateKey
	if overflow := priv.key.SetByteSlice(b); overflow {
		return nil, makeError(ErrInvalidScalar, "private key >= group order")
	}
	if priv.key.IsZero() {
		return nil, makeError(ErrInvalidScalar, "private key is zero")
	}
	return &priv, nil
}

// PrivateKeyFromHex returns the private key encoded by the given hex string.
// An optional 0x prefix is accepted.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, makeError(ErrInvalidScalar, "private key is not valid hex")
	}
	return PrivateKeyFromBytes(b)
}

// PubKey computes the public key corresponding to the private key via scalar
// multiplication of the curve generator.
func (p *PrivateKey) PubKey() *PublicKey {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&p.key, &result)
	result.ToAffine()
	return &PublicKey{pub: *secp256k1.NewPublicKey(&result.X, &result.Y)}
}

// Serialize returns the private key as a 32-byte big-endian scalar.
func (p *PrivateKey) Serialize() [PrivKeyBytesLen]byte {
	var b [PrivKeyBytesLen]byte
	p.key.PutBytes(&b)
	return b
}

// String returns the private key as a hex string.
func (p *PrivateKey) String() string {
	b := p.Serialize()
	s := hex.EncodeToString(b[:])
	zeroArray32(&b)
	return s
}

// IsEqual reports whether the passed private key encodes the same scalar.
func (p *PrivateKey) IsEqual(other *PrivateKey) bool {
	return p.key.Equals(&other.key)
}

// Zero overwrites the key material with zeros.  The key must not be used for
// signing afterwards.  Callers that wipe keys are responsible for serializing
// Zero against any in-flight Sign call using the same key.
func (p *PrivateKey) Zero() {
	p.key.Zero()
}

// zeroArray32 zeroes the provided 32-byte buffer.
func zeroArray32(b *[32]byte) {
	for i := range b {
		b[i] = 0x00
	}
}
