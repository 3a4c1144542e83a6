package ecdsa

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PubKeyBytesLenUncompressed is the number of bytes of the uncompressed
	// public key serialization: 0x04 followed by the 32-byte X and Y affine
	// coordinates.
	PubKeyBytesLenUncompressed = 65

	// PubKeyBytesLenCompressed is the number of bytes of the compressed
	// public key serialization: 0x02 or 0x03, by Y oddness, followed by the
	// 32-byte X coordinate.
	PubKeyBytesLenCompressed = 33
)

// PublicKey is a valid point on the secp256k1 curve.  Instances obtained from
// this package are guaranteed to be on the curve and not the point at
// infinity.
type PublicKey struct {
	pub secp256k1.PublicKey
}

// ParsePubKey parses a serialized public key and verifies that it describes a
// valid curve point.  The uncompressed (65-byte) and compressed (33-byte)
// forms are accepted.  Invalid encodings and off-curve points fail with
// ErrInvalidPubKey.
func ParsePubKey(b []byte) (*PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		desc := fmt.Sprintf("invalid public key: %v", err)
		return nil, makeError(ErrInvalidPubKey, desc)
	}
	return &PublicKey{pub: *pub}, nil
}

// PublicKeyFromHex parses a public key from a hex string.  An optional 0x
// prefix is accepted.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, makeError(ErrInvalidPubKey, "public key is not valid hex")
	}
	return ParsePubKey(b)
}

// SerializeUncompressed returns the 65-byte uncompressed form 0x04 || X || Y.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.pub.SerializeUncompressed()
}

// SerializeCompressed returns the 33-byte compressed form.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.pub.SerializeCompressed()
}

// IsEqual reports whether the passed public key has the same affine
// coordinates.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	return p.pub.IsEqual(&other.pub)
}

// String returns the uncompressed serialization as a hex string.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.SerializeUncompressed())
}

// asJacobian converts the public key to a Jacobian point for use with the
// curve group operations.
func (p *PublicKey) asJacobian(result *secp256k1.JacobianPoint) {
	p.pub.AsJacobian(result)
}
