package ecdsa

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// References:
//
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf

const (
	// DigestLength is the required byte length of digests presented for
	// signing and recovery.
	DigestLength = 32

	// CompactSigLen is the number of bytes of a compact signature: the R and
	// S components serialized as 32-byte big-endian values.  The recovery id
	// travels separately as a single byte.
	CompactSigLen = 64

	// oddnessBit is the recovery id bit indicating the Y coordinate of the
	// random point calculated when creating the signature was odd.
	oddnessBit = 1 << 0

	// overflowBit is the recovery id bit indicating the X coordinate of the
	// random point calculated when creating the signature was >= N, where N
	// is the group order.
	overflowBit = 1 << 1
)

// RecoveryID narrows public key recovery for a given digest and signature to
// one specific public key among up to four mathematically valid candidates.
// Valid values are 0 through 3.
type RecoveryID byte

// valid reports whether the recovery id is in the valid range.
func (id RecoveryID) valid() bool {
	return id <= 3
}

// Signature is an ECDSA signature: a pair of scalars (R, S), each in the
// range [1, N-1].
type Signature struct {
	r secp256k1.ModNScalar
	s secp256k1.ModNScalar
}

// NewSignature instantiates a new signature given some r and s values.
func NewSignature(r, s *secp256k1.ModNScalar) *Signature {
	return &Signature{r: *r, s: *s}
}

// SerializeCompact returns the signature in the fixed 64-byte compact form:
// bytes [0:32) are R and bytes [32:64) are S, both big-endian.
func (sig *Signature) SerializeCompact() [CompactSigLen]byte {
	var b [CompactSigLen]byte
	sig.r.PutBytesUnchecked(b[0:32])
	sig.s.PutBytesUnchecked(b[32:64])
	return b
}

// IsEqual compares this signature to the one passed, returning true when both
// have the same scalar values for R and S.
func (sig *Signature) IsEqual(other *Signature) bool {
	return sig.r.Equals(&other.r) && sig.s.Equals(&other.s)
}

// ParseCompactSignature parses a signature from its 64-byte compact form.
// The R and S halves are validated independently: each must encode a scalar
// in [1, N-1] or parsing fails with ErrInvalidScalar.
func ParseCompactSignature(b []byte) (*Signature, error) {
	if len(b) != CompactSigLen {
		desc := fmt.Sprintf("compact signature must be %d bytes, got %d",
			CompactSigLen, len(b))
		return nil, makeError(ErrInvalidScalar, desc)
	}

	var sig Signature
	if overflow := sig.r.SetByteSlice(b[0:32]); overflow {
		return nil, makeError(ErrInvalidScalar, "signature R >= group order")
	}
	if sig.r.IsZero() {
		return nil, makeError(ErrInvalidScalar, "signature R is zero")
	}
	if overflow := sig.s.SetByteSlice(b[32:64]); overflow {
		return nil, makeError(ErrInvalidScalar, "signature S >= group order")
	}
	if sig.s.IsZero() {
		return nil, makeError(ErrInvalidScalar, "signature S is zero")
	}
	return &sig, nil
}

// Verify reports whether the signature is valid for the provided digest and
// public key.  This is the direct ECDSA verification equation; it does not
// involve recovery.  The algorithm is given as algorithm 4.30 in [GECC].
func (sig *Signature) Verify(digest []byte, pub *PublicKey) bool {
	if len(digest) != DigestLength {
		return false
	}
	if sig.r.IsZero() || sig.s.IsZero() {
		return false
	}

	// w = S^-1 mod N
	// u1 = e * w mod N
	// u2 = R * w mod N
	var e secp256k1.ModNScalar
	e.SetByteSlice(digest)
	w := new(secp256k1.ModNScalar).InverseValNonConst(&sig.s)
	u1 := new(secp256k1.ModNScalar).Mul2(&e, w)
	u2 := new(secp256k1.ModNScalar).Mul2(&sig.r, w)

	// X = u1G + u2Q
	var X, Q, u1G, u2Q secp256k1.JacobianPoint
	pub.asJacobian(&Q)
	secp256k1.ScalarBaseMultNonConst(u1, &u1G)
	secp256k1.ScalarMultNonConst(u2, &Q, &u2Q)
	secp256k1.AddNonConst(&u1G, &u2Q, &X)

	if (X.X.IsZero() && X.Y.IsZero()) || X.Z.IsZero() {
		return false
	}

	// The verified equality is R == X.x mod N.  Since R came from the X
	// coordinate of a point mod P and the curve cofactor is 1, the original
	// coordinate was either R or R+N, so both are compared against X.x in
	// the field without converting X out of Jacobian coordinates.
	z := new(secp256k1.FieldVal).SquareVal(&X.Z)
	sigRModP := modNScalarToField(&sig.r)
	result := new(secp256k1.FieldVal).Mul2(&sigRModP, z).Normalize()
	if result.Equals(&X.X) {
		return true
	}
	if sigRModP.IsGtOrEqPrimeMinusOrder() {
		return false
	}
	sigRModP.Add(&orderAsFieldVal)
	result.Mul2(&sigRModP, z).Normalize()
	return result.Equals(&X.X)
}

// orderAsFieldVal is the group order interpreted as a field value.  It is
// used when undoing the mod N reduction of a signature R component.
var orderAsFieldVal = func() secp256k1.FieldVal {
	var f secp256k1.FieldVal
	f.SetByteSlice(secp256k1.Params().N.Bytes())
	return f
}()

// fieldToModNScalar converts a field value to a scalar modulo the group
// order and returns the scalar along with 1 if it was reduced (it
// overflowed) and 0 otherwise.
func fieldToModNScalar(v *secp256k1.FieldVal) (secp256k1.ModNScalar, uint32) {
	var buf [32]byte
	v.PutBytes(&buf)
	var s secp256k1.ModNScalar
	overflow := s.SetBytes(&buf)
	zeroArray32(&buf)
	return s, overflow
}

// modNScalarToField converts a scalar modulo the group order to a field
// value.
func modNScalarToField(v *secp256k1.ModNScalar) secp256k1.FieldVal {
	var buf [32]byte
	v.PutBytes(&buf)
	var fv secp256k1.FieldVal
	fv.SetBytes(&buf)
	return fv
}
