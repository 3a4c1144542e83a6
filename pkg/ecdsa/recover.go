package ecdsa

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RecoverPubKey reconstructs the public key that produced the signature over
// the 32-byte digest, using the recovery id to select among the candidate
// curve points.  It is loosely based on the algorithm from section 4.1.6 of
// [SEC1].
//
// Given the signature (r, s) and the random point X used during signing whose
// x coordinate is r, the public key is Q = r^-1(sX - eG).  Since r is the x
// coordinate mod N of a point that was originally mod P, up to four points
// could have produced r: (r, y), (r, -y), (r+N, y), and (r+N, -y).  The
// recovery id produced at signing time identifies which of them is X: bit 0
// is the oddness of y and bit 1 is whether r overflowed the group order.
//
// The result is the key the supplied recovery id points at.  A wrong but
// well-formed recovery id yields a different, valid public key rather than
// an error, so verification by recovery must compare the result against the
// expected key.
func RecoverPubKey(digest []byte, sig *Signature, id RecoveryID) (*PublicKey, error) {
	if len(digest) != DigestLength {
		desc := fmt.Sprintf("digest must be %d bytes, got %d", DigestLength,
			len(digest))
		return nil, makeError(ErrInvalidDigestLen, desc)
	}
	if !id.valid() {
		desc := fmt.Sprintf("recovery id must be in [0, 3], got %d", id)
		return nil, makeError(ErrInvalidSignature, desc)
	}
	if sig.r.IsZero() {
		return nil, makeError(ErrInvalidSignature, "signature R is zero")
	}
	if sig.s.IsZero() {
		return nil, makeError(ErrInvalidSignature, "signature S is zero")
	}

	// Undo the mod N reduction of r when the overflow bit is set.  Adding N
	// back must stay below the field prime, since r originally came from the
	// x coordinate of a point on the curve.
	fieldR := modNScalarToField(&sig.r)
	if id&overflowBit != 0 {
		if fieldR.IsGtOrEqPrimeMinusOrder() {
			return nil, makeError(ErrInvalidSignature,
				"signature R + N exceeds the field prime")
		}
		fieldR.Add(&orderAsFieldVal)
	}

	// y = +-sqrt(x^3 + 7), sign chosen by the oddness bit.  Failure means no
	// curve point has the given x coordinate, so the signature and recovery
	// id cannot both be authentic.
	oddY := id&oddnessBit != 0
	var y secp256k1.FieldVal
	if valid := secp256k1.DecompressY(&fieldR, oddY, &y); !valid {
		return nil, makeError(ErrInvalidSignature,
			"signature is not for a valid curve point")
	}

	// X = (x, y)
	var X secp256k1.JacobianPoint
	X.X.Set(&fieldR).Normalize()
	X.Y.Set(&y).Normalize()
	X.Z.SetInt(1)

	// Q = r^-1(sX - eG)
	//   = u1G + u2X  with  u1 = -(e * r^-1) mod N  and  u2 = s * r^-1 mod N
	var e secp256k1.ModNScalar
	e.SetByteSlice(digest)
	w := new(secp256k1.ModNScalar).InverseValNonConst(&sig.r)
	u1 := new(secp256k1.ModNScalar).Mul2(&e, w).Negate()
	u2 := new(secp256k1.ModNScalar).Mul2(&sig.s, w)

	var Q, u1G, u2X secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(u1, &u1G)
	secp256k1.ScalarMultNonConst(u2, &X, &u2X)
	secp256k1.AddNonConst(&u1G, &u2X, &Q)

	// The point at infinity is not a valid public key, so either the
	// signature or the recovery id must be invalid.
	if (Q.X.IsZero() && Q.Y.IsZero()) || Q.Z.IsZero() {
		return nil, makeError(ErrInvalidSignature,
			"recovered public key is the point at infinity")
	}

	Q.ToAffine()
	return &PublicKey{pub: *secp256k1.NewPublicKey(&Q.X, &Q.Y)}, nil
}
