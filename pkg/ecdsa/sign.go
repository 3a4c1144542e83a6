package ecdsa

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Sign produces an ECDSA signature over the 32-byte digest with the given
// private key, along with the recovery id that identifies the public key the
// signature was made with.
//
// Nonces are generated deterministically per RFC 6979, so signing the same
// digest with the same key always yields the same signature.  The S component
// is normalized to the lower half of the group order, so every (digest, key)
// pair has exactly one canonical signature and systems that reject malleable
// signatures accept the output.
//
// The algorithm for producing an ECDSA signature is given as algorithm 4.29
// in [GECC]:
//
//  1. Select nonce k in [1, N-1]
//  2. Compute kG
//  3. r = kG.x mod N; repeat from step 1 if r = 0
//  4. e = H(m)
//  5. s = k^-1(e + dr) mod N; repeat from step 1 if s = 0
//  6. Return (r, s)
//
// Step 1 draws k from RFC 6979 parameterized by the key, digest, and an
// iteration count covering the repeat cases.  The recovery id records the
// oddness of kG.y in bit 0 and whether r overflowed the group order in bit 1.
func Sign(digest []byte, priv *PrivateKey) (*Signature, RecoveryID, error) {
	if len(digest) != DigestLength {
		desc := fmt.Sprintf("digest must be %d bytes, got %d", DigestLength,
			len(digest))
		return nil, 0, makeError(ErrInvalidDigestLen, desc)
	}

	privBytes := priv.Serialize()
	defer zeroArray32(&privBytes)

	// Step 4.
	//
	// e = H(m)
	//
	// The digest is interpreted as a big-endian scalar mod N.
	var e secp256k1.ModNScalar
	e.SetByteSlice(digest)

	for iteration := uint32(0); ; iteration++ {
		// Step 1.
		//
		// Deterministic nonce in [1, N-1] parameterized by the private key,
		// the digest, and the iteration count.
		k := secp256k1.NonceRFC6979(privBytes[:], digest, nil, nil, iteration)

		// Step 2.
		//
		// kG
		var kG secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		// Step 3.
		//
		// r = kG.x mod N.  Whether the reduction overflowed feeds bit 1 of
		// the recovery id; the oddness of kG.y feeds bit 0.
		r, overflow := fieldToModNScalar(&kG.X)
		if r.IsZero() {
			k.Zero()
			continue
		}
		recoveryID := RecoveryID(overflow << 1)
		if kG.Y.IsOdd() {
			recoveryID |= oddnessBit
		}

		// Step 5.
		//
		// s = k^-1(e + dr) mod N
		kInv := new(secp256k1.ModNScalar).InverseValNonConst(k)
		s := new(secp256k1.ModNScalar).Mul2(&r, &priv.key).Add(&e)
		s.Mul(kInv)
		k.Zero()
		if s.IsZero() {
			continue
		}

		// Both s and its negation satisfy the verification equation, so force
		// the lower half of the group order.  Negating s corresponds to
		// negating the Y coordinate of kG, so the oddness bit flips with it.
		if s.IsOverHalfOrder() {
			s.Negate()
			recoveryID ^= oddnessBit
		}

		// Step 6.
		//
		// Return (r, s)
		return &Signature{r: r, s: *s}, recoveryID, nil
	}
}
