// Package ecdsa provides secp256k1 key material, deterministic ECDSA signing
// with public key recovery, and the fixed-size compact signature codec.
//
// Signatures are produced with RFC 6979 nonces, normalized to the lower half
// of the group order, and carry a 2-bit recovery id so the signing public key
// can be reconstructed from the digest and signature alone.  All operations
// are pure functions over value types and are safe for concurrent use.
//
// Every caller-facing failure is reported as an explicit error built from an
// ErrorKind; the package never panics on invalid input.
package ecdsa
