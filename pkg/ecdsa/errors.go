package ecdsa

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrRandomness is returned when the system entropy source fails while
	// generating a private key.  It should be treated as fatal rather than
	// retried by the caller.
	ErrRandomness = ErrorKind("ErrRandomness")

	// ErrInvalidScalar is returned when bytes that should encode a scalar in
	// the range [1, N-1], where N is the group order, encode zero or a value
	// greater than or equal to N, or have the wrong length.
	ErrInvalidScalar = ErrorKind("ErrInvalidScalar")

	// ErrInvalidSignature is returned when a signature or recovery id is
	// malformed or when public key recovery from them is impossible.
	ErrInvalidSignature = ErrorKind("ErrInvalidSignature")

	// ErrInvalidDigestLen is returned when a digest presented for signing or
	// recovery is not exactly 32 bytes.  It indicates a bug in the caller.
	ErrInvalidDigestLen = ErrorKind("ErrInvalidDigestLen")

	// ErrInvalidPubKey is returned when bytes that should encode a public key
	// do not describe a valid point on the curve.
	ErrInvalidPubKey = ErrorKind("ErrInvalidPubKey")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to key material, signing, or recovery.
// It has full support for errors.Is and errors.As, so the caller can directly
// check against an error kind when determining the reason for an error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
