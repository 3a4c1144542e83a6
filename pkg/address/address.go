// Package address derives Ethereum-style addresses from secp256k1 public
// keys: the last 20 bytes of the Keccak-256 digest of the uncompressed
// public key without its 0x04 prefix.
package address

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/noobiescoder/elabs/pkg/ecdsa"
	"github.com/noobiescoder/elabs/pkg/keccak"
)

// Length is the byte length of an address.
const Length = 20

// Address is a 20-byte account address.
type Address [Length]byte

// FromPublicKey derives the address of the given public key.
func FromPublicKey(pub *ecdsa.PublicKey) Address {
	var a Address
	h := keccak.Sum256(pub.SerializeUncompressed()[1:])
	copy(a[:], h[12:])
	return a
}

// FromPrivateKey derives the address of the public key corresponding to the
// given private key.
func FromPrivateKey(priv *ecdsa.PrivateKey) Address {
	return FromPublicKey(priv.PubKey())
}

// ParseHex parses a 20-byte address from a hex string.  An optional 0x
// prefix is accepted; letter casing is ignored.
func ParseHex(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return a, errors.Wrap(err, "address is not valid hex")
	}
	if len(b) != Length {
		return a, errors.Errorf("address must be %d bytes, got %d", Length, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

// Hex returns the 0x-prefixed EIP-55 mixed-case checksum encoding of the
// address.  A hex letter is uppercased when the corresponding nibble of the
// Keccak-256 digest of the lowercase hex address is greater than 7.
func (a Address) Hex() string {
	unchecksummed := hex.EncodeToString(a[:])
	hash := keccak.Sum256([]byte(unchecksummed))

	result := []byte(unchecksummed)
	for i := 0; i < len(result); i++ {
		hashByte := hash[i/2]
		if i%2 == 0 {
			hashByte >>= 4
		} else {
			hashByte &= 0xf
		}
		if result[i] > '9' && hashByte > 7 {
			result[i] -= 32
		}
	}
	return "0x" + string(result)
}

// String implements fmt.Stringer using the checksummed hex form.
func (a Address) String() string {
	return a.Hex()
}
