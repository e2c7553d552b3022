// Package curve25519sign implements XEdDSA signatures over Curve25519 keys,
// in the form used by libsignal: the sign bit of the Edwards public key is
// carried in the top bit of the signature.
package curve25519sign

import (
	"crypto/sha512"
	"crypto/subtle"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// hash1 prefix from the XEdDSA paper: 0xFE followed by 31 bytes of 0xFF.
var diversifier = [32]byte{
	0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
}

// Sign signs the message with a Curve25519 private key, using 64 bytes of
// caller supplied randomness.
func Sign(privateKey *[32]byte, message []byte, random [64]byte) (*[64]byte, error) {
	a, err := new(edwards25519.Scalar).SetBytesWithClamping(privateKey[:])
	if err != nil {
		return nil, err
	}
	publicKey := new(edwards25519.Point).ScalarBaseMult(a).Bytes()

	h := sha512.New()
	h.Write(diversifier[:])
	h.Write(privateKey[:])
	h.Write(message)
	h.Write(random[:])
	r, err := new(edwards25519.Scalar).SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, err
	}
	encodedR := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	h.Reset()
	h.Write(encodedR)
	h.Write(publicKey)
	h.Write(message)
	k, err := new(edwards25519.Scalar).SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, err
	}
	s := new(edwards25519.Scalar).MultiplyAdd(k, a, r)

	signature := new([64]byte)
	copy(signature[:32], encodedR)
	copy(signature[32:], s.Bytes())
	signature[63] &= 0x7F
	signature[63] |= publicKey[31] & 0x80
	return signature, nil
}

// Verify checks an XEdDSA signature against a Curve25519 public key.
func Verify(publicKey [32]byte, message []byte, signature *[64]byte) bool {
	// s must be reduced, leaving the top three bits free; the highest one
	// holds the sign bit.
	if signature[63]&0x60 != 0 {
		return false
	}

	edPublicKey, ok := montgomeryToEdwards(publicKey, signature[63]&0x80)
	if !ok {
		return false
	}
	A, err := new(edwards25519.Point).SetBytes(edPublicKey)
	if err != nil {
		return false
	}

	var sBytes [32]byte
	copy(sBytes[:], signature[32:])
	sBytes[31] &= 0x7F
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(sBytes[:])
	if err != nil {
		return false
	}

	h := sha512.New()
	h.Write(signature[:32])
	h.Write(edPublicKey)
	h.Write(message)
	k, err := new(edwards25519.Scalar).SetUniformBytes(h.Sum(nil))
	if err != nil {
		return false
	}

	minusA := new(edwards25519.Point).Negate(A)
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, s)
	return subtle.ConstantTimeCompare(R.Bytes(), signature[:32]) == 1
}

// montgomeryToEdwards maps the u coordinate to the compressed Edwards point
// y = (u - 1) / (u + 1) with the given sign bit.
func montgomeryToEdwards(u [32]byte, signBit byte) ([]byte, bool) {
	uElem, err := new(field.Element).SetBytes(u[:])
	if err != nil {
		return nil, false
	}
	one := new(field.Element).One()
	num := new(field.Element).Subtract(uElem, one)
	den := new(field.Element).Add(uElem, one)
	if den.Equal(new(field.Element).Zero()) == 1 {
		return nil, false
	}
	y := new(field.Element).Multiply(num, new(field.Element).Invert(den))
	b := y.Bytes()
	b[31] &= 0x7F
	b[31] |= signBit
	return b, true
}
