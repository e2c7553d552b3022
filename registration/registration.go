package registration

import (
	"errors"
	"fmt"

	"github.com/signal-golang/signup/axolotl"
)

// ErrMissingKeyMaterial is returned when a generated key bundle lacks a
// public key or a signature.
var ErrMissingKeyMaterial = errors.New("key generation failed: missing required keys")

// Role names the identity a set of keys belongs to.
type Role string

const (
	// ACI is the account identity.
	ACI Role = "aci"
	// PNI is the phone number identity.
	PNI Role = "pni"
)

// IdentityKeys are the keys registered for one identity role.
type IdentityKeys struct {
	IdentityKeyPair *axolotl.IdentityKeyPair
	SignedPreKey    *axolotl.SignedPreKeyRecord
	LastResortKey   *axolotl.KyberPreKeyRecord
}

// KeyBundle holds the key material for one registration attempt. It is
// generated fresh each time and dropped once the registration call returns.
type KeyBundle struct {
	RegistrationID    uint32
	PNIRegistrationID uint32
	ACI               *IdentityKeys
	PNI               *IdentityKeys
}

// Keys returns the identity keys for role.
func (b *KeyBundle) Keys(role Role) *IdentityKeys {
	if role == PNI {
		return b.PNI
	}
	return b.ACI
}

// Validate checks that every public key and signature is present.
func (b *KeyBundle) Validate() error {
	if b == nil {
		return ErrMissingKeyMaterial
	}
	for _, role := range []Role{ACI, PNI} {
		if err := b.Keys(role).validate(); err != nil {
			return fmt.Errorf("%s: %w", role, err)
		}
	}
	return nil
}

func (k *IdentityKeys) validate() error {
	switch {
	case k == nil,
		k.IdentityKeyPair == nil || k.IdentityKeyPair.PublicKey == nil,
		k.SignedPreKey == nil || k.SignedPreKey.KeyPair == nil || k.SignedPreKey.KeyPair.PublicKey == nil,
		k.LastResortKey == nil || k.LastResortKey.KeyPair == nil || k.LastResortKey.KeyPair.PublicKey == nil,
		len(k.SignedPreKey.Signature) == 0,
		len(k.LastResortKey.Signature) == 0,
		len(k.LastResortKey.KeyPair.PublicKey.Serialize()) <= 1:
		return ErrMissingKeyMaterial
	}
	return nil
}
