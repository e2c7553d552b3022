// Copyright (c) 2014 Canonical Ltd.
// Licensed under the GPLv3, see the COPYING file for details.

package signup

import (
	"fmt"

	"github.com/signal-golang/signup/axolotl"
	"github.com/signal-golang/signup/crypto"
	"github.com/signal-golang/signup/registration"
	log "github.com/sirupsen/logrus"
)

const (
	maxRegistrationID = 16380
	maxPreKeyID       = 0xffffff
)

// KeyBundle is the key material generated for one registration attempt.
type KeyBundle = registration.KeyBundle

// Generate a registration id in [1, 16380]
func generateRegistrationID() uint32 {
	return crypto.RandRange(1, maxRegistrationID)
}

// Generate a 24 bit pre-key id, never zero
func generatePreKeyID() uint32 {
	return crypto.RandRange(1, maxPreKeyID)
}

func generateIdentityKeys(role registration.Role) (*registration.IdentityKeys, error) {
	identity, err := axolotl.GenerateIdentityKeyPair()
	if err != nil {
		return nil, fmt.Errorf("%s identity key: %w", role, err)
	}
	signedPreKey, err := axolotl.GenerateSignedPreKey(identity, generatePreKeyID())
	if err != nil {
		return nil, fmt.Errorf("%s signed pre-key: %w", role, err)
	}
	lastResortKey, err := axolotl.GenerateKyberPreKey(identity, generatePreKeyID())
	if err != nil {
		return nil, fmt.Errorf("%s last resort pre-key: %w", role, err)
	}
	log.Debugf("[signup] generated %s keys, signed pre-key %d, last resort pre-key %d", role, signedPreKey.ID, lastResortKey.ID)
	return &registration.IdentityKeys{
		IdentityKeyPair: identity,
		SignedPreKey:    signedPreKey,
		LastResortKey:   lastResortKey,
	}, nil
}

// GenerateKeyBundle creates fresh ACI and PNI identity keys, their signed and
// last resort pre-keys and the two registration ids.
func GenerateKeyBundle() (*KeyBundle, error) {
	log.Debugln("[signup] generate keys")
	b := &KeyBundle{
		RegistrationID:    generateRegistrationID(),
		PNIRegistrationID: generateRegistrationID(),
	}
	var err error
	if b.ACI, err = generateIdentityKeys(registration.ACI); err != nil {
		return nil, err
	}
	if b.PNI, err = generateIdentityKeys(registration.PNI); err != nil {
		return nil, err
	}
	if err := VerifyKeyBundle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// VerifyKeyBundle checks that all key material is present and that both
// pre-key signatures of each identity verify against its identity key.
func VerifyKeyBundle(b *KeyBundle) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, role := range []registration.Role{registration.ACI, registration.PNI} {
		k := b.Keys(role)
		identity := &k.IdentityKeyPair.PublicKey.ECPublicKey
		if !axolotl.VerifySignature(identity, k.SignedPreKey.KeyPair.PublicKey.Serialize(), k.SignedPreKey.Signature) {
			return fmt.Errorf("%s signed pre-key %d: %w", role, k.SignedPreKey.ID, axolotl.ErrInvalidSignature)
		}
		if !axolotl.VerifySignature(identity, k.LastResortKey.KeyPair.PublicKey.Serialize(), k.LastResortKey.Signature) {
			return fmt.Errorf("%s last resort pre-key %d: %w", role, k.LastResortKey.ID, axolotl.ErrInvalidSignature)
		}
	}
	return nil
}
