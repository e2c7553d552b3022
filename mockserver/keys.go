package mockserver

import (
	"fmt"

	"github.com/signal-golang/signup/axolotl"
	"github.com/signal-golang/signup/helpers"
	"github.com/signal-golang/signup/registration"
)

// verifyRequestKeys decodes the identity keys of a registration request and
// checks every pre-key signature against them.
func verifyRequestKeys(req *registration.Request) error {
	for _, id := range []struct {
		name       string
		identity   string
		signed     registration.PreKeyEntity
		lastResort registration.PreKeyEntity
	}{
		{"aci", req.AciIdentityKey, req.AciSignedPreKey, req.AciPqLastResortPreKey},
		{"pni", req.PniIdentityKey, req.PniSignedPreKey, req.PniPqLastResortPreKey},
	} {
		b, err := helpers.Base64DecodeNonPadded(id.identity)
		if err != nil {
			return fmt.Errorf("%s identity key: %w", id.name, err)
		}
		identity, err := axolotl.DecodeECPublicKey(b)
		if err != nil {
			return fmt.Errorf("%s identity key: %w", id.name, err)
		}

		if err := verifyPreKey(identity, id.signed, func(b []byte) error {
			_, err := axolotl.DecodeECPublicKey(b)
			return err
		}); err != nil {
			return fmt.Errorf("%s signed pre-key: %w", id.name, err)
		}
		if err := verifyPreKey(identity, id.lastResort, func(b []byte) error {
			_, err := axolotl.DecodeKyberPublicKey(b)
			return err
		}); err != nil {
			return fmt.Errorf("%s last resort pre-key: %w", id.name, err)
		}
	}
	return nil
}

func verifyPreKey(identity *axolotl.ECPublicKey, e registration.PreKeyEntity, parse func([]byte) error) error {
	if e.ID == 0 {
		return fmt.Errorf("key id 0: %w", axolotl.ErrBadPublicKey)
	}
	pub, err := helpers.Base64DecodeNonPadded(e.PublicKey)
	if err != nil {
		return err
	}
	if err := parse(pub); err != nil {
		return err
	}
	sig, err := helpers.Base64DecodeNonPadded(e.Signature)
	if err != nil {
		return err
	}
	if !axolotl.VerifySignature(identity, pub, sig) {
		return axolotl.ErrInvalidSignature
	}
	return nil
}
