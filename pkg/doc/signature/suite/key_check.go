/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/hyperledger/aries-vcproof/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// CheckKey cross-checks a resolved verification method against the suite: the method type must be accepted,
// a JWK must describe a key of the suite family and the key material must parse for the family.
// Failures are reported as api.SuiteKeyMismatch.
func CheckKey(d *Descriptor, vm *api.VerificationMethod) error {
	const op = "check key"

	if !d.AcceptsKeyType(vm.Type) {
		return api.Errorf(api.SuiteKeyMismatch, op, "verification method type %s is not accepted by %s", vm.Type, d.ID)
	}

	if vm.JWK != nil && !d.Family.MatchesJWK(vm.JWK) {
		return api.Errorf(api.SuiteKeyMismatch, op, "JWK kty=%s crv=%s does not match %s family %s",
			vm.JWK.Kty, vm.JWK.Crv, d.ID, d.Family)
	}

	if err := checkKeyMaterial(d.Family, vm); err != nil {
		return api.NewError(api.SuiteKeyMismatch, op, err)
	}

	return nil
}

//nolint:gocyclo
func checkKeyMaterial(family Family, vm *api.VerificationMethod) error {
	if len(vm.Value) == 0 && vm.JWK == nil {
		if family == FamilyECDSASecp256k1Recovery && vm.BlockchainAccountID != "" {
			return nil
		}

		return errors.New("verification method has no key material")
	}

	if len(vm.Value) == 0 {
		return checkJWKMaterial(family, vm.JWK.Key)
	}

	value := vm.Value

	switch family {
	case FamilyEdDSA:
		if len(value) != ed25519.PublicKeySize {
			return fmt.Errorf("ed25519 key must be %d bytes, got %d", ed25519.PublicKeySize, len(value))
		}
	case FamilyECDSASecp256k1, FamilyECDSASecp256k1Recovery:
		if _, err := btcec.ParsePubKey(value); err != nil {
			return fmt.Errorf("invalid secp256k1 key: %w", err)
		}
	case FamilyECDSAP256:
		x, _ := elliptic.Unmarshal(elliptic.P256(), value) //nolint:staticcheck
		if x == nil {
			x, _ = elliptic.UnmarshalCompressed(elliptic.P256(), value)
		}

		if x == nil {
			return errors.New("invalid P-256 key")
		}
	case FamilyRSAPSS, FamilyRSAPKCS1:
		if _, err := x509.ParsePKCS1PublicKey(value); err != nil {
			return fmt.Errorf("invalid RSA key: %w", err)
		}
	case FamilyBBS, FamilyBBSProof:
		if _, err := bbs12381g2pub.UnmarshalPublicKey(value); err != nil {
			return fmt.Errorf("invalid BLS12-381 G2 key: %w", err)
		}
	default:
		return fmt.Errorf("unknown family %s", family)
	}

	return nil
}

func checkJWKMaterial(family Family, key interface{}) error {
	var ok bool

	switch family {
	case FamilyEdDSA:
		_, ok = key.(ed25519.PublicKey)
	case FamilyECDSASecp256k1, FamilyECDSASecp256k1Recovery, FamilyECDSAP256:
		_, ok = key.(*ecdsa.PublicKey)
	case FamilyRSAPSS, FamilyRSAPKCS1:
		_, ok = key.(*rsa.PublicKey)
	case FamilyBBS, FamilyBBSProof:
		var raw []byte

		raw, ok = key.([]byte)
		if ok {
			if _, err := bbs12381g2pub.UnmarshalPublicKey(raw); err != nil {
				return fmt.Errorf("invalid BLS12-381 G2 key: %w", err)
			}
		}
	}

	if !ok {
		return fmt.Errorf("JWK key %T is not a %s key", key, family)
	}

	return nil
}
