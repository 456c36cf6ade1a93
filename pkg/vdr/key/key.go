/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package key

import (
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/vdr/fingerprint"
)

// Verification method types of did:key documents.
const (
	ed25519VerificationKey2018        = "Ed25519VerificationKey2018"
	ecdsaSecp256k1VerificationKey2019 = "EcdsaSecp256k1VerificationKey2019"
	ecdsaSecp256r1VerificationKey2019 = "EcdsaSecp256r1VerificationKey2019"
	bls12381G2Key2020                 = "Bls12381G2Key2020"
)

// KeyType is the type of key a did:key is created from.
type KeyType string

// Supported key types.
const (
	ED25519    KeyType = "ED25519"
	Secp256k1  KeyType = "Secp256k1"
	P256       KeyType = "P256"
	BLS12381G2 KeyType = "BLS12381G2"
)

// CreateDIDKey returns the did:key DID of a public key and the id of its verification method.
// Elliptic curve keys are expected in compressed or uncompressed SEC1 form.
func CreateDIDKey(keyType KeyType, pubKey []byte) (string, string, error) {
	code, err := multicodecOf(keyType)
	if err != nil {
		return "", "", err
	}

	didKey, keyID := fingerprint.CreateDIDKeyByCode(code, pubKey)

	return didKey, keyID, nil
}

func multicodecOf(keyType KeyType) (uint64, error) {
	switch keyType {
	case ED25519:
		return fingerprint.ED25519PubKeyMultiCodec, nil
	case Secp256k1:
		return fingerprint.Secp256k1PubKeyMultiCodec, nil
	case P256:
		return fingerprint.P256PubKeyMultiCodec, nil
	case BLS12381G2:
		return fingerprint.BLS12381g2PubKeyMultiCodec, nil
	default:
		return 0, fmt.Errorf("unsupported key type: %s", keyType)
	}
}
