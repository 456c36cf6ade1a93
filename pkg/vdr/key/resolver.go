/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package key

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hyperledger/aries-vcproof/pkg/doc/did"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/vdr/fingerprint"
)

const uncompressedP256Size = 64

//nolint:gochecknoglobals
var methodIDPattern = regexp.MustCompile(`^z[1-9a-km-zA-HJ-NP-Z]{46,}$`)

// Read expands did:key value to a DID document. It does no I/O.
func (v *VDR) Read(_ context.Context, didKey string) (*did.Doc, error) {
	parsed, err := did.Parse(didKey)
	if err != nil {
		return nil, fmt.Errorf("pub:key vdr Read: failed to parse DID document: %w", err)
	}

	if !v.Accept(parsed.Method) {
		return nil, fmt.Errorf("vdr Read: not a did:key: %s", didKey)
	}

	if !methodIDPattern.MatchString(parsed.MethodSpecificID) {
		return nil, fmt.Errorf("vdr Read: invalid did:key method ID: %s", parsed.MethodSpecificID)
	}

	pubKeyBytes, code, err := fingerprint.PubKeyFromFingerprint(parsed.MethodSpecificID)
	if err != nil {
		return nil, fmt.Errorf("pub:key vdr Read: failed to get key fingerPrint: %w", err)
	}

	return createDIDDocFromPubKey(parsed.MethodSpecificID, code, pubKeyBytes)
}

func createDIDDocFromPubKey(kid string, code uint64, pubKeyBytes []byte) (*did.Doc, error) {
	switch code {
	case fingerprint.ED25519PubKeyMultiCodec:
		return createDoc(kid, ed25519VerificationKey2018, pubKeyBytes), nil
	case fingerprint.Secp256k1PubKeyMultiCodec:
		return createDoc(kid, ecdsaSecp256k1VerificationKey2019, pubKeyBytes), nil
	case fingerprint.P256PubKeyMultiCodec:
		if len(pubKeyBytes) == uncompressedP256Size {
			pubKeyBytes = append([]byte{0x04}, pubKeyBytes...)
		}

		return createDoc(kid, ecdsaSecp256r1VerificationKey2019, pubKeyBytes), nil
	case fingerprint.BLS12381g2PubKeyMultiCodec:
		return createDoc(kid, bls12381G2Key2020, pubKeyBytes), nil
	}

	return nil, fmt.Errorf("unsupported key multicodec code [0x%x]", code)
}

// createDoc builds the document of a did:key: one method, referenced by every relationship but keyAgreement.
func createDoc(kid, keyType string, pubKeyBytes []byte) *did.Doc {
	didKey := fmt.Sprintf("did:key:%s", kid)
	keyID := fmt.Sprintf("%s#%s", didKey, kid)

	refs := []string{keyID}

	return &did.Doc{
		Context: []string{did.ContextV1},
		ID:      didKey,
		VerificationMethod: []did.VerificationMethod{{
			ID:         keyID,
			Type:       keyType,
			Controller: didKey,
			Value:      pubKeyBytes,
		}},
		Relationships: map[string][]string{
			api.Authentication:       refs,
			api.AssertionMethod:      refs,
			api.CapabilityInvocation: refs,
			api.CapabilityDelegation: refs,
		},
	}
}
