/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecdsasecp256k1recoverysignature2020 implements the EcdsaSecp256k1RecoverySignature2020 suite:
// ES256K-R detached JWS whose signer key is recovered from the signature.
package ecdsasecp256k1recoverysignature2020

import (
	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the proof type of the suite.
const SignatureType = "EcdsaSecp256k1RecoverySignature2020"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"EcdsaSecp256k1RecoveryMethod2020",
	"EcdsaSecp256k1VerificationKey2019",
}

// Suite implements EcdsaSecp256k1RecoverySignature2020 signature suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of EcdsaSecp256k1RecoverySignature2020.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeLinkedData,
		Digest:                  suite.DigestSHA256,
		Family:                  suite.FamilyECDSASecp256k1Recovery,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureJWS,
		JWSAlgorithm:            api.AlgES256KR,
		Context:                 embed.Secp256k1Recovery2020URL,
	}
}

// New an instance of EcdsaSecp256k1RecoverySignature2020 signature suite. The public key verifier is set by default.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	opts = append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)
	suite.InitSuiteOptions(&s.SignatureSuite, Descriptor(), opts...)

	return s
}

// NewPublicKeyVerifier creates a signature verifier that recovers the secp256k1 key from the signature
// and matches it against the method key or blockchain account.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewECDSASecp256k1RecoverySignatureVerifier())
}
