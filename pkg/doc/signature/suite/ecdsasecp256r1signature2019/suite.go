/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecdsasecp256r1signature2019 implements the EcdsaSecp256r1Signature2019 signature suite (ES256 detached JWS).
package ecdsasecp256r1signature2019

import (
	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the proof type of the suite.
const SignatureType = "EcdsaSecp256r1Signature2019"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"EcdsaSecp256r1VerificationKey2019",
	"JsonWebKey2020",
}

// Suite implements EcdsaSecp256r1Signature2019 signature suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of EcdsaSecp256r1Signature2019.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeLinkedData,
		Digest:                  suite.DigestSHA256,
		Family:                  suite.FamilyECDSAP256,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureJWS,
		JWSAlgorithm:            api.AlgES256,
		Context:                 embed.Secp256r1Signature2019URL,
	}
}

// New an instance of EcdsaSecp256r1Signature2019 signature suite. The public key verifier is set by default.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	opts = append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)
	suite.InitSuiteOptions(&s.SignatureSuite, Descriptor(), opts...)

	return s
}

// NewPublicKeyVerifier creates a signature verifier that verifies a ECDSA P-256 signature
// taking P-256 public key bytes or JWK as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewECDSAES256SignatureVerifier())
}
