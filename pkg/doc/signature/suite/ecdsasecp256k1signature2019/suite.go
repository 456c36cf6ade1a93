/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecdsasecp256k1signature2019 implements the EcdsaSecp256k1Signature2019 signature suite
// for the Linked Data Signatures specification (https://w3c-dvcg.github.io/lds-ecdsa-secp256k1-2019/).
// It uses the RDF Dataset Normalization Algorithm to transform the input document into its canonical form.
// It uses SHA-256 [RFC6234] as the message digest algorithm.
package ecdsasecp256k1signature2019

import (
	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the proof type of the suite.
const SignatureType = "EcdsaSecp256k1Signature2019"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"EcdsaSecp256k1VerificationKey2019",
	"JsonWebKey2020",
}

// Suite implements EcdsaSecp256k1Signature2019 signature suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of EcdsaSecp256k1Signature2019.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeLinkedData,
		Digest:                  suite.DigestSHA256,
		Family:                  suite.FamilyECDSASecp256k1,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureJWS,
		JWSAlgorithm:            api.AlgES256K,
		Context:                 embed.Secp256k1Signature2019URL,
	}
}

// New an instance of EcdsaSecp256k1Signature2019 signature suite. The public key verifier is set by default.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	opts = append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)
	suite.InitSuiteOptions(&s.SignatureSuite, Descriptor(), opts...)

	return s
}

// NewPublicKeyVerifier creates a signature verifier that verifies a ECDSA secp256k1 signature
// taking secp256k1 public key bytes or JWK as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewECDSASecp256k1SignatureVerifier())
}
