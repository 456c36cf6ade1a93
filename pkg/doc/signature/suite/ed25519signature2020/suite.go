/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ed25519signature2020 implements the Ed25519Signature2020 signature suite.
// The signature is stored in proofValue as a multibase base58btc string.
package ed25519signature2020

import (
	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the proof type of the suite.
const SignatureType = "Ed25519Signature2020"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"Ed25519VerificationKey2020",
	"Ed25519VerificationKey2018",
	"JsonWebKey2020",
}

// Suite implements Ed25519Signature2020 signature suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of Ed25519Signature2020.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeLinkedData,
		Digest:                  suite.DigestSHA256,
		Family:                  suite.FamilyEdDSA,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureProofValue,
		Context:                 embed.Ed25519Signature2020URL,
	}
}

// New an instance of Ed25519Signature2020 signature suite. The public key verifier is set by default.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	opts = append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)
	suite.InitSuiteOptions(&s.SignatureSuite, Descriptor(), opts...)

	return s
}

// NewPublicKeyVerifier creates a signature verifier that verifies a Ed25519 signature
// taking Ed25519 public key bytes as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewEd25519SignatureVerifier())
}
