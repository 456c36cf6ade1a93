/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jcsed25519signature2020 implements the JcsEd25519Signature2020 signature suite.
// The document, with its proof options in place of the proof, is canonicalized with the
// JSON Canonicalization Scheme (RFC 8785) instead of RDF normalization, then digested with SHA-256
// and signed with Ed25519.
package jcsed25519signature2020

import (
	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the proof type of the suite.
const SignatureType = "JcsEd25519Signature2020"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"Ed25519VerificationKey2018",
	"Ed25519VerificationKey2020",
	"JsonWebKey2020",
}

// Suite implements JcsEd25519Signature2020 signature suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of JcsEd25519Signature2020.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeCompact,
		Digest:                  suite.DigestSHA256,
		Family:                  suite.FamilyEdDSA,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureProofValue,
		Context:                 embed.JcsEd25519Signature2020URL,
	}
}

// New an instance of JcsEd25519Signature2020 signature suite. The public key verifier is set by default.
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
