/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rsapkcs1signature2018 implements the RsaPkcs1Signature2018 suite: RsaSignature2018 with RSASSA-PKCS1-v1_5.
package rsapkcs1signature2018

import (
	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the proof type of the suite.
const SignatureType = "RsaPkcs1Signature2018"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"RsaVerificationKey2018",
	"JsonWebKey2020",
}

// Suite implements RsaPkcs1Signature2018 signature suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of RsaPkcs1Signature2018.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeLinkedData,
		Digest:                  suite.DigestSHA256,
		Family:                  suite.FamilyRSAPKCS1,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureJWS,
		JWSAlgorithm:            api.AlgRS256,
		Context:                 embed.RsaSignature2018URL,
	}
}

// New an instance of RsaPkcs1Signature2018 signature suite. The public key verifier is set by default.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	opts = append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)
	suite.InitSuiteOptions(&s.SignatureSuite, Descriptor(), opts...)

	return s
}

// NewPublicKeyVerifier creates a signature verifier that verifies a RSASSA-PKCS1-v1_5 signature
// taking PKCS#1 RSA public key bytes or JWK as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewRSARS256SignatureVerifier())
}
