/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbsblssignature2020 implements the BBS+ Signature Suite 2020.
// Each canonical N-Quad statement of the proof options and of the document is a signed message.
package bbsblssignature2020

import (
	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the BbsBlsSignature2020 type string.
const SignatureType = "BbsBlsSignature2020"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"Bls12381G2Key2020",
	"JsonWebKey2020",
}

// Suite implements the BBS+ signature suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of BbsBlsSignature2020.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeLinkedData,
		Digest:                  suite.DigestIdentity,
		Family:                  suite.FamilyBBS,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureProofValue,
		Context:                 embed.BBSV1URL,
	}
}

// New an instance of BBS+ signature suite. The public key verifier is set by default.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	opts = append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)
	suite.InitSuiteOptions(&s.SignatureSuite, Descriptor(), opts...)

	return s
}

// CreateVerifyData returns the canonical statements of the proof options, without nonce, followed by the
// canonical statements of the document.
func (s *Suite) CreateVerifyData(doc map[string]interface{}, p *proof.Proof) ([]byte, error) {
	data, err := proof.CreateVerifyData(&s.SignatureSuite, doc, p, "nonce")
	if err != nil {
		return nil, api.WrapIfUntyped(api.CanonicalizationError, "create verify data", err)
	}

	return data, nil
}

// NewPublicKeyVerifier creates a signature verifier that verifies a BbsBlsSignature2020 signature
// taking Bls12381G2Key2020 public key bytes as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewBBSG2SignatureVerifier())
}
