/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbsblssignatureproof2020 implements the BBS+ Signature Proof Suite 2020, the selective disclosure
// proof derived from a BbsBlsSignature2020 proof.
package bbsblssignatureproof2020

import (
	"sort"
	"strings"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/processor"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/bbsblssignature2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// SignatureType is the BbsBlsSignatureProof2020 type string.
const SignatureType = "BbsBlsSignatureProof2020"

// KeyTypes are the verification method types accepted by the suite.
var KeyTypes = []string{ //nolint:gochecknoglobals
	"Bls12381G2Key2020",
	"JsonWebKey2020",
}

// Suite implements the BBS+ signature proof suite.
type Suite struct {
	suite.SignatureSuite
}

// Descriptor returns the static description of BbsBlsSignatureProof2020.
func Descriptor() suite.Descriptor {
	return suite.Descriptor{
		ID:                      SignatureType,
		Mode:                    canonicalizer.ModeLinkedData,
		Digest:                  suite.DigestIdentity,
		Family:                  suite.FamilyBBSProof,
		KeyTypes:                append([]string(nil), KeyTypes...),
		SignatureRepresentation: proof.SignatureProofValue,
		Context:                 embed.BBSV1URL,
	}
}

// New an instance of BBS+ signature proof suite. The verifier is bound to the nonce of each proof.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	suite.InitSuiteOptions(&s.SignatureSuite, Descriptor(), opts...)

	return s
}

// CreateVerifyData returns the revealed messages: the statements of the proof options of the signature the
// proof was derived from, followed by the revealed document statements in signing order.
func (s *Suite) CreateVerifyData(doc map[string]interface{}, p *proof.Proof) ([]byte, error) {
	const op = "create verify data"

	if s.Canonicalizer == nil {
		return nil, api.NewError(api.CanonicalizationError, op, suite.ErrCanonicalizerNotDefined)
	}

	proofStatements, err := s.Canonicalizer.Statements(proof.ProofOptionsWithContext(doc, signatureOptions(p)))
	if err != nil {
		return nil, api.WrapIfUntyped(api.CanonicalizationError, op, err)
	}

	docStatements, err := s.Canonicalizer.Statements(proof.GetCopyWithoutProof(doc))
	if err != nil {
		return nil, api.WrapIfUntyped(api.CanonicalizationError, op, err)
	}

	for i, statement := range docStatements {
		docStatements[i] = processor.TransformFromBlankNode(statement)
	}

	sort.Strings(docStatements)

	return []byte(strings.Join(append(proofStatements, docStatements...), "\n")), nil
}

// Verify checks the derived proof against the nonce it carries.
func (s *Suite) Verify(pubKey *api.PublicKey, p *proof.Proof, verifyData []byte) error {
	return NewPublicKeyVerifier(p.Nonce).Verify(pubKey, verifyData, p.ProofValue)
}

// NewPublicKeyVerifier creates a signature verifier that verifies a BbsBlsSignatureProof2020 proof
// taking Bls12381G2Key2020 public key bytes as input.
func NewPublicKeyVerifier(nonce []byte) *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewBBSG2SignatureProofVerifier(nonce))
}

// signatureOptions returns the options of the BbsBlsSignature2020 proof p was derived from.
func signatureOptions(p *proof.Proof) map[string]interface{} {
	options := p.Options("nonce")
	options["type"] = bbsblssignature2020.SignatureType

	return options
}
