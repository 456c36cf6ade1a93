/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsblssignatureproof2020

import (
	"errors"
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/processor"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/bbsblssignature2020"
)

// SelectiveDisclosure derives a BbsBlsSignatureProof2020 proof from the BbsBlsSignature2020 proof bbsProof of doc.
// The returned document is doc framed by revealDoc, without proof; the derived proof reveals exactly its statements.
func (s *Suite) SelectiveDisclosure(doc, revealDoc map[string]interface{}, bbsProof *proof.Proof,
	pubKey, nonce []byte) (map[string]interface{}, *proof.Proof, error) {
	if s.Canonicalizer == nil {
		return nil, nil, errors.New("canonicalizer is not defined")
	}

	if bbsProof.Type != bbsblssignature2020.SignatureType {
		return nil, nil, fmt.Errorf("cannot derive a proof from %s", bbsProof.Type)
	}

	verData, err := s.buildVerificationData(doc, revealDoc, bbsProof)
	if err != nil {
		return nil, nil, err
	}

	proofValue, err := bbs12381g2pub.New().DeriveProof(verData.blsMessages, bbsProof.ProofValue,
		nonce, pubKey, verData.revealIndexes)
	if err != nil {
		return nil, nil, fmt.Errorf("derive BBS+ proof: %w", err)
	}

	derived := *bbsProof
	derived.ID = ""
	derived.Type = SignatureType
	derived.Nonce = nonce
	derived.ProofValue = proofValue
	derived.JWS = ""
	derived.SignatureRepresentation = proof.SignatureProofValue

	return verData.revealDocumentResult, &derived, nil
}

type verificationData struct {
	blsMessages          [][]byte
	revealIndexes        []int
	revealDocumentResult map[string]interface{}
}

func (s *Suite) buildVerificationData(doc, revealDoc map[string]interface{},
	bbsProof *proof.Proof) (*verificationData, error) {
	docWithoutProof := proof.GetCopyWithoutProof(doc)

	documentStatements, err := s.Canonicalizer.Statements(docWithoutProof)
	if err != nil {
		return nil, fmt.Errorf("canonicalize document: %w", err)
	}

	proofStatements, err := s.Canonicalizer.Statements(
		proof.ProofOptionsWithContext(doc, bbsProof.Options("nonce")))
	if err != nil {
		return nil, fmt.Errorf("canonicalize proof options: %w", err)
	}

	statementIndexes := make(map[string]int, len(documentStatements))
	for i, statement := range documentStatements {
		statementIndexes[processor.TransformBlankNode(statement)] = i
	}

	frameOpts := append(s.Canonicalizer.ProcessorOpts(), processor.WithFrameBlankNodes())

	revealDocumentResult, err := processor.Default().Frame(docWithoutProof, revealDoc, frameOpts...)
	if err != nil {
		return nil, fmt.Errorf("frame document: %w", err)
	}

	revealDocumentStatements, err := s.Canonicalizer.Statements(revealDocumentResult)
	if err != nil {
		return nil, fmt.Errorf("canonicalize revealed document: %w", err)
	}

	numberOfProofStatements := len(proofStatements)
	revealIndexes := make([]int, numberOfProofStatements+len(revealDocumentStatements))

	for i := 0; i < numberOfProofStatements; i++ {
		revealIndexes[i] = i
	}

	for i, statement := range revealDocumentStatements {
		statementInd, ok := statementIndexes[statement]
		if !ok {
			return nil, fmt.Errorf("revealed statement is not signed: %s", statement)
		}

		revealIndexes[i+numberOfProofStatements] = numberOfProofStatements + statementInd
	}

	allInputStatements := append(proofStatements, documentStatements...)
	blsMessages := make([][]byte, len(allInputStatements))

	for i := range allInputStatements {
		blsMessages[i] = []byte(allInputStatements[i])
	}

	return &verificationData{
		blsMessages:          blsMessages,
		revealIndexes:        revealIndexes,
		revealDocumentResult: revealDocumentResult,
	}, nil
}
