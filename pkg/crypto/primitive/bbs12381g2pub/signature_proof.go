/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"

	ml "github.com/IBM/mathlib"
)

// PoKOfSignatureProof defines BLS signature proof.
// It is the actual proof that is sent from prover to verifier.
type PoKOfSignatureProof struct {
	aPrime *ml.G1
	aBar   *ml.G1
	d      *ml.G1

	proofVC1 *ProofG1
	proofVC2 *ProofG1
}

// GetBytesForChallenge creates bytes for proof challenge.
func (sp *PoKOfSignatureProof) GetBytesForChallenge(revealedMessages map[int]*SignatureMessage,
	_ *PublicKeyWithGenerators) []byte {
	out := challengePrefix(sp.aPrime, sp.aBar, sp.d, sp.proofVC1.commitment, sp.proofVC2.commitment)

	return append(out, revealedMessagesBytes(revealedMessages)...)
}

// Verify verifies PoKOfSignatureProof.
func (sp *PoKOfSignatureProof) Verify(challenge *ml.Zr, pubKey *PublicKeyWithGenerators,
	revealedMessages map[int]*SignatureMessage, messages []*SignatureMessage) error {
	if sp.aPrime.IsInfinity() {
		return errors.New("bad signature proof: A' is infinity")
	}

	if !compareTwoPairings(sp.aPrime, pubKey.w, negG1(sp.aBar), curve.GenG2) {
		return errors.New("bad signature proof: pairing check failed")
	}

	if err := sp.verifyVC1Proof(challenge, pubKey); err != nil {
		return err
	}

	return sp.verifyVC2Proof(challenge, pubKey, revealedMessages, messages)
}

func (sp *PoKOfSignatureProof) verifyVC1Proof(challenge *ml.Zr, pubKey *PublicKeyWithGenerators) error {
	// aBar - d
	statement := negG1(sp.d)
	statement.Add(sp.aBar)

	err := sp.proofVC1.Verify([]*ml.G1{sp.aPrime, pubKey.h0}, statement, challenge)
	if err != nil {
		return errors.New("bad signature proof: contexts are not equal for VC1")
	}

	return nil
}

func (sp *PoKOfSignatureProof) verifyVC2Proof(challenge *ml.Zr, pubKey *PublicKeyWithGenerators,
	revealedMessages map[int]*SignatureMessage, messages []*SignatureMessage) error {
	revealedMessagesCount := len(revealedMessages)

	basesVC2 := make([]*ml.G1, 0, 2+pubKey.messagesCount-revealedMessagesCount) //nolint:gomnd
	basesVC2 = append(basesVC2, sp.d, pubKey.h0)

	basesDisclosed := make([]*ml.G1, 0, 1+revealedMessagesCount)
	exponents := make([]*ml.Zr, 0, 1+revealedMessagesCount)

	basesDisclosed = append(basesDisclosed, curve.GenG1)
	exponents = append(exponents, curve.NewZrFromInt(1))

	revealedMessagesInd := 0

	for i := range pubKey.h {
		if _, ok := revealedMessages[i]; ok {
			basesDisclosed = append(basesDisclosed, pubKey.h[i])
			exponents = append(exponents, messages[revealedMessagesInd].FR)
			revealedMessagesInd++
		} else {
			basesVC2 = append(basesVC2, pubKey.h[i])
		}
	}

	// g1 + sum(h_i * m_i) over revealed i
	statement := sumOfG1Products(basesDisclosed, exponents)

	err := sp.proofVC2.Verify(basesVC2, statement, challenge)
	if err != nil {
		return errors.New("bad signature proof: contexts are not equal for VC2")
	}

	return nil
}

// ToBytes converts PoKOfSignatureProof to bytes.
func (sp *PoKOfSignatureProof) ToBytes() []byte {
	bytes := make([]byte, 0)

	bytes = append(bytes, sp.aPrime.Compressed()...)
	bytes = append(bytes, sp.aBar.Compressed()...)
	bytes = append(bytes, sp.d.Compressed()...)

	bytes = append(bytes, sp.proofVC1.ToBytes()...)
	bytes = append(bytes, sp.proofVC2.ToBytes()...)

	return bytes
}

// ParseSignatureProof parses a signature proof.
func ParseSignatureProof(sigProofBytes []byte) (*PoKOfSignatureProof, error) {
	if len(sigProofBytes) < g1CompressedSize*3 {
		return nil, errors.New("invalid size of signature proof")
	}

	g1Points := make([]*ml.G1, 3) //nolint:gomnd
	offset := 0

	for i := range g1Points {
		g1Point, err := curve.NewG1FromCompressed(sigProofBytes[offset : offset+g1CompressedSize])
		if err != nil {
			return nil, fmt.Errorf("parse G1 point: %w", err)
		}

		g1Points[i] = g1Point
		offset += g1CompressedSize
	}

	proof1, read, err := ParseProofG1(sigProofBytes[offset:])
	if err != nil {
		return nil, fmt.Errorf("parse G1 proof: %w", err)
	}

	offset += read

	proof2, read, err := ParseProofG1(sigProofBytes[offset:])
	if err != nil {
		return nil, fmt.Errorf("parse G1 proof: %w", err)
	}

	if offset+read != len(sigProofBytes) {
		return nil, errors.New("invalid size of signature proof: trailing bytes")
	}

	return &PoKOfSignatureProof{
		aPrime:   g1Points[0],
		aBar:     g1Points[1],
		d:        g1Points[2],
		proofVC1: proof1,
		proofVC2: proof2,
	}, nil
}
