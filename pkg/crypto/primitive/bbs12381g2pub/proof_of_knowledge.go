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

// PoKOfSignature is Proof of Knowledge of a Signature that is used by the prover to construct PoKOfSignatureProof.
type PoKOfSignature struct {
	aPrime *ml.G1
	aBar   *ml.G1
	d      *ml.G1

	pokVC1   *ProverCommittedG1
	secrets1 []*ml.Zr

	pokVC2   *ProverCommittedG1
	secrets2 []*ml.Zr

	revealedMessages map[int]*SignatureMessage
}

// NewPoKOfSignature creates a new PoKOfSignature.
func NewPoKOfSignature(signature *Signature, messages []*SignatureMessage, revealedIndexes []int,
	pubKey *PublicKeyWithGenerators) (*PoKOfSignature, error) {
	if len(messages) != pubKey.messagesCount {
		return nil, fmt.Errorf("expected %d messages, got %d", pubKey.messagesCount, len(messages))
	}

	err := signature.Verify(messages, pubKey)
	if err != nil {
		return nil, fmt.Errorf("verify input signature: %w", err)
	}

	r1, r2 := curve.NewRandomZr(randReader), curve.NewRandomZr(randReader)
	b := computeB(signature.S, messages, pubKey)

	// A' = A*r1
	aPrime := signature.A.Mul(r1)

	// aBar = B*r1 - A'*e
	aBar := b.Mul(r1)
	aBar.Add(aPrime.Mul(negFr(signature.E)))

	// d = B*r1 - h0*r2
	d := b.Mul(r1)
	d.Add(pubKey.h0.Mul(negFr(r2)))

	r3 := r1.Copy()
	r3.InvModP(curve.GroupOrder)

	// s' = s - r2*r3
	sPrime := signature.S.Minus(r2.Mul(r3))
	sPrime.Mod(curve.GroupOrder)

	// A' * (-e) + h0 * r2 == aBar - d
	committing1 := NewProverCommittingG1()
	committing1.Commit(aPrime)
	committing1.Commit(pubKey.h0)

	pokVC1 := committing1.Finish()
	secrets1 := []*ml.Zr{negFr(signature.E), r2}

	revealedMessages := make(map[int]*SignatureMessage, len(revealedIndexes))
	for _, ind := range revealedIndexes {
		revealedMessages[ind] = messages[ind]
	}

	// d * r3 + h0 * (-s') + sum(h_j * (-m_j)) over hidden j == g1 + sum(h_i * m_i) over revealed i
	committing2 := NewProverCommittingG1()
	committing2.Commit(d)
	committing2.Commit(pubKey.h0)

	secrets2 := make([]*ml.Zr, 0, 2+len(messages)-len(revealedIndexes)) //nolint:gomnd
	secrets2 = append(secrets2, r3, negFr(sPrime))

	for i := range messages {
		if _, revealed := revealedMessages[i]; revealed {
			continue
		}

		committing2.Commit(pubKey.h[i])

		secrets2 = append(secrets2, negFr(messages[i].FR))
	}

	pokVC2 := committing2.Finish()

	return &PoKOfSignature{
		aPrime:           aPrime,
		aBar:             aBar,
		d:                d,
		pokVC1:           pokVC1,
		secrets1:         secrets1,
		pokVC2:           pokVC2,
		secrets2:         secrets2,
		revealedMessages: revealedMessages,
	}, nil
}

// ToBytes converts PoKOfSignature to bytes.
func (pos *PoKOfSignature) ToBytes() []byte {
	return challengePrefix(pos.aPrime, pos.aBar, pos.d, pos.pokVC1.commitment, pos.pokVC2.commitment)
}

// GenerateProof generates PoKOfSignatureProof proof from PoKOfSignature signature.
func (pos *PoKOfSignature) GenerateProof(challengeHash *ml.Zr) *PoKOfSignatureProof {
	return &PoKOfSignatureProof{
		aPrime:   pos.aPrime,
		aBar:     pos.aBar,
		d:        pos.d,
		proofVC1: pos.pokVC1.GenerateProof(challengeHash, pos.secrets1),
		proofVC2: pos.pokVC2.GenerateProof(challengeHash, pos.secrets2),
	}
}

func challengePrefix(points ...*ml.G1) []byte {
	out := make([]byte, 0, len(points)*curve.G1ByteSize)

	for _, p := range points {
		out = append(out, p.Bytes()...)
	}

	return out
}

// ProverCommittingG1 is a proof of knowledge of messages in a vector commitment.
type ProverCommittingG1 struct {
	bases           []*ml.G1
	blindingFactors []*ml.Zr
}

// NewProverCommittingG1 creates a new ProverCommittingG1.
func NewProverCommittingG1() *ProverCommittingG1 {
	return &ProverCommittingG1{
		bases:           make([]*ml.G1, 0),
		blindingFactors: make([]*ml.Zr, 0),
	}
}

// Commit append a base point and randomly generated blinding factor.
func (pc *ProverCommittingG1) Commit(base *ml.G1) {
	pc.bases = append(pc.bases, base)
	pc.blindingFactors = append(pc.blindingFactors, curve.NewRandomZr(randReader))
}

// Finish helps to generate ProverCommittedG1 after commitment of all base points.
func (pc *ProverCommittingG1) Finish() *ProverCommittedG1 {
	commitment := sumOfG1Products(pc.bases, pc.blindingFactors)

	return &ProverCommittedG1{
		bases:           pc.bases,
		blindingFactors: pc.blindingFactors,
		commitment:      commitment,
	}
}

// ProverCommittedG1 helps to generate a ProofG1.
type ProverCommittedG1 struct {
	bases           []*ml.G1
	blindingFactors []*ml.Zr
	commitment      *ml.G1
}

// GenerateProof generates proof ProofG1 for all secrets.
func (p *ProverCommittedG1) GenerateProof(challenge *ml.Zr, secrets []*ml.Zr) *ProofG1 {
	responses := make([]*ml.Zr, len(p.bases))

	for i := range p.blindingFactors {
		// response = blinding + c * secret
		responses[i] = mulAdd(p.blindingFactors[i], challenge, secrets[i])
	}

	return &ProofG1{
		commitment: p.commitment,
		responses:  responses,
	}
}

// ProofG1 is a proof of knowledge of a signature and hidden messages.
type ProofG1 struct {
	commitment *ml.G1
	responses  []*ml.Zr
}

// NewProofG1 creates a new ProofG1.
func NewProofG1(commitment *ml.G1, responses []*ml.Zr) *ProofG1 {
	return &ProofG1{
		commitment: commitment,
		responses:  responses,
	}
}

// Verify checks sum(bases_i * responses_i) == commitment + statement * challenge.
func (pg1 *ProofG1) Verify(bases []*ml.G1, statement *ml.G1, challenge *ml.Zr) error {
	if len(bases) != len(pg1.responses) {
		return fmt.Errorf("expected %d responses, got %d", len(bases), len(pg1.responses))
	}

	lhs := sumOfG1Products(bases, pg1.responses)

	rhs := statement.Mul(challenge)
	rhs.Add(pg1.commitment)

	if !lhs.Equals(rhs) {
		return errors.New("contexts are not equal")
	}

	return nil
}

// ToBytes converts ProofG1 to bytes.
func (pg1 *ProofG1) ToBytes() []byte {
	bytes := make([]byte, 0, g1CompressedSize+4+len(pg1.responses)*frCompressedSize) //nolint:gomnd

	bytes = append(bytes, pg1.commitment.Compressed()...)
	bytes = append(bytes, uint32ToBytes(uint32(len(pg1.responses)))...)

	for _, r := range pg1.responses {
		bytes = append(bytes, frToBytes(r)...)
	}

	return bytes
}

// ParseProofG1 parses a ProofG1 and returns the number of bytes it occupied.
func ParseProofG1(bytes []byte) (*ProofG1, int, error) {
	const lenSize = 4

	if len(bytes) < g1CompressedSize+lenSize {
		return nil, 0, errors.New("invalid size of G1 signature proof")
	}

	commitment, err := curve.NewG1FromCompressed(bytes[:g1CompressedSize])
	if err != nil {
		return nil, 0, fmt.Errorf("parse G1 point: %w", err)
	}

	offset := g1CompressedSize
	length := int(bytesToUint32(bytes[offset : offset+lenSize]))
	offset += lenSize

	if length < 0 || len(bytes[offset:]) < length*frCompressedSize {
		return nil, 0, errors.New("invalid size of G1 signature proof responses")
	}

	responses := make([]*ml.Zr, length)
	for i := 0; i < length; i++ {
		responses[i] = parseFr(bytes[offset : offset+frCompressedSize])
		offset += frCompressedSize
	}

	return NewProofG1(commitment, responses), offset, nil
}
