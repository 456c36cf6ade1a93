/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs12381g2pub implements BBS+ signatures over the BLS12-381 curve with public keys in G2.
// A signer produces one signature over an ordered list of messages; a holder derives a zero-knowledge
// proof of that signature which discloses only a chosen subset of the messages.
package bbs12381g2pub

import (
	"errors"
	"fmt"
	"sort"

	ml "github.com/IBM/mathlib"
)

//nolint:gochecknoglobals
var curve = ml.Curves[ml.BLS12_381_BBS]

// BBSG2Pub defines BBS+ signature scheme where public key is a point in the field of G2.
// BBS+ signature scheme (as defined in https://eprint.iacr.org/2016/663.pdf, section 4.3).
type BBSG2Pub struct{}

// New creates a new BBSG2Pub.
func New() *BBSG2Pub {
	return &BBSG2Pub{}
}

// Number of bytes in scalar compressed form.
const frCompressedSize = 32

var (
	// nolint:gochecknoglobals
	// Signature length.
	bls12381SignatureLen = curve.CompressedG1ByteSize + 2*frCompressedSize

	// nolint:gochecknoglobals
	// Default BLS 12-381 public key length in G2 field.
	bls12381G2PublicKeyLen = curve.CompressedG2ByteSize

	// nolint:gochecknoglobals
	// Number of bytes in G1 X coordinate.
	g1CompressedSize = curve.CompressedG1ByteSize
)

// ErrInvalidSignature is returned when a signature does not match its messages and key.
var ErrInvalidSignature = errors.New("invalid BLS12-381 signature")

// Verify makes BLS BBS12-381 signature verification.
func (bbs *BBSG2Pub) Verify(messages [][]byte, sigBytes, pubKeyBytes []byte) error {
	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}

	publicKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	publicKeyWithGenerators := publicKey.ToPublicKeyWithGenerators(len(messages))

	return signature.Verify(ParseSignatureMessages(messages), publicKeyWithGenerators)
}

// Sign signs the one or more messages using private key in compressed form.
func (bbs *BBSG2Pub) Sign(messages [][]byte, privKeyBytes []byte) ([]byte, error) {
	privKey, err := UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w", err)
	}

	if len(messages) == 0 {
		return nil, errors.New("messages are not defined")
	}

	return bbs.SignWithKey(messages, privKey)
}

// SignWithKey signs the one or more messages using BBS+ key pair.
func (bbs *BBSG2Pub) SignWithKey(messages [][]byte, privKey *PrivateKey) ([]byte, error) {
	if len(messages) == 0 {
		return nil, errors.New("messages are not defined")
	}

	pubKeyWithGenerators := privKey.PublicKey().ToPublicKeyWithGenerators(len(messages))

	e := curve.NewRandomZr(randReader)
	s := curve.NewRandomZr(randReader)

	b := computeB(s, ParseSignatureMessages(messages), pubKeyWithGenerators)

	exp := privKey.FR.Plus(e)
	exp.Mod(curve.GroupOrder)
	exp.InvModP(curve.GroupOrder)

	sig := b.Mul(exp)

	signature := &Signature{
		A: sig,
		E: e,
		S: s,
	}

	return signature.ToBytes()
}

// VerifyProof verifies BBS+ signature proof for one ore more revealed messages.
func (bbs *BBSG2Pub) VerifyProof(messagesBytes [][]byte, proof, nonce, pubKeyBytes []byte) error {
	payload, err := parsePoKPayload(proof)
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	signatureProof, err := ParseSignatureProof(proof[payload.lenInBytes():])
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	messages := ParseSignatureMessages(messagesBytes)

	publicKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	publicKeyWithGenerators := publicKey.ToPublicKeyWithGenerators(payload.messagesCount)

	if len(payload.revealed) != len(messages) {
		return fmt.Errorf("payload reveals %d messages but %d were given", len(payload.revealed), len(messages))
	}

	revealedMessages := make(map[int]*SignatureMessage, len(messages))
	for i, ind := range payload.revealed {
		revealedMessages[ind] = messages[i]
	}

	challengeBytes := signatureProof.GetBytesForChallenge(revealedMessages, publicKeyWithGenerators)
	proofNonce := ParseProofNonce(nonce)
	challengeBytes = append(challengeBytes, proofNonce.ToBytes()...)
	proofChallenge := frFromOKM(challengeBytes)

	return signatureProof.Verify(proofChallenge, publicKeyWithGenerators, revealedMessages, messages)
}

// DeriveProof derives a proof of BBS+ signature with some messages disclosed.
func (bbs *BBSG2Pub) DeriveProof(messages [][]byte, sigBytes, nonce, pubKeyBytes []byte,
	revealedIndexes []int) ([]byte, error) {
	if len(revealedIndexes) == 0 {
		return nil, errors.New("no message to reveal")
	}

	const maxMessages = 1<<16 - 1

	if len(messages) > maxMessages {
		return nil, fmt.Errorf("too many messages: %d", len(messages))
	}

	revealedIndexes = append([]int(nil), revealedIndexes...)
	sort.Ints(revealedIndexes)

	for i, ind := range revealedIndexes {
		if ind < 0 || ind >= len(messages) {
			return nil, fmt.Errorf("revealed index %d is out of range", ind)
		}

		if i > 0 && revealedIndexes[i-1] == ind {
			return nil, fmt.Errorf("revealed index %d is duplicated", ind)
		}
	}

	messagesCount := len(messages)

	messagesFr := ParseSignatureMessages(messages)

	publicKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	publicKeyWithGenerators := publicKey.ToPublicKeyWithGenerators(messagesCount)

	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return nil, fmt.Errorf("parse signature: %w", err)
	}

	pokSignature, err := NewPoKOfSignature(signature, messagesFr, revealedIndexes, publicKeyWithGenerators)
	if err != nil {
		return nil, fmt.Errorf("init proof of knowledge signature: %w", err)
	}

	revealedMessages := make(map[int]*SignatureMessage, len(revealedIndexes))
	for _, ind := range revealedIndexes {
		revealedMessages[ind] = messagesFr[ind]
	}

	challengeBytes := pokSignature.ToBytes()
	challengeBytes = append(challengeBytes, revealedMessagesBytes(revealedMessages)...)

	proofNonce := ParseProofNonce(nonce)
	challengeBytes = append(challengeBytes, proofNonce.ToBytes()...)

	proofChallenge := frFromOKM(challengeBytes)

	proof := pokSignature.GenerateProof(proofChallenge)

	payload := newPoKPayload(messagesCount, revealedIndexes)

	return append(payload.toBytes(), proof.ToBytes()...), nil
}

// Signature defines BBS+ signature as a triplet of points in G1 (A) and two scalars (E, S).
type Signature struct {
	A *ml.G1
	E *ml.Zr
	S *ml.Zr
}

// ParseSignature parses a Signature from bytes.
func ParseSignature(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != bls12381SignatureLen {
		return nil, errors.New("invalid size of signature")
	}

	pointG1, err := curve.NewG1FromCompressed(sigBytes[:g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("deserialize G1 compressed signature: %w", err)
	}

	e := parseFr(sigBytes[g1CompressedSize : g1CompressedSize+frCompressedSize])
	s := parseFr(sigBytes[g1CompressedSize+frCompressedSize:])

	return &Signature{
		A: pointG1,
		E: e,
		S: s,
	}, nil
}

// ToBytes converts signature to bytes using compression of G1 point and E, S FR points.
func (s *Signature) ToBytes() ([]byte, error) {
	bytes := make([]byte, bls12381SignatureLen)

	copy(bytes, s.A.Compressed())
	copy(bytes[g1CompressedSize:g1CompressedSize+frCompressedSize], frToBytes(s.E))
	copy(bytes[g1CompressedSize+frCompressedSize:], frToBytes(s.S))

	return bytes, nil
}

// Verify is used for signature verification.
func (s *Signature) Verify(messages []*SignatureMessage, pubKey *PublicKeyWithGenerators) error {
	if len(messages) != pubKey.messagesCount {
		return fmt.Errorf("expected %d messages, got %d", pubKey.messagesCount, len(messages))
	}

	p1 := s.A

	q1 := curve.GenG2.Mul(s.E)
	q1.Add(pubKey.w)

	p2 := negG1(computeB(s.S, messages, pubKey))

	if compareTwoPairings(p1, q1, p2, curve.GenG2) {
		return nil
	}

	return ErrInvalidSignature
}

// computeB returns g1 + h0*s + sum(h_i*m_i).
func computeB(s *ml.Zr, messages []*SignatureMessage, key *PublicKeyWithGenerators) *ml.G1 {
	const basesOffset = 2

	cb := newCommitmentBuilder(len(messages) + basesOffset)

	cb.add(curve.GenG1, curve.NewZrFromInt(1))
	cb.add(key.h0, s)

	for i := 0; i < len(messages); i++ {
		cb.add(key.h[i], messages[i].FR)
	}

	return cb.build()
}

type commitmentBuilder struct {
	bases   []*ml.G1
	scalars []*ml.Zr
}

func newCommitmentBuilder(expectedSize int) *commitmentBuilder {
	return &commitmentBuilder{
		bases:   make([]*ml.G1, 0, expectedSize),
		scalars: make([]*ml.Zr, 0, expectedSize),
	}
}

func (cb *commitmentBuilder) add(base *ml.G1, scalar *ml.Zr) {
	cb.bases = append(cb.bases, base)
	cb.scalars = append(cb.scalars, scalar)
}

func (cb *commitmentBuilder) build() *ml.G1 {
	return sumOfG1Products(cb.bases, cb.scalars)
}

func sumOfG1Products(bases []*ml.G1, scalars []*ml.Zr) *ml.G1 {
	var res *ml.G1

	for i := 0; i < len(bases); i++ {
		b := bases[i]
		s := scalars[i]

		g := b.Mul(s)
		if res == nil {
			res = g
		} else {
			res.Add(g)
		}
	}

	return res
}

// compareTwoPairings checks e(p1, q1) * e(p2, q2) == 1.
func compareTwoPairings(p1 *ml.G1, q1 *ml.G2, p2 *ml.G1, q2 *ml.G2) bool {
	p := curve.Pairing2(q1, p1, q2, p2)
	p = curve.FExp(p)

	return p.IsUnity()
}

// negG1 returns -p as a new point.
func negG1(p *ml.G1) *ml.G1 {
	return p.Mul(minusOne())
}

func revealedMessagesBytes(revealedMessages map[int]*SignatureMessage) []byte {
	revealed := make([]int, 0, len(revealedMessages))
	for ind := range revealedMessages {
		revealed = append(revealed, ind)
	}

	sort.Ints(revealed)

	out := uint32ToBytes(uint32(len(revealed)))

	for _, ind := range revealed {
		out = append(out, uint32ToBytes(uint32(ind))...)
		out = append(out, frToBytes(revealedMessages[ind].FR)...)
	}

	return out
}
