/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package suite defines the linked-data signature suite abstraction, the static suite descriptors and
// the closed registry the issuer and verifier look suites up in.
package suite

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
)

// Suite is a registered signature suite.
type Suite interface {
	// Descriptor returns the static description of the suite.
	Descriptor() *Descriptor

	// CreateVerifyData canonicalizes the document and the proof options and returns the data to sign.
	// Failures are reported as api.CanonicalizationError.
	CreateVerifyData(doc map[string]interface{}, p *proof.Proof) ([]byte, error)

	// Verify checks the proof signature over the verify data.
	Verify(pubKey *api.PublicKey, p *proof.Proof, verifyData []byte) error
}

// SignatureSuite is the base of the registered suites: canonicalization per descriptor mode, the descriptor
// digest and a public key verifier.
type SignatureSuite struct {
	Verifier      verifier
	Canonicalizer *canonicalizer.Canonicalizer

	desc Descriptor
}

type verifier interface {
	// Verify will verify a signature.
	Verify(pubKeyValue *api.PublicKey, doc, signature []byte) error
}

// Opt is the SignatureSuite option.
type Opt func(opts *SignatureSuite)

// WithVerifier defines a verifier for the Signature Suite.
func WithVerifier(v verifier) Opt {
	return func(opts *SignatureSuite) {
		opts.Verifier = v
	}
}

// WithCanonicalizer defines the canonicalizer of the Signature Suite.
func WithCanonicalizer(c *canonicalizer.Canonicalizer) Opt {
	return func(opts *SignatureSuite) {
		opts.Canonicalizer = c
	}
}

// InitSuiteOptions initializes signature suite with its descriptor and options.
func InitSuiteOptions(suite *SignatureSuite, desc Descriptor, opts ...Opt) *SignatureSuite {
	suite.desc = desc

	for _, opt := range opts {
		opt(suite)
	}

	return suite
}

// Descriptor returns the static description of the suite.
func (s *SignatureSuite) Descriptor() *Descriptor {
	d := s.desc

	return &d
}

// GetCanonicalDocument returns the canonical form of doc in the suite mode.
func (s *SignatureSuite) GetCanonicalDocument(doc map[string]interface{}) ([]byte, error) {
	if s.Canonicalizer == nil {
		return nil, api.NewError(api.CanonicalizationError, s.desc.ID, ErrCanonicalizerNotDefined)
	}

	return s.Canonicalizer.Canonicalize(doc, s.desc.Mode)
}

// GetDigest returns document digest.
func (s *SignatureSuite) GetDigest(doc []byte) []byte {
	if s.desc.Digest == DigestIdentity {
		return doc
	}

	digest := sha256.Sum256(doc)

	return digest[:]
}

// CreateVerifyData builds the data the proof signs: the digests of the canonical proof options and document
// in linked-data mode, the digest of the canonical document carrying its proof options in compact mode.
func (s *SignatureSuite) CreateVerifyData(doc map[string]interface{}, p *proof.Proof) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if s.desc.Mode == canonicalizer.ModeCompact {
		data, err = proof.CreateCompactVerifyData(s, doc, p)
	} else {
		data, err = proof.CreateVerifyData(s, doc, p)
	}

	if err != nil {
		return nil, api.WrapIfUntyped(api.CanonicalizationError, "create verify data", err)
	}

	return data, nil
}

// Verify checks the signature of the proof.
func (s *SignatureSuite) Verify(pubKey *api.PublicKey, p *proof.Proof, verifyData []byte) error {
	if s.Verifier == nil {
		return ErrVerifierNotDefined
	}

	if p.SignatureRepresentation == proof.SignatureJWS {
		alg, err := proof.GetDetachedJWSAlgorithm(p.JWS)
		if err != nil {
			return err
		}

		if alg != s.desc.JWSAlgorithm {
			return fmt.Errorf("jws algorithm %s does not match suite algorithm %s", alg, s.desc.JWSAlgorithm)
		}
	}

	signature, err := SignatureValue(p)
	if err != nil {
		return err
	}

	return s.Verifier.Verify(pubKey, verifyData, signature)
}

// SignatureValue returns the raw signature of the proof per its representation.
func SignatureValue(p *proof.Proof) ([]byte, error) {
	switch p.SignatureRepresentation {
	case proof.SignatureProofValue:
		return p.ProofValue, nil
	case proof.SignatureJWS:
		return proof.GetJWTSignature(p.JWS)
	default:
		return nil, errors.New("unsupported signature representation")
	}
}

// ErrVerifierNotDefined is returned when Verify() is called but verifier option is not defined.
var ErrVerifierNotDefined = errors.New("verifier is not defined")

// ErrCanonicalizerNotDefined is returned when a canonical form is requested but no canonicalizer is set.
var ErrCanonicalizerNotDefined = errors.New("canonicalizer is not defined")
