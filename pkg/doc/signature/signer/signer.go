/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signer creates linked-data proofs: it canonicalizes a document, signs the verify data and appends
// the proof after the proofs the document already holds.
package signer

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/processor"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
	afgotime "github.com/hyperledger/aries-vcproof/pkg/doc/util/time"
)

var logger = log.New("aries-vcproof/signer")

const (
	jsonldContext = "@context"
	jsonldProof   = "proof"
)

// DocumentSigner implements signing of JSON-LD documents.
type DocumentSigner struct {
	registry *suite.Registry
}

// Context holds signing options.
type Context struct {
	SignatureType      string     // required
	VerificationMethod string     // required
	Created            *time.Time // optional, now by default
	Purpose            string     // optional, assertionMethod by default
	Domain             string     // optional
	Challenge          string     // optional
	Nonce              []byte     // optional
}

// New returns new instance of document signer.
func New(registry *suite.Registry) *DocumentSigner {
	return &DocumentSigner{registry: registry}
}

// Sign returns a signed copy of jsonLdDoc. jsonLdDoc is not modified, and nothing is returned on error.
// The suite is looked up first and the signer algorithm is checked against the suite before any
// canonicalization or cryptography happens.
func (signer *DocumentSigner) Sign(context *Context, jsonLdDoc map[string]interface{},
	s api.Signer) (map[string]interface{}, error) {
	const op = "sign"

	sigSuite, err := signer.registry.Lookup(context.SignatureType)
	if err != nil {
		return nil, err
	}

	desc := sigSuite.Descriptor()

	if err = checkSigner(desc, context, s); err != nil {
		return nil, err
	}

	doc := maphelpers.CopyMap(jsonLdDoc)

	// Proofs already present may sign the document @context, so it is left untouched on co-signing.
	var proofContext interface{}

	if desc.Mode == canonicalizer.ModeLinkedData && desc.Context != "" && !HasContext(doc, desc.Context) {
		if _, signed := doc[jsonldProof]; signed {
			proofContext = processor.AppendExternalContexts(doc[jsonldContext], desc.Context)
		} else {
			AddContext(doc, desc.Context)
		}
	}

	created := time.Now()
	if context.Created != nil {
		created = *context.Created
	}

	p := &proof.Proof{
		Context:                 proofContext,
		Type:                    desc.ID,
		SignatureRepresentation: desc.SignatureRepresentation,
		Created:                 afgotime.NewTime(created),
		VerificationMethod:      context.VerificationMethod,
		ProofPurpose:            context.Purpose,
		Domain:                  context.Domain,
		Challenge:               context.Challenge,
		Nonce:                   context.Nonce,
	}

	if p.ProofPurpose == "" {
		p.ProofPurpose = api.DefaultProofPurpose
	}

	if p.SignatureRepresentation == proof.SignatureJWS {
		p.JWS = proof.CreateDetachedJWTHeader(desc.JWSAlgorithm) + ".."
	}

	message, err := sigSuite.CreateVerifyData(doc, p)
	if err != nil {
		return nil, err
	}

	signature, err := s.Sign(message)
	if err != nil {
		return nil, api.NewError(api.SigningError, op, err)
	}

	applySignatureValue(p, signature)

	if err = proof.AddProof(doc, p); err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	logger.Debugf("added %s proof by %s", p.Type, p.VerificationMethod)

	return doc, nil
}

func checkSigner(desc *suite.Descriptor, context *Context, s api.Signer) error {
	const op = "check signer"

	if desc.Family == suite.FamilyBBSProof {
		return api.Errorf(api.SigningError, op, "%s proofs are derived, not signed", desc.ID)
	}

	if context.VerificationMethod == "" {
		return api.NewError(api.SigningError, op, errors.New("verification method is missing"))
	}

	if s == nil {
		return api.NewError(api.SigningError, op, errors.New("signer is missing"))
	}

	if alg := desc.Family.Algorithm(); s.Alg() != alg {
		return api.Errorf(api.SigningError, op, "signer algorithm %s does not match %s (%s)", s.Alg(), desc.ID, alg)
	}

	return nil
}

func applySignatureValue(p *proof.Proof, s []byte) {
	switch p.SignatureRepresentation {
	case proof.SignatureProofValue:
		p.ProofValue = s
	case proof.SignatureJWS:
		p.JWS += base64.RawURLEncoding.EncodeToString(s)
	}
}

// HasContext reports whether the @context of doc holds ctx.
func HasContext(doc map[string]interface{}, ctx string) bool {
	switch current := doc[jsonldContext].(type) {
	case string:
		return current == ctx
	case []interface{}:
		for _, c := range current {
			if c == ctx {
				return true
			}
		}
	case []string:
		for _, c := range current {
			if c == ctx {
				return true
			}
		}
	}

	return false
}

// AddContext appends ctx to the @context of doc unless it is already there.
func AddContext(doc map[string]interface{}, ctx string) {
	switch current := doc[jsonldContext].(type) {
	case nil:
		doc[jsonldContext] = ctx
	case string:
		if current != ctx {
			doc[jsonldContext] = []interface{}{current, ctx}
		}
	case []interface{}:
		for _, c := range current {
			if c == ctx {
				return
			}
		}

		doc[jsonldContext] = append(current, ctx)
	case []string:
		for _, c := range current {
			if c == ctx {
				return
			}
		}

		extended := make([]interface{}, 0, len(current)+1)
		for _, c := range current {
			extended = append(extended, c)
		}

		doc[jsonldContext] = append(extended, ctx)
	default:
		doc[jsonldContext] = []interface{}{current, ctx}
	}
}
