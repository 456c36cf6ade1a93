/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"time"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/signer"
)

// Issuer adds linked-data proofs to credentials and presentations. It is safe for concurrent use.
type Issuer struct {
	opts   *options
	signer *signer.DocumentSigner
}

// SignOptions are the proof options of a signing call.
type SignOptions struct {
	// VerificationMethod is the DID URL of the signing key. Required.
	VerificationMethod string `json:"verificationMethod"`
	// ProofPurpose defaults to assertionMethod.
	ProofPurpose string `json:"proofPurpose,omitempty"`
	// Created defaults to the issuer clock.
	Created   *time.Time `json:"created,omitempty"`
	Challenge string     `json:"challenge,omitempty"`
	Domain    string     `json:"domain,omitempty"`
	Nonce     []byte     `json:"nonce,omitempty"`
}

// NewIssuer returns an Issuer.
func NewIssuer(opts ...IssuerOpt) (*Issuer, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Issuer{opts: o, signer: signer.New(o.registry)}, nil
}

// Sign returns a copy of doc with one more proof of suiteID. Proofs already present are kept, so a document
// can be co-signed by calling Sign again with another suite or key. doc itself is never modified.
func (i *Issuer) Sign(ctx context.Context, doc map[string]interface{}, suiteID string, s api.Signer,
	opts SignOptions) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, api.NewError(api.SigningError, "sign", err)
	}

	created := opts.Created
	if created == nil {
		now := i.opts.clock()
		created = &now
	}

	start := i.opts.clock()

	signed, err := i.signer.Sign(&signer.Context{
		SignatureType:      suiteID,
		VerificationMethod: opts.VerificationMethod,
		Created:            created,
		Purpose:            opts.ProofPurpose,
		Domain:             opts.Domain,
		Challenge:          opts.Challenge,
		Nonce:              opts.Nonce,
	}, doc, s)

	i.opts.observeSign(suiteID, err, start)

	if err != nil {
		logger.Warnf("sign %s with %s failed: %v", suiteID, opts.VerificationMethod, err)

		return nil, err
	}

	return signed, nil
}
