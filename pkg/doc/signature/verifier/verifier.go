/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
)

var logger = log.New("aries-vcproof/verifier")

// DocumentVerifier implements JSON LD document proof verification: canonicalization, key resolution,
// suite/key cross-check and signature check. Temporal, status and policy checks are left to the caller.
type DocumentVerifier struct {
	registry   *suite.Registry
	pkResolver api.Resolver
}

// New returns new instance of document verifier.
func New(registry *suite.Registry, resolver api.Resolver) (*DocumentVerifier, error) {
	if registry == nil {
		return nil, errors.New("suite registry must be provided")
	}

	if resolver == nil {
		return nil, errors.New("resolver must be provided")
	}

	return &DocumentVerifier{
		registry:   registry,
		pkResolver: resolver,
	}, nil
}

// Verify will verify every proof of the document and stop at the first failure.
func (dv *DocumentVerifier) Verify(ctx context.Context, jsonLdObject map[string]interface{}) error {
	proofs, err := proof.GetProofs(jsonLdObject)
	if err != nil {
		return api.NewError(api.DocumentMalformed, "get proofs", err)
	}

	for i, p := range proofs {
		if _, err := dv.VerifyProof(ctx, jsonLdObject, p); err != nil {
			return fmt.Errorf("proof %d: %w", i, err)
		}
	}

	return nil
}

// VerifyProof verifies a single proof of the document and returns the verification method it resolved.
// The returned error is an *api.Error naming the failed step.
func (dv *DocumentVerifier) VerifyProof(ctx context.Context, jsonLdObject map[string]interface{},
	p *proof.Proof) (*api.VerificationMethod, error) {
	s, err := dv.registry.Lookup(p.Type)
	if err != nil {
		return nil, err
	}

	desc := s.Descriptor()

	if err = checkRepresentation(desc, p); err != nil {
		return nil, err
	}

	message, err := s.CreateVerifyData(jsonLdObject, p)
	if err != nil {
		return nil, api.WrapIfUntyped(api.CanonicalizationError, "create verify data", err)
	}

	logger.Debugf("verify %s proof: %d bytes of verify data", p.Type, len(message))

	publicKeyID, err := p.PublicKeyID()
	if err != nil {
		return nil, api.NewError(api.DocumentMalformed, "check proof", err)
	}

	vm, err := dv.Resolve(ctx, publicKeyID)
	if err != nil {
		return nil, err
	}

	if err = suite.CheckKey(desc, vm); err != nil {
		return vm, err
	}

	if err = s.Verify(vm.PublicKey(), p, message); err != nil {
		return vm, api.NewError(api.SignatureInvalid, "verify "+p.Type, err)
	}

	return vm, nil
}

// Resolve resolves a verification method. A deadline exceeded while resolving is an api.ResolutionTimeout,
// any other failure an api.ResolutionError. There is no retry.
func (dv *DocumentVerifier) Resolve(ctx context.Context, publicKeyID string) (*api.VerificationMethod, error) {
	const op = "resolve verification method"

	vm, err := dv.pkResolver.Resolve(ctx, publicKeyID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, api.NewError(api.ResolutionTimeout, op, err)
		}

		return nil, api.WrapIfUntyped(api.ResolutionError, op, err)
	}

	if vm == nil {
		return nil, api.Errorf(api.ResolutionError, op, "%s resolved to nothing", publicKeyID)
	}

	if len(vm.Value) > 0 && vm.JWK != nil {
		return nil, api.Errorf(api.ResolutionError, op, "%s holds more than one key material", publicKeyID)
	}

	return vm, nil
}

func checkRepresentation(desc *suite.Descriptor, p *proof.Proof) error {
	const op = "check proof"

	if p.SignatureRepresentation != desc.SignatureRepresentation {
		return api.Errorf(api.DocumentMalformed, op, "%s proof must carry its signature in %s",
			desc.ID, desc.SignatureRepresentation)
	}

	switch p.SignatureRepresentation {
	case proof.SignatureProofValue:
		if len(p.ProofValue) == 0 {
			return api.Errorf(api.DocumentMalformed, op, "%s proof has no proofValue", desc.ID)
		}
	case proof.SignatureJWS:
		if p.JWS == "" {
			return api.Errorf(api.DocumentMalformed, op, "%s proof has no jws", desc.ID)
		}

		if _, err := proof.GetDetachedJWSAlgorithm(p.JWS); err != nil {
			return api.NewError(api.DocumentMalformed, op, err)
		}

		if _, err := proof.GetJWTSignature(p.JWS); err != nil {
			return api.NewError(api.DocumentMalformed, op, err)
		}
	}

	return nil
}
