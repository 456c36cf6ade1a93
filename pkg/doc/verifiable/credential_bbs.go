/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"crypto/rand"
	"errors"

	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/signer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/bbsblssignature2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/bbsblssignatureproof2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

const bbsNonceSize = 32

// DeriveBBSProof discloses the part of a BbsBlsSignature2020 signed credential selected by the JSON-LD frame
// revealFrame. The returned credential carries one BbsBlsSignatureProof2020 proof bound to nonce, which is
// generated when nil. The signing key is resolved to check the proof before deriving from it.
func DeriveBBSProof(ctx context.Context, doc, revealFrame map[string]interface{}, nonce []byte,
	resolver api.Resolver, opts ...Opt) (map[string]interface{}, error) {
	const op = "derive BBS+ proof"

	if resolver == nil {
		return nil, errors.New("resolver must be provided")
	}

	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	s, err := o.registry.Lookup(bbsblssignatureproof2020.SignatureType)
	if err != nil {
		return nil, err
	}

	proofSuite, ok := s.(*bbsblssignatureproof2020.Suite)
	if !ok {
		return nil, api.Errorf(api.UnsupportedSuite, op, "%s is registered with %T", bbsblssignatureproof2020.SignatureType, s)
	}

	bbsProof, err := findBBSProof(doc)
	if err != nil {
		return nil, err
	}

	dv, err := verifier.New(o.registry, resolver)
	if err != nil {
		return nil, err
	}

	vm, err := dv.VerifyProof(ctx, doc, bbsProof)
	if err != nil {
		return nil, err
	}

	pubKey, err := bbsPublicKey(vm)
	if err != nil {
		return nil, api.NewError(api.SuiteKeyMismatch, op, err)
	}

	if nonce == nil {
		nonce = make([]byte, bbsNonceSize)

		if _, err = rand.Read(nonce); err != nil {
			return nil, api.NewError(api.SigningError, op, err)
		}
	}

	frame := maphelpers.CopyMap(revealFrame)
	signer.AddContext(frame, embed.BBSV1URL)

	revealed, derived, err := proofSuite.SelectiveDisclosure(proof.GetCopyWithoutProof(doc), frame, bbsProof,
		pubKey, nonce)
	if err != nil {
		return nil, api.WrapIfUntyped(api.CanonicalizationError, op, err)
	}

	if err = proof.AddProof(revealed, derived); err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	logger.Debugf("derived %s proof from %s", derived.Type, vm.ID)

	return revealed, nil
}

func findBBSProof(doc map[string]interface{}) (*proof.Proof, error) {
	proofs, err := proof.GetProofs(doc)
	if err != nil {
		return nil, api.NewError(api.DocumentMalformed, "find BBS+ proof", err)
	}

	for _, p := range proofs {
		if p.Type == bbsblssignature2020.SignatureType {
			return p, nil
		}
	}

	return nil, api.Errorf(api.UnsupportedSuite, "find BBS+ proof", "document has no %s proof",
		bbsblssignature2020.SignatureType)
}

func bbsPublicKey(vm *api.VerificationMethod) ([]byte, error) {
	if len(vm.Value) > 0 {
		return vm.Value, nil
	}

	if vm.JWK != nil {
		return vm.JWK.PublicKeyBytes()
	}

	return nil, errors.New("verification method has no key material")
}
