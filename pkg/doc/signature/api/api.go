/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package api holds the types shared by signers, verifiers and their collaborators.
package api

import (
	"context"

	"github.com/hyperledger/aries-vcproof/pkg/doc/jose/jwk"
)

// Proof purposes.
const (
	AssertionMethod      = "assertionMethod"
	Authentication       = "authentication"
	KeyAgreement         = "keyAgreement"
	ContractAgreement    = "contractAgreement"
	CapabilityDelegation = "capabilityDelegation"
	CapabilityInvocation = "capabilityInvocation"

	DefaultProofPurpose = AssertionMethod
)

// PublicKey contains a result of public key resolution.
type PublicKey struct {
	Type  string
	Value []byte
	JWK   *jwk.JWK

	// CAIP-10 account id, set for recovery methods that bind a key by its address.
	BlockchainAccountID string
}

// VerificationMethod is a resolved verification method of a DID controller.
type VerificationMethod struct {
	ID         string
	Type       string
	Controller string

	Value               []byte
	JWK                 *jwk.JWK
	BlockchainAccountID string

	// Relationships lists the proof purposes under which the controller references the method.
	Relationships []string
}

// PublicKey returns the key material of the method in the form verifiers consume.
func (vm *VerificationMethod) PublicKey() *PublicKey {
	return &PublicKey{
		Type:                vm.Type,
		Value:               vm.Value,
		JWK:                 vm.JWK,
		BlockchainAccountID: vm.BlockchainAccountID,
	}
}

// HasRelationship reports whether the controller authorizes the method for the proof purpose.
func (vm *VerificationMethod) HasRelationship(purpose string) bool {
	for _, r := range vm.Relationships {
		if r == purpose {
			return true
		}
	}

	return false
}

// Resolver resolves a verification method id (typically a DID URL) into its key material.
type Resolver interface {
	Resolve(ctx context.Context, verificationMethodID string) (*VerificationMethod, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, verificationMethodID string) (*VerificationMethod, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, verificationMethodID string) (*VerificationMethod, error) {
	return f(ctx, verificationMethodID)
}

// Signer signs data with a private key it does not expose.
type Signer interface {
	// Sign will sign document and return signature
	Sign(data []byte) ([]byte, error)
	// Alg return alg.
	Alg() string
}

// JWS algorithms reported by signers.
const (
	AlgEdDSA      = "EdDSA"
	AlgES256      = "ES256"
	AlgES256K     = "ES256K"
	AlgES256KR    = "ES256K-R"
	AlgPS256      = "PS256"
	AlgRS256      = "RS256"
	AlgBLS12381G2 = "Bls12381G2"
)
