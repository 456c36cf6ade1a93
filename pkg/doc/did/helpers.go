/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// LookupVerificationMethod returns the verification method with the given id, relative ids ("#key-1")
// being resolved against the document id.
func LookupVerificationMethod(didDoc *Doc, id string) (*VerificationMethod, bool) {
	return didDoc.lookup(didDoc.absoluteID(id))
}

// RelationshipsOf returns the verification relationships that reference the method.
func RelationshipsOf(didDoc *Doc, id string) []string {
	var rels []string

	for _, rel := range relationships {
		for _, ref := range didDoc.Relationships[rel] {
			if ref == id {
				rels = append(rels, rel)

				break
			}
		}
	}

	return rels
}

// ResolveVerificationMethod returns the method with the given id together with its relationships.
func ResolveVerificationMethod(didDoc *Doc, id string) (*api.VerificationMethod, error) {
	vm, ok := LookupVerificationMethod(didDoc, id)
	if !ok {
		return nil, fmt.Errorf("verification method %s not found in %s", id, didDoc.ID)
	}

	return &api.VerificationMethod{
		ID:                  vm.ID,
		Type:                vm.Type,
		Controller:          vm.Controller,
		Value:               vm.Value,
		JWK:                 vm.JWK,
		BlockchainAccountID: vm.BlockchainAccountID,
		Relationships:       RelationshipsOf(didDoc, vm.ID),
	}, nil
}
