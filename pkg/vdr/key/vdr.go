/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package key implements the did:key method: the DID document is expanded from the public key encoded in the DID.
package key

const (
	// DIDMethod did method.
	DIDMethod = "key"
)

// VDR implements did:key method support.
type VDR struct{}

// New returns new instance of VDR that works with did:key method.
func New() *VDR {
	return &VDR{}
}

// Accept accepts did:key method.
func (v *VDR) Accept(method string) bool {
	return method == DIDMethod
}
