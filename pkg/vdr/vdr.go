/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vdr resolves verification method ids through the DID method drivers (VDRs) it is built with.
package vdr

import (
	"context"
	"errors"

	"github.com/hyperledger/aries-vcproof/pkg/doc/did"
)

// ErrNotFound is returned when a DID is not found by its method.
var ErrNotFound = errors.New("DID does not exist")

// VDR is a DID method driver.
type VDR interface {
	// Accept reports whether the driver handles the DID method.
	Accept(method string) bool
	// Read resolves a DID into its document.
	Read(ctx context.Context, did string) (*did.Doc, error)
}
