/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifiable issues and verifies linked-data proofs of Verifiable Credentials and Presentations.
//
// The Issuer appends proofs to documents. The Verifier checks every proof of a document through the pipeline
// canonicalize, resolve, cross-check, verify, temporal and status, and aggregates the outcomes into a Result.
// Both look suites up in an immutable suite.Registry.
package verifiable

import (
	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/bbsblssignature2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/bbsblssignatureproof2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/ecdsasecp256k1recoverysignature2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/ecdsasecp256k1signature2019"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/ecdsasecp256r1signature2019"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/ed25519signature2018"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/ed25519signature2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/jcsed25519signature2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/rsapkcs1signature2018"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/rsasignature2018"
)

var logger = log.New("aries-vcproof/verifiable")

// DefaultSuites returns one instance of every supported suite, bound to the canonicalizer.
func DefaultSuites(c *canonicalizer.Canonicalizer) []suite.Suite {
	opt := suite.WithCanonicalizer(c)

	return []suite.Suite{
		ed25519signature2018.New(opt),
		ed25519signature2020.New(opt),
		jcsed25519signature2020.New(opt),
		ecdsasecp256k1signature2019.New(opt),
		ecdsasecp256k1recoverysignature2020.New(opt),
		ecdsasecp256r1signature2019.New(opt),
		rsasignature2018.New(opt),
		rsapkcs1signature2018.New(opt),
		bbsblssignature2020.New(opt),
		bbsblssignatureproof2020.New(opt),
	}
}

// NewDefaultRegistry builds the registry of DefaultSuites.
func NewDefaultRegistry(c *canonicalizer.Canonicalizer) (*suite.Registry, error) {
	return suite.NewRegistry(DefaultSuites(c)...)
}
