/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
)

// Family is the signature algorithm family of a suite. The set is closed.
type Family int

// Signature families.
const (
	FamilyEdDSA Family = iota + 1
	FamilyECDSASecp256k1
	FamilyECDSASecp256k1Recovery
	FamilyECDSAP256
	FamilyRSAPSS
	FamilyRSAPKCS1
	FamilyBBS
	FamilyBBSProof
)

var familyNames = map[Family]string{ //nolint:gochecknoglobals
	FamilyEdDSA:                  "EdDSA",
	FamilyECDSASecp256k1:         "ECDSA-secp256k1",
	FamilyECDSASecp256k1Recovery: "ECDSA-secp256k1-recovery",
	FamilyECDSAP256:              "ECDSA-P256",
	FamilyRSAPSS:                 "RSA-PSS",
	FamilyRSAPKCS1:               "RSA-PKCS1v15",
	FamilyBBS:                    "BBS+",
	FamilyBBSProof:               "BBS+ derived proof",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}

	return fmt.Sprintf("Family(%d)", int(f))
}

// Algorithm returns the signer algorithm that produces signatures of the family.
func (f Family) Algorithm() string {
	switch f {
	case FamilyEdDSA:
		return api.AlgEdDSA
	case FamilyECDSASecp256k1:
		return api.AlgES256K
	case FamilyECDSASecp256k1Recovery:
		return api.AlgES256KR
	case FamilyECDSAP256:
		return api.AlgES256
	case FamilyRSAPSS:
		return api.AlgPS256
	case FamilyRSAPKCS1:
		return api.AlgRS256
	case FamilyBBS, FamilyBBSProof:
		return api.AlgBLS12381G2
	default:
		return ""
	}
}

// MatchesJWK reports whether a JWK describes a key of the family. Curve is not checked for RSA.
func (f Family) MatchesJWK(key *jwk.JWK) bool {
	switch f {
	case FamilyEdDSA:
		return key.Kty == jwk.KtyOKP && key.Crv == jwk.CrvEd25519
	case FamilyECDSASecp256k1, FamilyECDSASecp256k1Recovery:
		return key.Kty == jwk.KtyEC && key.Crv == jwk.CrvSecp256k1
	case FamilyECDSAP256:
		return key.Kty == jwk.KtyEC && key.Crv == jwk.CrvP256
	case FamilyRSAPSS, FamilyRSAPKCS1:
		return key.Kty == jwk.KtyRSA
	case FamilyBBS, FamilyBBSProof:
		return key.Kty == jwk.KtyEC && key.Crv == jwk.CrvBLS12381G2
	default:
		return false
	}
}

// Digest names.
const (
	DigestSHA256   = "SHA-256"
	DigestIdentity = "identity"
)

// Descriptor is the static description of a registered suite.
type Descriptor struct {
	// ID is the proof type string.
	ID string
	// Mode is the canonicalization applied to the document and proof options.
	Mode canonicalizer.Mode
	// Digest applied to the canonical forms.
	Digest string
	Family Family
	// KeyTypes lists the verification method types the suite accepts.
	KeyTypes []string
	// SignatureRepresentation tells where the signature lives in the proof.
	SignatureRepresentation proof.SignatureRepresentation
	// JWSAlgorithm is the "alg" of the detached JWS header, for the JWS representation.
	JWSAlgorithm string
	// Context is the JSON-LD context defining the suite terms.
	Context string
}

// AcceptsKeyType reports whether the verification method type is accepted by the suite.
func (d *Descriptor) AcceptsKeyType(methodType string) bool {
	for _, t := range d.KeyTypes {
		if t == methodType {
			return true
		}
	}

	return false
}
