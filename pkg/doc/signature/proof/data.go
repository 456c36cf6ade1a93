/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
)

const (
	jsonldContext = "@context"
	jsonldProof   = "proof"
)

// signatureSuite encapsulates signature suite methods required for normalizing document.
type signatureSuite interface {

	// GetCanonicalDocument will return normalized/canonical version of the document
	GetCanonicalDocument(doc map[string]interface{}) ([]byte, error)

	// GetDigest returns document digest
	GetDigest(doc []byte) []byte
}

// CreateVerifyData creates data that is used to generate or verify a digital signature.
// It depends on the signature value holder type.
// In case of "proofValue", the standard Create Verify Hash algorithm is used.
// In case of "jws", verify data is built as JSON Web Signature (JWS) with detached payload.
func CreateVerifyData(suite signatureSuite, jsonldDoc map[string]interface{}, p *Proof,
	excludeOptions ...string) ([]byte, error) {
	verifyHash, err := CreateVerifyHash(suite, jsonldDoc, p.Options(excludeOptions...))
	if err != nil {
		return nil, err
	}

	switch p.SignatureRepresentation {
	case SignatureProofValue:
		return verifyHash, nil
	case SignatureJWS:
		jwtHeader, err := getJWTHeader(p.JWS)
		if err != nil {
			return nil, err
		}

		return CreateDetachedJWSSigningInput(jwtHeader, verifyHash), nil
	default:
		return nil, fmt.Errorf("unsupported signature representation: %v", p.SignatureRepresentation)
	}
}

// CreateVerifyHash returns data that is used to generate or verify a digital signature
// Algorithm steps are described here https://w3c-dvcg.github.io/ld-signatures/#create-verify-hash-algorithm
// Neither jsonldDoc nor proofOptions are modified.
func CreateVerifyHash(suite signatureSuite, jsonldDoc, proofOptions map[string]interface{}) ([]byte, error) {
	canonicalProofOptions, err := prepareCanonicalProofOptions(suite, jsonldDoc, proofOptions)
	if err != nil {
		return nil, err
	}

	proofOptionsDigest := suite.GetDigest(canonicalProofOptions)

	canonicalDoc, err := suite.GetCanonicalDocument(GetCopyWithoutProof(jsonldDoc))
	if err != nil {
		return nil, fmt.Errorf("canonicalize document: %w", err)
	}

	docDigest := suite.GetDigest(canonicalDoc)

	return append(proofOptionsDigest, docDigest...), nil
}

// CreateCompactVerifyData returns the data signed by suites working on plain JSON: the digest of the
// document whose proof member is replaced by the proof options.
func CreateCompactVerifyData(suite signatureSuite, jsonldDoc map[string]interface{}, p *Proof) ([]byte, error) {
	doc := GetCopyWithoutProof(jsonldDoc)
	doc[jsonldProof] = p.Options()

	canonicalDoc, err := suite.GetCanonicalDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("canonicalize document: %w", err)
	}

	return suite.GetDigest(canonicalDoc), nil
}

// ProofOptionsWithContext returns a copy of proofOptions carrying the document context, unless the
// options define their own.
func ProofOptionsWithContext(jsonldDoc, proofOptions map[string]interface{}) map[string]interface{} {
	options := make(map[string]interface{}, len(proofOptions)+1)

	for k, v := range proofOptions {
		options[k] = v
	}

	// in order to generate canonical form we need context
	// if context is not passed, use document's context
	if _, ok := options[jsonldContext]; !ok {
		if docContext, ok := jsonldDoc[jsonldContext]; ok {
			options[jsonldContext] = docContext
		}
	}

	return options
}

func prepareCanonicalProofOptions(suite signatureSuite, jsonldDoc,
	proofOptions map[string]interface{}) ([]byte, error) {
	canonical, err := suite.GetCanonicalDocument(ProofOptionsWithContext(jsonldDoc, proofOptions))
	if err != nil {
		return nil, fmt.Errorf("canonicalize proof options: %w", err)
	}

	return canonical, nil
}
