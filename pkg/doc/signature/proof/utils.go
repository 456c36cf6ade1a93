/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"errors"
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

// ErrProofNotFound is returned when proof is not found.
var ErrProofNotFound = errors.New("proof not found")

// GetProofs gets proof(s) from LD Object in document order.
func GetProofs(jsonLdObject map[string]interface{}) ([]*Proof, error) {
	entries, err := GetRawProofs(jsonLdObject)
	if err != nil {
		return nil, err
	}

	result := make([]*Proof, 0, len(entries))

	for i, emap := range entries {
		proof, err := NewProof(emap)
		if err != nil {
			return nil, fmt.Errorf("proof %d: %w", i, err)
		}

		result = append(result, proof)
	}

	return result, nil
}

// GetRawProofs returns the proof objects of LD Object without parsing them.
func GetRawProofs(jsonLdObject map[string]interface{}) ([]map[string]interface{}, error) {
	entry, ok := jsonLdObject[jsonldProof]
	if !ok || entry == nil {
		return nil, ErrProofNotFound
	}

	var typedEntry []interface{}

	switch te := entry.(type) {
	case []interface{}:
		typedEntry = te
	case map[string]interface{}:
		typedEntry = []interface{}{te}
	case []map[string]interface{}:
		for _, p := range te {
			typedEntry = append(typedEntry, p)
		}
	default:
		return nil, fmt.Errorf("%w: expecting []interface{} or map[string]interface{}, got %T", ErrMalformedProof, entry)
	}

	if len(typedEntry) == 0 {
		return nil, ErrProofNotFound
	}

	result := make([]map[string]interface{}, 0, len(typedEntry))

	for _, e := range typedEntry {
		emap, ok := e.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: proof is not a JSON object", ErrMalformedProof)
		}

		result = append(result, emap)
	}

	return result, nil
}

// AddProof adds a proof to LD Object, after the proofs it already holds.
func AddProof(jsonLdObject map[string]interface{}, proof *Proof) error {
	var proofs []interface{}

	entry, exists := jsonLdObject[jsonldProof]

	if exists && entry != nil {
		switch p := entry.(type) {
		case []interface{}:
			proofs = append(proofs, p...)
		case map[string]interface{}:
			proofs = append(proofs, p)
		default:
			return fmt.Errorf("%w: expecting []interface{} or map[string]interface{}, got %T", ErrMalformedProof, entry)
		}
	}

	proofs = append(proofs, proof.JSONLdObject())
	jsonLdObject[jsonldProof] = proofs

	return nil
}

// GetCopyWithoutProof gets deep copy of JSON LD Object without proofs (signatures).
func GetCopyWithoutProof(jsonLdObject map[string]interface{}) map[string]interface{} {
	if jsonLdObject == nil {
		return nil
	}

	dest := make(map[string]interface{}, len(jsonLdObject))

	for k, v := range jsonLdObject {
		if k != jsonldProof {
			dest[k] = v
		}
	}

	return maphelpers.CopyMap(dest)
}
