/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"errors"
	"fmt"
	"time"

	afgotime "github.com/hyperledger/aries-vcproof/pkg/doc/util/time"
)

// Document member names.
const (
	jsonFldContext     = "@context"
	jsonFldID          = "id"
	jsonFldType        = "type"
	jsonFldIssuer      = "issuer"
	jsonFldHolder      = "holder"
	jsonFldSubject     = "credentialSubject"
	jsonFldIssued      = "issuanceDate"
	jsonFldValidFrom   = "validFrom"
	jsonFldExpired     = "expirationDate"
	jsonFldValidUntil  = "validUntil"
	jsonFldStatus      = "credentialStatus"
	jsonFldCredentials = "verifiableCredential"
	vpType             = "VerifiablePresentation"
)

func safeStringValue(v interface{}) string {
	if v == nil {
		return ""
	}

	s, ok := v.(string)
	if !ok {
		return ""
	}

	return s
}

func stringSlice(values []interface{}) ([]string, error) {
	s := make([]string, len(values))

	for i := range values {
		t, valid := values[i].(string)
		if !valid {
			return nil, errors.New("array element is not a string")
		}

		s[i] = t
	}

	return s, nil
}

// decodeType decodes raw type(s).
//
// type can be defined as a single string value or array of strings.
func decodeType(t interface{}) ([]string, error) {
	switch rType := t.(type) {
	case string:
		return []string{rType}, nil
	case []interface{}:
		return stringSlice(rType)
	case []string:
		return rType, nil
	default:
		return nil, errors.New("type must be a string or an array of strings")
	}
}

func hasType(doc map[string]interface{}, typ string) bool {
	types, err := decodeType(doc[jsonFldType])
	if err != nil {
		return false
	}

	for _, t := range types {
		if t == typ {
			return true
		}
	}

	return false
}

// isPresentation reports whether the document is a Verifiable Presentation.
func isPresentation(doc map[string]interface{}) bool {
	return hasType(doc, vpType)
}

// issuerID returns the id of the issuer, which is either a string or an object with an id.
func issuerID(doc map[string]interface{}) string {
	switch issuer := doc[jsonFldIssuer].(type) {
	case string:
		return issuer
	case map[string]interface{}:
		return safeStringValue(issuer[jsonFldID])
	default:
		return ""
	}
}

// timeField returns the first of the named timestamps present in the document.
func timeField(doc map[string]interface{}, names ...string) (*time.Time, string, error) {
	for _, name := range names {
		raw, ok := doc[name]
		if !ok || raw == nil {
			continue
		}

		s, ok := raw.(string)
		if !ok {
			return nil, name, fmt.Errorf("%s must be a string", name)
		}

		tw, err := afgotime.ParseTimeWrapper(s)
		if err != nil {
			return nil, name, fmt.Errorf("parse %s: %w", name, err)
		}

		return &tw.Time, name, nil
	}

	return nil, "", nil
}
