/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
)

const securedDocumentSchema = `
{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": [
    "type",
    "proof"
  ],
  "properties": {
    "@context": {
      "anyOf": [
        {
          "type": "string"
        },
        {
          "type": "object"
        },
        {
          "type": "array",
          "minItems": 1
        }
      ]
    },
    "type": {
      "anyOf": [
        {
          "type": "string"
        },
        {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "string"
          }
        }
      ]
    },
    "proof": {
      "anyOf": [
        {
          "$ref": "#/definitions/proof"
        },
        {
          "type": "array",
          "minItems": 1,
          "items": {
            "$ref": "#/definitions/proof"
          }
        }
      ]
    }
  },
  "definitions": {
    "proof": {
      "type": "object",
      "required": [
        "type"
      ],
      "properties": {
        "type": {
          "type": "string"
        }
      }
    }
  }
}
`

//nolint:gochecknoglobals
var securedDocumentSchemaLoader = gojsonschema.NewStringLoader(securedDocumentSchema)

// validateStructure checks the document shape before any proof work: a type, one proof object or a non-empty
// array of them, and a @context when a linked-data suite is used.
// The proof objects are returned unparsed: a malformed proof fails on its own.
func (v *Verifier) validateStructure(doc map[string]interface{}) ([]map[string]interface{}, error) {
	const op = "validate structure"

	result, err := gojsonschema.Validate(securedDocumentSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	if !result.Valid() {
		return nil, api.Errorf(api.DocumentMalformed, op, "%s", describeSchemaValidationError(result, "document"))
	}

	proofs, err := proof.GetRawProofs(doc)
	if err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	if _, ok := doc[jsonFldContext]; ok {
		return proofs, nil
	}

	for _, p := range proofs {
		proofType := safeStringValue(p[jsonFldType])

		desc, err := v.opts.registry.Descriptor(proofType)
		if err != nil {
			continue
		}

		if desc.Mode == canonicalizer.ModeLinkedData {
			return nil, api.Errorf(api.DocumentMalformed, op, "@context is required by %s", proofType)
		}
	}

	return proofs, nil
}

func describeSchemaValidationError(result *gojsonschema.Result, what string) string {
	errMsg := what + " is not valid:\n"
	for _, desc := range result.Errors() {
		errMsg += fmt.Sprintf("- %s\n", desc)
	}

	return errMsg
}
