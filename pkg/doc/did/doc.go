/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package did parses DID documents into the verification methods and verification relationships
// proof verification needs.
package did

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"github.com/hyperledger/aries-vcproof/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

const (
	// ContextV1 of the DID document.
	ContextV1 = "https://www.w3.org/ns/did/v1"
	// ContextV1Old is the pre-recommendation DID context.
	ContextV1Old = "https://w3id.org/did/v1"

	jsonldID                 = "id"
	jsonldVerificationMethod = "verificationMethod"
	jsonldPublicKey          = "publicKey"
)

// Verification relationships, in the order they are read from a document.
//
//nolint:gochecknoglobals
var relationships = []string{
	api.Authentication,
	api.AssertionMethod,
	api.KeyAgreement,
	api.CapabilityInvocation,
	api.CapabilityDelegation,
}

//nolint:gochecknoglobals
var schemaLoader = gojsonschema.NewStringLoader(schemaV1)

// DID is parsed according to the generic syntax: https://w3c.github.io/did-core/#generic-did-syntax
type DID struct {
	Scheme           string // Scheme is always "did"
	Method           string // Method is the specific DID methods
	MethodSpecificID string // MethodSpecificID is the unique ID computed or assigned by the DID method
}

// String returns a string representation of this DID.
func (d *DID) String() string {
	return fmt.Sprintf("%s:%s:%s", d.Scheme, d.Method, d.MethodSpecificID)
}

// Parse parses the string according to the generic DID syntax.
// See https://w3c.github.io/did-core/#generic-did-syntax.
func Parse(did string) (*DID, error) {
	const idchar = `a-zA-Z0-9-_\.%`
	regex := fmt.Sprintf(`^did:[a-z0-9]+:(:+|[:%s]+)*[%s]+$`, idchar, idchar)

	r, err := regexp.Compile(regex)
	if err != nil {
		return nil, fmt.Errorf("failed to compile regex=%s (this should not have happened!). %w", regex, err)
	}

	if !r.MatchString(did) {
		return nil, fmt.Errorf(
			"invalid did: %s. Make sure it conforms to the generic DID syntax: https://w3c.github.io/did-core/#generic-did-syntax", //nolint:lll
			did)
	}

	parts := strings.SplitN(did, ":", 3)

	return &DID{
		Scheme:           "did",
		Method:           parts[1],
		MethodSpecificID: parts[2],
	}, nil
}

// DIDURL is a DID with an optional fragment, the form verification method ids take.
type DIDURL struct {
	DID
	Fragment string
}

// ParseDIDURL parses a DID URL of the form did:method:id[#fragment]. Paths and queries are not supported.
func ParseDIDURL(didURL string) (*DIDURL, error) {
	didPart, fragment, _ := strings.Cut(didURL, "#")

	did, err := Parse(didPart)
	if err != nil {
		return nil, err
	}

	return &DIDURL{DID: *did, Fragment: fragment}, nil
}

// Doc is a DID document reduced to its verification material.
type Doc struct {
	Context            []string
	ID                 string
	Controller         []string
	VerificationMethod []VerificationMethod
	// Relationships maps a verification relationship to the ids of the methods it references.
	Relationships map[string][]string
}

// VerificationMethod is a verification method of a DID document.
type VerificationMethod struct {
	ID         string
	Type       string
	Controller string

	Value               []byte
	JWK                 *jwk.JWK
	BlockchainAccountID string
}

type rawVerificationMethod struct {
	ID                  string                 `json:"id"`
	Type                string                 `json:"type"`
	Controller          string                 `json:"controller"`
	PublicKeyBase58     string                 `json:"publicKeyBase58"`
	PublicKeyMultibase  string                 `json:"publicKeyMultibase"`
	PublicKeyHex        string                 `json:"publicKeyHex"`
	PublicKeyPem        string                 `json:"publicKeyPem"`
	PublicKeyJwk        map[string]interface{} `json:"publicKeyJwk"`
	BlockchainAccountID string                 `json:"blockchainAccountId"`
}

// ParseDocument creates an instance of Doc by reading a JSON document from bytes.
func ParseDocument(data []byte) (*Doc, error) {
	var raw map[string]interface{}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "JSON unmarshalling of DID document bytes failed")
	}

	if raw == nil {
		return nil, errors.New("document payload is not provided")
	}

	return ParseDocumentMap(raw)
}

// ParseDocumentMap creates an instance of Doc from a decoded JSON document.
func ParseDocumentMap(raw map[string]interface{}) (*Doc, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	doc := &Doc{
		Context:       contextEntry(raw["@context"]),
		ID:            stringEntry(raw[jsonldID]),
		Controller:    stringOrArray(raw["controller"]),
		Relationships: make(map[string][]string),
	}

	rawMethods := append(mapArray(raw[jsonldVerificationMethod]), mapArray(raw[jsonldPublicKey])...)

	for _, rawVM := range rawMethods {
		vm, err := doc.parseVerificationMethod(rawVM)
		if err != nil {
			return nil, errors.Wrap(err, "parse verification method")
		}

		doc.VerificationMethod = append(doc.VerificationMethod, *vm)
	}

	for _, rel := range relationships {
		entries, ok := raw[rel].([]interface{})
		if !ok {
			continue
		}

		for _, entry := range entries {
			id, err := doc.parseRelationshipEntry(entry)
			if err != nil {
				return nil, errors.Wrapf(err, "parse %s", rel)
			}

			doc.Relationships[rel] = append(doc.Relationships[rel], id)
		}
	}

	return doc, nil
}

// parseRelationshipEntry returns the id of a referenced method, adding embedded methods to the document.
func (doc *Doc) parseRelationshipEntry(entry interface{}) (string, error) {
	switch e := entry.(type) {
	case string:
		return doc.absoluteID(e), nil
	case map[string]interface{}:
		vm, err := doc.parseVerificationMethod(e)
		if err != nil {
			return "", err
		}

		if _, ok := doc.lookup(vm.ID); !ok {
			doc.VerificationMethod = append(doc.VerificationMethod, *vm)
		}

		return vm.ID, nil
	default:
		return "", fmt.Errorf("relationship entry must be a string or an object, got %T", entry)
	}
}

func (doc *Doc) parseVerificationMethod(m map[string]interface{}) (*VerificationMethod, error) {
	raw := &rawVerificationMethod{}

	if err := maphelpers.Decode(m, raw); err != nil {
		return nil, errors.Wrap(err, "decode verification method")
	}

	if raw.ID == "" || raw.Type == "" {
		return nil, errors.New("verification method id and type are required")
	}

	vm := &VerificationMethod{
		ID:                  doc.absoluteID(raw.ID),
		Type:                raw.Type,
		Controller:          raw.Controller,
		BlockchainAccountID: raw.BlockchainAccountID,
	}

	if vm.Controller == "" {
		vm.Controller = doc.ID
	}

	if err := decodeKeyMaterial(vm, raw); err != nil {
		return nil, errors.Wrapf(err, "verification method %s", vm.ID)
	}

	return vm, nil
}

// decodeKeyMaterial reads every key representation present. Holding more than one is reported at resolution.
func decodeKeyMaterial(vm *VerificationMethod, raw *rawVerificationMethod) error {
	var err error

	switch {
	case raw.PublicKeyBase58 != "":
		vm.Value = base58.Decode(raw.PublicKeyBase58)
		if len(vm.Value) == 0 {
			return errors.New("invalid publicKeyBase58")
		}
	case raw.PublicKeyMultibase != "":
		vm.Value, err = DecodeMultibaseKey(raw.PublicKeyMultibase)
		if err != nil {
			return err
		}
	case raw.PublicKeyHex != "":
		vm.Value, err = hex.DecodeString(raw.PublicKeyHex)
		if err != nil {
			return errors.Wrap(err, "decode public key hex failed")
		}
	case raw.PublicKeyPem != "":
		vm.Value, err = decodePEM(raw.PublicKeyPem)
		if err != nil {
			return err
		}
	}

	if raw.PublicKeyJwk != nil {
		jwkBytes, err := json.Marshal(raw.PublicKeyJwk)
		if err != nil {
			return errors.Wrap(err, "marshal publicKeyJwk")
		}

		vm.JWK = &jwk.JWK{}

		if err = json.Unmarshal(jwkBytes, vm.JWK); err != nil {
			return errors.Wrap(err, "decode publicKeyJwk")
		}
	}

	return nil
}

// Multicodec prefixes of public keys.
//
//nolint:gochecknoglobals
var multicodecPrefixes = [][]byte{
	{0xed, 0x01}, // ed25519-pub
	{0xe7, 0x01}, // secp256k1-pub
	{0xeb, 0x01}, // bls12_381-g2-pub
	{0x80, 0x24}, // p256-pub
}

// DecodeMultibaseKey decodes a publicKeyMultibase value. A multicodec key type prefix is removed.
func DecodeMultibaseKey(value string) ([]byte, error) {
	_, key, err := multibase.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "decode publicKeyMultibase")
	}

	for _, prefix := range multicodecPrefixes {
		if len(key) > len(prefix) && key[0] == prefix[0] && key[1] == prefix[1] {
			return key[len(prefix):], nil
		}
	}

	return key, nil
}

// decodePEM returns the key of a PEM block. RSA keys are returned in PKCS#1 form.
func decodePEM(value string) ([]byte, error) {
	block, _ := pem.Decode([]byte(value))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}

	if block.Type != "PUBLIC KEY" {
		return block.Bytes, nil
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse PKIX public key")
	}

	if rsaKey, ok := key.(*rsa.PublicKey); ok {
		return x509.MarshalPKCS1PublicKey(rsaKey), nil
	}

	return block.Bytes, nil
}

func (doc *Doc) absoluteID(id string) string {
	if strings.HasPrefix(id, "#") {
		return doc.ID + id
	}

	return id
}

func (doc *Doc) lookup(id string) (*VerificationMethod, bool) {
	for i := range doc.VerificationMethod {
		if doc.VerificationMethod[i].ID == id {
			return &doc.VerificationMethod[i], true
		}
	}

	return nil, false
}

func validate(raw map[string]interface{}) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return errors.Wrap(err, "validation of DID doc failed")
	}

	if !result.Valid() {
		errMsg := "did document not valid:\n"
		for _, desc := range result.Errors() {
			errMsg += fmt.Sprintf("- %s\n", desc)
		}

		return errors.New(errMsg)
	}

	return nil
}

func stringEntry(entry interface{}) string {
	s, _ := entry.(string) //nolint:errcheck

	return s
}

func stringOrArray(entry interface{}) []string {
	switch e := entry.(type) {
	case string:
		return []string{e}
	case []interface{}:
		var values []string

		for _, v := range e {
			if s, ok := v.(string); ok {
				values = append(values, s)
			}
		}

		return values
	default:
		return nil
	}
}

func contextEntry(entry interface{}) []string {
	return stringOrArray(entry)
}

func mapArray(entry interface{}) []map[string]interface{} {
	entries, ok := entry.([]interface{})
	if !ok {
		return nil
	}

	var maps []map[string]interface{}

	for _, e := range entries {
		if m, ok := e.(map[string]interface{}); ok {
			maps = append(maps, m)
		}
	}

	return maps
}

const schemaV1 = `
{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": [
    "id"
  ],
  "properties": {
    "id": {
      "type": "string",
      "pattern": "^did:"
    },
    "verificationMethod": {
      "type": "array",
      "items": {
        "$ref": "#/definitions/verificationMethod"
      }
    },
    "publicKey": {
      "type": "array",
      "items": {
        "$ref": "#/definitions/verificationMethod"
      }
    },
    "authentication": {
      "$ref": "#/definitions/relationship"
    },
    "assertionMethod": {
      "$ref": "#/definitions/relationship"
    },
    "keyAgreement": {
      "$ref": "#/definitions/relationship"
    },
    "capabilityInvocation": {
      "$ref": "#/definitions/relationship"
    },
    "capabilityDelegation": {
      "$ref": "#/definitions/relationship"
    }
  },
  "definitions": {
    "verificationMethod": {
      "type": "object",
      "required": [
        "id",
        "type"
      ],
      "properties": {
        "id": {
          "type": "string"
        },
        "type": {
          "type": "string"
        },
        "controller": {
          "type": "string"
        }
      }
    },
    "relationship": {
      "type": "array",
      "items": {
        "anyOf": [
          {
            "type": "string"
          },
          {
            "$ref": "#/definitions/verificationMethod"
          }
        ]
      }
    }
  }
}
`
