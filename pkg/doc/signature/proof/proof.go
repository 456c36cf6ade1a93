/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package proof implements the linked-data proof model and the construction of the data proofs sign.
package proof

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/multiformats/go-multibase"

	afgotime "github.com/hyperledger/aries-vcproof/pkg/doc/util/time"
)

const (
	// jsonldType is key for proof type.
	jsonldType = "type"
	// jsonldID is key for proof id.
	jsonldID = "id"
	// jsonldCreator is key for creator.
	jsonldCreator = "creator"
	// jsonldCreated is key for time proof created.
	jsonldCreated = "created"
	// jsonldExpires is key for time proof expires.
	jsonldExpires = "expires"
	// jsonldDomain is key for domain name.
	jsonldDomain = "domain"
	// jsonldNonce is key for nonce.
	jsonldNonce = "nonce"
	// jsonldProofValue is key for proof value.
	jsonldProofValue = "proofValue"
	// jsonldProofPurpose is a purpose of proof.
	jsonldProofPurpose = "proofPurpose"
	// jsonldJWSProof is key for JWS proof.
	jsonldJWS = "jws"
	// jsonldVerificationMethod is a key for verification method.
	jsonldVerificationMethod = "verificationMethod"
	// jsonldChallenge is a key for challenge.
	jsonldChallenge = "challenge"
	// jsonldPublicKeyJwk is a key for a JWK embedded into the proof.
	jsonldPublicKeyJwk = "publicKeyJwk"
)

// Proof value encodings.
const (
	ed25519Signature2020    = "Ed25519Signature2020"
	jcsEd25519Signature2020 = "JcsEd25519Signature2020"
	bbsBlsSignature2020     = "BbsBlsSignature2020"
	bbsBlsSignatureProof    = "BbsBlsSignatureProof2020"
)

// ErrMalformedProof is returned when a proof object cannot be parsed.
var ErrMalformedProof = errors.New("malformed proof")

// SignatureRepresentation defines a representation of signature value.
type SignatureRepresentation int

const (
	// SignatureProofValue uses "proofValue" field in a Proof to put/read a digital signature.
	SignatureProofValue SignatureRepresentation = iota

	// SignatureJWS uses "jws" field in a Proof as an element for representation of detached JSON Web Signatures.
	SignatureJWS
)

func (r SignatureRepresentation) String() string {
	if r == SignatureJWS {
		return "jws"
	}

	return "proofValue"
}

// Proof is cryptographic proof of the integrity of a document.
type Proof struct {
	// Context is the proof's own @context. It stands in for the document context when canonicalizing the
	// proof options.
	Context                 interface{}
	ID                      string
	Type                    string
	Created                 *afgotime.TimeWrapper
	Expires                 *afgotime.TimeWrapper
	Creator                 string
	VerificationMethod      string
	ProofValue              []byte
	JWS                     string
	ProofPurpose            string
	Domain                  string
	Nonce                   []byte
	Challenge               string
	PublicKeyJwk            map[string]interface{}
	SignatureRepresentation SignatureRepresentation

	// members of the parsed proof object that have no field above
	extra map[string]interface{}
}

// NewProof creates new proof from its JSON-LD object.
func NewProof(emap map[string]interface{}) (*Proof, error) {
	proofType := stringEntry(emap[jsonldType])
	if proofType == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedProof)
	}

	created, err := timeEntry(emap, jsonldCreated)
	if err != nil {
		return nil, err
	}

	expires, err := timeEntry(emap, jsonldExpires)
	if err != nil {
		return nil, err
	}

	var (
		proofValue  []byte
		proofHolder SignatureRepresentation
		jws         string
	)

	if generalProof, ok := emap[jsonldProofValue]; ok {
		proofValue, err = DecodeProofValue(stringEntry(generalProof), proofType)
		if err != nil {
			return nil, fmt.Errorf("%w: decode proofValue: %v", ErrMalformedProof, err)
		}

		proofHolder = SignatureProofValue
	} else if jwsProof, ok := emap[jsonldJWS]; ok {
		jws = stringEntry(jwsProof)
		proofHolder = SignatureJWS
	}

	if len(proofValue) == 0 && jws == "" {
		return nil, fmt.Errorf("%w: signature is not defined", ErrMalformedProof)
	}

	var nonce []byte

	if n := stringEntry(emap[jsonldNonce]); n != "" {
		nonce, err = decodeNonce(n, proofType)
		if err != nil {
			return nil, fmt.Errorf("%w: decode nonce: %v", ErrMalformedProof, err)
		}
	}

	var publicKeyJwk map[string]interface{}

	if raw, ok := emap[jsonldPublicKeyJwk]; ok {
		publicKeyJwk, ok = raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: publicKeyJwk must be an object", ErrMalformedProof)
		}
	}

	return &Proof{
		Context:                 emap[jsonldContext],
		ID:                      stringEntry(emap[jsonldID]),
		Type:                    proofType,
		Created:                 created,
		Expires:                 expires,
		Creator:                 stringEntry(emap[jsonldCreator]),
		VerificationMethod:      stringEntry(emap[jsonldVerificationMethod]),
		ProofValue:              proofValue,
		SignatureRepresentation: proofHolder,
		JWS:                     jws,
		ProofPurpose:            stringEntry(emap[jsonldProofPurpose]),
		Domain:                  stringEntry(emap[jsonldDomain]),
		Nonce:                   nonce,
		Challenge:               stringEntry(emap[jsonldChallenge]),
		PublicKeyJwk:            publicKeyJwk,
		extra:                   extraEntries(emap),
	}, nil
}

func timeEntry(emap map[string]interface{}, key string) (*afgotime.TimeWrapper, error) {
	raw, ok := emap[key]
	if !ok || raw == nil {
		return nil, nil
	}

	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrMalformedProof, key)
	}

	t, err := afgotime.ParseTimeWrapper(s)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrMalformedProof, key, err)
	}

	return t, nil
}

func extraEntries(emap map[string]interface{}) map[string]interface{} {
	var extra map[string]interface{}

	for k, v := range emap {
		if isKnownKey(k) {
			continue
		}

		if extra == nil {
			extra = make(map[string]interface{})
		}

		extra[k] = v
	}

	return extra
}

func isKnownKey(k string) bool {
	switch k {
	case jsonldContext, jsonldID, jsonldType, jsonldCreated, jsonldExpires, jsonldCreator, jsonldVerificationMethod,
		jsonldProofValue, jsonldJWS, jsonldProofPurpose, jsonldDomain, jsonldNonce, jsonldChallenge,
		jsonldPublicKeyJwk:
		return true
	default:
		return false
	}
}

func decodeBase64(s string) ([]byte, error) {
	allEncodings := []*base64.Encoding{
		base64.RawURLEncoding, base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding,
	}

	for _, encoding := range allEncodings {
		value, err := encoding.DecodeString(s)
		if err == nil {
			return value, nil
		}
	}

	return nil, errors.New("unsupported encoding")
}

func usesMultibase(proofType string) bool {
	return proofType == ed25519Signature2020 || proofType == jcsEd25519Signature2020
}

func usesStdBase64(proofType string) bool {
	return proofType == bbsBlsSignature2020 || proofType == bbsBlsSignatureProof
}

// DecodeProofValue decodes proofValue basing on proof type.
func DecodeProofValue(s, proofType string) ([]byte, error) {
	if usesMultibase(proofType) {
		_, value, err := multibase.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("decode multibase: %w", err)
		}

		return value, nil
	}

	return decodeBase64(s)
}

// EncodeProofValue encodes proofValue basing on proof type.
func EncodeProofValue(proofValue []byte, proofType string) string {
	switch {
	case usesMultibase(proofType):
		encoded, _ := multibase.Encode(multibase.Base58BTC, proofValue) //nolint: errcheck
		return encoded
	case usesStdBase64(proofType):
		return base64.StdEncoding.EncodeToString(proofValue)
	default:
		return base64.RawURLEncoding.EncodeToString(proofValue)
	}
}

// decodeNonce decodes the nonce of a derived BBS+ proof, which is base64. Other suites treat it as an opaque string.
func decodeNonce(s, proofType string) ([]byte, error) {
	if usesStdBase64(proofType) {
		return base64.StdEncoding.DecodeString(s)
	}

	return []byte(s), nil
}

func encodeNonce(nonce []byte, proofType string) string {
	if usesStdBase64(proofType) {
		return base64.StdEncoding.EncodeToString(nonce)
	}

	return string(nonce)
}

// stringEntry.
func stringEntry(entry interface{}) string {
	if entry == nil {
		return ""
	}

	if strVal, ok := entry.(string); ok {
		return strVal
	}

	return ""
}

// JSONLdObject returns map that represents JSON LD Object.
func (p *Proof) JSONLdObject() map[string]interface{} { // nolint:gocyclo
	emap := make(map[string]interface{}, len(p.extra)+8) //nolint:gomnd

	for k, v := range p.extra {
		emap[k] = v
	}

	emap[jsonldType] = p.Type

	if p.Context != nil {
		emap[jsonldContext] = p.Context
	}

	if p.ID != "" {
		emap[jsonldID] = p.ID
	}

	if p.Creator != "" {
		emap[jsonldCreator] = p.Creator
	}

	if p.VerificationMethod != "" {
		emap[jsonldVerificationMethod] = p.VerificationMethod
	}

	if p.Created != nil {
		emap[jsonldCreated] = p.Created.FormatToString()
	}

	if p.Expires != nil {
		emap[jsonldExpires] = p.Expires.FormatToString()
	}

	if len(p.ProofValue) > 0 {
		emap[jsonldProofValue] = EncodeProofValue(p.ProofValue, p.Type)
	}

	if len(p.JWS) > 0 {
		emap[jsonldJWS] = p.JWS
	}

	if p.Domain != "" {
		emap[jsonldDomain] = p.Domain
	}

	if len(p.Nonce) > 0 {
		emap[jsonldNonce] = encodeNonce(p.Nonce, p.Type)
	}

	if p.ProofPurpose != "" {
		emap[jsonldProofPurpose] = p.ProofPurpose
	}

	if p.Challenge != "" {
		emap[jsonldChallenge] = p.Challenge
	}

	if p.PublicKeyJwk != nil {
		emap[jsonldPublicKeyJwk] = p.PublicKeyJwk
	}

	return emap
}

// Options returns the proof options: the proof object without its signature value and id.
// Additional members may be excluded, e.g. the nonce of a derived proof.
func (p *Proof) Options(exclude ...string) map[string]interface{} {
	options := p.JSONLdObject()

	delete(options, jsonldID)
	delete(options, jsonldProofValue)
	delete(options, jsonldJWS)

	for _, k := range exclude {
		delete(options, k)
	}

	return options
}

// PublicKeyID provides ID of public key to be used to independently verify the proof.
// "verificationMethod" field is checked first. If not empty, its value is returned.
// Otherwise, "creator" field is returned if not empty. Otherwise, error is returned.
func (p *Proof) PublicKeyID() (string, error) {
	if p.VerificationMethod != "" {
		return p.VerificationMethod, nil
	}

	if p.Creator != "" {
		return p.Creator, nil
	}

	return "", errors.New("no public key ID")
}
