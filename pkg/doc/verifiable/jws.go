/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	josejwt "github.com/go-jose/go-jose/v3/jwt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

type jwsHeader struct {
	Alg string `json:"alg"`
	Kid string `json:"kid,omitempty"`
	Typ string `json:"typ"`
}

// SignJWT encodes doc as a JWT credential (or presentation) signed by s. The kid header is the verification
// method, the registered claims are taken from the document. The signer algorithm must have a JWS form,
// BBS+ signers are rejected.
func (i *Issuer) SignJWT(ctx context.Context, doc map[string]interface{}, s api.Signer,
	opts SignOptions) (string, error) {
	const op = "sign JWT"

	if err := ctx.Err(); err != nil {
		return "", api.NewError(api.SigningError, op, err)
	}

	if s == nil {
		return "", api.Errorf(api.SigningError, op, "signer is missing")
	}

	if _, ok := jwtAlgorithmFamily(s.Alg()); !ok {
		return "", api.Errorf(api.SigningError, op, "algorithm %s has no JWS form", s.Alg())
	}

	if opts.VerificationMethod == "" {
		return "", api.Errorf(api.SigningError, op, "verification method is missing")
	}

	issuedAt := i.opts.clock()
	if opts.Created != nil {
		issuedAt = *opts.Created
	}

	claims, err := jwtClaims(doc, opts, issuedAt)
	if err != nil {
		return "", api.NewError(api.DocumentMalformed, op, err)
	}

	start := i.opts.clock()

	token, err := signJWT(claims, opts.VerificationMethod, s)

	i.opts.observeSign(jwtProofType(s.Alg()), err, start)

	if err != nil {
		return "", api.WrapIfUntyped(api.SigningError, op, err)
	}

	return token, nil
}

func signJWT(claims *JWTClaims, kid string, s api.Signer) (string, error) {
	header, err := json.Marshal(&jwsHeader{Alg: s.Alg(), Kid: kid, Typ: "JWT"})
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(payload)

	signature, err := s.Sign([]byte(signingInput))
	if err != nil {
		return "", api.NewError(api.SigningError, "sign JWT", err)
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

func jwtClaims(doc map[string]interface{}, opts SignOptions, issuedAt time.Time) (*JWTClaims, error) {
	claims := &JWTClaims{}

	body := maphelpers.CopyMap(doc)
	delete(body, "proof")

	if isPresentation(doc) {
		claims.VP = body
		claims.Issuer = safeStringValue(doc[jsonFldHolder])
		claims.Nonce = opts.Challenge

		if opts.Domain != "" {
			claims.Audience = josejwt.Audience{opts.Domain}
		}
	} else {
		claims.VC = body
		claims.Issuer = issuerID(doc)

		if subject, ok := doc[jsonFldSubject].(map[string]interface{}); ok {
			claims.Subject = safeStringValue(subject[jsonFldID])
		}

		from, _, err := timeField(doc, jsonFldValidFrom, jsonFldIssued)
		if err != nil {
			return nil, err
		}

		if from != nil {
			claims.NotBefore = josejwt.NewNumericDate(*from)
		}

		until, _, err := timeField(doc, jsonFldValidUntil, jsonFldExpired)
		if err != nil {
			return nil, err
		}

		if until != nil {
			claims.Expiry = josejwt.NewNumericDate(*until)
		}
	}

	claims.ID = safeStringValue(doc[jsonFldID])

	claims.IssuedAt = josejwt.NewNumericDate(issuedAt)

	if claims.Issuer == "" && claims.VC != nil {
		return nil, fmt.Errorf("credential has no issuer")
	}

	return claims, nil
}
