/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	josejwt "github.com/go-jose/go-jose/v3/jwt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

// JWTClaims are the claims of a JWT encoded credential ("vc" claim) or presentation ("vp" claim).
type JWTClaims struct {
	josejwt.Claims

	// Nonce binds a presentation to a challenge.
	Nonce string `json:"nonce,omitempty"`

	VC map[string]interface{} `json:"vc,omitempty"`
	VP map[string]interface{} `json:"vp,omitempty"`
}

type parsedJWT struct {
	alg          string
	kid          string
	claims       *JWTClaims
	doc          map[string]interface{}
	signingInput []byte
	signature    []byte
}

// DecodeJWT decodes a JWT encoded credential or presentation into the document shape used by linked-data proofs.
// The registered claims refine the document: iss is the issuer (holder of a presentation), jti the id,
// nbf (or iat) the issuance date, exp the expiration date and sub the subject id. The signature is not checked.
func DecodeJWT(token string) (map[string]interface{}, error) {
	parsed, err := parseJWT(token)
	if err != nil {
		return nil, err
	}

	return parsed.doc, nil
}

func parseJWT(token string) (*parsedJWT, error) {
	const op = "decode JWT"

	tok, err := josejwt.ParseSigned(token)
	if err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	if len(tok.Headers) != 1 {
		return nil, api.Errorf(api.DocumentMalformed, op, "expected one signature, got %d", len(tok.Headers))
	}

	claims := &JWTClaims{}

	if err = tok.UnsafeClaimsWithoutVerification(claims); err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	doc, err := claims.document()
	if err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	parts := strings.Split(token, ".")

	signature, err := base64.RawURLEncoding.DecodeString(parts[len(parts)-1])
	if err != nil {
		return nil, api.NewError(api.DocumentMalformed, op, err)
	}

	return &parsedJWT{
		alg:          tok.Headers[0].Algorithm,
		kid:          tok.Headers[0].KeyID,
		claims:       claims,
		doc:          doc,
		signingInput: []byte(parts[0] + "." + parts[1]),
		signature:    signature,
	}, nil
}

func (c *JWTClaims) isPresentation() bool {
	return c.VP != nil
}

func (c *JWTClaims) document() (map[string]interface{}, error) {
	if c.VP != nil {
		vp := maphelpers.CopyMap(c.VP)

		if c.Issuer != "" {
			vp[jsonFldHolder] = c.Issuer
		}

		if c.ID != "" {
			vp[jsonFldID] = c.ID
		}

		return vp, nil
	}

	if c.VC == nil {
		return nil, errors.New("neither vc nor vp claim is present")
	}

	vc := maphelpers.CopyMap(c.VC)

	if c.Issuer != "" {
		refineIssuer(vc, c.Issuer)
	}

	if c.ID != "" {
		vc[jsonFldID] = c.ID
	}

	switch {
	case c.NotBefore != nil:
		vc[jsonFldIssued] = c.NotBefore.Time().UTC().Format(time.RFC3339)
	case c.IssuedAt != nil:
		vc[jsonFldIssued] = c.IssuedAt.Time().UTC().Format(time.RFC3339)
	}

	if c.Expiry != nil {
		vc[jsonFldExpired] = c.Expiry.Time().UTC().Format(time.RFC3339)
	}

	if subject, ok := vc[jsonFldSubject].(map[string]interface{}); ok && c.Subject != "" {
		subject[jsonFldID] = c.Subject
	}

	return vc, nil
}

// refineIssuer sets the issuer id, which is either the issuer string or the id of the issuer object.
func refineIssuer(vc map[string]interface{}, iss string) {
	if issuer, ok := vc[jsonFldIssuer].(map[string]interface{}); ok {
		issuer[jsonFldID] = iss

		return
	}

	vc[jsonFldIssuer] = iss
}

// VerifyJWT verifies a JWT encoded credential or presentation: the signature against the key resolved from the
// kid header, then the same temporal, status and presentation checks as Verify.
func (v *Verifier) VerifyJWT(ctx context.Context, token string, policy *Policy) (*Result, error) {
	if policy == nil {
		policy = &Policy{}
	}

	return v.verifyJWT(ctx, token, policy)
}

func (v *Verifier) verifyJWT(ctx context.Context, token string, policy *Policy) (*Result, error) {
	parsed, err := parseJWT(token)
	if err != nil {
		return nil, err
	}

	now := v.now(policy)
	presentation := parsed.claims.isPresentation()

	pr := ProofResult{
		Type:               jwtProofType(parsed.alg),
		VerificationMethod: parsed.kid,
		Required:           true,
	}

	start := v.opts.clock()
	pr.Err = v.runJWTPipeline(ctx, parsed, policy, now)
	v.opts.observeVerify(pr.Type, pr.Err, start)

	if pr.Err != nil {
		logger.Warnf("JWT signed by %s failed: %v", parsed.kid, pr.Err)
	}

	r := &Result{ProofResults: []ProofResult{pr}}
	r.addCheck(CheckProof)
	r.checkNamedRequirements(policy)

	if pr.Valid() {
		if err := v.checkDocument(ctx, parsed.doc, policy, now, r); err != nil {
			r.failPassed(err)
		}
	}

	if presentation {
		r.Credentials = v.verifyCredentials(ctx, parsed.doc, policy)
	}

	r.evaluate(policy)

	return r, nil
}

func (v *Verifier) runJWTPipeline(ctx context.Context, parsed *parsedJWT, policy *Policy, now time.Time) error {
	const op = "verify JWT"

	if err := checkJWTOptions(parsed.claims, policy, now); err != nil {
		return err
	}

	family, ok := jwtAlgorithmFamily(parsed.alg)
	if !ok {
		return api.Errorf(api.UnsupportedSuite, op, "JWT algorithm %s is not supported", parsed.alg)
	}

	if parsed.kid == "" {
		return api.Errorf(api.DocumentMalformed, op, "kid header is missing")
	}

	ctx, cancel := v.proofContext(ctx, policy)
	defer cancel()

	vm, err := v.docVerifier.Resolve(ctx, parsed.kid)
	if err != nil {
		return err
	}

	if err = suite.CheckKey(v.jwtDescriptor(parsed.alg, family), vm); err != nil {
		return err
	}

	pkv := verifier.NewPublicKeyVerifier(signatureVerifierFor(family))

	if err = pkv.Verify(vm.PublicKey(), parsed.signingInput, parsed.signature); err != nil {
		return api.NewError(api.SignatureInvalid, op, err)
	}

	purpose := jwtProofPurpose(parsed.claims)

	if policy.CheckProofPurpose && !vm.HasRelationship(purpose) {
		return api.Errorf(api.PolicyViolation, "check proof purpose",
			"%s is not authorized for %s by its controller", vm.ID, purpose)
	}

	return nil
}

func checkJWTOptions(claims *JWTClaims, policy *Policy, now time.Time) error {
	const op = "check JWT claims"

	if claims.isPresentation() {
		if policy.Challenge != "" && claims.Nonce != policy.Challenge {
			return api.Errorf(api.PolicyViolation, op, "nonce %q does not match the challenge", claims.Nonce)
		}

		if policy.Domain != "" && !claims.Audience.Contains(policy.Domain) {
			return api.Errorf(api.PolicyViolation, op, "audience %v does not contain %s", claims.Audience,
				policy.Domain)
		}
	}

	if policy.ProofPurpose != "" && jwtProofPurpose(claims) != policy.ProofPurpose {
		return api.Errorf(api.PolicyViolation, op, "proof purpose %s, expected %s", jwtProofPurpose(claims),
			policy.ProofPurpose)
	}

	if claims.IssuedAt != nil && claims.IssuedAt.Time().After(now) {
		return api.Errorf(api.PolicyViolation, op, "JWT issued in the future")
	}

	return nil
}

func jwtProofPurpose(claims *JWTClaims) string {
	if claims.isPresentation() {
		return api.Authentication
	}

	return api.AssertionMethod
}

func jwtProofType(alg string) string {
	return fmt.Sprintf("JWT(%s)", alg)
}

// jwtAlgorithmFamily maps a JWS algorithm onto the suite family producing it. BBS+ has no JWS algorithm.
func jwtAlgorithmFamily(alg string) (suite.Family, bool) {
	for _, f := range []suite.Family{
		suite.FamilyEdDSA, suite.FamilyECDSASecp256k1, suite.FamilyECDSASecp256k1Recovery,
		suite.FamilyECDSAP256, suite.FamilyRSAPSS, suite.FamilyRSAPKCS1,
	} {
		if f.Algorithm() == alg {
			return f, true
		}
	}

	return 0, false
}

func signatureVerifierFor(family suite.Family) verifier.SignatureVerifier {
	switch family {
	case suite.FamilyEdDSA:
		return verifier.NewEd25519SignatureVerifier()
	case suite.FamilyECDSASecp256k1:
		return verifier.NewECDSASecp256k1SignatureVerifier()
	case suite.FamilyECDSASecp256k1Recovery:
		return verifier.NewECDSASecp256k1RecoverySignatureVerifier()
	case suite.FamilyECDSAP256:
		return verifier.NewECDSAES256SignatureVerifier()
	case suite.FamilyRSAPSS:
		return verifier.NewRSAPS256SignatureVerifier()
	default:
		return verifier.NewRSARS256SignatureVerifier()
	}
}

// jwtDescriptor describes JWT signatures of the family: the accepted key types are those of the registered
// suites of the same family.
func (v *Verifier) jwtDescriptor(alg string, family suite.Family) *suite.Descriptor {
	d := &suite.Descriptor{
		ID:           jwtProofType(alg),
		Family:       family,
		Digest:       suite.DigestSHA256,
		JWSAlgorithm: alg,
	}

	for _, id := range v.opts.registry.IDs() {
		sd, err := v.opts.registry.Descriptor(id)
		if err != nil || sd.Family != family {
			continue
		}

		for _, kt := range sd.KeyTypes {
			if !contains(d.KeyTypes, kt) {
				d.KeyTypes = append(d.KeyTypes, kt)
			}
		}
	}

	return d
}
