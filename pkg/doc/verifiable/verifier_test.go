/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
)

func TestNewVerifier(t *testing.T) {
	_, err := NewVerifier(nil)
	require.EqualError(t, err, "resolver must be provided")

	v := newTestVerifier(t, newKeyRing())
	require.NotNil(t, v)

	for _, n := range []int{0, -1} {
		_, err = NewVerifier(newKeyRing(), WithCanonicalizer(sharedCanonicalizer(t)), WithConcurrency(n))
		require.EqualError(t, err, fmt.Sprintf("concurrency must be at least 1, got %d", n))

		_, err = NewIssuer(WithCanonicalizer(sharedCanonicalizer(t)), WithConcurrency(n))
		require.Error(t, err)
	}

	t.Run("one proof at a time", func(t *testing.T) {
		ring := newKeyRing()
		vmID := issuerDID + "#keys-1"
		signer := newSigningKey(t, ring, "Ed25519Signature2018", vmID)

		signed, err := newTestIssuer(t).Sign(context.Background(), newCredential(t), "Ed25519Signature2018", signer,
			signOptions(vmID))
		require.NoError(t, err)

		result, err := newTestVerifier(t, ring, WithConcurrency(1)).Verify(context.Background(), signed, nil)
		require.NoError(t, err)
		require.True(t, result.Valid, "reasons: %v", result.Reasons())
	})
}

func TestVerify_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, k := range testKeys {
		t.Run(k.suiteID, func(t *testing.T) {
			ring := newKeyRing()
			vmID := issuerDID + "#" + k.suiteID
			signer := newSigningKey(t, ring, k.suiteID, vmID)

			vc := newCredential(t)

			signed, err := issuer.Sign(context.Background(), vc, k.suiteID, signer, signOptions(vmID))
			require.NoError(t, err)
			require.NotContains(t, vc, "proof", "input document must not be modified")

			proofs, err := proof.GetProofs(signed)
			require.NoError(t, err)
			require.Len(t, proofs, 1)
			require.Equal(t, k.suiteID, proofs[0].Type)
			require.Equal(t, vmID, proofs[0].VerificationMethod)
			require.Equal(t, api.AssertionMethod, proofs[0].ProofPurpose)

			result, err := newTestVerifier(t, ring).Verify(context.Background(), jsonRoundTrip(t, signed), nil)
			require.NoError(t, err)
			require.True(t, result.Valid, "reasons: %v", result.Reasons())
			require.Len(t, result.ProofResults, 1)
			require.Equal(t, k.suiteID, result.ProofResults[0].Type)
			require.Equal(t, vmID, result.ProofResults[0].VerificationMethod)
			require.NoError(t, result.ProofResults[0].Err)
			require.Contains(t, result.Checks, CheckProof)
			require.Contains(t, result.Checks, CheckTemporal)
		})
	}
}

func TestVerify_Ed25519Signature2018Scenario(t *testing.T) {
	ring := newKeyRing()
	vmID := issuerDID + "#keys-1"
	signer := newSigningKey(t, ring, "Ed25519Signature2018", vmID)

	signed, err := newTestIssuer(t).Sign(context.Background(), newCredential(t), "Ed25519Signature2018", signer,
		signOptions(vmID))
	require.NoError(t, err)

	proofs, err := proof.GetProofs(signed)
	require.NoError(t, err)
	require.Len(t, proofs, 1)
	require.Equal(t, proof.SignatureJWS, proofs[0].SignatureRepresentation)

	alg, err := proof.GetDetachedJWSAlgorithm(proofs[0].JWS)
	require.NoError(t, err)
	require.Equal(t, api.AlgEdDSA, alg)

	v := newTestVerifier(t, ring)

	result, err := v.Verify(context.Background(), signed, &Policy{CheckProofPurpose: true})
	require.NoError(t, err)
	require.True(t, result.Valid, "reasons: %v", result.Reasons())

	t.Run("tampered subject", func(t *testing.T) {
		tampered := jsonRoundTrip(t, signed)
		subject := tampered["credentialSubject"].(map[string]interface{}) //nolint:forcetypeassert
		subject["degree"].(map[string]interface{})["name"] = "Master of Arts" //nolint:forcetypeassert

		result, err := v.Verify(context.Background(), tampered, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.SignatureInvalid, result.ProofResults[0].Err)
	})

	t.Run("tampered proof created", func(t *testing.T) {
		tampered := jsonRoundTrip(t, signed)

		rawProofs, err := proof.GetRawProofs(tampered)
		require.NoError(t, err)

		rawProofs[0]["created"] = "2020-01-02T00:00:00Z"

		result, err := v.Verify(context.Background(), tampered, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.SignatureInvalid, result.ProofResults[0].Err)
	})

	t.Run("other key", func(t *testing.T) {
		other := newKeyRing()
		newSigningKey(t, other, "Ed25519Signature2018", vmID)

		result, err := newTestVerifier(t, other).Verify(context.Background(), signed, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.SignatureInvalid, result.ProofResults[0].Err)
	})
}

func TestVerify_TamperedSignature(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, k := range testKeys {
		t.Run(k.suiteID, func(t *testing.T) {
			ring := newKeyRing()
			vmID := issuerDID + "#" + k.suiteID
			signer := newSigningKey(t, ring, k.suiteID, vmID)

			signed, err := issuer.Sign(context.Background(), newCredential(t), k.suiteID, signer, signOptions(vmID))
			require.NoError(t, err)

			proofs, err := proof.GetProofs(jsonRoundTrip(t, signed))
			require.NoError(t, err)

			flipSignatureByte(t, proofs[0])

			tampered := jsonRoundTrip(t, signed)
			tampered["proof"] = []interface{}{proofs[0].JSONLdObject()}

			result, err := newTestVerifier(t, ring).Verify(context.Background(), tampered, nil)
			require.NoError(t, err)
			require.False(t, result.Valid)
			requireKind(t, api.SignatureInvalid, result.ProofResults[0].Err)
		})
	}
}

// flipSignatureByte changes one bit in the middle of the signature value, keeping its encoding valid.
func flipSignatureByte(t *testing.T, p *proof.Proof) {
	t.Helper()

	if p.SignatureRepresentation == proof.SignatureJWS {
		signature, err := proof.GetJWTSignature(p.JWS)
		require.NoError(t, err)

		signature[len(signature)/2] ^= 0x01
		p.JWS = proof.CreateDetachedJWS(strings.SplitN(p.JWS, ".", 2)[0], signature)

		return
	}

	require.NotEmpty(t, p.ProofValue)
	p.ProofValue[len(p.ProofValue)/2] ^= 0x01
}

func TestVerify_ProofTimeoutIsolation(t *testing.T) {
	ring := newKeyRing()
	issuer := newTestIssuer(t)

	edID := issuerDID + "#ed"
	slowID := issuerDID + "#slow"
	edSigner := newSigningKey(t, ring, "Ed25519Signature2018", edID)
	slowSigner := newSigningKey(t, ring, "EcdsaSecp256r1Signature2019", slowID)

	signed, err := issuer.Sign(context.Background(), newCredential(t), "Ed25519Signature2018", edSigner,
		signOptions(edID))
	require.NoError(t, err)

	coSigned, err := issuer.Sign(context.Background(), signed, "EcdsaSecp256r1Signature2019", slowSigner,
		signOptions(slowID))
	require.NoError(t, err)

	// the second method never resolves, the first one does while the second waits
	stalling := api.ResolverFunc(func(ctx context.Context, id string) (*api.VerificationMethod, error) {
		if id == slowID {
			<-ctx.Done()

			return nil, ctx.Err()
		}

		return ring.Resolve(ctx, id)
	})

	v := newTestVerifier(t, stalling, WithProofTimeout(50*time.Millisecond), WithConcurrency(2))

	result, err := v.Verify(context.Background(), coSigned, nil)
	require.NoError(t, err)
	require.True(t, result.Valid, "reasons: %v", result.Reasons())
	require.Len(t, result.ProofResults, 2)
	require.NoError(t, result.ProofResults[0].Err)
	requireKind(t, api.ResolutionTimeout, result.ProofResults[1].Err)

	t.Run("require all", func(t *testing.T) {
		result, err := v.Verify(context.Background(), coSigned, &Policy{RequireAll: true})
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.NoError(t, result.ProofResults[0].Err)
		requireKind(t, api.ResolutionTimeout, result.ProofResults[1].Err)
	})

	t.Run("one proof at a time", func(t *testing.T) {
		result, err := v.Verify(context.Background(), coSigned, &Policy{Concurrency: 1})
		require.NoError(t, err)
		require.NoError(t, result.ProofResults[0].Err)
		requireKind(t, api.ResolutionTimeout, result.ProofResults[1].Err)
	})
}

func TestVerify_SuiteKeyMismatch(t *testing.T) {
	ring := newKeyRing()
	vmID := issuerDID + "#keys-1"
	signer := newSigningKey(t, ring, "Ed25519Signature2018", vmID)

	signed, err := newTestIssuer(t).Sign(context.Background(), newCredential(t), "Ed25519Signature2018", signer,
		signOptions(vmID))
	require.NoError(t, err)

	tests := []struct {
		name       string
		methodType string
		value      []byte
	}{
		{name: "secp256k1 method type", methodType: "EcdsaSecp256k1VerificationKey2019", value: signer.PublicKeyBytes()},
		{name: "short key", methodType: "Ed25519VerificationKey2018", value: []byte{1, 2, 3}},
		{name: "no key material", methodType: "Ed25519VerificationKey2018"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mismatched := newKeyRing()
			mismatched.add(vmID, tc.methodType, tc.value)

			result, err := newTestVerifier(t, mismatched).Verify(context.Background(), signed, nil)
			require.NoError(t, err)
			require.False(t, result.Valid)
			requireKind(t, api.SuiteKeyMismatch, result.ProofResults[0].Err)
		})
	}
}

func TestVerify_Resolution(t *testing.T) {
	ring := newKeyRing()
	vmID := issuerDID + "#keys-1"
	signer := newSigningKey(t, ring, "Ed25519Signature2018", vmID)

	signed, err := newTestIssuer(t).Sign(context.Background(), newCredential(t), "Ed25519Signature2018", signer,
		signOptions(vmID))
	require.NoError(t, err)

	t.Run("unknown method", func(t *testing.T) {
		result, err := newTestVerifier(t, newKeyRing()).Verify(context.Background(), signed, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.ResolutionError, result.ProofResults[0].Err)
	})

	t.Run("timeout", func(t *testing.T) {
		slow := api.ResolverFunc(func(ctx context.Context, id string) (*api.VerificationMethod, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})

		v := newTestVerifier(t, slow, WithProofTimeout(10*time.Millisecond))

		result, err := v.Verify(context.Background(), signed, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.ResolutionTimeout, result.ProofResults[0].Err)
	})

	t.Run("both key materials", func(t *testing.T) {
		both := api.ResolverFunc(func(ctx context.Context, id string) (*api.VerificationMethod, error) {
			vm, err := ring.Resolve(ctx, id)
			if err != nil {
				return nil, err
			}

			withJWK := *vm
			withJWK.JWK = newTestJWK(t, signer.PublicKey())

			return &withJWK, nil
		})

		result, err := newTestVerifier(t, both).Verify(context.Background(), signed, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.ResolutionError, result.ProofResults[0].Err)
	})
}

func TestVerify_UnsupportedSuite(t *testing.T) {
	vc := newCredential(t)
	vc["proof"] = map[string]interface{}{
		"type":               "Ed448Signature2021",
		"created":            "2020-01-01T00:00:00Z",
		"verificationMethod": issuerDID + "#keys-1",
		"proofPurpose":       "assertionMethod",
		"proofValue":         "z3FXQ",
	}

	result, err := newTestVerifier(t, newKeyRing()).Verify(context.Background(), vc, nil)
	require.NoError(t, err)
	require.False(t, result.Valid)
	requireKind(t, api.UnsupportedSuite, result.ProofResults[0].Err)
}

func TestVerify_MalformedDocument(t *testing.T) {
	v := newTestVerifier(t, newKeyRing())

	tests := []struct {
		name string
		doc  map[string]interface{}
	}{
		{
			name: "no proof",
			doc:  newCredential(t),
		},
		{
			name: "no type",
			doc: map[string]interface{}{
				"@context": "https://www.w3.org/2018/credentials/v1",
				"proof":    map[string]interface{}{"type": "Ed25519Signature2018"},
			},
		},
		{
			name: "empty proof array",
			doc: func() map[string]interface{} {
				vc := newCredential(t)
				vc["proof"] = []interface{}{}

				return vc
			}(),
		},
		{
			name: "proof without type",
			doc: func() map[string]interface{} {
				vc := newCredential(t)
				vc["proof"] = map[string]interface{}{"created": "2020-01-01T00:00:00Z"}

				return vc
			}(),
		},
		{
			name: "linked data proof without context",
			doc: map[string]interface{}{
				"type":  "VerifiableCredential",
				"proof": map[string]interface{}{"type": "Ed25519Signature2018", "jws": "a..b"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := v.Verify(context.Background(), tc.doc, nil)
			require.Nil(t, result)
			requireKind(t, api.DocumentMalformed, err)
		})
	}

	t.Run("malformed proof fails alone", func(t *testing.T) {
		vc := newCredential(t)
		vc["proof"] = map[string]interface{}{
			"type":    "Ed25519Signature2018",
			"created": "yesterday",
			"jws":     "a..b",
		}

		result, err := v.Verify(context.Background(), vc, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.DocumentMalformed, result.ProofResults[0].Err)
	})
}

func TestVerify_Temporal(t *testing.T) {
	ring := newKeyRing()
	vmID := issuerDID + "#keys-1"
	signer := newSigningKey(t, ring, "Ed25519Signature2020", vmID)

	vc := newCredential(t)
	vc["expirationDate"] = "2020-01-01T19:23:24Z"

	signed, err := newTestIssuer(t).Sign(context.Background(), vc, "Ed25519Signature2020", signer, signOptions(vmID))
	require.NoError(t, err)

	v := newTestVerifier(t, ring)

	t.Run("expired", func(t *testing.T) {
		result, err := v.Verify(context.Background(), signed, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.ExpiredOrNotYetValid, result.ProofResults[0].Err)
	})

	t.Run("within validity period", func(t *testing.T) {
		now := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)

		result, err := v.Verify(context.Background(), signed, &Policy{Now: &now})
		require.NoError(t, err)
		require.True(t, result.Valid, "reasons: %v", result.Reasons())
	})

	t.Run("proof created after now", func(t *testing.T) {
		now := time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC)

		result, err := v.Verify(context.Background(), signed, &Policy{Now: &now})
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.PolicyViolation, result.ProofResults[0].Err)
	})

	t.Run("skip temporal", func(t *testing.T) {
		result, err := v.Verify(context.Background(), signed, &Policy{SkipTemporal: true})
		require.NoError(t, err)
		require.True(t, result.Valid, "reasons: %v", result.Reasons())
		require.NotContains(t, result.Checks, CheckTemporal)
	})
}

func TestVerify_CoSigned(t *testing.T) {
	ring := newKeyRing()
	issuer := newTestIssuer(t)

	edID := issuerDID + "#ed"
	p256ID := issuerDID + "#p256"
	edSigner := newSigningKey(t, ring, "Ed25519Signature2018", edID)
	p256Signer := newSigningKey(t, ring, "EcdsaSecp256r1Signature2019", p256ID)

	signed, err := issuer.Sign(context.Background(), newCredential(t), "Ed25519Signature2018", edSigner,
		signOptions(edID))
	require.NoError(t, err)

	coSigned, err := issuer.Sign(context.Background(), signed, "EcdsaSecp256r1Signature2019", p256Signer,
		signOptions(p256ID))
	require.NoError(t, err)

	proofs, err := proof.GetProofs(coSigned)
	require.NoError(t, err)
	require.Len(t, proofs, 2)
	require.Equal(t, "Ed25519Signature2018", proofs[0].Type)
	require.Equal(t, "EcdsaSecp256r1Signature2019", proofs[1].Type)

	v := newTestVerifier(t, ring)

	result, err := v.Verify(context.Background(), coSigned, &Policy{RequireAll: true})
	require.NoError(t, err)
	require.True(t, result.Valid, "reasons: %v", result.Reasons())
	require.Len(t, result.ProofResults, 2)

	// one proof broken
	ring.add(p256ID, "EcdsaSecp256r1VerificationKey2019", edSigner.PublicKeyBytes())

	t.Run("require all", func(t *testing.T) {
		result, err := v.Verify(context.Background(), coSigned, &Policy{RequireAll: true})
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.NoError(t, result.ProofResults[0].Err)
		require.Error(t, result.ProofResults[1].Err)
		require.Equal(t, 1, result.ProofResults[1].Index)
	})

	t.Run("any proof", func(t *testing.T) {
		result, err := v.Verify(context.Background(), coSigned, nil)
		require.NoError(t, err)
		require.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		require.Error(t, result.ProofResults[1].Err)
	})

	t.Run("required suite", func(t *testing.T) {
		result, err := v.Verify(context.Background(), coSigned, &Policy{RequiredSuites: []string{"Ed25519Signature2018"}})
		require.NoError(t, err)
		require.True(t, result.Valid, "reasons: %v", result.Reasons())

		result, err = v.Verify(context.Background(), coSigned,
			&Policy{RequiredSuites: []string{"EcdsaSecp256r1Signature2019"}})
		require.NoError(t, err)
		require.False(t, result.Valid)
	})

	t.Run("required verification method missing", func(t *testing.T) {
		result, err := v.Verify(context.Background(), coSigned,
			&Policy{RequiredVerificationMethods: []string{issuerDID + "#rsa"}})
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		requireKind(t, api.PolicyViolation, result.Errors[0])
	})

	t.Run("sequential", func(t *testing.T) {
		result, err := v.Verify(context.Background(), coSigned, &Policy{RequireAll: true, Concurrency: 1})
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.NoError(t, result.ProofResults[0].Err)
	})
}

func TestVerify_CoSignedAfterCompactProof(t *testing.T) {
	ring := newKeyRing()
	issuer := newTestIssuer(t)
	v := newTestVerifier(t, ring)

	jcsID := issuerDID + "#jcs"
	jcsSigner := newSigningKey(t, ring, "JcsEd25519Signature2020", jcsID)

	signed, err := issuer.Sign(context.Background(), newCredential(t), "JcsEd25519Signature2020", jcsSigner,
		signOptions(jcsID))
	require.NoError(t, err)

	for _, k := range testKeys {
		if k.suiteID == "JcsEd25519Signature2020" {
			continue
		}

		t.Run(k.suiteID, func(t *testing.T) {
			vmID := issuerDID + "#" + k.suiteID
			s := newSigningKey(t, ring, k.suiteID, vmID)

			coSigned, err := issuer.Sign(context.Background(), signed, k.suiteID, s, signOptions(vmID))
			require.NoError(t, err)
			require.Equal(t, signed["@context"], coSigned["@context"])

			result, err := v.Verify(context.Background(), jsonRoundTrip(t, coSigned), &Policy{RequireAll: true})
			require.NoError(t, err)
			require.True(t, result.Valid, "reasons: %v", result.Reasons())
			require.Len(t, result.ProofResults, 2)
		})
	}
}

func TestVerify_ProofPurpose(t *testing.T) {
	ring := newKeyRing()
	vmID := issuerDID + "#keys-1"
	signer := newSigningKey(t, ring, "Ed25519Signature2018", vmID)

	signed, err := newTestIssuer(t).Sign(context.Background(), newCredential(t), "Ed25519Signature2018", signer,
		signOptions(vmID))
	require.NoError(t, err)

	t.Run("pinned purpose mismatch", func(t *testing.T) {
		result, err := newTestVerifier(t, ring).Verify(context.Background(), signed,
			&Policy{ProofPurpose: api.Authentication})
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.PolicyViolation, result.ProofResults[0].Err)
	})

	t.Run("not authorized by controller", func(t *testing.T) {
		restricted := newKeyRing()
		restricted.add(vmID, "Ed25519VerificationKey2018", signer.PublicKeyBytes(), api.Authentication)

		result, err := newTestVerifier(t, restricted).Verify(context.Background(), signed,
			&Policy{CheckProofPurpose: true})
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.PolicyViolation, result.ProofResults[0].Err)
	})
}

func TestVerify_Presentation(t *testing.T) {
	ring := newKeyRing()
	issuer := newTestIssuer(t)

	issuerKey := issuerDID + "#keys-1"
	holderKey := holderDID + "#keys-1"
	issuerSigner := newSigningKey(t, ring, "Ed25519Signature2018", issuerKey)
	holderSigner := newSigningKey(t, ring, "Ed25519Signature2020", holderKey)

	vc, err := issuer.Sign(context.Background(), newCredential(t), "Ed25519Signature2018", issuerSigner,
		signOptions(issuerKey))
	require.NoError(t, err)

	opts := signOptions(holderKey)
	opts.ProofPurpose = api.Authentication
	opts.Challenge = "99612b24-63d9-11ea-b99f-4f66f3e4f81a"
	opts.Domain = "example.com"

	vp, err := issuer.Sign(context.Background(), newPresentation(vc), "Ed25519Signature2020", holderSigner, opts)
	require.NoError(t, err)

	v := newTestVerifier(t, ring)

	t.Run("bound to challenge and domain", func(t *testing.T) {
		result, err := v.Verify(context.Background(), jsonRoundTrip(t, vp), &Policy{
			Challenge:    opts.Challenge,
			Domain:       opts.Domain,
			ProofPurpose: api.Authentication,
		})
		require.NoError(t, err)
		require.True(t, result.Valid, "reasons: %v", result.Reasons())
		require.Contains(t, result.Checks, CheckBinding)
		require.Len(t, result.Credentials, 1)
		require.True(t, result.Credentials[0].Valid)
	})

	t.Run("challenge mismatch", func(t *testing.T) {
		result, err := v.Verify(context.Background(), vp, &Policy{Challenge: "replayed"})
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.PolicyViolation, result.ProofResults[0].Err)
	})

	t.Run("domain mismatch", func(t *testing.T) {
		result, err := v.Verify(context.Background(), vp, &Policy{Domain: "evil.example.com"})
		require.NoError(t, err)
		require.False(t, result.Valid)
		requireKind(t, api.PolicyViolation, result.ProofResults[0].Err)
	})

	t.Run("invalid embedded credential", func(t *testing.T) {
		broken := newKeyRing()
		broken.add(holderKey, "Ed25519VerificationKey2020", holderSigner.PublicKeyBytes())
		broken.add(issuerKey, "Ed25519VerificationKey2018", holderSigner.PublicKeyBytes())

		result, err := newTestVerifier(t, broken).Verify(context.Background(), vp, nil)
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.NoError(t, result.ProofResults[0].Err)
		require.Len(t, result.Credentials, 1)
		require.False(t, result.Credentials[0].Valid)
		require.NotEmpty(t, result.Reasons())
	})

	t.Run("malformed embedded credential", func(t *testing.T) {
		result, err := v.Verify(context.Background(), jsonRoundTrip(t, vp), nil)
		require.NoError(t, err)
		require.True(t, result.Valid)

		withBroken := jsonRoundTrip(t, vp)
		withBroken["verifiableCredential"] = []interface{}{42}

		result, err = v.Verify(context.Background(), withBroken, &Policy{SkipTemporal: true})
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.Len(t, result.Credentials, 1)
		requireKind(t, api.DocumentMalformed, result.Credentials[0].Errors[0])
	})
}

func TestResult_Reasons(t *testing.T) {
	r := &Result{
		Errors: []error{api.Errorf(api.PolicyViolation, "check policy", "no proof")},
		ProofResults: []ProofResult{
			{Index: 0, Type: "Ed25519Signature2018"},
			{Index: 1, Type: "RsaSignature2018", Err: api.Errorf(api.SignatureInvalid, "verify", "bad")},
		},
		Credentials: []*Result{{Errors: []error{api.Errorf(api.Revoked, "check status", "revoked")}}},
	}

	reasons := r.Reasons()
	require.Len(t, reasons, 3)
	require.Contains(t, reasons[1].Error(), "proof 1 (RsaSignature2018)")
	require.Contains(t, reasons[2].Error(), "credential 0")
	require.Equal(t, api.Revoked, api.KindOf(reasons[2]))
	require.Equal(t, api.KindUnknown, r.ProofResults[0].Kind())
	require.Equal(t, api.SignatureInvalid, r.ProofResults[1].Kind())
}

func TestVerify_NotYetValid(t *testing.T) {
	ring := newKeyRing()
	vmID := issuerDID + "#keys-1"
	signer := newSigningKey(t, ring, "Ed25519Signature2018", vmID)

	vc := newCredential(t)
	vc["issuanceDate"] = "2099-01-01T00:00:00Z"

	signed, err := newTestIssuer(t).Sign(context.Background(), vc, "Ed25519Signature2018", signer, signOptions(vmID))
	require.NoError(t, err)

	result, err := newTestVerifier(t, ring).Verify(context.Background(), signed, nil)
	require.NoError(t, err)
	require.False(t, result.Valid)
	requireKind(t, api.ExpiredOrNotYetValid, result.ProofResults[0].Err)
}
