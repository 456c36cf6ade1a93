/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/bbsblssignatureproof2020"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/ed25519signature2018"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite/jcsed25519signature2020"
	sigutil "github.com/hyperledger/aries-vcproof/pkg/doc/util/signature"
)

const verificationMethod = "did:example:123456#key1"

type failingSigner struct{}

func (failingSigner) Sign([]byte) ([]byte, error) { return nil, errors.New("hsm unavailable") }

func (failingSigner) Alg() string { return api.AlgEdDSA }

func newRegistry(t *testing.T) *suite.Registry {
	t.Helper()

	c, err := canonicalizer.New()
	require.NoError(t, err)

	r, err := suite.NewRegistry(
		jcsed25519signature2020.New(suite.WithCanonicalizer(c)),
		ed25519signature2018.New(suite.WithCanonicalizer(c)),
		bbsblssignatureproof2020.New(suite.WithCanonicalizer(c)),
	)
	require.NoError(t, err)

	return r
}

func testDoc() map[string]interface{} {
	return map[string]interface{}{
		"id":     "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5",
		"name":   "Alice",
		"claims": []interface{}{"one", "two"},
	}
}

func TestDocumentSigner_Sign(t *testing.T) {
	s, err := sigutil.NewEd25519Signer()
	require.NoError(t, err)

	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := testDoc()

	signed, err := New(newRegistry(t)).Sign(&Context{
		SignatureType:      jcsed25519signature2020.SignatureType,
		VerificationMethod: verificationMethod,
		Created:            &created,
		Challenge:          "c0ae1c8e",
	}, doc, s)
	require.NoError(t, err)

	require.NotContains(t, doc, "proof")

	proofs, ok := signed["proof"].([]interface{})
	require.True(t, ok)
	require.Len(t, proofs, 1)

	p, ok := proofs[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, jcsed25519signature2020.SignatureType, p["type"])
	require.Equal(t, verificationMethod, p["verificationMethod"])
	require.Equal(t, api.AssertionMethod, p["proofPurpose"])
	require.Equal(t, "2020-01-01T00:00:00Z", p["created"])
	require.Equal(t, "c0ae1c8e", p["challenge"])
	require.NotEmpty(t, p["proofValue"])
	require.NotContains(t, p, "jws")

	t.Run("second proof is appended", func(t *testing.T) {
		cosigned, err := New(newRegistry(t)).Sign(&Context{
			SignatureType:      jcsed25519signature2020.SignatureType,
			VerificationMethod: "did:example:789#key2",
			Purpose:            api.Authentication,
		}, signed, s)
		require.NoError(t, err)

		proofs, ok := cosigned["proof"].([]interface{})
		require.True(t, ok)
		require.Len(t, proofs, 2)
		require.Equal(t, api.Authentication, proofs[1].(map[string]interface{})["proofPurpose"])
	})
}

func TestDocumentSigner_CoSign(t *testing.T) {
	s, err := sigutil.NewEd25519Signer()
	require.NoError(t, err)

	credential := func() map[string]interface{} {
		return map[string]interface{}{
			"@context":          []interface{}{"https://www.w3.org/2018/credentials/v1"},
			"id":                "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5",
			"type":              []interface{}{"VerifiableCredential"},
			"issuer":            "did:example:123456",
			"issuanceDate":      "2020-01-01T00:00:00Z",
			"credentialSubject": map[string]interface{}{"id": "did:example:789"},
		}
	}

	docSigner := New(newRegistry(t))

	t.Run("first proof extends the document context", func(t *testing.T) {
		signed, err := docSigner.Sign(&Context{
			SignatureType:      ed25519signature2018.SignatureType,
			VerificationMethod: verificationMethod,
		}, credential(), s)
		require.NoError(t, err)
		require.True(t, HasContext(signed, embed.Ed25519Signature2018URL))

		proofs, err := proof.GetRawProofs(signed)
		require.NoError(t, err)
		require.NotContains(t, proofs[0], "@context")
	})

	t.Run("co-signing keeps the document context", func(t *testing.T) {
		signed, err := docSigner.Sign(&Context{
			SignatureType:      jcsed25519signature2020.SignatureType,
			VerificationMethod: verificationMethod,
		}, credential(), s)
		require.NoError(t, err)
		require.Equal(t, credential()["@context"], signed["@context"])

		cosigned, err := docSigner.Sign(&Context{
			SignatureType:      ed25519signature2018.SignatureType,
			VerificationMethod: "did:example:789#key2",
		}, signed, s)
		require.NoError(t, err)
		require.Equal(t, signed["@context"], cosigned["@context"])

		proofs, err := proof.GetRawProofs(cosigned)
		require.NoError(t, err)
		require.Len(t, proofs, 2)
		require.NotContains(t, proofs[0], "@context")
		require.Equal(t, []interface{}{"https://www.w3.org/2018/credentials/v1", embed.Ed25519Signature2018URL},
			proofs[1]["@context"])
	})
}

func TestHasContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  interface{}
		want bool
	}{
		{name: "missing", ctx: nil},
		{name: "same string", ctx: "https://example.com/a", want: true},
		{name: "other string", ctx: "https://example.com/b"},
		{name: "in array", ctx: []interface{}{"https://example.com/b", "https://example.com/a"}, want: true},
		{name: "in string array", ctx: []string{"https://example.com/a"}, want: true},
		{name: "inline context", ctx: map[string]interface{}{"a": "https://example.com/a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := map[string]interface{}{}
			if tc.ctx != nil {
				doc["@context"] = tc.ctx
			}

			require.Equal(t, tc.want, HasContext(doc, "https://example.com/a"))
		})
	}
}

func TestDocumentSigner_SignErrors(t *testing.T) {
	edSigner, err := sigutil.NewEd25519Signer()
	require.NoError(t, err)

	p256Signer, err := sigutil.NewSigner(sigutil.ECDSAP256Type)
	require.NoError(t, err)

	tests := []struct {
		name   string
		ctx    *Context
		signer api.Signer
		kind   api.ErrorKind
		errMsg string
	}{
		{
			name:   "unknown suite",
			ctx:    &Context{SignatureType: "Unknown2099", VerificationMethod: verificationMethod},
			signer: edSigner,
			kind:   api.UnsupportedSuite,
			errMsg: "signature type Unknown2099 not supported",
		},
		{
			name:   "derived suite",
			ctx:    &Context{SignatureType: bbsblssignatureproof2020.SignatureType, VerificationMethod: verificationMethod},
			signer: edSigner,
			kind:   api.SigningError,
			errMsg: "proofs are derived, not signed",
		},
		{
			name:   "no verification method",
			ctx:    &Context{SignatureType: jcsed25519signature2020.SignatureType},
			signer: edSigner,
			kind:   api.SigningError,
			errMsg: "verification method is missing",
		},
		{
			name:   "no signer",
			ctx:    &Context{SignatureType: jcsed25519signature2020.SignatureType, VerificationMethod: verificationMethod},
			kind:   api.SigningError,
			errMsg: "signer is missing",
		},
		{
			name:   "algorithm mismatch",
			ctx:    &Context{SignatureType: jcsed25519signature2020.SignatureType, VerificationMethod: verificationMethod},
			signer: p256Signer,
			kind:   api.SigningError,
			errMsg: "signer algorithm ES256 does not match",
		},
		{
			name:   "signer failure",
			ctx:    &Context{SignatureType: jcsed25519signature2020.SignatureType, VerificationMethod: verificationMethod},
			signer: failingSigner{},
			kind:   api.SigningError,
			errMsg: "hsm unavailable",
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			signed, err := New(newRegistry(t)).Sign(tc.ctx, testDoc(), tc.signer)
			require.Error(t, err)
			require.Nil(t, signed)
			require.Equal(t, tc.kind, api.KindOf(err))
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestAddContext(t *testing.T) {
	const (
		credentialsV1 = "https://www.w3.org/2018/credentials/v1"
		suiteContext  = "https://w3id.org/security/suites/ed25519-2020/v1"
	)

	tests := []struct {
		name     string
		context  interface{}
		expected interface{}
	}{
		{
			name:     "no context",
			expected: suiteContext,
		},
		{
			name:     "single string",
			context:  credentialsV1,
			expected: []interface{}{credentialsV1, suiteContext},
		},
		{
			name:     "same string",
			context:  suiteContext,
			expected: suiteContext,
		},
		{
			name:     "array",
			context:  []interface{}{credentialsV1},
			expected: []interface{}{credentialsV1, suiteContext},
		},
		{
			name:     "array holding the context",
			context:  []interface{}{credentialsV1, suiteContext},
			expected: []interface{}{credentialsV1, suiteContext},
		},
		{
			name:     "string array",
			context:  []string{credentialsV1},
			expected: []interface{}{credentialsV1, suiteContext},
		},
		{
			name:     "embedded context object",
			context:  map[string]interface{}{"name": "https://schema.org/name"},
			expected: []interface{}{map[string]interface{}{"name": "https://schema.org/name"}, suiteContext},
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			doc := map[string]interface{}{}
			if tc.context != nil {
				doc["@context"] = tc.context
			}

			AddContext(doc, suiteContext)
			require.Equal(t, tc.expected, doc["@context"])
		})
	}
}
