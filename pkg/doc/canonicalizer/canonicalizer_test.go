/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package canonicalizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

func credential() map[string]interface{} {
	return map[string]interface{}{
		"@context": []interface{}{embed.CredentialsV1URL, embed.CredentialsExamplesV1URL},
		"id":       "http://example.edu/credentials/1872",
		"type":     []interface{}{"VerifiableCredential", "UniversityDegreeCredential"},
		"issuer":   "did:example:76e12ec712ebc6f1c221ebfeb1f",
		"credentialSubject": map[string]interface{}{
			"id": "did:example:ebfeb1f712ebc6f1c276e12ec21",
			"degree": map[string]interface{}{
				"type": "BachelorDegree",
				"name": "Bachelor of Science and Arts",
			},
		},
		"issuanceDate": "2010-01-01T19:23:24Z",
	}
}

// credentialV1Only uses only terms of the credentials v1 context.
func credentialV1Only() map[string]interface{} {
	doc := credential()
	doc["@context"] = embed.CredentialsV1URL
	doc["type"] = "VerifiableCredential"
	doc["credentialSubject"] = map[string]interface{}{"id": "did:example:ebfeb1f712ebc6f1c276e12ec21"}

	return doc
}

func newCanonicalizer(t *testing.T, opts ...Opt) *Canonicalizer {
	t.Helper()

	c, err := New(opts...)
	require.NoError(t, err)

	return c
}

func TestCanonicalize_LinkedData(t *testing.T) {
	c := newCanonicalizer(t)

	first, err := c.Canonicalize(credential(), ModeLinkedData)
	require.NoError(t, err)
	require.Contains(t, string(first),
		`<http://example.edu/credentials/1872> <https://www.w3.org/2018/credentials#issuer> `+
			`<did:example:76e12ec712ebc6f1c221ebfeb1f> .`)

	t.Run("deterministic", func(t *testing.T) {
		second, err := c.Canonicalize(credential(), ModeLinkedData)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("statements", func(t *testing.T) {
		statements, err := c.Statements(credential())
		require.NoError(t, err)
		require.NotEmpty(t, statements)

		for _, s := range statements {
			require.NotContains(t, s, "\n")
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		doc := credential()

		_, err := c.Canonicalize(doc, ModeLinkedData)
		require.NoError(t, err)
		require.Equal(t, credential(), doc)
	})

	t.Run("changed value changes the canonical form", func(t *testing.T) {
		doc := credential()
		doc["issuanceDate"] = "2011-01-01T19:23:24Z"

		other, err := c.Canonicalize(doc, ModeLinkedData)
		require.NoError(t, err)
		require.NotEqual(t, first, other)
	})
}

func TestCanonicalize_LinkedDataErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    func() map[string]interface{}
		opts   []Opt
		errMsg string
	}{
		{
			name: "no context",
			doc: func() map[string]interface{} {
				doc := credential()
				delete(doc, "@context")

				return doc
			},
			errMsg: "linked data document has no @context",
		},
		{
			name: "undefined term",
			doc: func() map[string]interface{} {
				doc := credentialV1Only()
				doc["favouriteColour"] = "green"

				return doc
			},
			errMsg: "favouriteColour",
		},
		{
			name: "unknown context",
			doc: func() map[string]interface{} {
				doc := credential()
				doc["@context"] = []interface{}{embed.CredentialsV1URL, "https://example.com/unknown/v1"}

				return doc
			},
			errMsg: "check terms",
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			_, err := newCanonicalizer(t, tc.opts...).Canonicalize(tc.doc(), ModeLinkedData)
			require.Error(t, err)
			require.Equal(t, api.CanonicalizationError, api.KindOf(err))
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("undefined term is dropped without strict terms", func(t *testing.T) {
		doc := credentialV1Only()
		doc["favouriteColour"] = "green"

		lenient, err := newCanonicalizer(t, WithStrictTerms(false)).Canonicalize(doc, ModeLinkedData)
		require.NoError(t, err)
		require.NotContains(t, string(lenient), "green")
	})
}

func TestCanonicalize_Compact(t *testing.T) {
	c := newCanonicalizer(t)

	canonical, err := c.Canonicalize(map[string]interface{}{
		"b":      2,
		"a":      "x",
		"nested": map[string]interface{}{"z": true, "y": nil},
		"num":    1.50,
	}, ModeCompact)
	require.NoError(t, err)
	require.Equal(t, `{"a":"x","b":2,"nested":{"y":null,"z":true},"num":1.5}`, string(canonical))

	t.Run("no context needed", func(t *testing.T) {
		doc := credential()
		delete(doc, "@context")

		_, err := c.Canonicalize(doc, ModeCompact)
		require.NoError(t, err)
	})

	t.Run("unmarshallable value", func(t *testing.T) {
		_, err := Compact(map[string]interface{}{"ch": make(chan int)})
		require.Error(t, err)
		require.Equal(t, api.CanonicalizationError, api.KindOf(err))
	})
}

func TestCanonicalize_UnknownMode(t *testing.T) {
	_, err := newCanonicalizer(t).Canonicalize(credential(), Mode(7))
	require.Error(t, err)
	require.Equal(t, api.CanonicalizationError, api.KindOf(err))
	require.Contains(t, err.Error(), "unknown mode Mode(7)")
}

func TestMode_String(t *testing.T) {
	require.Equal(t, "LinkedData", ModeLinkedData.String())
	require.Equal(t, "Compact", ModeCompact.String())
}

func TestProcessorOpts(t *testing.T) {
	require.Len(t, newCanonicalizer(t).ProcessorOpts(), 1)
	require.Len(t, newCanonicalizer(t, WithExternalContext(embed.CredentialsV1URL), WithRemoveAllInvalidRDF(),
		WithValidateRDF()).ProcessorOpts(), 4)
	require.NotNil(t, newCanonicalizer(t).DocumentLoader())
}
