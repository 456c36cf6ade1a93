/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

const validDoc = `{
  "@context": ["https://www.w3.org/ns/did/v1"],
  "id": "did:example:123456789abcdefghi",
  "verificationMethod": [
    {
      "id": "did:example:123456789abcdefghi#keys-1",
      "type": "Ed25519VerificationKey2018",
      "controller": "did:example:123456789abcdefghi",
      "publicKeyBase58": "H3C2AVvLMv6gmMNam3uVAjZpfkcJCwDwnZn6z3wXmqPV"
    },
    {
      "id": "#keys-2",
      "type": "JsonWebKey2020",
      "publicKeyJwk": {
        "kty": "OKP",
        "crv": "Ed25519",
        "x": "VCpo2LMLhn6iWku8MKvSLg2ZAoC-nlOyPVQaO3FxVeQ"
      }
    }
  ],
  "authentication": [
    "#keys-1",
    {
      "id": "did:example:123456789abcdefghi#keys-3",
      "type": "EcdsaSecp256k1RecoveryMethod2020",
      "blockchainAccountId": "eip155:1:0x89a932207c485f85226d86f7cd486a89a24fcc12"
    }
  ],
  "assertionMethod": ["did:example:123456789abcdefghi#keys-1", "#keys-2"]
}`

func TestParse(t *testing.T) {
	t.Run("valid did", func(t *testing.T) {
		d, err := Parse("did:example:123456789abcdefghi")
		require.NoError(t, err)
		require.Equal(t, "did", d.Scheme)
		require.Equal(t, "example", d.Method)
		require.Equal(t, "123456789abcdefghi", d.MethodSpecificID)
		require.Equal(t, "did:example:123456789abcdefghi", d.String())
	})

	t.Run("invalid dids", func(t *testing.T) {
		for _, s := range []string{"", "did", "did:example", "did:Example:1", "example:123"} {
			_, err := Parse(s)
			require.Error(t, err, s)
		}
	})

	t.Run("did url", func(t *testing.T) {
		u, err := ParseDIDURL("did:key:z6Mk#z6Mk")
		require.NoError(t, err)
		require.Equal(t, "key", u.Method)
		require.Equal(t, "z6Mk", u.Fragment)

		u, err = ParseDIDURL("did:key:z6Mk")
		require.NoError(t, err)
		require.Empty(t, u.Fragment)
	})
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(validDoc))
	require.NoError(t, err)

	require.Equal(t, "did:example:123456789abcdefghi", doc.ID)
	require.Equal(t, []string{ContextV1}, doc.Context)
	require.Len(t, doc.VerificationMethod, 3)

	key1, ok := LookupVerificationMethod(doc, "#keys-1")
	require.True(t, ok)
	require.Equal(t, base58.Decode("H3C2AVvLMv6gmMNam3uVAjZpfkcJCwDwnZn6z3wXmqPV"), key1.Value)
	require.Equal(t, doc.ID, key1.Controller)

	key2, ok := LookupVerificationMethod(doc, "did:example:123456789abcdefghi#keys-2")
	require.True(t, ok)
	require.NotNil(t, key2.JWK)
	require.Equal(t, jwk.CrvEd25519, key2.JWK.Crv)
	require.Empty(t, key2.Value)

	key3, ok := LookupVerificationMethod(doc, "#keys-3")
	require.True(t, ok)
	require.Equal(t, "eip155:1:0x89a932207c485f85226d86f7cd486a89a24fcc12", key3.BlockchainAccountID)

	require.Equal(t, []string{api.Authentication, api.AssertionMethod}, RelationshipsOf(doc, key1.ID))
	require.Equal(t, []string{api.AssertionMethod}, RelationshipsOf(doc, key2.ID))
	require.Equal(t, []string{api.Authentication}, RelationshipsOf(doc, key3.ID))

	vm, err := ResolveVerificationMethod(doc, "did:example:123456789abcdefghi#keys-1")
	require.NoError(t, err)
	require.True(t, vm.HasRelationship(api.AssertionMethod))
	require.Equal(t, "Ed25519VerificationKey2018", vm.Type)

	_, err = ResolveVerificationMethod(doc, "#missing")
	require.Error(t, err)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  string
	}{
		{
			name: "not JSON",
			doc:  "{",
			err:  "JSON unmarshalling of DID document bytes failed",
		},
		{
			name: "null",
			doc:  "null",
			err:  "document payload is not provided",
		},
		{
			name: "missing id",
			doc:  `{"verificationMethod": []}`,
			err:  "did document not valid",
		},
		{
			name: "method without type",
			doc:  `{"id": "did:example:1", "verificationMethod": [{"id": "#k"}]}`,
			err:  "did document not valid",
		},
		{
			name: "bad hex key",
			doc: `{"id": "did:example:1", "verificationMethod": [{"id": "#k", "type": "EcdsaSecp256k1VerificationKey2019",
				"publicKeyHex": "zz"}]}`,
			err: "decode public key hex failed",
		},
		{
			name: "bad relationship entry",
			doc:  `{"id": "did:example:1", "authentication": [{"id": "#k"}]}`,
			err:  "did document not valid",
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tc.doc))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestDecodeMultibaseKey(t *testing.T) {
	pub := bytes.Repeat([]byte{0x2a}, ed25519.PublicKeySize)

	encoded, err := multibase.Encode(multibase.Base58BTC, append([]byte{0xed, 0x01}, pub...))
	require.NoError(t, err)

	key, err := DecodeMultibaseKey(encoded)
	require.NoError(t, err)
	require.Equal(t, pub, key)

	encoded, err = multibase.Encode(multibase.Base58BTC, pub)
	require.NoError(t, err)

	key, err = DecodeMultibaseKey(encoded)
	require.NoError(t, err)
	require.Equal(t, pub, key)

	_, err = DecodeMultibaseKey("not-multibase")
	require.Error(t, err)
}

func TestParseDocumentBothKeyMaterials(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
  "id": "did:example:1",
  "verificationMethod": [{
    "id": "#k",
    "type": "JsonWebKey2020",
    "publicKeyBase58": "H3C2AVvLMv6gmMNam3uVAjZpfkcJCwDwnZn6z3wXmqPV",
    "publicKeyJwk": {"kty": "OKP", "crv": "Ed25519", "x": "VCpo2LMLhn6iWku8MKvSLg2ZAoC-nlOyPVQaO3FxVeQ"}
  }]
}`))
	require.NoError(t, err)

	vm, ok := LookupVerificationMethod(doc, "#k")
	require.True(t, ok)
	require.NotEmpty(t, vm.Value)
	require.NotNil(t, vm.JWK)
}
