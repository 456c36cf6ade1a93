/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

func TestJWK_UnmarshalJSON(t *testing.T) {
	t.Run("Ed25519", func(t *testing.T) {
		key := &JWK{}
		err := json.Unmarshal([]byte(`{"kty":"OKP","crv":"Ed25519","kid":"key-1",`+
			`"x":"11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo"}`), key)
		require.NoError(t, err)
		require.Equal(t, KtyOKP, key.Kty)
		require.Equal(t, CrvEd25519, key.Crv)
		require.Equal(t, "key-1", key.KeyID)

		raw, err := key.PublicKeyBytes()
		require.NoError(t, err)
		require.Len(t, raw, ed25519.PublicKeySize)
	})

	t.Run("secp256k1 point off the curve", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"kty":"EC","crv":"secp256k1","x":"AQ","y":"AQ"}`), &JWK{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "point is not on curve")
	})

	t.Run("secp256k1 bad coordinate", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"kty":"EC","crv":"secp256k1","x":"!!","y":"AQ"}`), &JWK{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "unmarshal secp256k1 JWK x")
	})

	t.Run("BLS12381_G2 bad x", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"kty":"EC","crv":"BLS12381_G2","x":"!!"}`), &JWK{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "unmarshal BLS12381_G2 JWK")
	})

	t.Run("not JSON", func(t *testing.T) {
		require.Error(t, (&JWK{}).UnmarshalJSON([]byte(`{`)))
	})
}

func TestJWK_RoundTrip(t *testing.T) {
	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	p256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	k1, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name string
		key  *JWK
	}{
		{name: "Ed25519", key: mustJWK(t, edPub)},
		{name: "P-256", key: mustJWK(t, &p256.PublicKey)},
		{name: "secp256k1", key: mustJWK(t, k1.PubKey().ToECDSA())},
		{name: "RSA", key: mustJWK(t, &rsaKey.PublicKey)},
		{name: "BLS12381_G2", key: JWKFromBLSKey([]byte("compressed G2 point"))},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.key)
			require.NoError(t, err)

			parsed := &JWK{}
			require.NoError(t, json.Unmarshal(data, parsed))
			require.Equal(t, tc.key.Kty, parsed.Kty)
			require.Equal(t, tc.key.Crv, parsed.Crv)

			expected, err := tc.key.PublicKeyBytes()
			require.NoError(t, err)

			actual, err := parsed.PublicKeyBytes()
			require.NoError(t, err)
			require.Equal(t, expected, actual)
		})
	}
}

func TestJWK_PublicKeyBytes(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	raw, err := mustJWK(t, &rsaKey.PublicKey).PublicKeyBytes()
	require.NoError(t, err)
	require.Equal(t, x509.MarshalPKCS1PublicKey(&rsaKey.PublicKey), raw)

	p256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	raw, err = mustJWK(t, &p256.PublicKey).PublicKeyBytes()
	require.NoError(t, err)
	require.Len(t, raw, 65)
	require.Equal(t, byte(4), raw[0])

	_, err = (&JWK{}).PublicKeyBytes()
	require.EqualError(t, err, "unsupported public key type in JWK: <nil>")
}

func TestJWKFromKey(t *testing.T) {
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	_, err = JWKFromKey(&p384.PublicKey)
	require.EqualError(t, err, "unsupported ECDSA curve: P-384")

	_, err = JWKFromKey("key")
	require.EqualError(t, err, "unsupported key type: string")
}

func TestJWK_MarshalJSONErrors(t *testing.T) {
	_, err := (&JWK{Kty: KtyEC, Crv: CrvSecp256k1}).MarshalJSON()
	require.Error(t, err)

	_, err = (&JWK{Kty: KtyEC, Crv: CrvBLS12381G2}).MarshalJSON()
	require.Error(t, err)
}

func mustJWK(t *testing.T, key interface{}) *JWK {
	t.Helper()

	j, err := JWKFromKey(key)
	require.NoError(t, err)

	return j
}
