/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwk wraps go-jose's JSONWebKey with the curves used by linked-data proofs that go-jose does not
// handle itself: secp256k1 and BLS12-381 G2.
package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/go-jose/go-jose/v3"
)

// Key types and curves.
const (
	KtyEC  = "EC"
	KtyOKP = "OKP"
	KtyRSA = "RSA"

	CrvEd25519    = "Ed25519"
	CrvP256       = "P-256"
	CrvSecp256k1  = "secp256k1"
	CrvBLS12381G2 = "BLS12381_G2"
)

// JWK (JSON Web Key) is a JSON data structure that represents a cryptographic key.
type JWK struct {
	jose.JSONWebKey

	Kty string
	Crv string
}

type rawJWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	Kid string `json:"kid,omitempty"`
	Alg string `json:"alg,omitempty"`
	Use string `json:"use,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
}

// UnmarshalJSON reads a key from its JSON representation.
func (j *JWK) UnmarshalJSON(jwkBytes []byte) error {
	var raw rawJWK

	if err := json.Unmarshal(jwkBytes, &raw); err != nil {
		return fmt.Errorf("unmarshal JWK: %w", err)
	}

	switch {
	case raw.Kty == KtyEC && raw.Crv == CrvSecp256k1:
		pub, err := secp256k1FromRaw(&raw)
		if err != nil {
			return err
		}

		j.JSONWebKey = jose.JSONWebKey{Key: pub, KeyID: raw.Kid, Algorithm: raw.Alg, Use: raw.Use}
	case raw.Kty == KtyEC && raw.Crv == CrvBLS12381G2:
		x, err := base64.RawURLEncoding.DecodeString(raw.X)
		if err != nil {
			return fmt.Errorf("unmarshal BLS12381_G2 JWK: %w", err)
		}

		j.JSONWebKey = jose.JSONWebKey{Key: x, KeyID: raw.Kid, Algorithm: raw.Alg, Use: raw.Use}
	default:
		if err := j.JSONWebKey.UnmarshalJSON(jwkBytes); err != nil {
			return fmt.Errorf("unmarshal JWK: %w", err)
		}
	}

	j.Kty = raw.Kty
	j.Crv = raw.Crv

	return nil
}

// MarshalJSON serializes the key into its JSON representation.
func (j *JWK) MarshalJSON() ([]byte, error) {
	switch j.Crv {
	case CrvSecp256k1:
		pub, ok := j.Key.(*ecdsa.PublicKey)
		if !ok {
			return nil, errors.New("marshal secp256k1 JWK: key is not an ECDSA public key")
		}

		size := (pub.Curve.Params().BitSize + 7) / 8 //nolint:gomnd

		return json.Marshal(&rawJWK{
			Kty: KtyEC,
			Crv: CrvSecp256k1,
			Kid: j.KeyID,
			Alg: j.Algorithm,
			Use: j.Use,
			X:   base64.RawURLEncoding.EncodeToString(padded(pub.X, size)),
			Y:   base64.RawURLEncoding.EncodeToString(padded(pub.Y, size)),
		})
	case CrvBLS12381G2:
		x, ok := j.Key.([]byte)
		if !ok {
			return nil, errors.New("marshal BLS12381_G2 JWK: key is not a byte slice")
		}

		return json.Marshal(&rawJWK{
			Kty: KtyEC,
			Crv: CrvBLS12381G2,
			Kid: j.KeyID,
			Alg: j.Algorithm,
			Use: j.Use,
			X:   base64.RawURLEncoding.EncodeToString(x),
		})
	default:
		return j.JSONWebKey.MarshalJSON()
	}
}

// PublicKeyBytes returns the raw public key material:
// Ed25519 32 bytes, EC uncompressed point, RSA PKCS#1 DER, BLS12-381 G2 compressed point.
func (j *JWK) PublicKeyBytes() ([]byte, error) {
	switch key := j.Key.(type) {
	case ed25519.PublicKey:
		return []byte(key), nil
	case *ecdsa.PublicKey:
		size := (key.Curve.Params().BitSize + 7) / 8 //nolint:gomnd

		return append(append([]byte{4}, padded(key.X, size)...), padded(key.Y, size)...), nil //nolint:gomnd
	case *rsa.PublicKey:
		return x509.MarshalPKCS1PublicKey(key), nil
	case []byte:
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported public key type in JWK: %T", j.Key)
	}
}

// JWKFromKey creates a JWK from a public key: ed25519.PublicKey, *ecdsa.PublicKey (P-256 or secp256k1)
// or *rsa.PublicKey.
func JWKFromKey(key interface{}) (*JWK, error) {
	switch k := key.(type) {
	case ed25519.PublicKey:
		return &JWK{JSONWebKey: jose.JSONWebKey{Key: k}, Kty: KtyOKP, Crv: CrvEd25519}, nil
	case *ecdsa.PublicKey:
		switch {
		case k.Curve == elliptic.P256():
			return &JWK{JSONWebKey: jose.JSONWebKey{Key: k}, Kty: KtyEC, Crv: CrvP256}, nil
		case k.Curve == btcec.S256():
			return &JWK{JSONWebKey: jose.JSONWebKey{Key: k}, Kty: KtyEC, Crv: CrvSecp256k1}, nil
		default:
			return nil, fmt.Errorf("unsupported ECDSA curve: %s", k.Curve.Params().Name)
		}
	case *rsa.PublicKey:
		return &JWK{JSONWebKey: jose.JSONWebKey{Key: k}, Kty: KtyRSA}, nil
	default:
		return nil, fmt.Errorf("unsupported key type: %T", key)
	}
}

// JWKFromBLSKey creates a BLS12381_G2 JWK from a compressed G2 public key.
func JWKFromBLSKey(pubKey []byte) *JWK {
	return &JWK{JSONWebKey: jose.JSONWebKey{Key: pubKey}, Kty: KtyEC, Crv: CrvBLS12381G2}
}

func secp256k1FromRaw(raw *rawJWK) (*ecdsa.PublicKey, error) {
	x, err := base64.RawURLEncoding.DecodeString(raw.X)
	if err != nil {
		return nil, fmt.Errorf("unmarshal secp256k1 JWK x: %w", err)
	}

	y, err := base64.RawURLEncoding.DecodeString(raw.Y)
	if err != nil {
		return nil, fmt.Errorf("unmarshal secp256k1 JWK y: %w", err)
	}

	pub := &ecdsa.PublicKey{
		Curve: btcec.S256(),
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}

	if !pub.Curve.IsOnCurve(pub.X, pub.Y) {
		return nil, errors.New("unmarshal secp256k1 JWK: point is not on curve")
	}

	return pub, nil
}

func padded(n *big.Int, size int) []byte {
	b := n.Bytes()
	if len(b) >= size {
		return b
	}

	out := make([]byte, size)
	copy(out[size-len(b):], b)

	return out
}
