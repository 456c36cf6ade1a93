/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

const rsaKeySize = 2048

// NewRS256Signer creates a new RS256 signer with generated key.
func NewRS256Signer() (*RS256Signer, error) {
	privKey, err := rsa.GenerateKey(rand.Reader, rsaKeySize)
	if err != nil {
		return nil, err
	}

	return GetRS256Signer(privKey), nil
}

// GetRS256Signer creates a new RS256 signer with provided RSA private key.
func GetRS256Signer(privKey *rsa.PrivateKey) *RS256Signer {
	return &RS256Signer{rsaSigner: *newRSASigner(privKey)}
}

// RS256Signer makes RSASSA-PKCS1-v1_5 SHA-256 signatures.
type RS256Signer struct {
	rsaSigner
}

// Sign signs a message.
func (s *RS256Signer) Sign(msg []byte) ([]byte, error) {
	hasher := crypto.SHA256.New()
	_, _ = hasher.Write(msg)
	hashed := hasher.Sum(nil)

	return rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, hashed)
}

// Alg return alg.
func (s *RS256Signer) Alg() string {
	return api.AlgRS256
}

// NewPS256Signer creates a new PS256 signer with generated key.
func NewPS256Signer() (*PS256Signer, error) {
	privKey, err := rsa.GenerateKey(rand.Reader, rsaKeySize)
	if err != nil {
		return nil, err
	}

	return GetPS256Signer(privKey), nil
}

// GetPS256Signer creates a new PS256 signer with provided RSA private key.
func GetPS256Signer(privKey *rsa.PrivateKey) *PS256Signer {
	return &PS256Signer{rsaSigner: *newRSASigner(privKey)}
}

// PS256Signer makes RSASSA-PSS SHA-256 signatures.
type PS256Signer struct {
	rsaSigner
}

// Sign signs a message.
func (s *PS256Signer) Sign(msg []byte) ([]byte, error) {
	hasher := crypto.SHA256.New()

	_, _ = hasher.Write(msg)

	hashed := hasher.Sum(nil)

	return rsa.SignPSS(rand.Reader, s.privateKey, crypto.SHA256, hashed, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
}

// Alg return alg.
func (s *PS256Signer) Alg() string {
	return api.AlgPS256
}

func newRSASigner(privKey *rsa.PrivateKey) *rsaSigner {
	pubKey := &privKey.PublicKey

	return &rsaSigner{
		privateKey:  privKey,
		PubKey:      pubKey,
		pubKeyBytes: x509.MarshalPKCS1PublicKey(pubKey),
	}
}

type rsaSigner struct {
	privateKey  *rsa.PrivateKey
	PubKey      *rsa.PublicKey
	pubKeyBytes []byte
}

func (s *rsaSigner) PublicKey() interface{} {
	return s.PubKey
}

func (s *rsaSigner) PublicKeyBytes() []byte {
	return s.pubKeyBytes
}
