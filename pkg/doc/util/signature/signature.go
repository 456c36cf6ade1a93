/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signature provides in-memory key pair signers for every algorithm the proof suites support.
package signature

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// Signer defines generic signer.
type Signer interface {
	api.Signer

	// PublicKey returns a public key object (e.g. ed25519.PublicKey or *ecdsa.PublicKey).
	PublicKey() interface{}

	// PublicKeyBytes returns bytes of the public key.
	PublicKeyBytes() []byte
}

// KeyType names the key pair a Signer is generated for.
type KeyType string

// Supported key types.
const (
	ED25519Type                KeyType = "ED25519"
	ECDSAP256Type              KeyType = "ECDSAP256IEEEP1363"
	ECDSASecp256k1Type         KeyType = "ECDSASecp256k1IEEEP1363"
	ECDSASecp256k1RecoveryType KeyType = "ECDSASecp256k1Recoverable"
	RSARS256Type               KeyType = "RSARS256"
	RSAPS256Type               KeyType = "RSAPS256"
	BLS12381G2Type             KeyType = "BLS12381G2"
)

// NewSigner creates a new signer with a freshly generated key.
func NewSigner(keyType KeyType) (Signer, error) {
	switch keyType {
	case ED25519Type:
		return NewEd25519Signer()

	case ECDSAP256Type:
		return NewECDSAP256Signer()

	case ECDSASecp256k1Type:
		return NewECDSASecp256k1Signer()

	case ECDSASecp256k1RecoveryType:
		return NewSecp256k1RecoverableSigner()

	case RSARS256Type:
		return NewRS256Signer()

	case RSAPS256Type:
		return NewPS256Signer()

	case BLS12381G2Type:
		return NewBBSSigner()

	default:
		return nil, fmt.Errorf("unsupported key type: %s", keyType)
	}
}

// NewEd25519Signer creates a new Ed25519 signer with generated key.
func NewEd25519Signer() (*Ed25519Signer, error) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	return &Ed25519Signer{privateKey: privKey, PubKey: pubKey}, nil
}

// GetEd25519Signer creates a new Ed25519 signer with passed Ed25519 key pair.
func GetEd25519Signer(privKey ed25519.PrivateKey, pubKey ed25519.PublicKey) *Ed25519Signer {
	return &Ed25519Signer{privateKey: privKey, PubKey: pubKey}
}

// Ed25519Signer makes Ed25519 based signatures.
type Ed25519Signer struct {
	privateKey ed25519.PrivateKey
	PubKey     ed25519.PublicKey
}

// PublicKey returns a public key object (ed25519.PublicKey).
func (s *Ed25519Signer) PublicKey() interface{} {
	return s.PubKey
}

// PublicKeyBytes returns bytes of the public key.
func (s *Ed25519Signer) PublicKeyBytes() []byte {
	return s.PubKey
}

// Alg return alg.
func (s *Ed25519Signer) Alg() string {
	return api.AlgEdDSA
}

// Sign signs a message.
func (s *Ed25519Signer) Sign(msg []byte) ([]byte, error) {
	if l := len(s.privateKey); l != ed25519.PrivateKeySize {
		return nil, errors.New("ed25519: bad private key length")
	}

	return ed25519.Sign(s.privateKey, msg), nil
}
