/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signature

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// NewECDSAP256Signer creates a new ECDSA P256 signer with generated key.
func NewECDSAP256Signer() (*ECDSASigner, error) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	return GetECDSAP256Signer(privKey), nil
}

// GetECDSAP256Signer creates a new ECDSA P256 signer with passed ECDSA P256 private key.
func GetECDSAP256Signer(privKey *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{privateKey: privKey, PubKey: &privKey.PublicKey, hash: crypto.SHA256, alg: api.AlgES256}
}

// NewECDSASecp256k1Signer creates a new ECDSA Secp256k1 signer with generated key.
func NewECDSASecp256k1Signer() (*ECDSASigner, error) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	return GetECDSASecp256k1Signer(privKey.ToECDSA()), nil
}

// GetECDSASecp256k1Signer creates a new ECDSA Secp256k1 signer with passed ECDSA Secp256k1 private key.
func GetECDSASecp256k1Signer(privKey *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{privateKey: privKey, PubKey: &privKey.PublicKey, hash: crypto.SHA256, alg: api.AlgES256K}
}

// ECDSASigner makes ECDSA based signatures in the IEEE P1363 (r || s) form.
type ECDSASigner struct {
	privateKey *ecdsa.PrivateKey
	PubKey     *ecdsa.PublicKey
	hash       crypto.Hash
	alg        string
}

// Sign signs a message.
func (es *ECDSASigner) Sign(msg []byte) ([]byte, error) {
	return signEcdsa(msg, es.privateKey, es.hash)
}

// Alg return alg.
func (es *ECDSASigner) Alg() string {
	return es.alg
}

// PublicKey returns a public key object (*ecdsa.PublicKey).
func (es *ECDSASigner) PublicKey() interface{} {
	return es.PubKey
}

// PublicKeyBytes returns the uncompressed public key point.
func (es *ECDSASigner) PublicKeyBytes() []byte {
	return marshalUncompressed(es.PubKey)
}

//nolint:gomnd
func signEcdsa(msg []byte, privateKey *ecdsa.PrivateKey, hash crypto.Hash) ([]byte, error) {
	hasher := hash.New()
	_, _ = hasher.Write(msg) //nolint:errcheck
	hashed := hasher.Sum(nil)

	r, s, err := ecdsa.Sign(rand.Reader, privateKey, hashed)
	if err != nil {
		return nil, err
	}

	keyBytes := curveKeySize(privateKey.Curve)

	return append(copyPadded(r.Bytes(), keyBytes), copyPadded(s.Bytes(), keyBytes)...), nil
}

//nolint:gomnd
func curveKeySize(curve elliptic.Curve) int {
	curveBits := curve.Params().BitSize

	keyBytes := curveBits / 8
	if curveBits%8 > 0 {
		keyBytes++
	}

	return keyBytes
}

func copyPadded(source []byte, size int) []byte {
	dest := make([]byte, size)
	copy(dest[size-len(source):], source)

	return dest
}

//nolint:gomnd
func marshalUncompressed(pub *ecdsa.PublicKey) []byte {
	size := curveKeySize(pub.Curve)

	out := make([]byte, 0, 1+2*size)
	out = append(out, 4)
	out = append(out, copyPadded(pub.X.Bytes(), size)...)

	return append(out, copyPadded(pub.Y.Bytes(), size)...)
}

// NewSecp256k1RecoverableSigner creates a new recoverable secp256k1 signer with generated key.
func NewSecp256k1RecoverableSigner() (*Secp256k1RecoverableSigner, error) {
	privKey, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	return GetSecp256k1RecoverableSigner(privKey)
}

// GetSecp256k1RecoverableSigner creates a recoverable secp256k1 signer with passed private key.
func GetSecp256k1RecoverableSigner(privKey *ecdsa.PrivateKey) (*Secp256k1RecoverableSigner, error) {
	raw := ethcrypto.FromECDSA(privKey)
	if len(raw) == 0 {
		return nil, errors.New("secp256k1: invalid private key")
	}

	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("secp256k1: %w", err)
	}

	return &Secp256k1RecoverableSigner{
		privateKey: key,
		PubKey:     &ecdsa.PublicKey{Curve: btcec.S256(), X: key.X, Y: key.Y},
	}, nil
}

// Secp256k1RecoverableSigner makes ES256K-R signatures: r || s || recovery id over the SHA-256 digest.
type Secp256k1RecoverableSigner struct {
	privateKey *ecdsa.PrivateKey
	PubKey     *ecdsa.PublicKey
}

// Sign signs a message.
func (s *Secp256k1RecoverableSigner) Sign(msg []byte) ([]byte, error) {
	hash := sha256.Sum256(msg)

	return ethcrypto.Sign(hash[:], s.privateKey)
}

// Alg return alg.
func (s *Secp256k1RecoverableSigner) Alg() string {
	return api.AlgES256KR
}

// PublicKey returns a public key object (*ecdsa.PublicKey on btcec's secp256k1 curve).
func (s *Secp256k1RecoverableSigner) PublicKey() interface{} {
	return s.PubKey
}

// PublicKeyBytes returns the uncompressed public key point.
func (s *Secp256k1RecoverableSigner) PublicKeyBytes() []byte {
	return marshalUncompressed(s.PubKey)
}

// Address returns the Ethereum address of the key, hex encoded with 0x prefix.
func (s *Secp256k1RecoverableSigner) Address() string {
	return ethcrypto.PubkeyToAddress(s.privateKey.PublicKey).Hex()
}
