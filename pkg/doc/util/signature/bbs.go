/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signature

import (
	"crypto/sha256"
	"strings"

	"github.com/hyperledger/aries-vcproof/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// NewBBSSigner creates a new BBS+ signer with generated BLS12-381 G2 key pair.
func NewBBSSigner() (*BBSSigner, error) {
	pubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(sha256.New, nil)
	if err != nil {
		return nil, err
	}

	return newBBSSigner(pubKey, privKey)
}

// GetBBSSigner creates a new BBS+ signer from a marshalled private key.
func GetBBSSigner(privKeyBytes []byte) (*BBSSigner, error) {
	privKey, err := bbs12381g2pub.UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, err
	}

	return newBBSSigner(privKey.PublicKey(), privKey)
}

func newBBSSigner(pubKey *bbs12381g2pub.PublicKey, privKey *bbs12381g2pub.PrivateKey) (*BBSSigner, error) {
	pubKeyBytes, err := pubKey.Marshal()
	if err != nil {
		return nil, err
	}

	return &BBSSigner{privateKey: privKey, pubKeyBytes: pubKeyBytes}, nil
}

// BBSSigner makes BBS+ signatures. The signed data is a list of N-Quad statements, one per line;
// each statement is a separate message.
type BBSSigner struct {
	privateKey  *bbs12381g2pub.PrivateKey
	pubKeyBytes []byte
}

// Sign signs every non-empty line of msg as a separate message.
func (s *BBSSigner) Sign(msg []byte) ([]byte, error) {
	return bbs12381g2pub.New().SignWithKey(splitMessageIntoLines(string(msg)), s.privateKey)
}

// Alg return alg.
func (s *BBSSigner) Alg() string {
	return api.AlgBLS12381G2
}

// PublicKey returns the compressed G2 public key.
func (s *BBSSigner) PublicKey() interface{} {
	return s.pubKeyBytes
}

// PublicKeyBytes returns the compressed G2 public key.
func (s *BBSSigner) PublicKeyBytes() []byte {
	return s.pubKeyBytes
}

func splitMessageIntoLines(msg string) [][]byte {
	rows := strings.Split(msg, "\n")

	msgs := make([][]byte, 0, len(rows))

	for _, row := range rows {
		if strings.TrimSpace(row) == "" {
			continue
		}

		msgs = append(msgs, []byte(row))
	}

	return msgs
}
