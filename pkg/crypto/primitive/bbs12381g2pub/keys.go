/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"
	"hash"
	"io"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/hkdf"
)

const (
	seedSize = frCompressedSize

	generateKeySalt = "BBS-SIG-KEYGEN-SALT-"

	// okm length used to derive the secret scalar, 48 bytes keep the modular bias negligible.
	keyOKMSize = 48
)

// PublicKey defines BLS Public Key.
type PublicKey struct {
	PointG2 *ml.G2
}

// PrivateKey defines BLS Public Key.
type PrivateKey struct {
	FR *ml.Zr
}

// PublicKeyWithGenerators extends PublicKey with a blinding generator h0, a commitment to the secret key w,
// and a generator for each message h.
type PublicKeyWithGenerators struct {
	h0 *ml.G1
	h  []*ml.G1

	w *ml.G2

	messagesCount int
}

// ToPublicKeyWithGenerators creates PublicKeyWithGenerators from the PublicKey.
func (pk *PublicKey) ToPublicKeyWithGenerators(messagesCount int) *PublicKeyWithGenerators {
	domain := pk.PointG2.Bytes()

	h0 := curve.HashToG1(generatorData(domain, 0, messagesCount))

	h := make([]*ml.G1, messagesCount)
	for i := 1; i <= messagesCount; i++ {
		h[i-1] = curve.HashToG1(generatorData(domain, i, messagesCount))
	}

	return &PublicKeyWithGenerators{
		h0:            h0,
		h:             h,
		w:             pk.PointG2,
		messagesCount: messagesCount,
	}
}

// generatorData is w || index || count, so every generator depends on the key and the message count.
func generatorData(domain []byte, index, messagesCount int) []byte {
	data := make([]byte, 0, len(domain)+8) //nolint:gomnd

	data = append(data, domain...)
	data = append(data, uint32ToBytes(uint32(index))...)
	data = append(data, uint32ToBytes(uint32(messagesCount))...)

	return data
}

// UnmarshalPrivateKey unmarshals PrivateKey.
func UnmarshalPrivateKey(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != frCompressedSize {
		return nil, errors.New("invalid size of private key")
	}

	fr := parseFr(privKeyBytes)

	if fr.Equals(curve.NewZrFromInt(0)) {
		return nil, errors.New("private key is zero")
	}

	return &PrivateKey{
		FR: fr,
	}, nil
}

// Marshal marshals PrivateKey.
func (k *PrivateKey) Marshal() ([]byte, error) {
	return frToBytes(k.FR), nil
}

// PublicKey returns a Public Key as G2 point generated from the Private Key.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{curve.GenG2.Mul(k.FR)}
}

// UnmarshalPublicKey parses a PublicKey from bytes.
func UnmarshalPublicKey(pubKeyBytes []byte) (*PublicKey, error) {
	if len(pubKeyBytes) != bls12381G2PublicKeyLen {
		return nil, errors.New("invalid size of public key")
	}

	pointG2, err := curve.NewG2FromCompressed(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("deserialize public key: %w", err)
	}

	return &PublicKey{
		PointG2: pointG2,
	}, nil
}

// Marshal marshals PublicKey.
func (pk *PublicKey) Marshal() ([]byte, error) {
	return pk.PointG2.Compressed(), nil
}

// GenerateKeyPair generates BBS+ PublicKey and PrivateKey pair. A nil seed draws a random one.
func GenerateKeyPair(h func() hash.Hash, seed []byte) (*PublicKey, *PrivateKey, error) {
	if len(seed) != 0 && len(seed) != seedSize {
		return nil, nil, errors.New("invalid size of seed")
	}

	okm, err := generateOKM(seed, h)
	if err != nil {
		return nil, nil, err
	}

	privKeyFr := frFromOKM(okm)

	privKey := &PrivateKey{privKeyFr}
	pubKey := privKey.PublicKey()

	return pubKey, privKey, nil
}

func generateOKM(ikm []byte, h func() hash.Hash) ([]byte, error) {
	if len(ikm) == 0 {
		ikm = make([]byte, seedSize)

		if _, err := io.ReadFull(randReader, ikm); err != nil {
			return nil, fmt.Errorf("read random seed: %w", err)
		}
	}

	hkdfReader := hkdf.New(h, append(ikm, 0), []byte(generateKeySalt), []byte{0, keyOKMSize})

	okm := make([]byte, keyOKMSize)

	if _, err := io.ReadFull(hkdfReader, okm); err != nil {
		return nil, fmt.Errorf("derive key material: %w", err)
	}

	return okm, nil
}
