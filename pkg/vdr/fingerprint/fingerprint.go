/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fingerprint encodes public keys as multicodec fingerprints, the method specific ids of did:key.
package fingerprint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"

	"github.com/hyperledger/aries-vcproof/pkg/doc/did"
)

// Multicodec codes of public keys.
// source: https://github.com/multiformats/multicodec/blob/master/table.csv.
const (
	Secp256k1PubKeyMultiCodec    = 0xe7
	BLS12381g2PubKeyMultiCodec   = 0xeb
	X25519PubKeyMultiCodec       = 0xec
	ED25519PubKeyMultiCodec      = 0xed
	BLS12381g1g2PubKeyMultiCodec = 0xee
	P256PubKeyMultiCodec         = 0x1200
)

// CreateDIDKeyByCode creates a did:key ID using the multicodec key fingerprint as per the did:key format spec
// found at: https://w3c-ccg.github.io/did-method-key/#format. It returns the DID and the id of its key.
func CreateDIDKeyByCode(code uint64, pubKey []byte) (string, string) {
	methodID := KeyFingerprint(code, pubKey)
	didKey := fmt.Sprintf("did:key:%s", methodID)
	keyID := fmt.Sprintf("%s#%s", didKey, methodID)

	return didKey, keyID
}

// CreateDIDKey creates a did:key ID of an Ed25519 public key.
func CreateDIDKey(pubKey []byte) (string, string) {
	return CreateDIDKeyByCode(ED25519PubKeyMultiCodec, pubKey)
}

// KeyFingerprint generates a multicode fingerprint for pubKeyValue (raw key []byte).
// It is mainly used as the controller ID (methodSpecification ID) of a did key.
func KeyFingerprint(code uint64, pubKeyValue []byte) string {
	multicodecValue := multicodec(code)
	mcLength := len(multicodecValue)
	buf := make([]uint8, mcLength+len(pubKeyValue))
	copy(buf, multicodecValue)
	copy(buf[mcLength:], pubKeyValue)

	return fmt.Sprintf("z%s", base58.Encode(buf))
}

func multicodec(code uint64) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, code)

	return buf[:n]
}

// PubKeyFromFingerprint extracts the raw public key and its multicodec code from a did:key fingerprint.
func PubKeyFromFingerprint(fingerprint string) ([]byte, uint64, error) {
	// did:key:MULTIBASE(base58-btc, MULTICODEC(public-key-type, raw-public-key-bytes))
	// https://w3c-ccg.github.io/did-method-key/#format
	if !strings.HasPrefix(fingerprint, "z") {
		return nil, 0, fmt.Errorf("unknown key encoding: %s", fingerprint)
	}

	mc := base58.Decode(fingerprint[1:]) // skip leading "z"
	if len(mc) == 0 {
		return nil, 0, errors.New("fingerprint is not base58 encoded")
	}

	code, n := binary.Uvarint(mc)
	if n <= 0 || n >= len(mc) {
		return nil, 0, errors.New("fingerprint has no multicodec prefix")
	}

	return mc[n:], code, nil
}

// MethodIDFromDIDKey parses the did:key DID and returns its method specific ID.
func MethodIDFromDIDKey(didKey string) (string, error) {
	id, err := did.Parse(didKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse did:key [%s]: %w", didKey, err)
	}

	if id.Method != "key" {
		return "", fmt.Errorf("not a did:key: %s", didKey)
	}

	// did:key is hard-coded to base58btc:
	// - https://w3c-ccg.github.io/did-method-key/
	// - https://github.com/multiformats/multibase#multibase-table
	if !strings.HasPrefix(id.MethodSpecificID, "z") {
		return "", fmt.Errorf("not a valid did:key identifier (not a base58btc multicodec): %s", didKey)
	}

	return id.MethodSpecificID, nil
}
