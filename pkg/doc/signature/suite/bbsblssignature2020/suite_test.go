/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbsblssignature2020

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	sigutil "github.com/hyperledger/aries-vcproof/pkg/doc/util/signature"
)

func TestPublicKeyVerifier_Verify(t *testing.T) {
	signer, err := sigutil.NewSigner(sigutil.BLS12381G2Type)
	require.NoError(t, err)

	msg := []byte("statement one\nstatement two")

	msgSig, err := signer.Sign(msg)
	require.NoError(t, err)

	pubKey := &api.PublicKey{
		Type:  "Bls12381G2Key2020",
		Value: signer.PublicKeyBytes(),
	}

	v := NewPublicKeyVerifier()

	err = v.Verify(pubKey, msg, msgSig)
	require.NoError(t, err)

	err = v.Verify(pubKey, []byte("other message"), msgSig)
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	s := New()
	require.Equal(t, SignatureType, s.Descriptor().ID)
	require.Equal(t, api.AlgBLS12381G2, s.Descriptor().Family.Algorithm())
}
