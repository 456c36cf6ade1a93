/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsapkcs1signature2018

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	sigutil "github.com/hyperledger/aries-vcproof/pkg/doc/util/signature"
)

func TestPublicKeyVerifier_Verify(t *testing.T) {
	signer, err := sigutil.NewSigner(sigutil.RSARS256Type)
	require.NoError(t, err)

	msg := []byte("test message")

	msgSig, err := signer.Sign(msg)
	require.NoError(t, err)

	pubKey := &api.PublicKey{
		Type:  "RsaVerificationKey2018",
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
	require.Equal(t, api.AlgRS256, s.Descriptor().Family.Algorithm())
}
