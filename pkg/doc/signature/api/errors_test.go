/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("bad signature")

	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "op and cause",
			err:      NewError(SignatureInvalid, "verify Ed25519Signature2018", cause),
			expected: "SignatureInvalid: verify Ed25519Signature2018: bad signature",
		},
		{
			name:     "cause only",
			err:      &Error{Kind: Revoked, Err: cause},
			expected: "Revoked: bad signature",
		},
		{
			name:     "op only",
			err:      &Error{Kind: StatusError, Op: "check status"},
			expected: "StatusError: check status",
		},
		{
			name:     "kind only",
			err:      ErrPolicyViolation,
			expected: "PolicyViolation",
		},
		{
			name:     "formatted",
			err:      Errorf(UnsupportedSuite, "lookup suite", "signature type %s not supported", "Foo2099"),
			expected: "UnsupportedSuite: lookup suite: signature type Foo2099 not supported",
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			require.EqualError(t, tc.err, tc.expected)
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	for kind := KindUnknown; kind <= PolicyViolation; kind++ {
		require.NotContains(t, kind.String(), "ErrorKind(")
	}

	require.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func TestError_Is(t *testing.T) {
	cause := errors.New("expired")
	err := fmt.Errorf("proof 1: %w", NewError(ExpiredOrNotYetValid, "check validity", cause))

	require.ErrorIs(t, err, ErrExpiredOrNotYetValid)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrRevoked)
	require.Equal(t, ExpiredOrNotYetValid, KindOf(err))
	require.Equal(t, KindUnknown, KindOf(cause))
	require.Equal(t, KindUnknown, KindOf(nil))
}

func TestWrapIfUntyped(t *testing.T) {
	require.NoError(t, WrapIfUntyped(SigningError, "sign", nil))

	typed := NewError(CanonicalizationError, "canonicalize", errors.New("undefined term"))
	require.Same(t, typed, WrapIfUntyped(SigningError, "sign", typed))

	wrapped := WrapIfUntyped(SigningError, "sign", errors.New("hsm unavailable"))
	require.Equal(t, SigningError, KindOf(wrapped))
	require.EqualError(t, wrapped, "SigningError: sign: hsm unavailable")
}

func TestVerificationMethod(t *testing.T) {
	vm := &VerificationMethod{
		ID:                  "did:example:123#key-1",
		Type:                "EcdsaSecp256k1RecoveryMethod2020",
		BlockchainAccountID: "eip155:1:0xAB16a96D359eC26a11e2C2b3d8f8B8942d5Bfcdb",
		Relationships:       []string{AssertionMethod},
	}

	require.True(t, vm.HasRelationship(AssertionMethod))
	require.False(t, vm.HasRelationship(Authentication))

	pk := vm.PublicKey()
	require.Equal(t, vm.Type, pk.Type)
	require.Equal(t, vm.BlockchainAccountID, pk.BlockchainAccountID)

	resolver := ResolverFunc(func(_ context.Context, id string) (*VerificationMethod, error) {
		if id == vm.ID {
			return vm, nil
		}

		return nil, errors.New("not found")
	})

	resolved, err := resolver.Resolve(context.Background(), vm.ID)
	require.NoError(t, err)
	require.Same(t, vm, resolved)

	_, err = resolver.Resolve(context.Background(), "did:example:123#key-2")
	require.Error(t, err)
}
