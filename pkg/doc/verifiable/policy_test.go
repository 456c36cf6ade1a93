/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

func TestDecodePolicy(t *testing.T) {
	t.Run("full policy", func(t *testing.T) {
		policy, err := DecodePolicy(map[string]interface{}{
			"requireAll":                  true,
			"requiredSuites":              []interface{}{"Ed25519Signature2018"},
			"requiredVerificationMethods": []interface{}{"did:example:123#key-1"},
			"proofPurpose":                "authentication",
			"challenge":                   "abc",
			"domain":                      "example.com",
			"checkProofPurpose":           "true",
			"skipStatus":                  true,
			"concurrency":                 "2",
			"proofTimeout":                "1500ms",
			"now":                         "2021-01-01T00:00:00Z",
		})
		require.NoError(t, err)
		require.True(t, policy.RequireAll)
		require.Equal(t, []string{"Ed25519Signature2018"}, policy.RequiredSuites)
		require.Equal(t, []string{"did:example:123#key-1"}, policy.RequiredVerificationMethods)
		require.Equal(t, api.Authentication, policy.ProofPurpose)
		require.Equal(t, "abc", policy.Challenge)
		require.Equal(t, "example.com", policy.Domain)
		require.True(t, policy.CheckProofPurpose)
		require.True(t, policy.SkipStatus)
		require.False(t, policy.SkipTemporal)
		require.Equal(t, 2, policy.Concurrency)
		require.Equal(t, 1500*time.Millisecond, policy.ProofTimeout)
		require.NotNil(t, policy.Now)
		require.True(t, policy.Now.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("empty", func(t *testing.T) {
		policy, err := DecodePolicy(map[string]interface{}{})
		require.NoError(t, err)
		require.Equal(t, &Policy{}, policy)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			m    map[string]interface{}
		}{
			{name: "negative concurrency", m: map[string]interface{}{"concurrency": -1}},
			{name: "invalid duration", m: map[string]interface{}{"proofTimeout": "soon"}},
			{name: "invalid time", m: map[string]interface{}{"now": "today"}},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := DecodePolicy(tc.m)
				requireKind(t, api.PolicyViolation, err)
			})
		}
	})
}

func TestPolicy_IsRequired(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		required bool
	}{
		{name: "any proof", policy: Policy{}, required: false},
		{name: "all proofs", policy: Policy{RequireAll: true}, required: true},
		{name: "named suite", policy: Policy{RequiredSuites: []string{"RsaSignature2018"}}, required: true},
		{name: "other suite", policy: Policy{RequiredSuites: []string{"Ed25519Signature2018"}}, required: false},
		{
			name:     "named method overrides require all",
			policy:   Policy{RequireAll: true, RequiredVerificationMethods: []string{"did:example:1#k"}},
			required: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.required, tc.policy.isRequired("RsaSignature2018", "did:example:2#k"))
		})
	}
}

func TestPolicy_CredentialPolicy(t *testing.T) {
	p := &Policy{
		RequireAll:        true,
		RequiredSuites:    []string{"Ed25519Signature2018"},
		ProofPurpose:      api.Authentication,
		Challenge:         "abc",
		Domain:            "example.com",
		CheckProofPurpose: true,
	}

	cp := p.credentialPolicy()
	require.True(t, cp.RequireAll)
	require.True(t, cp.CheckProofPurpose)
	require.Empty(t, cp.RequiredSuites)
	require.Empty(t, cp.ProofPurpose)
	require.Empty(t, cp.Challenge)
	require.Empty(t, cp.Domain)
	require.Equal(t, "abc", p.Challenge)
}
