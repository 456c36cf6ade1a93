/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

// Policy tells which proofs of a document are required and which checks run.
//
// Proofs named by RequiredSuites or RequiredVerificationMethods are required, and every name must match at least
// one proof. Without names, RequireAll makes every proof required; otherwise at least one proof must pass.
type Policy struct {
	RequireAll                  bool     `json:"requireAll,omitempty"`
	RequiredSuites              []string `json:"requiredSuites,omitempty"`
	RequiredVerificationMethods []string `json:"requiredVerificationMethods,omitempty"`

	// ProofPurpose pins the purpose every proof must declare.
	ProofPurpose string `json:"proofPurpose,omitempty"`
	// Challenge and Domain bind the holder proofs of a presentation.
	Challenge string `json:"challenge,omitempty"`
	Domain    string `json:"domain,omitempty"`
	// CheckProofPurpose requires the controller to list the verification method under the proof purpose.
	CheckProofPurpose bool `json:"checkProofPurpose,omitempty"`

	SkipTemporal bool `json:"skipTemporal,omitempty"`
	SkipStatus   bool `json:"skipStatus,omitempty"`

	// Concurrency bounds the proofs verified in parallel; zero keeps the verifier default.
	Concurrency int `json:"concurrency,omitempty"`
	// ProofTimeout bounds the resolution and status calls of each proof; zero keeps the verifier default.
	ProofTimeout time.Duration `json:"proofTimeout,omitempty"`
	// Now overrides the verifier clock.
	Now *time.Time `json:"now,omitempty"`
}

// DecodePolicy decodes a policy from a generic map, e.g. parsed JSON or YAML configuration.
// Durations are strings such as "5s" and Now is an RFC 3339 timestamp.
func DecodePolicy(m map[string]interface{}) (*Policy, error) {
	policy := &Policy{}

	err := maphelpers.Decode(m, policy,
		maphelpers.StringToDuration(),
		mapstructure.StringToTimeHookFunc(time.RFC3339))
	if err != nil {
		return nil, api.NewError(api.PolicyViolation, "decode policy", err)
	}

	if policy.Concurrency < 0 {
		return nil, api.Errorf(api.PolicyViolation, "decode policy", "concurrency must not be negative")
	}

	return policy, nil
}

func (p *Policy) requiresNamedProofs() bool {
	return len(p.RequiredSuites) > 0 || len(p.RequiredVerificationMethods) > 0
}

func (p *Policy) isRequired(proofType, verificationMethod string) bool {
	if !p.requiresNamedProofs() {
		return p.RequireAll
	}

	return contains(p.RequiredSuites, proofType) || contains(p.RequiredVerificationMethods, verificationMethod)
}

// credentialPolicy is the policy applied to the credentials embedded in a presentation:
// holder binding and purpose pinning belong to the presentation only.
func (p *Policy) credentialPolicy() *Policy {
	cp := *p
	cp.Challenge = ""
	cp.Domain = ""
	cp.ProofPurpose = ""
	cp.RequiredSuites = nil
	cp.RequiredVerificationMethods = nil

	return &cp
}

func (p *Policy) String() string {
	return fmt.Sprintf("requireAll=%t suites=%v methods=%v purpose=%q", p.RequireAll, p.RequiredSuites,
		p.RequiredVerificationMethods, p.ProofPurpose)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}

	return false
}
