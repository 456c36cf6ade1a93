/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// Checks reported in Result.Checks.
const (
	CheckProof    = "proof"
	CheckTemporal = "temporal"
	CheckStatus   = "status"
	CheckBinding  = "challenge"
)

// ProofResult is the outcome of one proof.
type ProofResult struct {
	// Index of the proof in the document proof sequence.
	Index              int
	Type               string
	VerificationMethod string
	// Required tells whether the policy requires this proof to pass.
	Required bool
	// Err is nil when the proof passed, an *api.Error otherwise.
	Err error
}

// Valid reports whether the proof passed.
func (r *ProofResult) Valid() bool {
	return r.Err == nil
}

// Kind returns the error kind of a failed proof, api.KindUnknown for a passed one.
func (r *ProofResult) Kind() api.ErrorKind {
	return api.KindOf(r.Err)
}

// Result is the aggregated outcome of a document verification.
type Result struct {
	Valid        bool
	ProofResults []ProofResult
	// Errors are failures that belong to the document rather than to a single proof.
	Errors []error
	// Warnings name non-required proofs that failed and checks that could not run.
	Warnings []string
	// Checks lists the checks that were performed.
	Checks []string
	// Credentials holds the results of the credentials embedded in a presentation, in document order.
	Credentials []*Result
}

// Reasons returns every failure of the result and of its embedded credentials.
func (r *Result) Reasons() []error {
	var reasons []error

	reasons = append(reasons, r.Errors...)

	for i := range r.ProofResults {
		if pr := &r.ProofResults[i]; pr.Err != nil {
			reasons = append(reasons, fmt.Errorf("proof %d (%s): %w", pr.Index, pr.Type, pr.Err))
		}
	}

	for i, c := range r.Credentials {
		for _, reason := range c.Reasons() {
			reasons = append(reasons, fmt.Errorf("credential %d: %w", i, reason))
		}
	}

	return reasons
}

func (r *Result) addCheck(check string) {
	if !contains(r.Checks, check) {
		r.Checks = append(r.Checks, check)
	}
}

func (r *Result) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// evaluate sets Valid from the proof results, the document errors and the embedded credentials.
func (r *Result) evaluate(policy *Policy) {
	r.Valid = len(r.Errors) == 0

	anyPassed := false

	for i := range r.ProofResults {
		pr := &r.ProofResults[i]

		if pr.Valid() {
			anyPassed = true

			continue
		}

		if pr.Required {
			r.Valid = false
		} else {
			r.warn("proof %d (%s) failed: %v", pr.Index, pr.Type, pr.Err)
		}
	}

	if !policy.requiresNamedProofs() && !policy.RequireAll && !anyPassed {
		r.Valid = false
	}

	for _, c := range r.Credentials {
		if !c.Valid {
			r.Valid = false
		}
	}
}

// checkNamedRequirements adds an error for every policy name that matches no proof.
func (r *Result) checkNamedRequirements(policy *Policy) {
	for _, suiteID := range policy.RequiredSuites {
		if !r.hasProof(func(pr *ProofResult) bool { return pr.Type == suiteID }) {
			r.Errors = append(r.Errors, api.Errorf(api.PolicyViolation, "check policy",
				"no proof of required suite %s", suiteID))
		}
	}

	for _, vm := range policy.RequiredVerificationMethods {
		if !r.hasProof(func(pr *ProofResult) bool { return pr.VerificationMethod == vm }) {
			r.Errors = append(r.Errors, api.Errorf(api.PolicyViolation, "check policy",
				"no proof by required verification method %s", vm))
		}
	}
}

func (r *Result) hasProof(match func(pr *ProofResult) bool) bool {
	for i := range r.ProofResults {
		if match(&r.ProofResults[i]) {
			return true
		}
	}

	return false
}

// failPassed attaches a document level failure to every proof that passed so far.
func (r *Result) failPassed(err error) {
	for i := range r.ProofResults {
		if r.ProofResults[i].Err == nil {
			r.ProofResults[i].Err = err
		}
	}
}
