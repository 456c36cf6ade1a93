/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/verifier"
)

// Verifier verifies the proofs of credentials and presentations. It is safe for concurrent use.
type Verifier struct {
	opts        *options
	resolver    api.Resolver
	docVerifier *verifier.DocumentVerifier
}

// NewVerifier returns a Verifier resolving verification methods with resolver.
func NewVerifier(resolver api.Resolver, opts ...VerifierOpt) (*Verifier, error) {
	if resolver == nil {
		return nil, errors.New("resolver must be provided")
	}

	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	docVerifier, err := verifier.New(o.registry, resolver)
	if err != nil {
		return nil, err
	}

	return &Verifier{opts: o, resolver: resolver, docVerifier: docVerifier}, nil
}

// Verify checks every proof of the document and aggregates the outcomes. A nil policy is the zero Policy:
// at least one proof must pass. The error is set only when the document cannot be verified at all, such as a
// document without proofs; every other failure is reported in the Result.
func (v *Verifier) Verify(ctx context.Context, doc map[string]interface{}, policy *Policy) (*Result, error) {
	if policy == nil {
		policy = &Policy{}
	}

	return v.verifyDocument(ctx, doc, policy)
}

func (v *Verifier) verifyDocument(ctx context.Context, doc map[string]interface{},
	policy *Policy) (*Result, error) {
	rawProofs, err := v.validateStructure(doc)
	if err != nil {
		return nil, err
	}

	now := v.now(policy)
	presentation := isPresentation(doc)

	logger.Debugf("verify %d proof(s) of %s, policy %s", len(rawProofs), safeStringValue(doc[jsonFldID]), policy)

	r := &Result{ProofResults: make([]ProofResult, len(rawProofs))}

	v.verifyProofs(ctx, doc, rawProofs, policy, presentation, now, r)
	r.addCheck(CheckProof)

	if presentation && (policy.Challenge != "" || policy.Domain != "") {
		r.addCheck(CheckBinding)
	}

	r.checkNamedRequirements(policy)

	if r.hasProof((*ProofResult).Valid) {
		if err := v.checkDocument(ctx, doc, policy, now, r); err != nil {
			r.failPassed(err)
		}
	}

	if presentation {
		r.Credentials = v.verifyCredentials(ctx, doc, policy)
	}

	r.evaluate(policy)

	return r, nil
}

// verifyProofs runs the proof pipelines concurrently. Each pipeline writes only its own result slot.
func (v *Verifier) verifyProofs(ctx context.Context, doc map[string]interface{}, rawProofs []map[string]interface{},
	policy *Policy, holder bool, now time.Time, r *Result) {
	concurrency := v.opts.concurrency
	if policy.Concurrency > 0 {
		concurrency = policy.Concurrency
	}

	var g errgroup.Group

	g.SetLimit(concurrency)

	for i, raw := range rawProofs {
		i, raw := i, raw

		g.Go(func() error {
			r.ProofResults[i] = v.verifyProof(ctx, doc, i, raw, policy, holder, now)

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck
}

func (v *Verifier) verifyProof(ctx context.Context, doc map[string]interface{}, index int,
	raw map[string]interface{}, policy *Policy, holder bool, now time.Time) ProofResult {
	pr := ProofResult{
		Index:              index,
		Type:               safeStringValue(raw[jsonFldType]),
		VerificationMethod: safeStringValue(raw["verificationMethod"]),
	}

	if pr.VerificationMethod == "" {
		pr.VerificationMethod = safeStringValue(raw["creator"])
	}

	pr.Required = policy.isRequired(pr.Type, pr.VerificationMethod)

	start := v.opts.clock()

	pr.Err = v.runProofPipeline(ctx, doc, raw, policy, holder, now)

	v.opts.observeVerify(pr.Type, pr.Err, start)

	if pr.Err != nil {
		logger.Warnf("proof %d (%s) by %s failed: %v", index, pr.Type, pr.VerificationMethod, pr.Err)
	} else {
		logger.Debugf("proof %d (%s) by %s verified", index, pr.Type, pr.VerificationMethod)
	}

	return pr
}

func (v *Verifier) runProofPipeline(ctx context.Context, doc, raw map[string]interface{}, policy *Policy,
	holder bool, now time.Time) error {
	p, err := proof.NewProof(raw)
	if err != nil {
		return api.NewError(api.DocumentMalformed, "parse proof", err)
	}

	if err = checkProofOptions(p, policy, holder, now); err != nil {
		return err
	}

	ctx, cancel := v.proofContext(ctx, policy)
	defer cancel()

	vm, err := v.docVerifier.VerifyProof(ctx, doc, p)
	if err != nil {
		return err
	}

	if policy.CheckProofPurpose && !vm.HasRelationship(proofPurpose(p)) {
		return api.Errorf(api.PolicyViolation, "check proof purpose",
			"%s is not authorized for %s by its controller", vm.ID, proofPurpose(p))
	}

	if !policy.SkipTemporal && p.Expires != nil && now.After(p.Expires.Time) {
		return api.Errorf(api.ExpiredOrNotYetValid, "check proof", "proof expired at %s", p.Expires.FormatToString())
	}

	return nil
}

// checkProofOptions matches the proof against the policy before any resolution or cryptography.
func checkProofOptions(p *proof.Proof, policy *Policy, holder bool, now time.Time) error {
	const op = "check proof options"

	if holder {
		if policy.Challenge != "" && p.Challenge != policy.Challenge {
			return api.Errorf(api.PolicyViolation, op, "challenge %q does not match", p.Challenge)
		}

		if policy.Domain != "" && p.Domain != policy.Domain {
			return api.Errorf(api.PolicyViolation, op, "domain %q does not match", p.Domain)
		}
	}

	if policy.ProofPurpose != "" && proofPurpose(p) != policy.ProofPurpose {
		return api.Errorf(api.PolicyViolation, op, "proof purpose %s, expected %s", proofPurpose(p),
			policy.ProofPurpose)
	}

	if p.Created != nil && p.Created.After(now) {
		return api.Errorf(api.PolicyViolation, op, "proof created in the future: %s", p.Created.FormatToString())
	}

	return nil
}

func proofPurpose(p *proof.Proof) string {
	if p.ProofPurpose == "" {
		return api.DefaultProofPurpose
	}

	return p.ProofPurpose
}

// checkDocument runs the checks that belong to the document rather than to a proof: validity period and status.
func (v *Verifier) checkDocument(ctx context.Context, doc map[string]interface{}, policy *Policy, now time.Time,
	r *Result) error {
	if !policy.SkipTemporal {
		r.addCheck(CheckTemporal)

		if err := checkTemporal(doc, now); err != nil {
			return err
		}
	}

	return v.checkStatus(ctx, doc, policy, r)
}

// checkTemporal requires now to lie within [validFrom or issuanceDate, validUntil or expirationDate].
func checkTemporal(doc map[string]interface{}, now time.Time) error {
	const op = "check validity period"

	from, name, err := timeField(doc, jsonFldValidFrom, jsonFldIssued)
	if err != nil {
		return api.NewError(api.DocumentMalformed, op, err)
	}

	if from != nil && now.Before(*from) {
		return api.Errorf(api.ExpiredOrNotYetValid, op, "not valid before %s (%s)", from.Format(time.RFC3339), name)
	}

	until, name, err := timeField(doc, jsonFldValidUntil, jsonFldExpired)
	if err != nil {
		return api.NewError(api.DocumentMalformed, op, err)
	}

	if until != nil && now.After(*until) {
		return api.Errorf(api.ExpiredOrNotYetValid, op, "expired at %s (%s)", until.Format(time.RFC3339), name)
	}

	return nil
}

func (v *Verifier) verifyCredentials(ctx context.Context, vp map[string]interface{}, policy *Policy) []*Result {
	raw, ok := vp[jsonFldCredentials]
	if !ok || raw == nil {
		return nil
	}

	credentials, ok := raw.([]interface{})
	if !ok {
		credentials = []interface{}{raw}
	}

	cp := policy.credentialPolicy()
	results := make([]*Result, len(credentials))

	for i, c := range credentials {
		results[i] = v.verifyCredential(ctx, c, cp)
	}

	return results
}

func (v *Verifier) verifyCredential(ctx context.Context, raw interface{}, policy *Policy) *Result {
	var (
		result *Result
		err    error
	)

	switch c := raw.(type) {
	case map[string]interface{}:
		result, err = v.verifyDocument(ctx, c, policy)
	case string:
		result, err = v.verifyJWT(ctx, c, policy)
	default:
		err = api.Errorf(api.DocumentMalformed, "verify credential", "credential must be an object or a JWT, got %T", raw)
	}

	if err != nil {
		return &Result{Errors: []error{err}}
	}

	return result
}

func (v *Verifier) proofContext(ctx context.Context, policy *Policy) (context.Context, context.CancelFunc) {
	timeout := v.opts.proofTimeout
	if policy.ProofTimeout > 0 {
		timeout = policy.ProofTimeout
	}

	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}

	return context.WithCancel(ctx)
}

func (v *Verifier) now(policy *Policy) time.Time {
	if policy.Now != nil {
		return *policy.Now
	}

	return v.opts.clock()
}
