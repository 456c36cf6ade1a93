/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"
	"time"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/suite"
)

const defaultConcurrency = 4

// Metrics receives measurements of issuance and verification.
type Metrics interface {
	// ProofSigned records a signing attempt of the suite. err is nil on success.
	ProofSigned(suiteID string, err error, d time.Duration)
	// ProofVerified records the outcome of one proof verification. err is nil on success.
	ProofVerified(suiteID string, err error, d time.Duration)
}

type options struct {
	registry      *suite.Registry
	canonicalizer *canonicalizer.Canonicalizer
	statusChecker StatusChecker
	clock         func() time.Time
	metrics       Metrics
	concurrency   int
	proofTimeout  time.Duration
}

// Opt configures an Issuer or a Verifier.
type Opt func(opts *options)

// VerifierOpt is an option of NewVerifier.
type VerifierOpt = Opt

// IssuerOpt is an option of NewIssuer.
type IssuerOpt = Opt

// WithRegistry sets the suite registry. By default every suite of DefaultSuites is registered.
func WithRegistry(registry *suite.Registry) Opt {
	return func(opts *options) {
		opts.registry = registry
	}
}

// WithCanonicalizer sets the canonicalizer the default registry is built with. It is ignored with WithRegistry.
func WithCanonicalizer(c *canonicalizer.Canonicalizer) Opt {
	return func(opts *options) {
		opts.canonicalizer = c
	}
}

// WithStatusChecker sets the credential status collaborator. Without it credentialStatus is reported as a warning.
func WithStatusChecker(checker StatusChecker) Opt {
	return func(opts *options) {
		opts.statusChecker = checker
	}
}

// WithClock sets the source of the current time, time.Now by default.
func WithClock(clock func() time.Time) Opt {
	return func(opts *options) {
		opts.clock = clock
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Opt {
	return func(opts *options) {
		opts.metrics = m
	}
}

// WithConcurrency sets the default number of proofs verified in parallel, at least one. A policy may override it.
func WithConcurrency(n int) Opt {
	return func(opts *options) {
		opts.concurrency = n
	}
}

// WithProofTimeout sets the default deadline of the resolution and status calls of one proof.
// A policy may override it. Zero means no deadline besides the caller's context.
func WithProofTimeout(d time.Duration) Opt {
	return func(opts *options) {
		opts.proofTimeout = d
	}
}

func newOptions(opts []Opt) (*options, error) {
	o := &options{
		clock:       time.Now,
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", o.concurrency)
	}

	if o.registry != nil {
		return o, nil
	}

	if o.canonicalizer == nil {
		c, err := canonicalizer.New()
		if err != nil {
			return nil, err
		}

		o.canonicalizer = c
	}

	registry, err := NewDefaultRegistry(o.canonicalizer)
	if err != nil {
		return nil, err
	}

	o.registry = registry

	return o, nil
}

func (o *options) observeVerify(suiteID string, err error, start time.Time) {
	if o.metrics != nil {
		o.metrics.ProofVerified(suiteID, err, o.clock().Sub(start))
	}
}

func (o *options) observeSign(suiteID string, err error, start time.Time) {
	if o.metrics != nil {
		o.metrics.ProofSigned(suiteID, err, o.clock().Sub(start))
	}
}
