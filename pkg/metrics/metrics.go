/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metrics exposes issuance and verification measurements to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

const (
	namespace = "vcproof"

	outcomeOK = "ok"
)

// ProofMetrics implements verifiable.Metrics with Prometheus collectors labeled by suite and outcome.
// The outcome of a failure is the name of its error kind.
type ProofMetrics struct {
	signed         *prometheus.CounterVec
	verified       *prometheus.CounterVec
	signDuration   *prometheus.HistogramVec
	verifyDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with registry.
func New(registry prometheus.Registerer) *ProofMetrics {
	m := &ProofMetrics{
		signed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "issuer",
			Name:      "proofs_total",
			Help:      "Proofs signed, by suite and outcome",
		}, []string{"suite", "outcome"}),
		verified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "proofs_total",
			Help:      "Proofs verified, by suite and outcome",
		}, []string{"suite", "outcome"}),
		signDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "issuer",
			Name:      "sign_duration_seconds",
			Help:      "Time to sign one proof",
			Buckets:   prometheus.DefBuckets,
		}, []string{"suite"}),
		verifyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "verify_duration_seconds",
			Help:      "Time to verify one proof, resolution and status included",
			Buckets:   prometheus.DefBuckets,
		}, []string{"suite"}),
	}

	registry.MustRegister(m.signed, m.verified, m.signDuration, m.verifyDuration)

	return m
}

// ProofSigned records a signing attempt.
func (m *ProofMetrics) ProofSigned(suiteID string, err error, d time.Duration) {
	m.signed.WithLabelValues(suiteID, outcome(err)).Inc()
	m.signDuration.WithLabelValues(suiteID).Observe(d.Seconds())
}

// ProofVerified records the outcome of one proof verification.
func (m *ProofMetrics) ProofVerified(suiteID string, err error, d time.Duration) {
	m.verified.WithLabelValues(suiteID, outcome(err)).Inc()
	m.verifyDuration.WithLabelValues(suiteID).Observe(d.Seconds())
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}

	return api.KindOf(err).String()
}
