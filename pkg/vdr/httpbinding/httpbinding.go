/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package httpbinding resolves DIDs through a DID resolver HTTP(S) endpoint, such as a universal resolver.
package httpbinding

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/aries-framework-go/component/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var logger = log.New("aries-vcproof/vdr/httpbinding")

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
)

// Accept is method to accept did method.
type Accept func(method string) bool

// VDR via HTTP(s) endpoint.
type VDR struct {
	endpointURL      string
	client           *http.Client
	rest             *resty.Client
	accept           Accept
	resolveAuthToken string
	newBackOff       func() backoff.BackOff
}

// Option configures the HTTP binding VDR.
type Option func(opts *VDR)

// New creates new DID Resolver.
func New(endpointURL string, opts ...Option) (*VDR, error) {
	v := &VDR{
		client: &http.Client{Timeout: defaultTimeout},
		accept: func(method string) bool { return true },
		newBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), defaultMaxRetries)
		},
	}

	for _, opt := range opts {
		opt(v)
	}

	// Validate host
	_, err := url.ParseRequestURI(endpointURL)
	if err != nil {
		return nil, fmt.Errorf("base URL invalid: %w", err)
	}

	v.endpointURL = endpointURL

	transport := v.client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	instrumented := *v.client
	instrumented.Transport = otelhttp.NewTransport(transport)
	v.rest = resty.NewWithClient(&instrumented)

	return v, nil
}

// Accept did method - attempt to resolve any method.
func (v *VDR) Accept(method string) bool {
	return v.accept(method)
}

// WithTimeout option is for definition of HTTP(s) timeout value of DID Resolver.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *VDR) {
		opts.client.Timeout = timeout
	}
}

// WithHTTPClient option is for custom http client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *VDR) {
		opts.client = httpClient
	}
}

// WithAccept option is for accept did method.
func WithAccept(accept Accept) Option {
	return func(opts *VDR) {
		opts.accept = accept
	}
}

// WithResolveAuthToken add auth token for resolve.
func WithResolveAuthToken(authToken string) Option {
	return func(opts *VDR) {
		opts.resolveAuthToken = "Bearer " + authToken
	}
}

// WithBackOff sets the retry policy of failed resolutions. Server errors and transport failures are retried,
// a missing DID or a malformed document are not.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(opts *VDR) {
		opts.newBackOff = newBackOff
	}
}
