/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package web implements the did:web method: the DID document is fetched from the web domain named by the DID.
package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hyperledger/aries-vcproof/pkg/doc/did"
)

const (
	// DIDMethod did method.
	DIDMethod = "web"

	defaultPath  = "/.well-known/did.json"
	documentPath = "/did.json"
)

// VDR implements did:web method support.
type VDR struct {
	client  *resty.Client
	useHTTP bool
}

// Option configures the did:web VDR.
type Option func(opts *VDR)

// WithHTTPClient sets the HTTP client. Its transport is instrumented with OpenTelemetry.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *VDR) {
		opts.client = newRestyClient(client)
	}
}

// WithUseHTTP fetches documents over plain HTTP, for tests and local deployments.
func WithUseHTTP(useHTTP bool) Option {
	return func(opts *VDR) {
		opts.useHTTP = useHTTP
	}
}

// New creates a new did:web VDR.
func New(opts ...Option) *VDR {
	v := &VDR{}

	for _, opt := range opts {
		opt(v)
	}

	if v.client == nil {
		v.client = newRestyClient(&http.Client{})
	}

	return v
}

// Accept accepts did:web method.
func (v *VDR) Accept(method string) bool {
	return method == DIDMethod
}

func newRestyClient(client *http.Client) *resty.Client {
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	instrumented := *client
	instrumented.Transport = otelhttp.NewTransport(transport)

	return resty.NewWithClient(&instrumented)
}

// parseDIDWeb returns the document URL and the host of a did:web DID.
func parseDIDWeb(id string, useHTTP bool) (string, string, error) {
	parsed, err := did.Parse(id)
	if err != nil {
		return "", "", err
	}

	if parsed.Method != DIDMethod {
		return "", "", fmt.Errorf("not a did:web: %s", id)
	}

	pathComponents := strings.Split(parsed.MethodSpecificID, ":")

	host, err := url.PathUnescape(pathComponents[0])
	if err != nil {
		return "", "", fmt.Errorf("invalid host %s: %w", pathComponents[0], err)
	}

	scheme := "https://"
	if useHTTP {
		scheme = "http://"
	}

	address := scheme + host + defaultPath

	if len(pathComponents) > 1 {
		address = scheme + host + "/" + strings.Join(pathComponents[1:], "/") + documentPath
	}

	return address, host, nil
}
