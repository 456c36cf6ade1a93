/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package httpbinding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hyperledger/aries-vcproof/pkg/doc/did"
	"github.com/hyperledger/aries-vcproof/pkg/vdr"
)

const (
	didLDJson = "application/did+ld+json"
)

type resolutionResult struct {
	DIDDocument map[string]interface{} `json:"didDocument"`
}

// resolveDID makes DID resolution via HTTP.
func (v *VDR) resolveDID(ctx context.Context, uri string) ([]byte, error) {
	req := v.rest.R().SetContext(ctx).SetHeader("Accept", didLDJson)

	if v.resolveAuthToken != "" {
		req.SetHeader("Authorization", v.resolveAuthToken)
	}

	resp, err := req.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("HTTP Get request failed: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		return resp.Body(), nil
	case resp.StatusCode() == http.StatusNotFound:
		return nil, backoff.Permanent(vdr.ErrNotFound)
	case resp.StatusCode() >= http.StatusInternalServerError:
		return nil, fmt.Errorf("DID resolver error [%d] body [%s]", resp.StatusCode(), resp.Body())
	}

	return nil, backoff.Permanent(fmt.Errorf("unsupported response from DID resolver [%v] header [%s] body [%s]",
		resp.StatusCode(), resp.Header().Get("Content-type"), resp.Body()))
}

// Read implements vdr.VDR: it resolves the DID through the endpoint, retrying server errors.
func (v *VDR) Read(ctx context.Context, didID string) (*did.Doc, error) {
	uri := strings.TrimSuffix(v.endpointURL, "/") + "/" + didID

	var data []byte

	err := backoff.RetryNotify(func() error {
		var err error

		data, err = v.resolveDID(ctx, uri)

		return err
	}, backoff.WithContext(v.newBackOff(), ctx), func(err error, d time.Duration) {
		logger.Warnf("resolve %s failed, retrying in %s: %v", didID, d, err)
	})
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, vdr.ErrNotFound
	}

	return parseResponse(data)
}

// parseResponse accepts a DID resolution result or a bare DID document.
func parseResponse(data []byte) (*did.Doc, error) {
	var result resolutionResult

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse DID resolver response: %w", err)
	}

	if result.DIDDocument != nil {
		return did.ParseDocumentMap(result.DIDDocument)
	}

	doc, err := did.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse DID document: %w", err)
	}

	return doc, nil
}
