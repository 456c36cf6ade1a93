/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-vcproof/pkg/doc/did"
	"github.com/hyperledger/aries-vcproof/pkg/vdr"
)

var logger = log.New("aries-vcproof/vdr/web")

// Read resolves a did:web did.
func (v *VDR) Read(ctx context.Context, didID string) (*did.Doc, error) {
	address, host, err := parseDIDWeb(didID, v.useHTTP)
	if err != nil {
		return nil, fmt.Errorf("error resolving did:web did --> could not parse did:web did --> %w", err)
	}

	logger.Debugf("resolving %s from %s", didID, address)

	resp, err := v.client.R().SetContext(ctx).SetHeader("Accept", "application/did+json").Get(address)
	if err != nil {
		return nil, fmt.Errorf("error resolving did:web did --> http request unsuccessful --> %w", err)
	}

	if tlsState := resp.RawResponse.TLS; tlsState != nil {
		for _, cert := range tlsState.PeerCertificates {
			if err = cert.VerifyHostname(host); err != nil {
				return nil, fmt.Errorf("error resolving did:web did --> identifier does not match TLS host --> %w", err)
			}
		}
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, vdr.ErrNotFound
	default:
		return nil, fmt.Errorf("error resolving did:web did --> unexpected status %d", resp.StatusCode())
	}

	doc, err := did.ParseDocument(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("error resolving did:web did --> error parsing did doc --> %w", err)
	}

	if doc.ID != didID {
		return nil, fmt.Errorf("error resolving did:web did --> document id %s does not match %s", doc.ID, didID)
	}

	return doc, nil
}
