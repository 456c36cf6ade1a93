/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"errors"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

// Status is the credentialStatus member of a credential.
type Status struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	// StatusList2021 members.
	StatusPurpose        string `json:"statusPurpose,omitempty"`
	StatusListIndex      string `json:"statusListIndex,omitempty"`
	StatusListCredential string `json:"statusListCredential,omitempty"`

	CustomFields map[string]interface{} `json:",remain"`
}

// StatusResult is the answer of a status collaborator.
type StatusResult int

// Status results.
const (
	StatusActive StatusResult = iota + 1
	StatusRevoked
)

func (s StatusResult) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// StatusChecker queries the revocation status of a credential.
type StatusChecker interface {
	CheckStatus(ctx context.Context, credentialID string, status *Status) (StatusResult, error)
}

// decodeStatus decodes credentialStatus. Index numbers are accepted as well as strings.
func decodeStatus(raw interface{}) (*Status, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.New("credentialStatus must be an object")
	}

	status := &Status{}

	if err := maphelpers.Decode(m, status); err != nil {
		return nil, err
	}

	if status.Type == "" {
		return nil, errors.New("credentialStatus type is missing")
	}

	return status, nil
}

func (v *Verifier) checkStatus(ctx context.Context, doc map[string]interface{}, policy *Policy, r *Result) error {
	const op = "check status"

	raw, ok := doc[jsonFldStatus]
	if !ok || raw == nil || policy.SkipStatus {
		return nil
	}

	if v.opts.statusChecker == nil {
		r.warn("credential status is not checked: no status checker")

		return nil
	}

	r.addCheck(CheckStatus)

	status, err := decodeStatus(raw)
	if err != nil {
		return api.NewError(api.DocumentMalformed, op, err)
	}

	ctx, cancel := v.proofContext(ctx, policy)
	defer cancel()

	result, err := v.opts.statusChecker.CheckStatus(ctx, safeStringValue(doc[jsonFldID]), status)
	if err != nil {
		return api.WrapIfUntyped(api.StatusError, op, err)
	}

	switch result {
	case StatusActive:
		return nil
	case StatusRevoked:
		return api.Errorf(api.Revoked, op, "credential %s is revoked", safeStringValue(doc[jsonFldID]))
	default:
		return api.Errorf(api.StatusError, op, "unexpected status result %d", int(result))
	}
}
