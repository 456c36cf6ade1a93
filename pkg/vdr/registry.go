/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-vcproof/pkg/doc/did"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

var logger = log.New("aries-vcproof/vdr")

// Option is a vdr instance option.
type Option func(opts *Registry)

// Registry dispatches DIDs to the driver of their method. It implements api.Resolver. It is safe for
// concurrent use.
type Registry struct {
	vdr      []VDR
	cache    gcache.Cache
	cacheTTL time.Duration
}

// New return new instance of vdr.
func New(opts ...Option) *Registry {
	baseVDR := &Registry{}

	for _, opt := range opts {
		opt(baseVDR)
	}

	return baseVDR
}

// WithVDR adds did method implementation for store.
func WithVDR(method VDR) Option {
	return func(opts *Registry) {
		opts.vdr = append(opts.vdr, method)
	}
}

// WithCache keeps up to size resolved DID documents for ttl.
func WithCache(size int, ttl time.Duration) Option {
	return func(opts *Registry) {
		opts.cache = gcache.New(size).LRU().Build()
		opts.cacheTTL = ttl
	}
}

// Resolve resolves a verification method id (a DID URL) into the method and the relationships its
// controller lists it under. It implements api.Resolver.
func (r *Registry) Resolve(ctx context.Context, verificationMethodID string) (*api.VerificationMethod, error) {
	didURL, err := did.ParseDIDURL(verificationMethodID)
	if err != nil {
		return nil, err
	}

	doc, err := r.ResolveDID(ctx, didURL.DID.String())
	if err != nil {
		return nil, err
	}

	return did.ResolveVerificationMethod(doc, verificationMethodID)
}

// ResolveDID resolves a DID into its document.
func (r *Registry) ResolveDID(ctx context.Context, didID string) (*did.Doc, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(didID); err == nil {
			return cached.(*did.Doc), nil //nolint:forcetypeassert
		}
	}

	didMethod, err := GetDidMethod(didID)
	if err != nil {
		return nil, err
	}

	method, err := r.resolveVDR(didMethod)
	if err != nil {
		return nil, err
	}

	doc, err := method.Read(ctx, didID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		return nil, fmt.Errorf("did method read failed: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.SetWithExpire(didID, doc, r.cacheTTL); err != nil {
			logger.Warnf("cache DID document %s: %v", didID, err)
		}
	}

	return doc, nil
}

func (r *Registry) resolveVDR(method string) (VDR, error) {
	for _, v := range r.vdr {
		if v.Accept(method) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("did method %s not supported for vdr", method)
}

// GetDidMethod get did method.
func GetDidMethod(didID string) (string, error) {
	const numPartsDID = 3

	didParts := strings.Split(didID, ":")
	if len(didParts) < numPartsDID {
		return "", fmt.Errorf("wrong format did input: %s", didID)
	}

	return didParts[1], nil
}
