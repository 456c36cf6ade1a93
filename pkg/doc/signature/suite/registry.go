/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// Registry is an immutable set of suites keyed by proof type. It is safe for concurrent use.
type Registry struct {
	suites map[string]Suite
}

// NewRegistry builds a registry of the given suites. Two suites with the same id are rejected.
func NewRegistry(suites ...Suite) (*Registry, error) {
	r := &Registry{suites: make(map[string]Suite, len(suites))}

	for _, s := range suites {
		id := s.Descriptor().ID

		if id == "" {
			return nil, fmt.Errorf("suite %T has no id", s)
		}

		if _, ok := r.suites[id]; ok {
			return nil, fmt.Errorf("suite %s registered twice", id)
		}

		r.suites[id] = s
	}

	return r, nil
}

// Lookup returns the suite registered for the proof type, or an api.UnsupportedSuite error.
func (r *Registry) Lookup(proofType string) (Suite, error) {
	s, ok := r.suites[proofType]
	if !ok {
		return nil, api.Errorf(api.UnsupportedSuite, "lookup suite", "signature type %s not supported", proofType)
	}

	return s, nil
}

// Descriptor returns the descriptor of the suite registered for the proof type.
func (r *Registry) Descriptor(proofType string) (*Descriptor, error) {
	s, err := r.Lookup(proofType)
	if err != nil {
		return nil, err
	}

	return s.Descriptor(), nil
}

// IDs returns the sorted ids of the registered suites.
func (r *Registry) IDs() []string {
	ids := maps.Keys(r.suites)
	sort.Strings(ids)

	return ids
}
