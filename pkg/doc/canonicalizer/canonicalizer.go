/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package canonicalizer turns JSON documents into the deterministic byte strings that proofs sign.
//
// Two modes are supported:
//   - ModeLinkedData: RDF Dataset Canonicalization (URDNA2015) of the JSON-LD document, serialized as N-Quads.
//   - ModeCompact: JSON Canonicalization Scheme (RFC 8785).
package canonicalizer

import (
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/piprate/json-gold/ld"

	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/documentloader"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/processor"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/validator"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

var logger = log.New("aries-vcproof/canonicalizer")

// Mode selects the canonicalization algorithm.
type Mode int

const (
	// ModeLinkedData is URDNA2015 over the JSON-LD document.
	ModeLinkedData Mode = iota + 1
	// ModeCompact is RFC 8785 JSON canonicalization.
	ModeCompact
)

func (m Mode) String() string {
	switch m {
	case ModeLinkedData:
		return "LinkedData"
	case ModeCompact:
		return "Compact"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type canonicalizerOpts struct {
	documentLoader   ld.DocumentLoader
	externalContexts []string
	removeInvalidRDF bool
	validateRDF      bool
	strictTerms      bool
}

// Opt configures a Canonicalizer.
type Opt func(opts *canonicalizerOpts)

// WithDocumentLoader sets the JSON-LD document loader. By default only embedded contexts are served.
func WithDocumentLoader(loader ld.DocumentLoader) Opt {
	return func(opts *canonicalizerOpts) {
		opts.documentLoader = loader
	}
}

// WithExternalContext appends contexts to the document context before linked-data canonicalization.
func WithExternalContext(contexts ...string) Opt {
	return func(opts *canonicalizerOpts) {
		opts.externalContexts = append(opts.externalContexts, contexts...)
	}
}

// WithRemoveAllInvalidRDF drops invalid RDF statements from the canonical form.
func WithRemoveAllInvalidRDF() Opt {
	return func(opts *canonicalizerOpts) {
		opts.removeInvalidRDF = true
	}
}

// WithValidateRDF fails canonicalization when the canonical form contains invalid RDF statements.
func WithValidateRDF() Opt {
	return func(opts *canonicalizerOpts) {
		opts.validateRDF = true
	}
}

// WithStrictTerms enables or disables the undefined term check of linked-data mode. Enabled by default.
func WithStrictTerms(strict bool) Opt {
	return func(opts *canonicalizerOpts) {
		opts.strictTerms = strict
	}
}

// Canonicalizer produces canonical representations of documents. It is safe for concurrent use.
type Canonicalizer struct {
	opts      canonicalizerOpts
	processor *processor.Processor
}

// New returns a Canonicalizer.
func New(opts ...Opt) (*Canonicalizer, error) {
	o := canonicalizerOpts{strictTerms: true}

	for _, opt := range opts {
		opt(&o)
	}

	if o.documentLoader == nil {
		loader, err := documentloader.NewDocumentLoader()
		if err != nil {
			return nil, fmt.Errorf("new canonicalizer: %w", err)
		}

		o.documentLoader = loader
	}

	return &Canonicalizer{opts: o, processor: processor.Default()}, nil
}

// DocumentLoader returns the JSON-LD document loader in use.
func (c *Canonicalizer) DocumentLoader() ld.DocumentLoader {
	return c.opts.documentLoader
}

// ProcessorOpts returns the JSON-LD processor options matching this canonicalizer's configuration.
func (c *Canonicalizer) ProcessorOpts() []processor.Opts {
	opts := []processor.Opts{processor.WithDocumentLoader(c.opts.documentLoader)}

	if len(c.opts.externalContexts) > 0 {
		opts = append(opts, processor.WithExternalContext(c.opts.externalContexts...))
	}

	if c.opts.removeInvalidRDF {
		opts = append(opts, processor.WithRemoveAllInvalidRDF())
	}

	if c.opts.validateRDF {
		opts = append(opts, processor.WithValidateRDF())
	}

	return opts
}

// Canonicalize returns the canonical form of doc in the given mode. doc is not modified.
// Failures are reported as api.CanonicalizationError.
func (c *Canonicalizer) Canonicalize(doc map[string]interface{}, mode Mode) ([]byte, error) {
	switch mode {
	case ModeLinkedData:
		return c.linkedData(doc)
	case ModeCompact:
		return Compact(doc)
	default:
		return nil, api.Errorf(api.CanonicalizationError, "canonicalize", "unknown mode %s", mode)
	}
}

// Statements returns the canonical N-Quad statements of doc, sorted as produced by URDNA2015.
func (c *Canonicalizer) Statements(doc map[string]interface{}) ([]string, error) {
	canonical, err := c.linkedData(doc)
	if err != nil {
		return nil, err
	}

	return processor.SplitMessageIntoLines(string(canonical)), nil
}

func (c *Canonicalizer) linkedData(doc map[string]interface{}) ([]byte, error) {
	doc = maphelpers.CopyMap(doc)

	if c.opts.strictTerms {
		if err := c.checkTerms(doc); err != nil {
			return nil, err
		}
	}

	canonical, err := c.processor.GetCanonicalDocument(doc, c.ProcessorOpts()...)
	if err != nil {
		return nil, api.NewError(api.CanonicalizationError, "canonicalize linked data", err)
	}

	logger.Debugf("canonicalized linked data document into %d bytes", len(canonical))

	return canonical, nil
}

func (c *Canonicalizer) checkTerms(doc map[string]interface{}) error {
	if _, ok := doc["@context"]; !ok && len(c.opts.externalContexts) == 0 {
		return api.Errorf(api.CanonicalizationError, "check terms", "linked data document has no @context")
	}

	err := validator.ValidateJSONLDMap(doc,
		validator.WithDocumentLoader(c.opts.documentLoader),
		validator.WithExternalContext(c.opts.externalContexts),
		validator.WithStrictValidation(true))
	if err != nil {
		return api.NewError(api.CanonicalizationError, "check terms", err)
	}

	return nil
}

// Compact returns the RFC 8785 canonical JSON form of doc.
func Compact(doc interface{}) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, api.NewError(api.CanonicalizationError, "canonicalize compact", err)
	}

	canonical, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, api.NewError(api.CanonicalizationError, "canonicalize compact", err)
	}

	return canonical, nil
}
