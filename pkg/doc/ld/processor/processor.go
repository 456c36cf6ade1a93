/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package processor wraps json-gold for the JSON-LD operations used by linked-data proofs.
package processor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/piprate/json-gold/ld"

	"github.com/hyperledger/aries-vcproof/pkg/doc/util/maphelpers"
)

const (
	format             = "application/n-quads"
	defaultAlgorithm   = "URDNA2015"
	handleNormalizeErr = "error while parsing N-Quads; invalid quad. line:"
)

var logger = log.New("aries-vcproof/json-ld-processor")

var (
	blankNodeRegexp   = regexp.MustCompile(`(^|[ ])(_:c14n[0-9]+)`)
	bnidNodeRegexp    = regexp.MustCompile(`<urn:bnid:(_:c14n[0-9]+)>`)
	errInvalidRDFView = errors.New("failed to normalize JSON-LD document, invalid view")
)

// ErrInvalidRDFFound is returned when normalized view contains invalid RDF.
var ErrInvalidRDFFound = errors.New("invalid JSON-LD context")

// processorOpts holds options for canonicalization of JSON LD docs.
type processorOpts struct {
	removeInvalidRDF bool
	frameBlankNodes  bool
	validateRDF      bool
	documentLoader   ld.DocumentLoader
	externalContexts []string
}

// Opts are the options for JSON LD operations on docs (like canonicalization or compacting).
type Opts func(opts *processorOpts)

// WithRemoveAllInvalidRDF option for removing all invalid RDF dataset from normalize document.
func WithRemoveAllInvalidRDF() Opts {
	return func(opts *processorOpts) {
		opts.removeInvalidRDF = true
	}
}

// WithFrameBlankNodes option for transforming blank node identifiers into nodes before framing.
// For example, _:c14n0 is transformed into <urn:bnid:_:c14n0>.
func WithFrameBlankNodes() Opts {
	return func(opts *processorOpts) {
		opts.frameBlankNodes = true
	}
}

// WithDocumentLoader option is for passing custom JSON-LD document loader.
func WithDocumentLoader(loader ld.DocumentLoader) Opts {
	return func(opts *processorOpts) {
		opts.documentLoader = loader
	}
}

// WithExternalContext option is for definition of external context when doing JSON-LD operations.
func WithExternalContext(context ...string) Opts {
	return func(opts *processorOpts) {
		opts.externalContexts = append(opts.externalContexts, context...)
	}
}

// WithValidateRDF option validates result view and fails if any invalid RDF dataset found.
// This option will take precedence when used in conjunction with 'WithRemoveAllInvalidRDF' option.
func WithValidateRDF() Opts {
	return func(opts *processorOpts) {
		opts.validateRDF = true
	}
}

// Processor is JSON-LD processor.
// processing mode JSON-LD 1.1 {RFC: https://www.w3.org/TR/json-ld11}
type Processor struct {
	algorithm string
}

// NewProcessor returns new JSON-LD processor.
func NewProcessor(algorithm string) *Processor {
	if algorithm == "" {
		return Default()
	}

	return &Processor{algorithm}
}

// Default returns new JSON-LD processor with default RDF dataset algorithm.
func Default() *Processor {
	return &Processor{defaultAlgorithm}
}

func (p *Processor) ldOptions(procOptions *processorOpts) *ld.JsonLdOptions {
	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Algorithm = p.algorithm
	ldOptions.Format = format
	ldOptions.ProduceGeneralizedRdf = true

	if procOptions.documentLoader != nil {
		ldOptions.DocumentLoader = procOptions.documentLoader
	}

	return ldOptions
}

// GetCanonicalDocument returns canonized document of given json ld. The input document is not modified.
func (p *Processor) GetCanonicalDocument(doc map[string]interface{}, opts ...Opts) ([]byte, error) {
	procOptions := prepareOpts(opts)

	if len(procOptions.externalContexts) > 0 {
		doc = maphelpers.CopyMap(doc)
		doc["@context"] = AppendExternalContexts(doc["@context"], procOptions.externalContexts...)
	}

	view, err := ld.NewJsonLdProcessor().Normalize(doc, p.ldOptions(procOptions))
	if err != nil {
		return nil, fmt.Errorf("failed to normalize JSON-LD document: %w", err)
	}

	result, ok := view.(string)
	if !ok {
		return nil, errInvalidRDFView
	}

	result, err = p.removeMatchingInvalidRDFs(result, procOptions)
	if err != nil {
		return nil, err
	}

	return []byte(result), nil
}

// GetCanonicalStatements returns the canonical N-Quad statements of the given document, one per element.
func (p *Processor) GetCanonicalStatements(doc map[string]interface{}, opts ...Opts) ([]string, error) {
	docBytes, err := p.GetCanonicalDocument(doc, opts...)
	if err != nil {
		return nil, err
	}

	return SplitMessageIntoLines(string(docBytes)), nil
}

// AppendExternalContexts appends external context(s) to the JSON-LD context which can have one
// or several contexts already.
func AppendExternalContexts(context interface{}, extraContexts ...string) []interface{} {
	var contexts []interface{}

	switch c := context.(type) {
	case string:
		contexts = append(contexts, c)
	case map[string]interface{}:
		contexts = append(contexts, c)
	case []interface{}:
		contexts = append(contexts, c...)
	}

	for i := range extraContexts {
		contexts = append(contexts, extraContexts[i])
	}

	return contexts
}

// Compact compacts given json ld object. When context is nil, the input document context is used.
func (p *Processor) Compact(input, context map[string]interface{},
	opts ...Opts) (map[string]interface{}, error) {
	procOptions := prepareOpts(opts)

	input = maphelpers.CopyMap(input)

	if context == nil {
		inputContext := input["@context"]

		if len(procOptions.externalContexts) > 0 {
			inputContext = AppendExternalContexts(inputContext, procOptions.externalContexts...)
			input["@context"] = inputContext
		}

		context = map[string]interface{}{"@context": inputContext}
	}

	return ld.NewJsonLdProcessor().Compact(input, context, p.ldOptions(procOptions))
}

// Frame makes a frame from the inputDoc using frameDoc. Neither of the documents is modified.
func (p *Processor) Frame(inputDoc map[string]interface{}, frameDoc map[string]interface{},
	opts ...Opts) (map[string]interface{}, error) {
	procOptions := prepareOpts(opts)

	ldOptions := p.ldOptions(procOptions)
	ldOptions.OmitGraph = true

	proc := ld.NewJsonLdProcessor()

	inputDoc = maphelpers.CopyMap(inputDoc)
	frameDoc = maphelpers.CopyMap(frameDoc)

	// A root without id becomes a urn:bnid node when blank nodes are framed, it needs no stand-in then.
	hasBlankBaseID := false

	if !procOptions.frameBlankNodes && !hasRootID(inputDoc) {
		hasBlankBaseID = true
		inputDoc["id"] = fmt.Sprintf("urn:uuid:%s", uuid.New().String())
		frameDoc["id"] = inputDoc["id"]
	}

	// json-gold merges nodes sharing an id while framing (piprate/json-gold#44), keep them apart.
	// This runs on the nested document: once flattened, every referenced node id shows up twice.
	inputDocCopy, randomIds, err := removeDuplicateIDs(inputDoc, proc, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("removing duplicate ids failed: %w", err)
	}

	if procOptions.frameBlankNodes {
		inputDocCopy, err = p.transformBlankNodes(inputDocCopy, procOptions)
		if err != nil {
			return nil, fmt.Errorf("transforming frame input failed: %w", err)
		}
	}

	framedInputDoc, err := proc.Frame(inputDocCopy, frameDoc, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("framing failed: %w", err)
	}

	framedInputDoc["@context"] = frameDoc["@context"]

	if hasBlankBaseID {
		delete(framedInputDoc, "id")
	}

	if len(randomIds) == 0 {
		return framedInputDoc, nil
	}

	visitJSONMap(framedInputDoc, func(key, val string) (string, bool) {
		v, ok := randomIds[val]

		return v, ok
	})

	return framedInputDoc, nil
}

func hasRootID(doc map[string]interface{}) bool {
	for _, key := range []string{"id", "@id"} {
		if id, ok := doc[key].(string); ok && id != "" {
			return true
		}
	}

	return false
}

func removeDuplicateIDs(inputDoc map[string]interface{}, proc *ld.JsonLdProcessor,
	options *ld.JsonLdOptions) (map[string]interface{}, map[string]string, error) {
	duplicatedIDs, err := getDuplicatedIDs(inputDoc, proc, options)
	if err != nil {
		return nil, nil, fmt.Errorf("get duplicated ids: %w", err)
	}

	if len(duplicatedIDs) == 0 {
		return inputDoc, nil, nil
	}

	inputDocCopy := maphelpers.CopyMap(inputDoc)
	randomIds := make(map[string]string)

	visitJSONMap(inputDocCopy, func(key, id string) (string, bool) {
		if _, ok := duplicatedIDs[id]; !ok {
			return "", false
		}

		randomID := fmt.Sprintf("urn:uuid:%s", uuid.New().String())
		randomIds[randomID] = id

		return randomID, true
	})

	return inputDocCopy, randomIds, nil
}

func getDuplicatedIDs(doc map[string]interface{}, proc *ld.JsonLdProcessor, options *ld.JsonLdOptions) (
	map[string]bool, error) {
	expand, err := proc.Expand(maphelpers.CopyMap(doc), options)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool)

	visitJSONArray(expand, func(key, val string) (string, bool) {
		if key == "@id" {
			_, seen := ids[val]
			ids[val] = seen
		}

		return "", false
	})

	for k, v := range ids {
		if !v {
			delete(ids, k)
		}
	}

	return ids, nil
}

func visitJSONArray(a []interface{}, visitFunc func(key, val string) (string, bool)) {
	for i, v := range a {
		switch kv := v.(type) {
		case string:
			if newValue, ok := visitFunc("", kv); ok {
				a[i] = newValue
			}

		case []interface{}:
			visitJSONArray(kv, visitFunc)

		case map[string]interface{}:
			visitJSONMap(kv, visitFunc)
		}
	}
}

func visitJSONMap(m map[string]interface{}, visitFunc func(key, val string) (string, bool)) {
	for k, v := range m {
		switch kv := v.(type) {
		case string:
			if newID, ok := visitFunc(k, kv); ok {
				m[k] = newID
			}

		case []interface{}:
			visitJSONArray(kv, visitFunc)

		case map[string]interface{}:
			visitJSONMap(kv, visitFunc)
		}
	}
}

// removeMatchingInvalidRDFs validates normalized view to find any invalid RDF and
// returns filtered view after removing all invalid data.
// [Note : handling invalid RDF data, by following pattern https://github.com/digitalbazaar/jsonld.js/issues/199]
func (p *Processor) removeMatchingInvalidRDFs(view string, opts *processorOpts) (string, error) {
	if !opts.removeInvalidRDF && !opts.validateRDF {
		return view, nil
	}

	views := strings.Split(view, "\n")

	var filteredViews []string

	var foundInvalid bool

	for _, v := range views {
		_, err := ld.ParseNQuads(v)
		if err != nil {
			if !strings.Contains(err.Error(), handleNormalizeErr) {
				return "", err
			}

			foundInvalid = true

			continue
		}

		filteredViews = append(filteredViews, v)
	}

	if !foundInvalid {
		// clean RDF view, no need to regenerate
		return view, nil
	} else if opts.validateRDF {
		return "", ErrInvalidRDFFound
	}

	filteredView := strings.Join(filteredViews, "\n")

	logger.Debugf("Found invalid RDF dataset, Canonicalizing JSON-LD again after removing invalid data ")

	// all invalid RDF dataset from view are removed, re-generate
	return p.normalizeFilteredDataset(filteredView)
}

// normalizeFilteredDataset recreates json-ld from RDF view and
// returns normalized RDF dataset from recreated json-ld.
func (p *Processor) normalizeFilteredDataset(view string) (string, error) {
	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Algorithm = p.algorithm
	ldOptions.Format = format

	proc := ld.NewJsonLdProcessor()

	filteredJSONLd, err := proc.FromRDF(view, ldOptions)
	if err != nil {
		return "", err
	}

	result, err := proc.Normalize(filteredJSONLd, ldOptions)
	if err != nil {
		return "", err
	}

	resultStr, ok := result.(string)
	if !ok {
		return "", errInvalidRDFView
	}

	return resultStr, nil
}

func (p *Processor) fromRDF(docStatements []string, context interface{},
	procOptions *processorOpts) (map[string]interface{}, error) {
	ldOptions := p.ldOptions(procOptions)

	doc := strings.Join(docStatements, "\n")
	proc := ld.NewJsonLdProcessor()

	transformedDoc, err := proc.FromRDF(doc, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("rdf processing failed: %w", err)
	}

	transformedDocMap, err := proc.Compact(transformedDoc, map[string]interface{}{"@context": context}, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("compacting failed: %w", err)
	}

	return transformedDocMap, nil
}

// prepareOpts prepare processorOpts from given CanonicalizationOpts arguments.
func prepareOpts(opts []Opts) *processorOpts {
	procOpts := &processorOpts{}

	for _, opt := range opts {
		opt(procOpts)
	}

	return procOpts
}

// transformBlankNodes rebuilds the document from its canonical statements with every blank node
// replaced by a urn:bnid node, so that framed output keeps the canonical labels.
func (p *Processor) transformBlankNodes(docMap map[string]interface{},
	procOptions *processorOpts) (map[string]interface{}, error) {
	docBytes, err := p.GetCanonicalDocument(docMap, withOptions(procOptions))
	if err != nil {
		return nil, err
	}

	rows := SplitMessageIntoLines(string(docBytes))

	for i, row := range rows {
		rows[i] = TransformBlankNode(row)
	}

	return p.fromRDF(rows, docMap["@context"], procOptions)
}

func withOptions(src *processorOpts) Opts {
	return func(opts *processorOpts) {
		*opts = *src
		opts.frameBlankNodes = false
	}
}

// SplitMessageIntoLines splits N-Quads into non-empty statements.
func SplitMessageIntoLines(msg string) []string {
	rows := strings.Split(msg, "\n")

	msgs := make([]string, 0, len(rows))

	for i := range rows {
		if strings.TrimSpace(rows[i]) != "" {
			msgs = append(msgs, rows[i])
		}
	}

	return msgs
}

// TransformBlankNode replaces blank node identifiers in the RDF statement.
// For example, transform from "_:c14n0" to "<urn:bnid:_:c14n0>".
func TransformBlankNode(row string) string {
	return blankNodeRegexp.ReplaceAllString(row, "$1<urn:bnid:$2>")
}

// TransformFromBlankNode reverts TransformBlankNode.
// For example, transform from "<urn:bnid:_:c14n0>" to "_:c14n0".
func TransformFromBlankNode(row string) string {
	return bnidNodeRegexp.ReplaceAllString(row, "$1")
}
