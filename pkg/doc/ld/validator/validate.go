/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package validator checks that every term of a JSON-LD document is defined by its contexts.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/piprate/json-gold/ld"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/processor"
)

// ErrStructureChanged is returned in strict mode when compaction drops or renames a member of the document,
// which happens for terms the document contexts do not define.
var ErrStructureChanged = errors.New("JSON-LD doc has different structure after compaction")

type validateOpts struct {
	strict               bool
	jsonldDocumentLoader ld.DocumentLoader
	externalContext      []string
	contextURIPositions  []string
}

// ValidateOpts sets jsonld validation options.
type ValidateOpts func(opts *validateOpts)

// WithDocumentLoader option is for passing custom JSON-LD document loader.
func WithDocumentLoader(jsonldDocumentLoader ld.DocumentLoader) ValidateOpts {
	return func(opts *validateOpts) {
		opts.jsonldDocumentLoader = jsonldDocumentLoader
	}
}

// WithExternalContext option is for definition of external context when doing JSON-LD operations.
func WithExternalContext(externalContext []string) ValidateOpts {
	return func(opts *validateOpts) {
		opts.externalContext = externalContext
	}
}

// WithStrictValidation sets if strict validation should be used.
func WithStrictValidation(checkStructure bool) ValidateOpts {
	return func(opts *validateOpts) {
		opts.strict = checkStructure
	}
}

// WithStrictContextURIPosition sets strict validation of URI position within context property.
// The index of uri in underlying slice represents the position of given uri in @context array.
// Can be used for verifiable credential base context validation.
func WithStrictContextURIPosition(uri string) ValidateOpts {
	return func(opts *validateOpts) {
		opts.contextURIPositions = append(opts.contextURIPositions, uri)
	}
}

func getValidateOpts(options []ValidateOpts) *validateOpts {
	result := &validateOpts{
		strict: true,
	}

	for _, opt := range options {
		opt(result)
	}

	return result
}

// ValidateJSONLD validates jsonld structure.
func ValidateJSONLD(doc string, options ...ValidateOpts) error {
	var docMap map[string]interface{}

	if err := json.Unmarshal([]byte(doc), &docMap); err != nil {
		return fmt.Errorf("convert JSON-LD doc to map: %w", err)
	}

	return ValidateJSONLDMap(docMap, options...)
}

// ValidateJSONLDMap validates jsonld structure.
func ValidateJSONLDMap(docMap map[string]interface{}, options ...ValidateOpts) error {
	opts := getValidateOpts(options)

	docCompactedMap, err := processor.Default().Compact(docMap,
		nil, processor.WithDocumentLoader(opts.jsonldDocumentLoader),
		processor.WithExternalContext(opts.externalContext...))
	if err != nil {
		return fmt.Errorf("compact JSON-LD document: %w", err)
	}

	if opts.strict {
		if path, found := findDroppedTerm(docMap, docCompactedMap, ""); found {
			return fmt.Errorf("%w: term %q is not defined by the document contexts", ErrStructureChanged, path)
		}
	}

	err = validateContextURIPosition(opts.contextURIPositions, docMap)
	if err != nil {
		return fmt.Errorf("validate context URI position: %w", err)
	}

	return nil
}

func validateContextURIPosition(contextURIPositions []string, docMap map[string]interface{}) error {
	if len(contextURIPositions) == 0 {
		return nil
	}

	var docContexts []interface{}

	switch t := docMap["@context"].(type) {
	case string:
		docContexts = append(docContexts, t)
	case []interface{}:
		docContexts = append(docContexts, t...)
	}

	if len(docContexts) < len(contextURIPositions) {
		return errors.New("doc context URIs amount mismatch")
	}

	for position, uri := range contextURIPositions {
		docURI, ok := docContexts[position].(string)
		if !ok {
			return fmt.Errorf("unsupported URI type %s", reflect.TypeOf(docContexts[position]).String())
		}

		if !strings.EqualFold(docURI, uri) {
			return fmt.Errorf("invalid context URI on position %d, %s expected", position, uri)
		}
	}

	return nil
}

// findDroppedTerm walks the original document next to its compacted form and returns the path of the
// first member compaction dropped or turned into a different shape. Scalar values are not compared:
// compaction is free to rewrite IRIs and typed values.
func findDroppedTerm(original, compacted map[string]interface{}, path string) (string, bool) {
	o := normalizeMap(original)
	c := normalizeMap(compacted)

	if reflect.DeepEqual(o, c) {
		return "", false
	}

	keys := maps.Keys(o)
	slices.Sort(keys)

	for _, k := range keys {
		cv, present := c[k]
		if !present {
			if len(o) == len(c) {
				// the key was mapped to another name, cannot guess what's a new name
				continue
			}

			return joinPath(path, k), true
		}

		if p, found := findDroppedInValue(o[k], cv, joinPath(path, k)); found {
			return p, true
		}
	}

	return "", false
}

func findDroppedInValue(original, compacted interface{}, path string) (string, bool) {
	switch ov := original.(type) {
	case map[string]interface{}:
		cm, ok := compacted.(map[string]interface{})
		if !ok {
			return path, true
		}

		return findDroppedTerm(ov, cm, path)
	case []interface{}:
		cs, ok := compacted.([]interface{})
		if !ok || len(cs) != len(ov) {
			return path, true
		}

		for i := range ov {
			if p, found := findDroppedInValue(ov[i], cs[i], fmt.Sprintf("%s[%d]", path, i)); found {
				return p, true
			}
		}
	}

	return "", false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))

	for k, v := range m {
		if k == "@context" {
			continue
		}

		out[k] = normalizeValue(v)
	}

	return out
}

// normalizeValue undoes the shape changes compaction is allowed to make:
// single element arrays become the element, {"id": x} becomes x.
func normalizeValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case []interface{}:
		if len(tv) == 1 {
			return normalizeValue(tv[0])
		}

		out := make([]interface{}, len(tv))
		for i := range tv {
			out[i] = normalizeValue(tv[i])
		}

		return out
	case map[string]interface{}:
		if len(tv) == 1 {
			if id, ok := tv["id"]; ok {
				return id
			}
		}

		return normalizeMap(tv)
	default:
		return v
	}
}
