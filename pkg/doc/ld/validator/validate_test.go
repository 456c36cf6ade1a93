/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const personContext = `{
	"name": "http://schema.org/name",
	"knows": {"@id": "http://schema.org/knows"}
}`

func TestValidateJSONLD(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		opts   []ValidateOpts
		errMsg string
	}{
		{
			name: "all terms defined",
			doc:  `{"@context": ` + personContext + `, "name": "Alice", "knows": {"name": "Bob"}}`,
		},
		{
			name:   "undefined term",
			doc:    `{"@context": ` + personContext + `, "name": "Alice", "age": 42}`,
			errMsg: `term "age" is not defined`,
		},
		{
			name:   "undefined nested term",
			doc:    `{"@context": ` + personContext + `, "name": "Alice", "knows": {"name": "Bob", "nick": "b"}}`,
			errMsg: `term "knows.nick" is not defined`,
		},
		{
			name: "undefined term without strict validation",
			doc:  `{"@context": ` + personContext + `, "name": "Alice", "age": 42}`,
			opts: []ValidateOpts{WithStrictValidation(false)},
		},
		{
			name:   "not JSON",
			doc:    `{"name"`,
			errMsg: "convert JSON-LD doc to map",
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJSONLD(tc.doc, tc.opts...)
			if tc.errMsg == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("structure changed is reported", func(t *testing.T) {
		err := ValidateJSONLD(`{"@context": ` + personContext + `, "nick": "a"}`)
		require.True(t, errors.Is(err, ErrStructureChanged))
	})
}

func TestValidateContextURIPosition(t *testing.T) {
	const (
		base     = "https://www.w3.org/2018/credentials/v1"
		examples = "https://www.w3.org/2018/credentials/examples/v1"
	)

	tests := []struct {
		name      string
		context   interface{}
		positions []string
		errMsg    string
	}{
		{name: "no positions", context: examples},
		{name: "string context", context: base, positions: []string{base}},
		{name: "array context", context: []interface{}{base, examples}, positions: []string{base, examples}},
		{
			name:      "wrong position",
			context:   []interface{}{examples, base},
			positions: []string{base},
			errMsg:    "invalid context URI on position 0",
		},
		{
			name:      "too few contexts",
			context:   []interface{}{base},
			positions: []string{base, examples},
			errMsg:    "doc context URIs amount mismatch",
		},
		{
			name:      "inline context",
			context:   []interface{}{map[string]interface{}{"name": "http://schema.org/name"}},
			positions: []string{base},
			errMsg:    "unsupported URI type",
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			err := validateContextURIPosition(tc.positions, map[string]interface{}{"@context": tc.context})
			if tc.errMsg == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	require.Equal(t, "did:example:bob", normalizeValue([]interface{}{map[string]interface{}{"id": "did:example:bob"}}))
	require.Equal(t, []interface{}{"a", "b"}, normalizeValue([]interface{}{"a", "b"}))
	require.Equal(t, map[string]interface{}{"name": "Bob"},
		normalizeValue(map[string]interface{}{"@context": "https://example.com", "name": "Bob"}))
}
