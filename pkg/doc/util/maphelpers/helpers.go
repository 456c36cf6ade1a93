/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package maphelpers contains helpers for generic JSON documents.
package maphelpers

// CopyMap performs deep copy of map, nested maps and nested arrays.
// Scalar values are shared, they are immutable in decoded JSON.
func CopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}

	cm := make(map[string]interface{}, len(m))

	for k, v := range m {
		cm[k] = copyValue(v)
	}

	return cm
}

// CopySlice performs deep copy of a JSON array.
func CopySlice(a []interface{}) []interface{} {
	if a == nil {
		return nil
	}

	ca := make([]interface{}, len(a))

	for i, v := range a {
		ca[i] = copyValue(v)
	}

	return ca
}

func copyValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case map[string]interface{}:
		return CopyMap(tv)
	case []interface{}:
		return CopySlice(tv)
	default:
		return v
	}
}
