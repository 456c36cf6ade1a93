/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

// CheckRepresentation exposes checkRepresentation to the external test package.
var CheckRepresentation = checkRepresentation
