/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by signing and verification.
type ErrorKind int

// Error kinds.
const (
	KindUnknown ErrorKind = iota
	DocumentMalformed
	CanonicalizationError
	UnsupportedSuite
	SuiteKeyMismatch
	ResolutionError
	ResolutionTimeout
	SignatureInvalid
	ExpiredOrNotYetValid
	Revoked
	StatusError
	SigningError
	PolicyViolation
)

var kindNames = map[ErrorKind]string{ //nolint:gochecknoglobals
	KindUnknown:           "Unknown",
	DocumentMalformed:     "DocumentMalformed",
	CanonicalizationError: "CanonicalizationError",
	UnsupportedSuite:      "UnsupportedSuite",
	SuiteKeyMismatch:      "SuiteKeyMismatch",
	ResolutionError:       "ResolutionError",
	ResolutionTimeout:     "ResolutionTimeout",
	SignatureInvalid:      "SignatureInvalid",
	ExpiredOrNotYetValid:  "ExpiredOrNotYetValid",
	Revoked:               "Revoked",
	StatusError:           "StatusError",
	SigningError:          "SigningError",
	PolicyViolation:       "PolicyViolation",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels usable with errors.Is. Any *Error of the same kind matches.
var (
	ErrDocumentMalformed    = &Error{Kind: DocumentMalformed}
	ErrCanonicalization     = &Error{Kind: CanonicalizationError}
	ErrUnsupportedSuite     = &Error{Kind: UnsupportedSuite}
	ErrSuiteKeyMismatch     = &Error{Kind: SuiteKeyMismatch}
	ErrResolution           = &Error{Kind: ResolutionError}
	ErrResolutionTimeout    = &Error{Kind: ResolutionTimeout}
	ErrSignatureInvalid     = &Error{Kind: SignatureInvalid}
	ErrExpiredOrNotYetValid = &Error{Kind: ExpiredOrNotYetValid}
	ErrRevoked              = &Error{Kind: Revoked}
	ErrStatus               = &Error{Kind: StatusError}
	ErrSigning              = &Error{Kind: SigningError}
	ErrPolicyViolation      = &Error{Kind: PolicyViolation}
)

// Error is a typed failure of a proof engine operation.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError wraps err with the given kind and operation name.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf creates an *Error with a formatted cause.
func Errorf(kind ErrorKind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// WrapIfUntyped keeps an existing *Error as is and wraps anything else with kind.
func WrapIfUntyped(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}

	if KindOf(err) != KindUnknown {
		return err
	}

	return NewError(kind, op, err)
}
