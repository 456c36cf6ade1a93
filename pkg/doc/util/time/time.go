/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package time provides a time.Time wrapper keeping the literal it was parsed from.
package time

import (
	"encoding/json"
	"time"
)

// TimeWrapper overrides marshalling of time.Time. If a TimeWrapper is created from a time string, or
// unmarshalled from JSON, it saves the string literal, which it uses when marshalling.
// Canonical forms of signed documents depend on the exact literal, so it must survive a round trip.
type TimeWrapper struct { // nolint:golint
	time.Time
	timeStr string
}

// NewTime creates a TimeWrapper wrapped around the given time.Time.
func NewTime(t time.Time) *TimeWrapper {
	return &TimeWrapper{Time: t}
}

// MarshalJSON implements the json.Marshaler interface.
func (tm TimeWrapper) MarshalJSON() ([]byte, error) {
	// catch time.Time marshaling errors
	if _, err := tm.Time.MarshalJSON(); err != nil {
		return nil, err
	}

	return json.Marshal(tm.FormatToString())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The time is expected to be a quoted string in RFC 3339 format.
func (tm *TimeWrapper) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	timeStr := ""

	if err := json.Unmarshal(data, &timeStr); err != nil {
		return err
	}

	return tm.parse(timeStr)
}

func (tm *TimeWrapper) parse(timeStr string) error {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		// xsd:dateTime allows a missing zone
		t, err = time.Parse(time.RFC3339, timeStr+"Z")
		if err != nil {
			return err
		}
	}

	tm.Time = t
	tm.timeStr = timeStr

	return nil
}

// FormatToString returns the string representation of this TimeWrapper.
// If it was parsed from a string, this returns the original string.
// Otherwise, this returns the time in the time.RFC3339 format in UTC.
func (tm *TimeWrapper) FormatToString() string {
	if tm.timeStr != "" {
		return tm.timeStr
	}

	return tm.Time.UTC().Format(time.RFC3339)
}

// ParseTimeWrapper parses a formatted string and returns the time value it represents.
func ParseTimeWrapper(timeStr string) (*TimeWrapper, error) {
	tm := TimeWrapper{}

	if err := tm.parse(timeStr); err != nil {
		return nil, err
	}

	return &tm, nil
}
