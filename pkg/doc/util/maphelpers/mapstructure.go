/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package maphelpers

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/mitchellh/mapstructure"
)

// JSONNumberToJwtNumericDate hook for mapstructure library to decode json.Number to jwt.NumericDate.
func JSONNumberToJwtNumericDate() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.String() != "json.Number" || !strings.Contains("jwt.NumericDate", t.String()) {
			return data, nil
		}

		parsedFloat, err := strconv.ParseFloat(fmt.Sprint(data), 64)
		if err != nil {
			return nil, err
		}

		date := jwt.NewNumericDate(time.Unix(int64(parsedFloat), 0))

		if t.String() == "jwt.NumericDate" {
			return date, nil
		}

		return &date, nil
	}
}

// StringToDuration hook for mapstructure library to decode duration strings like "5s".
func StringToDuration() mapstructure.DecodeHookFunc {
	return mapstructure.StringToTimeDurationHookFunc()
}

// Decode decodes a generic JSON map into the target struct using its json tags.
func Decode(input interface{}, target interface{}, hooks ...mapstructure.DecodeHookFunc) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(hooks...),
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	return decoder.Decode(input)
}
