/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	jwtPartsNumber   = 3
	jwtHeaderPart    = 0
	jwtPayloadPart   = 1
	jwtSignaturePart = 2
)

// CreateDetachedJWTHeader creates detached JWT header.
func CreateDetachedJWTHeader(alg string) string {
	jwtHeaderMap := map[string]interface{}{
		"alg":  alg,
		"b64":  false,
		"crit": []string{"b64"},
	}

	jwtHeaderBytes, err := json.Marshal(jwtHeaderMap)
	if err != nil {
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(jwtHeaderBytes)
}

// CreateDetachedJWSSigningInput returns the JWS signing input of an unencoded (b64=false) payload.
func CreateDetachedJWSSigningInput(jwtHeader string, payload []byte) []byte {
	input := make([]byte, 0, len(jwtHeader)+1+len(payload))
	input = append(input, jwtHeader...)
	input = append(input, '.')

	return append(input, payload...)
}

// CreateDetachedJWS assembles a JWS with detached payload from its header and signature.
func CreateDetachedJWS(jwtHeader string, signature []byte) string {
	return jwtHeader + ".." + base64.RawURLEncoding.EncodeToString(signature)
}

// GetJWTSignature returns signature part of JWT.
func GetJWTSignature(jwt string) ([]byte, error) {
	jwtParts := strings.Split(jwt, ".")
	if len(jwtParts) != jwtPartsNumber || jwtParts[jwtSignaturePart] == "" {
		return nil, errors.New("invalid JWT")
	}

	return base64.RawURLEncoding.DecodeString(jwtParts[jwtSignaturePart])
}

// GetDetachedJWSAlgorithm checks the header of a detached JWS and returns its "alg".
func GetDetachedJWSAlgorithm(jws string) (string, error) {
	jwtParts := strings.Split(jws, ".")
	if len(jwtParts) != jwtPartsNumber || jwtParts[jwtPayloadPart] != "" {
		return "", errors.New("invalid detached JWS")
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(jwtParts[jwtHeaderPart])
	if err != nil {
		return "", fmt.Errorf("decode JWS header: %w", err)
	}

	var header struct {
		Alg  string   `json:"alg"`
		B64  *bool    `json:"b64"`
		Crit []string `json:"crit"`
	}

	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return "", fmt.Errorf("unmarshal JWS header: %w", err)
	}

	if header.B64 == nil || *header.B64 || !contains(header.Crit, "b64") {
		return "", errors.New("JWS header must declare an unencoded payload")
	}

	return header.Alg, nil
}

func getJWTHeader(jwt string) (string, error) {
	jwtParts := strings.Split(jwt, ".")
	if len(jwtParts) != jwtPartsNumber {
		return "", errors.New("invalid JWT")
	}

	return jwtParts[jwtHeaderPart], nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}

	return false
}
