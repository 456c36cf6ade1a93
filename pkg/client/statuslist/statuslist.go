/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package statuslist checks credential status against StatusList2021 and BitstringStatusList credentials.
package statuslist

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/multiformats/go-multibase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	"github.com/hyperledger/aries-vcproof/pkg/doc/verifiable"
)

var logger = log.New("aries-vcproof/client/statuslist")

// Status entry and list credential types.
const (
	StatusList2021Entry           = "StatusList2021Entry"
	StatusList2021Credential      = "StatusList2021Credential"
	BitstringStatusListEntry      = "BitstringStatusListEntry"
	BitstringStatusListCredential = "BitstringStatusListCredential"

	defaultCacheSize = 100
	defaultCacheTTL  = 5 * time.Minute
)

// Client fetches status list credentials and reads the bit of a credential. It implements
// verifiable.StatusChecker and is safe for concurrent use.
type Client struct {
	rest     *resty.Client
	verifier *verifiable.Verifier
	cache    gcache.Cache
	cacheTTL time.Duration
}

// Opt configures the Client.
type Opt func(c *Client)

// WithHTTPClient sets the HTTP client. Its transport is instrumented with OpenTelemetry.
func WithHTTPClient(client *http.Client) Opt {
	return func(c *Client) {
		c.rest = newRestyClient(client)
	}
}

// WithVerifier verifies the proofs of every fetched status list credential.
func WithVerifier(v *verifiable.Verifier) Opt {
	return func(c *Client) {
		c.verifier = v
	}
}

// WithCache keeps up to size status list credentials for ttl.
func WithCache(size int, ttl time.Duration) Opt {
	return func(c *Client) {
		c.cache = gcache.New(size).LRU().Build()
		c.cacheTTL = ttl
	}
}

// New returns a status list Client.
func New(opts ...Opt) *Client {
	c := &Client{
		cache:    gcache.New(defaultCacheSize).LRU().Build(),
		cacheTTL: defaultCacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rest == nil {
		c.rest = newRestyClient(&http.Client{})
	}

	return c
}

func newRestyClient(client *http.Client) *resty.Client {
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	instrumented := *client
	instrumented.Transport = otelhttp.NewTransport(transport)

	return resty.NewWithClient(&instrumented)
}

type statusList struct {
	purpose string
	bits    []byte
}

// CheckStatus reads the bit of the credential in the status list credential its status entry points to.
// A set bit is reported as StatusRevoked whatever the purpose of the list.
func (c *Client) CheckStatus(ctx context.Context, credentialID string,
	status *verifiable.Status) (verifiable.StatusResult, error) {
	const op = "check status list"

	if status.Type != StatusList2021Entry && status.Type != BitstringStatusListEntry {
		return 0, api.Errorf(api.StatusError, op, "unsupported status type %s", status.Type)
	}

	if status.StatusListCredential == "" {
		return 0, api.Errorf(api.DocumentMalformed, op, "statusListCredential is missing")
	}

	index, err := strconv.Atoi(status.StatusListIndex)
	if err != nil || index < 0 {
		return 0, api.Errorf(api.DocumentMalformed, op, "invalid statusListIndex %q", status.StatusListIndex)
	}

	list, err := c.statusList(ctx, status.StatusListCredential)
	if err != nil {
		return 0, api.WrapIfUntyped(api.StatusError, op, err)
	}

	if status.StatusPurpose != "" && list.purpose != "" && status.StatusPurpose != list.purpose {
		return 0, api.Errorf(api.StatusError, op, "status purpose %s does not match list purpose %s",
			status.StatusPurpose, list.purpose)
	}

	set, err := bitAt(list.bits, index)
	if err != nil {
		return 0, api.NewError(api.StatusError, op, err)
	}

	logger.Debugf("credential %s at %s[%d]: set=%t", credentialID, status.StatusListCredential, index, set)

	if set {
		return verifiable.StatusRevoked, nil
	}

	return verifiable.StatusActive, nil
}

func (c *Client) statusList(ctx context.Context, url string) (*statusList, error) {
	if cached, err := c.cache.Get(url); err == nil {
		return cached.(*statusList), nil //nolint:forcetypeassert
	}

	vc, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if c.verifier != nil {
		result, err := c.verifier.Verify(ctx, vc, &verifiable.Policy{SkipStatus: true})
		if err != nil {
			return nil, err
		}

		if !result.Valid {
			return nil, fmt.Errorf("status list credential %s is not valid: %v", url, result.Reasons())
		}
	}

	list, err := parseStatusList(vc)
	if err != nil {
		return nil, err
	}

	if err = c.cache.SetWithExpire(url, list, c.cacheTTL); err != nil {
		logger.Warnf("cache status list %s: %v", url, err)
	}

	return list, nil
}

func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	resp, err := c.rest.R().SetContext(ctx).SetHeader("Accept", "application/json").Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch status list credential: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch status list credential %s: status %d", url, resp.StatusCode())
	}

	var vc map[string]interface{}

	if err = json.Unmarshal(resp.Body(), &vc); err != nil {
		if token := strings.TrimSpace(string(resp.Body())); strings.Count(token, ".") == 2 {
			return verifiable.DecodeJWT(token)
		}

		return nil, fmt.Errorf("decode status list credential: %w", err)
	}

	return vc, nil
}

func parseStatusList(vc map[string]interface{}) (*statusList, error) {
	subject, ok := vc["credentialSubject"].(map[string]interface{})
	if !ok {
		return nil, errors.New("status list credential has no credentialSubject object")
	}

	encoded, ok := subject["encodedList"].(string)
	if !ok || encoded == "" {
		return nil, errors.New("status list credential has no encodedList")
	}

	purpose, _ := subject["statusPurpose"].(string) //nolint:errcheck

	bits, err := decodeBits(encoded)
	if err != nil {
		return nil, err
	}

	return &statusList{purpose: purpose, bits: bits}, nil
}

// decodeBits decodes a GZIP compressed bitstring, base64url encoded with or without a multibase prefix.
func decodeBits(encoded string) ([]byte, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil || !isGzip(compressed) {
		_, compressed, err = multibase.Decode(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode encodedList: %w", err)
		}
	}

	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("decompress encodedList: %w", err)
	}

	bits, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress encodedList: %w", err)
	}

	return bits, nil
}

func isGzip(data []byte) bool {
	return len(data) > 1 && data[0] == 0x1f && data[1] == 0x8b
}

// bitAt returns the bit at index, the first bit being the most significant bit of the first byte.
func bitAt(bits []byte, index int) (bool, error) {
	const bitsPerByte = 8

	if index/bitsPerByte >= len(bits) {
		return false, fmt.Errorf("index %d out of range of a %d bit list", index, len(bits)*bitsPerByte)
	}

	mask := byte(1) << (bitsPerByte - 1 - index%bitsPerByte)

	return bits[index/bitsPerByte]&mask != 0, nil
}

// Encode compresses and encodes a bitstring as encodedList. It serves issuers of status list credentials.
func Encode(bits []byte) (string, error) {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)

	if _, err := w.Write(bits); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}
