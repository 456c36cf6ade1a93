/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-vcproof/pkg/doc/canonicalizer"
	"github.com/hyperledger/aries-vcproof/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
	sigutil "github.com/hyperledger/aries-vcproof/pkg/doc/util/signature"
)

//nolint:gochecknoglobals
var (
	testCanonicalizerOnce sync.Once
	testCanonicalizer     *canonicalizer.Canonicalizer
	testCanonicalizerErr  error
)

// sharedCanonicalizer keeps one document loader for the whole package run.
func sharedCanonicalizer(t *testing.T) *canonicalizer.Canonicalizer {
	t.Helper()

	testCanonicalizerOnce.Do(func() {
		testCanonicalizer, testCanonicalizerErr = canonicalizer.New()
	})

	require.NoError(t, testCanonicalizerErr)

	return testCanonicalizer
}

const (
	issuerDID = "did:example:76e12ec712ebc6f1c221ebfeb1f"
	holderDID = "did:example:ebfeb1f712ebc6f1c276e12ec21"
)

const credentialJSON = `{
  "@context": [
    "https://www.w3.org/2018/credentials/v1",
    "https://www.w3.org/2018/credentials/examples/v1"
  ],
  "id": "http://example.edu/credentials/1872",
  "type": ["VerifiableCredential", "UniversityDegreeCredential"],
  "issuer": "did:example:76e12ec712ebc6f1c221ebfeb1f",
  "issuanceDate": "2010-01-01T19:23:24Z",
  "credentialSubject": {
    "id": "did:example:ebfeb1f712ebc6f1c276e12ec21",
    "degree": {
      "type": "BachelorDegree",
      "name": "Bachelor of Science and Arts"
    }
  }
}`

func newCredential(t *testing.T) map[string]interface{} {
	t.Helper()

	return parseJSON(t, credentialJSON)
}

func newPresentation(credentials ...interface{}) map[string]interface{} {
	vp := map[string]interface{}{
		"@context": []interface{}{"https://www.w3.org/2018/credentials/v1"},
		"id":       "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5",
		"type":     []interface{}{"VerifiablePresentation"},
		"holder":   holderDID,
	}

	if len(credentials) > 0 {
		vp["verifiableCredential"] = credentials
	}

	return vp
}

func parseJSON(t *testing.T, raw string) map[string]interface{} {
	t.Helper()

	var doc map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	return doc
}

// jsonRoundTrip returns doc as a verifier receiving it over the wire would see it.
func jsonRoundTrip(t *testing.T, doc map[string]interface{}) map[string]interface{} {
	t.Helper()

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	return parseJSON(t, string(raw))
}

// keyRing is an in-memory resolver of verification methods.
type keyRing struct {
	mu      sync.Mutex
	methods map[string]*api.VerificationMethod
	calls   int
}

func newKeyRing() *keyRing {
	return &keyRing{methods: map[string]*api.VerificationMethod{}}
}

func (k *keyRing) add(id, methodType string, value []byte, relationships ...string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.methods[id] = &api.VerificationMethod{
		ID:            id,
		Type:          methodType,
		Controller:    issuerDID,
		Value:         value,
		Relationships: relationships,
	}
}

func (k *keyRing) Resolve(ctx context.Context, id string) (*api.VerificationMethod, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vm, ok := k.methods[id]
	if !ok {
		return nil, fmt.Errorf("verification method %s not found", id)
	}

	return vm, nil
}

type testKey struct {
	suiteID    string
	keyType    sigutil.KeyType
	methodType string
}

//nolint:gochecknoglobals
var testKeys = []testKey{
	{"Ed25519Signature2018", sigutil.ED25519Type, "Ed25519VerificationKey2018"},
	{"Ed25519Signature2020", sigutil.ED25519Type, "Ed25519VerificationKey2020"},
	{"JcsEd25519Signature2020", sigutil.ED25519Type, "Ed25519VerificationKey2018"},
	{"EcdsaSecp256k1Signature2019", sigutil.ECDSASecp256k1Type, "EcdsaSecp256k1VerificationKey2019"},
	{"EcdsaSecp256k1RecoverySignature2020", sigutil.ECDSASecp256k1RecoveryType, "EcdsaSecp256k1RecoveryMethod2020"},
	{"EcdsaSecp256r1Signature2019", sigutil.ECDSAP256Type, "EcdsaSecp256r1VerificationKey2019"},
	{"RsaSignature2018", sigutil.RSAPS256Type, "RsaVerificationKey2018"},
	{"RsaPkcs1Signature2018", sigutil.RSARS256Type, "RsaVerificationKey2018"},
	{"BbsBlsSignature2020", sigutil.BLS12381G2Type, "Bls12381G2Key2020"},
}

// newSigningKey generates a key for the suite and registers its public part in the key ring.
func newSigningKey(t *testing.T, ring *keyRing, suiteID, vmID string) sigutil.Signer {
	t.Helper()

	for _, k := range testKeys {
		if k.suiteID != suiteID {
			continue
		}

		s, err := sigutil.NewSigner(k.keyType)
		require.NoError(t, err)

		ring.add(vmID, k.methodType, s.PublicKeyBytes(), api.AssertionMethod, api.Authentication)

		return s
	}

	require.FailNow(t, "no test key for suite "+suiteID)

	return nil
}

func newTestIssuer(t *testing.T, opts ...Opt) *Issuer {
	t.Helper()

	issuer, err := NewIssuer(append([]Opt{WithCanonicalizer(sharedCanonicalizer(t))}, opts...)...)
	require.NoError(t, err)

	return issuer
}

func newTestVerifier(t *testing.T, resolver api.Resolver, opts ...Opt) *Verifier {
	t.Helper()

	v, err := NewVerifier(resolver, append([]Opt{WithCanonicalizer(sharedCanonicalizer(t))}, opts...)...)
	require.NoError(t, err)

	return v
}

func signOptions(vmID string) SignOptions {
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	return SignOptions{VerificationMethod: vmID, Created: &created}
}

func requireKind(t *testing.T, kind api.ErrorKind, err error) {
	t.Helper()

	require.Error(t, err)
	require.Equal(t, kind.String(), api.KindOf(err).String(), "error: %v", err)
}

func newTestJWK(t *testing.T, pub interface{}) *jwk.JWK {
	t.Helper()

	key, err := jwk.JWKFromKey(pub)
	require.NoError(t, err)

	return key
}
