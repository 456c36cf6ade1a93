/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package embed contains the JSON-LD contexts compiled into the binary.
package embed

import (
	_ "embed" //nolint:gci // required for go:embed

	ldcontext "github.com/hyperledger/aries-vcproof/pkg/doc/ld/context"
)

// nolint:gochecknoglobals // required for go:embed
var (
	//go:embed third_party/w3.org/credentials_v1.jsonld
	w3orgCredentials []byte
	//go:embed third_party/w3.org/credentials_examples_v1.jsonld
	w3orgCredentialsExamples []byte
	//go:embed third_party/w3id.org/ed25519-signature-2018-v1.jsonld
	ed255192018 []byte
	//go:embed third_party/w3id.org/ed25519-signature-2020-v1.jsonld
	ed255192020 []byte
	//go:embed third_party/w3id.org/jcs-ed25519-signature-2020-v1.jsonld
	jcsEd255192020 []byte
	//go:embed third_party/w3id.org/secp256k1-2019-v1.jsonld
	secp256k12019 []byte
	//go:embed third_party/w3id.org/secp256k1recovery-2020-v2.jsonld
	secp256k1Recovery2020 []byte
	//go:embed third_party/w3id.org/secp256r1-2019-v1.jsonld
	secp256r12019 []byte
	//go:embed third_party/w3id.org/rsa-2018-v1.jsonld
	rsa2018 []byte
	//go:embed third_party/w3id.org/bbs-v1.jsonld
	bbsV1 []byte
	//go:embed third_party/w3id.org/jws-2020-v1.jsonld
	jws2020 []byte
	//go:embed third_party/w3id.org/status-list-2021-v1.jsonld
	statusList2021 []byte
)

// Context URLs of the embedded documents.
const (
	CredentialsV1URL           = "https://www.w3.org/2018/credentials/v1"
	CredentialsExamplesV1URL   = "https://www.w3.org/2018/credentials/examples/v1"
	Ed25519Signature2018URL    = "https://w3id.org/security/suites/ed25519-2018/v1"
	Ed25519Signature2020URL    = "https://w3id.org/security/suites/ed25519-2020/v1"
	JcsEd25519Signature2020URL = "https://w3id.org/security/suites/jcs-ed25519-2020/v1"
	Secp256k1Signature2019URL  = "https://w3id.org/security/suites/secp256k1-2019/v1"
	Secp256k1Recovery2020URL   = "https://w3id.org/security/suites/secp256k1recovery-2020/v2"
	Secp256r1Signature2019URL  = "https://w3id.org/security/suites/secp256r1-2019/v1"
	RsaSignature2018URL        = "https://w3id.org/security/suites/rsa-2018/v1"
	BBSV1URL                   = "https://w3id.org/security/bbs/v1"
	JWS2020V1URL               = "https://w3id.org/security/suites/jws-2020/v1"
	StatusList2021V1URL        = "https://w3id.org/vc/status-list/2021/v1"
)

// Contexts contains JSON-LD contexts embedded into a Go binary.
var Contexts = []ldcontext.Document{ //nolint:gochecknoglobals
	{
		URL:         CredentialsV1URL,
		DocumentURL: CredentialsV1URL,
		Content:     w3orgCredentials,
	},
	{
		URL:         CredentialsExamplesV1URL,
		DocumentURL: CredentialsExamplesV1URL,
		Content:     w3orgCredentialsExamples,
	},
	{
		URL:         Ed25519Signature2018URL,
		DocumentURL: "https://w3c-ccg.github.io/lds-ed25519-2018/contexts/lds-ed25519-2018-v1.jsonld",
		Content:     ed255192018,
	},
	{
		URL:         Ed25519Signature2020URL,
		DocumentURL: "https://w3c-ccg.github.io/lds-ed25519-2020/contexts/ed25519-2020-v1.jsonld",
		Content:     ed255192020,
	},
	{
		URL:         JcsEd25519Signature2020URL,
		DocumentURL: JcsEd25519Signature2020URL,
		Content:     jcsEd255192020,
	},
	{
		URL:         Secp256k1Signature2019URL,
		DocumentURL: "https://ns.did.ai/suites/secp256k1-2019/v1/",
		Content:     secp256k12019,
	},
	{
		URL:         Secp256k1Recovery2020URL,
		DocumentURL: "https://w3id.org/security/suites/secp256k1recovery-2020/v2",
		Content:     secp256k1Recovery2020,
	},
	{
		URL:         Secp256r1Signature2019URL,
		DocumentURL: Secp256r1Signature2019URL,
		Content:     secp256r12019,
	},
	{
		URL:         RsaSignature2018URL,
		DocumentURL: RsaSignature2018URL,
		Content:     rsa2018,
	},
	{
		URL:         BBSV1URL,
		DocumentURL: "https://w3c-ccg.github.io/ldp-bbs2020/contexts/v1/",
		Content:     bbsV1,
	},
	{
		URL:         JWS2020V1URL,
		DocumentURL: "https://w3c-ccg.github.io/lds-jws2020/contexts/lds-jws2020-v1.json",
		Content:     jws2020,
	},
	{
		URL:         StatusList2021V1URL,
		DocumentURL: StatusList2021V1URL,
		Content:     statusList2021,
	},
}
