/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/hyperledger/aries-vcproof/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/hyperledger/aries-vcproof/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-vcproof/pkg/doc/signature/api"
)

// PublicKeyVerifier makes signature verification using the public key
// based on one or several signature algorithms.
type PublicKeyVerifier struct {
	exactType      string
	singleVerifier SignatureVerifier
	verifiers      []SignatureVerifier
}

// PublicKeyVerifierOpt is the PublicKeyVerifier functional option.
type PublicKeyVerifierOpt func(opts *PublicKeyVerifier)

// NewPublicKeyVerifier creates a new PublicKeyVerifier based on single signature algorithm.
func NewPublicKeyVerifier(sigAlg SignatureVerifier, opts ...PublicKeyVerifierOpt) *PublicKeyVerifier {
	v := &PublicKeyVerifier{
		singleVerifier: sigAlg,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// NewCompositePublicKeyVerifier creates a new PublicKeyVerifier based on one or more signature algorithms.
// A verifier is picked by the JWK of the public key.
func NewCompositePublicKeyVerifier(verifiers []SignatureVerifier, opts ...PublicKeyVerifierOpt) *PublicKeyVerifier {
	v := &PublicKeyVerifier{
		verifiers: verifiers,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Verify verifies the signature.
func (pkv *PublicKeyVerifier) Verify(pubKey *api.PublicKey, msg, signature []byte) error {
	if pkv.exactType != "" {
		if pubKey.Type != pkv.exactType {
			return fmt.Errorf("a type of public key is not '%s'", pkv.exactType)
		}
	}

	if pkv.singleVerifier != nil {
		if pubKey.JWK != nil && !MatchJWK(pkv.singleVerifier, pubKey.JWK) {
			return errors.New("verifier does not match JSON Web Key")
		}

		return pkv.singleVerifier.Verify(pubKey, msg, signature)
	}

	if pubKey.JWK == nil {
		return errors.New("a JSON Web Key is required to select the verifier")
	}

	for _, v := range pkv.verifiers {
		if MatchJWK(v, pubKey.JWK) {
			return v.Verify(pubKey, msg, signature)
		}
	}

	return errors.New("no matching verifier found")
}

// MatchJWK reports whether the verifier handles keys described by the JWK.
func MatchJWK(verifier SignatureVerifier, key *jwk.JWK) bool {
	// "kty" is a mandatory field in JWK.
	if verifier.KeyType() != key.Kty {
		return false
	}

	// "crv" is an optional field in JWK (however, it's mandatory for elliptic curves).
	if key.Crv != "" && verifier.Curve() != key.Crv {
		return false
	}

	// "alg" is an optional field in JWK.
	if key.Algorithm != "" && verifier.Algorithm() != key.Algorithm {
		return false
	}

	return true
}

// WithExactPublicKeyType option is used to check the type of the PublicKey.
func WithExactPublicKeyType(jwkType string) PublicKeyVerifierOpt {
	return func(opts *PublicKeyVerifier) {
		opts.exactType = jwkType
	}
}

// SignatureVerifier make signature verification of a certain algorithm (e.g. Ed25519 or ECDSA secp256k1).
type SignatureVerifier interface {
	KeyType() string

	Curve() string

	Algorithm() string

	Verify(pubKey *api.PublicKey, msg, signature []byte) error
}

type baseSignatureVerifier struct {
	keyType   string
	curve     string
	algorithm string
}

func (sv baseSignatureVerifier) KeyType() string {
	return sv.keyType
}

func (sv baseSignatureVerifier) Curve() string {
	return sv.curve
}

func (sv baseSignatureVerifier) Algorithm() string {
	return sv.algorithm
}

// keyValue returns the raw key bytes, falling back to the JWK when the method carries no raw value.
func keyValue(pubKey *api.PublicKey) ([]byte, error) {
	if len(pubKey.Value) > 0 {
		return pubKey.Value, nil
	}

	if pubKey.JWK != nil {
		return pubKey.JWK.PublicKeyBytes()
	}

	return nil, errors.New("public key has no key material")
}

// Ed25519SignatureVerifier verifies a Ed25519 signature taking Ed25519 public key bytes as input.
type Ed25519SignatureVerifier struct {
	baseSignatureVerifier
}

// NewEd25519SignatureVerifier creates a new Ed25519SignatureVerifier.
func NewEd25519SignatureVerifier() *Ed25519SignatureVerifier {
	return &Ed25519SignatureVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   jwk.KtyOKP,
			curve:     jwk.CrvEd25519,
			algorithm: api.AlgEdDSA,
		},
	}
}

// Verify verifies the signature.
func (sv Ed25519SignatureVerifier) Verify(pubKey *api.PublicKey, msg, signature []byte) error {
	value, err := keyValue(pubKey)
	if err != nil {
		return fmt.Errorf("ed25519: %w", err)
	}

	// ed25519 panics if key size is wrong
	if len(value) != ed25519.PublicKeySize {
		return errors.New("ed25519: invalid key")
	}

	verified := ed25519.Verify(value, msg, signature)
	if !verified {
		return errors.New("ed25519: invalid signature")
	}

	return nil
}

// RSAPS256SignatureVerifier verifies a RSASSA-PSS signature taking RSA public key bytes as input.
type RSAPS256SignatureVerifier struct {
	baseSignatureVerifier
}

// NewRSAPS256SignatureVerifier creates a new RSAPS256SignatureVerifier.
func NewRSAPS256SignatureVerifier() *RSAPS256SignatureVerifier {
	return &RSAPS256SignatureVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   jwk.KtyRSA,
			algorithm: api.AlgPS256,
		},
	}
}

// Verify verifies the signature.
func (sv RSAPS256SignatureVerifier) Verify(key *api.PublicKey, msg, signature []byte) error {
	pubKey, err := parseRSAKey(key)
	if err != nil {
		return err
	}

	hashed := sha256.Sum256(msg)

	err = rsa.VerifyPSS(pubKey, crypto.SHA256, hashed[:], signature, nil)
	if err != nil {
		return errors.New("rsa: invalid signature")
	}

	return nil
}

// RSARS256SignatureVerifier verifies a RSASSA-PKCS1-v1_5 signature taking RSA public key bytes as input.
type RSARS256SignatureVerifier struct {
	baseSignatureVerifier
}

// NewRSARS256SignatureVerifier creates a new RSARS256SignatureVerifier.
func NewRSARS256SignatureVerifier() *RSARS256SignatureVerifier {
	return &RSARS256SignatureVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   jwk.KtyRSA,
			algorithm: api.AlgRS256,
		},
	}
}

// Verify verifies the signature.
func (sv RSARS256SignatureVerifier) Verify(key *api.PublicKey, msg, signature []byte) error {
	pubKey, err := parseRSAKey(key)
	if err != nil {
		return err
	}

	hashed := sha256.Sum256(msg)

	err = rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, hashed[:], signature)
	if err != nil {
		return errors.New("rsa: invalid signature")
	}

	return nil
}

func parseRSAKey(key *api.PublicKey) (*rsa.PublicKey, error) {
	if key.JWK != nil {
		if pub, ok := key.JWK.Key.(*rsa.PublicKey); ok {
			return pub, nil
		}
	}

	pubKey, err := x509.ParsePKCS1PublicKey(key.Value)
	if err != nil {
		return nil, errors.New("rsa: invalid public key")
	}

	return pubKey, nil
}

const (
	p256KeySize      = 32
	secp256k1KeySize = 32
	recoverableSize  = 65
)

// ECDSASignatureVerifier verifies elliptic curve signatures in the IEEE P1363 (r || s) form.
type ECDSASignatureVerifier struct {
	baseSignatureVerifier
}

// Verify verifies the signature.
func (sv ECDSASignatureVerifier) Verify(pubKey *api.PublicKey, msg, signature []byte) error {
	ec := parseEllipticCurve(sv.curve)
	if ec == nil {
		return fmt.Errorf("ecdsa: unsupported elliptic curve '%s'", sv.curve)
	}

	ecdsaPubKey, err := parseECDSAKey(ec, pubKey)
	if err != nil {
		return err
	}

	if len(signature) != 2*ec.keySize {
		return errors.New("ecdsa: invalid signature size")
	}

	hasher := ec.hash.New()

	_, err = hasher.Write(msg)
	if err != nil {
		return errors.New("ecdsa: hash error")
	}

	hash := hasher.Sum(nil)

	r := big.NewInt(0).SetBytes(signature[:ec.keySize])
	s := big.NewInt(0).SetBytes(signature[ec.keySize:])

	verified := ecdsa.Verify(ecdsaPubKey, hash, r, s)
	if !verified {
		return errors.New("ecdsa: invalid signature")
	}

	return nil
}

// NewECDSASecp256k1SignatureVerifier creates a new signature verifier that verifies a ECDSA secp256k1 signature
// taking public key bytes and JSON Web Key as input.
func NewECDSASecp256k1SignatureVerifier() *ECDSASignatureVerifier {
	return &ECDSASignatureVerifier{baseSignatureVerifier{
		keyType:   jwk.KtyEC,
		curve:     jwk.CrvSecp256k1,
		algorithm: api.AlgES256K,
	}}
}

// NewECDSAES256SignatureVerifier creates a new signature verifier that verifies a ECDSA P-256 signature
// taking public key bytes and JSON Web Key as input.
func NewECDSAES256SignatureVerifier() *ECDSASignatureVerifier {
	return &ECDSASignatureVerifier{baseSignatureVerifier{
		keyType:   jwk.KtyEC,
		curve:     jwk.CrvP256,
		algorithm: api.AlgES256,
	}}
}

type ellipticCurve struct {
	curve   elliptic.Curve
	keySize int
	hash    crypto.Hash
}

func parseEllipticCurve(curve string) *ellipticCurve {
	switch curve {
	case jwk.CrvP256:
		return &ellipticCurve{
			curve:   elliptic.P256(),
			keySize: p256KeySize,
			hash:    crypto.SHA256,
		}
	case jwk.CrvSecp256k1:
		return &ellipticCurve{
			curve:   btcec.S256(),
			keySize: secp256k1KeySize,
			hash:    crypto.SHA256,
		}
	default:
		return nil
	}
}

func parseECDSAKey(ec *ellipticCurve, pubKey *api.PublicKey) (*ecdsa.PublicKey, error) {
	if pubKey.JWK != nil {
		if pub, ok := pubKey.JWK.Key.(*ecdsa.PublicKey); ok {
			return pub, nil
		}
	}

	if ec.curve == btcec.S256() {
		pub, err := btcec.ParsePubKey(pubKey.Value)
		if err != nil {
			return nil, fmt.Errorf("ecdsa: invalid public key: %w", err)
		}

		return pub.ToECDSA(), nil
	}

	x, y := elliptic.Unmarshal(ec.curve, pubKey.Value) //nolint:staticcheck
	if x == nil {
		x, y = elliptic.UnmarshalCompressed(ec.curve, pubKey.Value)
	}

	if x == nil {
		return nil, errors.New("ecdsa: invalid public key")
	}

	return &ecdsa.PublicKey{Curve: ec.curve, X: x, Y: y}, nil
}

// ECDSASecp256k1RecoverySignatureVerifier verifies ES256K-R signatures: the signer key is recovered from
// the signature and compared with the key material or the blockchain account of the method.
type ECDSASecp256k1RecoverySignatureVerifier struct {
	baseSignatureVerifier
}

// NewECDSASecp256k1RecoverySignatureVerifier creates a new ECDSASecp256k1RecoverySignatureVerifier.
func NewECDSASecp256k1RecoverySignatureVerifier() *ECDSASecp256k1RecoverySignatureVerifier {
	return &ECDSASecp256k1RecoverySignatureVerifier{baseSignatureVerifier{
		keyType:   jwk.KtyEC,
		curve:     jwk.CrvSecp256k1,
		algorithm: api.AlgES256KR,
	}}
}

// Verify verifies the signature.
func (sv ECDSASecp256k1RecoverySignatureVerifier) Verify(pubKey *api.PublicKey, msg, signature []byte) error {
	if len(signature) != recoverableSize {
		return errors.New("ecdsa: invalid recoverable signature size")
	}

	sig := make([]byte, recoverableSize)
	copy(sig, signature)

	// legacy Ethereum recovery ids
	if sig[recoverableSize-1] >= 27 { //nolint:gomnd
		sig[recoverableSize-1] -= 27
	}

	hash := sha256.Sum256(msg)

	recovered, err := ethcrypto.SigToPub(hash[:], sig)
	if err != nil {
		return fmt.Errorf("ecdsa: recover public key: %w", err)
	}

	switch {
	case len(pubKey.Value) > 0 || pubKey.JWK != nil:
		expected, err := parseECDSAKey(parseEllipticCurve(jwk.CrvSecp256k1), pubKey)
		if err != nil {
			return err
		}

		if expected.X.Cmp(recovered.X) != 0 || expected.Y.Cmp(recovered.Y) != 0 {
			return errors.New("ecdsa: invalid signature")
		}

		return nil
	case pubKey.BlockchainAccountID != "":
		address, err := eip155Address(pubKey.BlockchainAccountID)
		if err != nil {
			return err
		}

		if !strings.EqualFold(ethcrypto.PubkeyToAddress(*recovered).Hex(), address) {
			return errors.New("ecdsa: invalid signature")
		}

		return nil
	default:
		return errors.New("ecdsa: verification method has neither key material nor blockchain account id")
	}
}

// eip155Address extracts the address from a CAIP-10 account id such as eip155:1:0xab16....
func eip155Address(accountID string) (string, error) {
	parts := strings.Split(accountID, ":")

	const caip10Parts = 3

	if len(parts) != caip10Parts || parts[0] != "eip155" {
		return "", fmt.Errorf("ecdsa: unsupported blockchain account id '%s'", accountID)
	}

	return parts[2], nil
}

// BBSG2SignatureVerifier is a signature verifier that verifies a BBS+ Signature
// taking Bls12381G2Key2020 public key bytes as input.
// The message is a list of N-Quad statements, one per line.
type BBSG2SignatureVerifier struct {
	baseSignatureVerifier
}

// NewBBSG2SignatureVerifier creates a new BBSG2SignatureVerifier.
func NewBBSG2SignatureVerifier() *BBSG2SignatureVerifier {
	return &BBSG2SignatureVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   jwk.KtyEC,
			curve:     jwk.CrvBLS12381G2,
			algorithm: api.AlgBLS12381G2,
		},
	}
}

// Verify verifies the signature.
func (v *BBSG2SignatureVerifier) Verify(pubKeyValue *api.PublicKey, doc, signature []byte) error {
	value, err := keyValue(pubKeyValue)
	if err != nil {
		return fmt.Errorf("bbs: %w", err)
	}

	return bbs12381g2pub.New().Verify(splitMessageIntoLines(string(doc)), signature, value)
}

// BBSG2SignatureProofVerifier is a signature verifier that verifies a BBS+ Signature Proof
// taking Bls12381G2Key2020 public key bytes as input.
// The message is the list of revealed N-Quad statements, one per line.
type BBSG2SignatureProofVerifier struct {
	baseSignatureVerifier

	nonce []byte
}

// NewBBSG2SignatureProofVerifier creates a new BBSG2SignatureProofVerifier.
func NewBBSG2SignatureProofVerifier(nonce []byte) *BBSG2SignatureProofVerifier {
	return &BBSG2SignatureProofVerifier{
		baseSignatureVerifier: baseSignatureVerifier{
			keyType:   jwk.KtyEC,
			curve:     jwk.CrvBLS12381G2,
			algorithm: api.AlgBLS12381G2,
		},
		nonce: nonce,
	}
}

// Verify verifies the signature.
func (v *BBSG2SignatureProofVerifier) Verify(pubKeyValue *api.PublicKey, doc, signature []byte) error {
	value, err := keyValue(pubKeyValue)
	if err != nil {
		return fmt.Errorf("bbs: %w", err)
	}

	return bbs12381g2pub.New().VerifyProof(splitMessageIntoLines(string(doc)), signature, v.nonce, value)
}

func splitMessageIntoLines(msg string) [][]byte {
	rows := strings.Split(msg, "\n")

	msgs := make([][]byte, 0, len(rows))

	for _, row := range rows {
		if strings.TrimSpace(row) == "" {
			continue
		}

		msgs = append(msgs, []byte(row))
	}

	return msgs
}
