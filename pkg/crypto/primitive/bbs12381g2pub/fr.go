/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"crypto/rand"
	"encoding/binary"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/blake2b"
)

//nolint:gochecknoglobals
var randReader = rand.Reader

const (
	eightBytes = 8
	okmMiddle  = 24
)

// parseFr reads a big-endian scalar and reduces it modulo the group order.
func parseFr(data []byte) *ml.Zr {
	fr := curve.NewZrFromBytes(data)
	fr.Mod(curve.GroupOrder)

	return fr
}

// frToBytes returns the scalar as exactly frCompressedSize big-endian bytes.
func frToBytes(fr *ml.Zr) []byte {
	b := fr.Bytes()
	if len(b) == frCompressedSize {
		return b
	}

	out := make([]byte, frCompressedSize)

	if len(b) > frCompressedSize {
		copy(out, b[len(b)-frCompressedSize:])
	} else {
		copy(out[frCompressedSize-len(b):], b)
	}

	return out
}

// frFromOKM maps an arbitrary message to a scalar through a 48-byte blake2b digest.
func frFromOKM(message []byte) *ml.Zr {
	h, _ := blake2b.New384(nil) //nolint:errcheck

	// blake2b hash writer never returns an error.
	_, _ = h.Write(message) //nolint:errcheck

	okm := h.Sum(nil)
	emptyEightBytes := make([]byte, eightBytes)

	elm := curve.NewZrFromBytes(append(emptyEightBytes, okm[:okmMiddle]...))
	elm = elm.Mul(f2192())

	fr := curve.NewZrFromBytes(append(emptyEightBytes, okm[okmMiddle:]...))
	elm = elm.Plus(fr)
	elm.Mod(curve.GroupOrder)

	return elm
}

// f2192 returns 2^192.
func f2192() *ml.Zr {
	b := make([]byte, frCompressedSize)
	b[eightBytes-1] = 1

	return curve.NewZrFromBytes(b)
}

func minusOne() *ml.Zr {
	return negFr(curve.NewZrFromInt(1))
}

// negFr returns -fr mod r as a new scalar.
func negFr(fr *ml.Zr) *ml.Zr {
	res := curve.NewZrFromInt(0).Minus(fr)
	res.Mod(curve.GroupOrder)

	return res
}

// mulAdd returns a + b*c mod r.
func mulAdd(a, b, c *ml.Zr) *ml.Zr {
	res := a.Plus(b.Mul(c))
	res.Mod(curve.GroupOrder)

	return res
}

func uint32ToBytes(value uint32) []byte {
	bytes := make([]byte, 4) //nolint:gomnd

	binary.BigEndian.PutUint32(bytes, value)

	return bytes
}
