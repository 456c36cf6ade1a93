/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_pokPayload(t *testing.T) {
	payload := newPoKPayload(4, []int{0, 2})
	require.Equal(t, 3, payload.lenInBytes())

	bytes := payload.toBytes()
	require.Len(t, bytes, 3)

	payloadParsed, err := parsePoKPayload(bytes)
	require.NoError(t, err)
	require.Equal(t, payload, payloadParsed)

	payloadParsed, err = parsePoKPayload([]byte{})
	require.Error(t, err)
	require.Nil(t, payloadParsed)

	payloadParsed, err = parsePoKPayload([]byte{0, 20})
	require.Error(t, err)
	require.Nil(t, payloadParsed)
}

func Test_frFromOKM(t *testing.T) {
	a := frFromOKM([]byte("message"))
	b := frFromOKM([]byte("message"))
	c := frFromOKM([]byte("other"))

	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
	require.Len(t, frToBytes(a), frCompressedSize)
}

func Test_negFr(t *testing.T) {
	x := frFromOKM([]byte("x"))

	sum := x.Plus(negFr(x))
	sum.Mod(curve.GroupOrder)

	require.True(t, sum.Equals(curve.NewZrFromInt(0)))
}
