/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"errors"
)

// poKPayload is the prefix of a derived proof: message count and a bitvector of revealed indexes.
type poKPayload struct {
	messagesCount int

	revealed []int
}

// nolint:gomnd
func newPoKPayload(messagesCount int, revealed []int) *poKPayload {
	return &poKPayload{
		messagesCount: messagesCount,
		revealed:      revealed,
	}
}

// nolint:gomnd
func parsePoKPayload(bytes []byte) (*poKPayload, error) {
	if len(bytes) < 2 {
		return nil, errors.New("invalid size of PoK payload")
	}

	messagesCount := int(binary.BigEndian.Uint16(bytes[0:2]))
	offset := lenInBytes(messagesCount)

	if len(bytes) < offset {
		return nil, errors.New("invalid size of PoK payload")
	}

	revealed := make([]int, 0)

	for i := 0; i < messagesCount; i++ {
		if bytes[2+(i/8)]&(1<<(i%8)) != 0 {
			revealed = append(revealed, i)
		}
	}

	return &poKPayload{
		messagesCount: messagesCount,
		revealed:      revealed,
	}, nil
}

// nolint:gomnd
func (p *poKPayload) toBytes() []byte {
	bytes := make([]byte, p.lenInBytes())

	binary.BigEndian.PutUint16(bytes, uint16(p.messagesCount))

	for _, r := range p.revealed {
		bytes[2+(r/8)] |= 1 << (r % 8)
	}

	return bytes
}

func (p *poKPayload) lenInBytes() int {
	return lenInBytes(p.messagesCount)
}

// nolint:gomnd
func lenInBytes(messagesCount int) int {
	return 2 + (messagesCount / 8) + 1
}

func bytesToUint32(bytes []byte) uint32 {
	return binary.BigEndian.Uint32(bytes)
}
