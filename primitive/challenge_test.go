// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/primitive"
)

func TestFixedWidthSizes(t *testing.T) {
	sized := []struct {
		name   string
		value  interface{ Size() int }
		length int
	}{
		{"ethereum challenge", primitive.EthereumChallenge{}, 20},
		{"half key challenge", primitive.HalfKeyChallenge{}, 33},
		{"half key", primitive.HalfKey{}, 32},
		{"response", primitive.Response{}, 32},
		{"signature", primitive.Signature{}, 64},
		{"balance", primitive.ZeroBalance(), 32},
	}
	for _, item := range sized {
		assert.Equal(t, item.length, item.value.Size(), "wrong size for %s", item.name)
	}
}

func TestHalfKeyChallengeHex(t *testing.T) {
	c := primitive.HalfKeyChallenge{}
	for i := range c {
		c[i] = byte(i)
	}
	text, err := c.MarshalText()
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, 2*primitive.HalfKeyChallengeLength, len(text), "wrong text length")

	decoded, err := primitive.HalfKeyChallengeFromHex("0x" + string(text))
	assert.Nil(t, err, "decode error")
	assert.Equal(t, c, decoded, "wrong challenge")

	_, err = primitive.HalfKeyChallengeFromHex("0102")
	assert.Equal(t, fault.ErrInvalidHexLength, err, "wrong error")
}

func TestAddressFromHex(t *testing.T) {
	a, err := primitive.AddressFromHex("0x3829b806aea42200c623c4d6b9311670577480ed")
	assert.Nil(t, err, "parse error")
	assert.Equal(t, byte(0x38), a[0], "wrong first byte")

	_, err = primitive.AddressFromHex("not-an-address")
	assert.Equal(t, fault.ErrInvalidAddress, err, "wrong error")
}

func TestSnapshotOrdering(t *testing.T) {
	a := primitive.NewSnapshot(10, 2, 5)
	b := primitive.NewSnapshot(10, 3, 0)
	assert.True(t, a.Before(b), "transaction index ignored")
	assert.False(t, b.Before(a), "ordering inverted")
	assert.False(t, a.Before(a), "snapshot before itself")
}
