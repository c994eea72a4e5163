// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"

	"github.com/relaymesh/ticketledger/channel"
	"github.com/relaymesh/ticketledger/primitive"
)

var (
	alice = common.HexToAddress("0x3829b806aea42200c623c4d6b9311670577480ed")
	bob   = common.HexToAddress("0x19b4c6a43d2e3b7e3b1a0a9fe0c5f5a4e88fd8e1")
	carol = common.HexToAddress("0x5c3a6e1f5bb1a3bf44f7c8f5b0c0a3e4a1b2c3d4")
)

func TestIDIsKeccakOfSourceAndDestination(t *testing.T) {
	expected := crypto.Keccak256Hash(alice.Bytes(), bob.Bytes())
	assert.Equal(t, expected, channel.ID(alice, bob), "wrong channel id")
	assert.NotEqual(t, channel.ID(alice, bob), channel.ID(bob, alice), "channel id is not directional")

	e := channel.New(alice, bob, primitive.NewBalance(1), 0, channel.Open, 1, 0)
	assert.Equal(t, expected, e.ID(), "wrong entry id")
}

func TestDirection(t *testing.T) {
	e := channel.New(alice, bob, primitive.NewBalance(1), 0, channel.Open, 1, 0)

	d, ok := e.Direction(bob)
	assert.True(t, ok, "destination unrelated")
	assert.Equal(t, channel.Incoming, d, "wrong direction for destination")

	d, ok = e.Direction(alice)
	assert.True(t, ok, "source unrelated")
	assert.Equal(t, channel.Outgoing, d, "wrong direction for source")

	_, ok = e.Direction(carol)
	assert.False(t, ok, "third party related")

	assert.Equal(t, alice, e.Counterparty(bob), "wrong counterparty for destination")
	assert.Equal(t, bob, e.Counterparty(alice), "wrong counterparty for source")
}

func TestStatusText(t *testing.T) {
	e := channel.New(alice, bob, primitive.NewBalance(100), 3, channel.PendingToClose, 2, 1000)
	buffer, err := json.Marshal(e)
	assert.Nil(t, err, "marshal error")
	assert.Contains(t, string(buffer), `"status":"PendingToClose"`, "status not named")
	assert.Contains(t, string(buffer), `"balance":"100"`, "balance not decimal")

	var s channel.Status
	assert.Nil(t, s.UnmarshalText([]byte("open")), "unmarshal error")
	assert.Equal(t, channel.Open, s, "wrong status")
	assert.NotNil(t, s.UnmarshalText([]byte("gone")), "accepted unknown status")
}
