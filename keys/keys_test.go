// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys_test

import (
	"bytes"
	"math"
	"sort"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
)

var channelID = common.HexToHash("0xc0ffee")

func TestAcknowledgedTicketKeyHasFixedLength(t *testing.T) {
	expected := len(keys.AcknowledgedTicketPrefix) + 44
	for _, epoch := range []uint32{0, 1, 255, 256, math.MaxUint32} {
		for _, index := range []uint64{0, 1, 1 << 40, math.MaxUint64} {
			k := keys.AcknowledgedTicket(channelID, epoch, index)
			assert.Equal(t, expected, len(k), "epoch %d index %d: wrong key length", epoch, index)
		}
	}
}

func TestAcknowledgedTicketKeyOrderIsEpochThenIndex(t *testing.T) {
	type position struct {
		epoch uint32
		index uint64
	}
	positions := []position{
		{2, 0}, {1, 256}, {1, 255}, {0, math.MaxUint64}, {1, 1}, {256, 0}, {1, 1 << 32},
	}

	encoded := make([][]byte, len(positions))
	for i, p := range positions {
		encoded[i] = keys.AcknowledgedTicket(channelID, p.epoch, p.index)
	}
	sort.Slice(encoded, func(i, j int) bool { return bytes.Compare(encoded[i], encoded[j]) < 0 })
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].epoch != positions[j].epoch {
			return positions[i].epoch < positions[j].epoch
		}
		return positions[i].index < positions[j].index
	})

	for i, k := range encoded {
		id, epoch, index, err := keys.ParseAcknowledgedTicket(k)
		assert.Nil(t, err, "%d: parse error", i)
		assert.Equal(t, channelID, id, "%d: wrong channel", i)
		assert.Equal(t, positions[i].epoch, epoch, "%d: wrong epoch", i)
		assert.Equal(t, positions[i].index, index, "%d: wrong index", i)
	}
}

func TestWithPrefixRejectsWrongSuffixLength(t *testing.T) {
	_, err := keys.WithPrefix(keys.ChannelPrefix, []byte{1, 2, 3}, keys.ChannelLength)
	assert.Equal(t, fault.ErrKeyLength, err, "wrong error")
	assert.True(t, fault.IsErrContract(err), "not a contract error")

	k, err := keys.WithPrefix(keys.ChannelPrefix, channelID[:], keys.ChannelLength)
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, keys.Channel(channelID), k, "wrong channel key")
}

func TestJoinRejectsOversizedInput(t *testing.T) {
	_, err := keys.PacketTag(make([]byte, keys.MaximumKeyLength))
	assert.Equal(t, fault.ErrKeyTooLong, err, "wrong error")

	k, err := keys.PacketTag([]byte("tag"))
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, []byte(keys.PacketTagPrefix+"tag"), k, "wrong tag key")
}

func TestParseRejectsForeignKey(t *testing.T) {
	_, _, _, err := keys.ParseAcknowledgedTicket(keys.Channel(channelID))
	assert.Equal(t, fault.ErrKeyLength, err, "wrong error")
}

func TestRanges(t *testing.T) {
	inRange := func(r keys.Range, k []byte) bool {
		return bytes.Compare(k, r.Start) >= 0 && (nil == r.Limit || bytes.Compare(k, r.Limit) < 0)
	}

	epoch := keys.EpochTickets(channelID, 3, 20, 24)
	assert.True(t, inRange(epoch, keys.AcknowledgedTicket(channelID, 3, 20)), "start excluded")
	assert.True(t, inRange(epoch, keys.AcknowledgedTicket(channelID, 3, 23)), "last excluded")
	assert.False(t, inRange(epoch, keys.AcknowledgedTicket(channelID, 3, 24)), "end included")
	assert.False(t, inRange(epoch, keys.AcknowledgedTicket(channelID, 4, 21)), "other epoch included")

	below := keys.TicketsBelowEpoch(channelID, 3)
	assert.True(t, inRange(below, keys.AcknowledgedTicket(channelID, 2, math.MaxUint64)), "older epoch excluded")
	assert.False(t, inRange(below, keys.AcknowledgedTicket(channelID, 3, 0)), "current epoch included")

	upTo := keys.TicketsUpToEpoch(channelID, 3)
	assert.True(t, inRange(upTo, keys.AcknowledgedTicket(channelID, 3, math.MaxUint64)), "current epoch excluded")
	assert.False(t, inRange(upTo, keys.AcknowledgedTicket(channelID, 4, 0)), "newer epoch included")

	all := keys.TicketsUpToEpoch(channelID, math.MaxUint32)
	assert.True(t, inRange(all, keys.AcknowledgedTicket(channelID, math.MaxUint32, math.MaxUint64)), "top excluded")
	other := common.HexToHash("0xc0ffef")
	assert.False(t, inRange(all, keys.AcknowledgedTicket(other, 0, 0)), "next channel included")

	prefix := keys.PrefixRange(keys.ChannelPrefix)
	assert.True(t, inRange(prefix, keys.Channel(channelID)), "channel excluded")
	assert.False(t, inRange(prefix, keys.CurrentTicketIndex(channelID)), "foreign prefix included")
}
