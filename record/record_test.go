// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/relaymesh/ticketledger/channel"
	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/record"
	"github.com/relaymesh/ticketledger/ticket"
)

func TestPackIsDeterministic(t *testing.T) {
	e := channel.New(common.HexToAddress("0x01"), common.HexToAddress("0x02"), primitive.NewBalance(77), 5, channel.Open, 3, 0)

	first, err := record.Pack(e)
	assert.Nil(t, err, "pack error")
	second, err := record.Pack(*e)
	assert.Nil(t, err, "pack error")

	assert.Equal(t, first, second, "encoding is not deterministic")
	assert.Equal(t, record.Version, first[0], "missing version byte")

	var decoded channel.Entry
	err = record.Unpack(first, &decoded)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, *e, decoded, "wrong channel")
}

func TestUnpackAcknowledgedTicketKeepsStatus(t *testing.T) {
	a := ticket.NewAcknowledged(ticket.Ticket{
		ChannelID:    common.HexToHash("0xaa"),
		Amount:       primitive.NewBalance(50_000_000_000_000_000),
		Index:        9,
		IndexOffset:  1,
		WinProb:      1.0,
		ChannelEpoch: 4,
	}, primitive.Response{7}, common.HexToAddress("0x03"))
	a.Status = ticket.BeingAggregated(0, ^uint64(0))

	buffer, err := record.Pack(a)
	assert.Nil(t, err, "pack error")

	var decoded ticket.Acknowledged
	assert.Nil(t, record.Unpack(buffer, &decoded), "unpack error")
	assert.Equal(t, *a, decoded, "wrong ticket")
}

func TestUnpackRejectsBadRecords(t *testing.T) {
	var e channel.Entry
	assert.Equal(t, fault.ErrRecordTruncated, record.Unpack(nil, &e), "empty record accepted")
	assert.Equal(t, fault.ErrRecordTruncated, record.Unpack([]byte{record.Version}, &e), "header only accepted")
	assert.Equal(t, fault.ErrRecordVersion, record.Unpack([]byte{99, 0xa0}, &e), "unknown version accepted")
}
