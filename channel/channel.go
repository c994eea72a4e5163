// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/relaymesh/ticketledger/primitive"
)

// Entry - on-chain state of one unidirectional payment channel
type Entry struct {
	Source       primitive.Address `cbor:"1,keyasint" json:"source"`
	Destination  primitive.Address `cbor:"2,keyasint" json:"destination"`
	Balance      primitive.Balance `cbor:"3,keyasint" json:"balance"`
	TicketIndex  uint64            `cbor:"4,keyasint" json:"ticketIndex"`
	Status       Status            `cbor:"5,keyasint" json:"status"`
	ChannelEpoch uint32            `cbor:"6,keyasint" json:"channelEpoch"`
	ClosureTime  uint64            `cbor:"7,keyasint" json:"closureTime"`
}

// New - create a channel entry
func New(source primitive.Address, destination primitive.Address, balance primitive.Balance, ticketIndex uint64, status Status, epoch uint32, closureTime uint64) *Entry {
	return &Entry{
		Source:       source,
		Destination:  destination,
		Balance:      balance,
		TicketIndex:  ticketIndex,
		Status:       status,
		ChannelEpoch: epoch,
		ClosureTime:  closureTime,
	}
}

// ID - channel identifier: Keccak-256 of source followed by destination
func ID(source primitive.Address, destination primitive.Address) primitive.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(source[:])
	h.Write(destination[:])

	id := primitive.Hash{}
	h.Sum(id[:0])
	return id
}

// ID - identifier of this channel
func (e *Entry) ID() primitive.Hash {
	return ID(e.Source, e.Destination)
}

// Direction - the channel as seen by the node holding address me
//
// ok is false when me is neither end of the channel
func (e *Entry) Direction(me primitive.Address) (direction Direction, ok bool) {
	switch me {
	case e.Destination:
		return Incoming, true
	case e.Source:
		return Outgoing, true
	default:
		return 0, false
	}
}

// Counterparty - the other end of the channel from me
func (e *Entry) Counterparty(me primitive.Address) primitive.Address {
	if e.Source == me {
		return e.Destination
	}
	return e.Source
}

func (e *Entry) String() string {
	return fmt.Sprintf("channel %s %s -> %s (%s) epoch: %d index: %d balance: %s",
		e.ID(), e.Source, e.Destination, e.Status, e.ChannelEpoch, e.TicketIndex, e.Balance)
}
