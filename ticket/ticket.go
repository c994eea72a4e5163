// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ticket

import (
	"fmt"

	"github.com/relaymesh/ticketledger/primitive"
)

// Ticket - a signed probabilistic claim against a channel
//
// tickets arrive already verified; nothing here checks signatures
type Ticket struct {
	ChannelID    primitive.Hash              `cbor:"1,keyasint" json:"channelId"`
	Amount       primitive.Balance           `cbor:"2,keyasint" json:"amount"`
	Index        uint64                      `cbor:"3,keyasint" json:"index"`
	IndexOffset  uint32                      `cbor:"4,keyasint" json:"indexOffset"`
	WinProb      float64                     `cbor:"5,keyasint" json:"winProb"`
	ChannelEpoch uint32                      `cbor:"6,keyasint" json:"channelEpoch"`
	Challenge    primitive.EthereumChallenge `cbor:"7,keyasint" json:"challenge"`
	Signature    primitive.Signature         `cbor:"8,keyasint" json:"signature"`
}

// LastIndex - one past the highest index covered by this ticket
//
// saturates so an aggregated ticket near the top of the index
// space still describes a valid half open range
func (t *Ticket) LastIndex() uint64 {
	end := t.Index + uint64(t.IndexOffset)
	if end < t.Index {
		return ^uint64(0)
	}
	return end
}

func (t *Ticket) String() string {
	return fmt.Sprintf("ticket #%d+%d epoch %d in %s amount %s", t.Index, t.IndexOffset, t.ChannelEpoch, t.ChannelID, t.Amount)
}

// Acknowledged - a ticket whose relay proof has been completed
type Acknowledged struct {
	Ticket   Ticket             `cbor:"1,keyasint" json:"ticket"`
	Response primitive.Response `cbor:"2,keyasint" json:"response"`
	Signer   primitive.Address  `cbor:"3,keyasint" json:"signer"`
	Status   Status             `cbor:"4,keyasint" json:"status"`
}

// NewAcknowledged - an untouched acknowledged ticket
func NewAcknowledged(t Ticket, response primitive.Response, signer primitive.Address) *Acknowledged {
	return &Acknowledged{
		Ticket:   t,
		Response: response,
		Signer:   signer,
		Status:   Untouched(),
	}
}

// Less - key order: channel, then epoch, then index
func (a *Acknowledged) Less(other *Acknowledged) bool {
	if a.Ticket.ChannelID != other.Ticket.ChannelID {
		return a.Ticket.ChannelID.Cmp(other.Ticket.ChannelID) < 0
	}
	if a.Ticket.ChannelEpoch != other.Ticket.ChannelEpoch {
		return a.Ticket.ChannelEpoch < other.Ticket.ChannelEpoch
	}
	return a.Ticket.Index < other.Ticket.Index
}

// Unacknowledged - a relayed ticket still waiting for the next hop's half key
type Unacknowledged struct {
	Ticket Ticket            `cbor:"1,keyasint" json:"ticket"`
	OwnKey primitive.HalfKey `cbor:"2,keyasint" json:"ownKey"`
	Signer primitive.Address `cbor:"3,keyasint" json:"signer"`
}

// Acknowledge - combine with the verified relay proof response
func (u *Unacknowledged) Acknowledge(response primitive.Response) *Acknowledged {
	return NewAcknowledged(u.Ticket, response, u.Signer)
}

// Pending - a pending acknowledgement keyed by half key challenge
//
// a nil Relayer means the node is waiting as the packet sender
type Pending struct {
	Relayer *Unacknowledged `cbor:"1,keyasint,omitempty" json:"relayer,omitempty"`
}

// WaitingAsSender - acknowledgement for a packet this node sent
func WaitingAsSender() *Pending {
	return &Pending{}
}

// WaitingAsRelayer - acknowledgement for a packet this node relayed
func WaitingAsRelayer(u *Unacknowledged) *Pending {
	return &Pending{Relayer: u}
}

// IsSender - no ticket is attached
func (p *Pending) IsSender() bool {
	return nil == p.Relayer
}
