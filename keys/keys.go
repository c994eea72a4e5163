// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keys - byte keys of every stored ledger entity
//
// range scanned entities use a string prefix followed by a fixed
// width suffix, so a prefix range never reaches a different entity
// and byte order of the suffix is the logical order of its fields
package keys

import (
	"encoding/binary"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/ticket"
)

// MaximumKeyLength - longest key the ledger will construct
const MaximumKeyLength = 128

// prefixes of the range scanned entities
const (
	AcknowledgedTicketPrefix     = "tickets:acknowledged-"
	ChannelPrefix                = "channels-"
	CurrentTicketIndexPrefix     = "ticketIndex-"
	PacketTagPrefix              = "packets:tag-"
	PendingAcknowledgementPrefix = "tickets:pending-acknowledgement-"
	PendingBalancePrefix         = "statistics:pending:value-"
)

// scalar keys
const (
	DomainSeparatorChannels = "domainSeparator:channels"
	DomainSeparatorLedger   = "domainSeparator:ledger"
	DomainSeparatorRegistry = "domainSeparator:safeRegistry"
	HoprBalance             = "hoprBalance"
	LatestBlockNumber       = "latestBlockNumber"
	LatestSnapshot          = "latestConfirmedSnapshot"
	LosingTicketsCount      = "statistics:losing:count"
	NeglectedTicketsCount   = "statistics:neglected:count"
	NeglectedTicketsValue   = "statistics:neglected:value"
	RedeemedTicketsCount    = "statistics:redeemed:count"
	RedeemedTicketsValue    = "statistics:redeemed:value"
	RejectedTicketsCount    = "statistics:rejected:count"
	RejectedTicketsValue    = "statistics:rejected:value"
	TicketPrice             = "ticketPrice"
	Version                 = "version"
)

// suffix lengths
const (
	AcknowledgedTicketLength     = primitive.HashLength + 4 + 8
	ChannelLength                = primitive.HashLength
	CurrentTicketIndexLength     = primitive.HashLength
	PendingAcknowledgementLength = primitive.HalfKeyChallengeLength
	PendingBalanceLength         = primitive.AddressLength
)

// WithPrefix - prefix followed by a suffix that must have exactly length bytes
func WithPrefix(prefix string, suffix []byte, length int) ([]byte, error) {
	if length != len(suffix) {
		return nil, fault.ErrKeyLength
	}
	return Join(prefix, suffix)
}

// Join - prefix followed by a variable length suffix
func Join(prefix string, suffix []byte) ([]byte, error) {
	if len(prefix)+len(suffix) > MaximumKeyLength {
		return nil, fault.ErrKeyTooLong
	}
	key := make([]byte, 0, len(prefix)+len(suffix))
	key = append(key, prefix...)
	return append(key, suffix...), nil
}

// Scalar - key of a single well known value
func Scalar(name string) []byte {
	return []byte(name)
}

// Channel - key of a channel entry
func Channel(id primitive.Hash) []byte {
	return fixed(ChannelPrefix, id[:])
}

// CurrentTicketIndex - key of the next outgoing ticket index of a channel
func CurrentTicketIndex(id primitive.Hash) []byte {
	return fixed(CurrentTicketIndexPrefix, id[:])
}

// PendingAcknowledgement - key of a pending acknowledgement
func PendingAcknowledgement(challenge primitive.HalfKeyChallenge) []byte {
	return fixed(PendingAcknowledgementPrefix, challenge[:])
}

// PendingBalance - key of the balance pending towards a counterparty
func PendingBalance(counterparty primitive.Address) []byte {
	return fixed(PendingBalancePrefix, counterparty[:])
}

// PacketTag - key marking a processed packet tag
func PacketTag(tag []byte) ([]byte, error) {
	return Join(PacketTagPrefix, tag)
}

// AcknowledgedTicket - prefix ‖ channel id ‖ epoch (u32 BE) ‖ index (u64 BE)
func AcknowledgedTicket(id primitive.Hash, epoch uint32, index uint64) []byte {
	suffix := make([]byte, AcknowledgedTicketLength)
	copy(suffix, id[:])
	binary.BigEndian.PutUint32(suffix[primitive.HashLength:], epoch)
	binary.BigEndian.PutUint64(suffix[primitive.HashLength+4:], index)
	return fixed(AcknowledgedTicketPrefix, suffix)
}

// AcknowledgedTicketOf - key of a stored acknowledged ticket
func AcknowledgedTicketOf(t *ticket.Ticket) []byte {
	return AcknowledgedTicket(t.ChannelID, t.ChannelEpoch, t.Index)
}

// ParseAcknowledgedTicket - split a ticket key back into its fields
func ParseAcknowledgedTicket(key []byte) (id primitive.Hash, epoch uint32, index uint64, err error) {
	if len(AcknowledgedTicketPrefix)+AcknowledgedTicketLength != len(key) ||
		AcknowledgedTicketPrefix != string(key[:len(AcknowledgedTicketPrefix)]) {
		return id, 0, 0, fault.ErrKeyLength
	}
	suffix := key[len(AcknowledgedTicketPrefix):]
	copy(id[:], suffix[:primitive.HashLength])
	epoch = binary.BigEndian.Uint32(suffix[primitive.HashLength:])
	index = binary.BigEndian.Uint64(suffix[primitive.HashLength+4:])
	return id, epoch, index, nil
}

// fixed width suffixes built from typed values can never be
// oversized, only the prefix length matters
func fixed(prefix string, suffix []byte) []byte {
	key := make([]byte, 0, len(prefix)+len(suffix))
	key = append(key, prefix...)
	return append(key, suffix...)
}
