// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"math"

	"github.com/relaymesh/ticketledger/primitive"
)

// Range - half open key range [Start, Limit)
type Range struct {
	Start []byte
	Limit []byte
}

// PrefixRange - every key beginning with prefix
func PrefixRange(prefix string) Range {
	return Range{
		Start: []byte(prefix),
		Limit: limitOf([]byte(prefix)),
	}
}

// ChannelTickets - acknowledged tickets of a channel in every epoch
func ChannelTickets(id primitive.Hash) Range {
	start := fixed(AcknowledgedTicketPrefix, id[:])
	return Range{
		Start: start,
		Limit: limitOf(start),
	}
}

// EpochTickets - acknowledged tickets of a channel epoch with index in [start, end)
func EpochTickets(id primitive.Hash, epoch uint32, start uint64, end uint64) Range {
	return Range{
		Start: AcknowledgedTicket(id, epoch, start),
		Limit: AcknowledgedTicket(id, epoch, end),
	}
}

// TicketsUpToEpoch - acknowledged tickets of a channel with epoch ≤ epoch
func TicketsUpToEpoch(id primitive.Hash, epoch uint32) Range {
	if math.MaxUint32 == epoch {
		return ChannelTickets(id)
	}
	return TicketsBelowEpoch(id, epoch+1)
}

// TicketsBelowEpoch - acknowledged tickets of a channel with epoch < epoch
func TicketsBelowEpoch(id primitive.Hash, epoch uint32) Range {
	return Range{
		Start: AcknowledgedTicket(id, 0, 0),
		Limit: AcknowledgedTicket(id, epoch, 0),
	}
}

// smallest key greater than every key beginning with b
func limitOf(b []byte) []byte {
	limit := make([]byte, len(b))
	copy(limit, b)
	for i := len(limit) - 1; i >= 0; i -= 1 {
		limit[i] += 1
		if 0 != limit[i] {
			return limit[:i+1]
		}
	}
	return nil // whole key space
}
