// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/relaymesh/ticketledger/channel"
	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/storage"
	"github.com/relaymesh/ticketledger/ticket"
)

// PrepareAggregatableTickets - select and mark the tickets of an
// incoming channel in [start, end) that may be aggregated
//
// selection begins after the last ticket being redeemed and stops
// before the running total would exceed the channel balance; the
// selected tickets are returned marked BeingAggregated{start, end}
func (l *Ledger) PrepareAggregatableTickets(id primitive.Hash, epoch uint32, start uint64, end uint64) ([]*ticket.Acknowledged, error) {
	if start >= end {
		return nil, fault.ErrInvalidIndexRange
	}

	var selected []*ticket.Acknowledged
	err := l.update(false, func(tx *storage.Transaction) (func(), error) {
		ch, err := storage.GetRecord[channel.Entry](tx, keys.Channel(id))
		if nil != err {
			return nil, err
		}
		if err := l.checkAggregatable(ch, epoch, start); nil != err {
			return nil, err
		}

		items, err := storage.ScanRange[ticket.Acknowledged](l.db, keys.EpochTickets(id, epoch, start, end), nil)
		if nil != err {
			return nil, err
		}

		first := 0
		for i := len(items) - 1; i >= 0; i -= 1 {
			if items[i].Value.Status.IsBeingRedeemed() {
				first = i + 1
				break
			}
		}

		total := primitive.ZeroBalance()
		for _, item := range items[first:] {
			total = total.Add(item.Value.Ticket.Amount)
			if total.Cmp(ch.Balance) > 0 {
				break
			}
			item.Value.Status = ticket.BeingAggregated(start, end)
			if err := storage.PutRecord(tx, item.Key, item.Value); nil != err {
				return nil, err
			}
			selected = append(selected, item.Value)
		}

		l.log.Debugf("prepared %d tickets to aggregate in %s (%d) range %d-%d", len(selected), id, epoch, start, end)
		return nil, nil
	})
	if nil != err {
		return nil, err
	}
	if nil == selected {
		selected = []*ticket.Acknowledged{}
	}
	return selected, nil
}

func (l *Ledger) checkAggregatable(ch *channel.Entry, epoch uint32, start uint64) error {
	if nil == ch {
		return fault.ErrUnknownChannel
	}
	direction, ok := ch.Direction(l.me)
	if !ok {
		return fault.ErrNotOwnChannel
	}
	if channel.Incoming != direction {
		return fault.ErrNotIncomingChannel
	}
	if channel.Closed == ch.Status {
		return fault.ErrChannelClosed
	}
	if ch.ChannelEpoch != epoch {
		return fault.ErrChannelEpochMismatch
	}
	if start > ch.TicketIndex {
		return fault.ErrStartIndexAhead
	}
	return nil
}

// ReplaceAckedTicketsByAggregatedTicket - swap the tickets covered by an
// aggregated ticket for the aggregated ticket itself
//
// nothing changes while any covered ticket is being redeemed
func (l *Ledger) ReplaceAckedTicketsByAggregatedTicket(aggregated *ticket.Acknowledged) error {
	t := &aggregated.Ticket
	id := t.ChannelID
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		items, err := storage.ScanRange[ticket.Acknowledged](l.db, keys.EpochTickets(id, t.ChannelEpoch, t.Index, t.LastIndex()), nil)
		if nil != err {
			return nil, err
		}
		for _, item := range items {
			if item.Value.Status.IsBeingRedeemed() {
				l.log.Warnf("aggregated ticket %d+%d in %s: covered ticket %d is being redeemed", t.Index, t.IndexOffset, id, item.Value.Ticket.Index)
				return nil, nil
			}
		}

		current, err := storage.GetRecord[channel.Entry](tx, keys.Channel(id))
		if nil != err {
			return nil, err
		}

		removed := primitive.ZeroBalance()
		for _, item := range items {
			tx.Delete(item.Key)
			if nil != current && counts(&item.Value.Ticket, current.ChannelEpoch, current.TicketIndex) {
				removed = removed.Add(item.Value.Ticket.Amount)
			}
		}
		if err := storage.PutRecord(tx, keys.AcknowledgedTicketOf(t), aggregated); nil != err {
			return nil, err
		}

		added := primitive.ZeroBalance()
		if nil != current && counts(t, current.ChannelEpoch, current.TicketIndex) {
			added = t.Amount
		}

		return func() {
			l.cache.sub(id, removed)
			if !added.IsZero() {
				l.cache.add(id, added)
			}
			l.metrics.count(EventAggregated, len(items))
		}, nil
	})
}
