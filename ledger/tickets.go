// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sort"

	"github.com/relaymesh/ticketledger/channel"
	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/storage"
	"github.com/relaymesh/ticketledger/ticket"
)

// GetPendingAcknowledgement - pending acknowledgement of a half key challenge, nil if none
func (l *Ledger) GetPendingAcknowledgement(challenge primitive.HalfKeyChallenge) (*ticket.Pending, error) {
	return storage.GetRecord[ticket.Pending](l.db, keys.PendingAcknowledgement(challenge))
}

// StorePendingAcknowledgement - insert or replace a pending acknowledgement
//
// unacknowledged value is never outstanding, so the cache is unchanged
func (l *Ledger) StorePendingAcknowledgement(challenge primitive.HalfKeyChallenge, pending *ticket.Pending) error {
	l.Lock()
	defer l.Unlock()

	if err := storage.SetRecord(l.db, keys.PendingAcknowledgement(challenge), pending); nil != err {
		return err
	}
	return l.db.Flush()
}

// ReplaceUnackWithAck - swap a pending acknowledgement for the acknowledged ticket
//
// the only operation that adds outstanding value
func (l *Ledger) ReplaceUnackWithAck(challenge primitive.HalfKeyChallenge, acknowledged *ticket.Acknowledged) error {
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		tx.Delete(keys.PendingAcknowledgement(challenge))
		if err := storage.PutRecord(tx, keys.AcknowledgedTicketOf(&acknowledged.Ticket), acknowledged); nil != err {
			return nil, err
		}
		return func() {
			l.cache.add(acknowledged.Ticket.ChannelID, acknowledged.Ticket.Amount)
			l.metrics.count(EventAcknowledged, 1)
			l.metrics.cachedChannels.Set(float64(l.cache.len()))
		}, nil
	})
}

func values[T any](items []storage.Item[T]) []*T {
	result := make([]*T, 0, len(items))
	for _, item := range items {
		result = append(result, item.Value)
	}
	return result
}

// GetAcknowledgedTickets - acknowledged tickets in key order,
// only those of filter when it is not nil
func (l *Ledger) GetAcknowledgedTickets(filter *channel.Entry) ([]*ticket.Acknowledged, error) {
	var items []storage.Item[ticket.Acknowledged]
	var err error
	if nil == filter {
		items, err = storage.ScanTable[ticket.Acknowledged](l.db, keys.AcknowledgedTicketPrefix, keys.AcknowledgedTicketLength, nil)
	} else {
		items, err = storage.ScanRange[ticket.Acknowledged](l.db, keys.ChannelTickets(filter.ID()), nil)
	}
	if nil != err {
		return nil, err
	}
	return values(items), nil
}

// GetAcknowledgedTicketsCount - number of acknowledged tickets, of filter when not nil
func (l *Ledger) GetAcknowledgedTicketsCount(filter *channel.Entry) (int, error) {
	tickets, err := l.GetAcknowledgedTickets(filter)
	if nil != err {
		return 0, err
	}
	return len(tickets), nil
}

// GetAcknowledgedTicketsRange - tickets of a channel epoch with index in [start, end), by index
func (l *Ledger) GetAcknowledgedTicketsRange(id primitive.Hash, epoch uint32, start uint64, end uint64) ([]*ticket.Acknowledged, error) {
	if start >= end {
		return []*ticket.Acknowledged{}, nil
	}
	items, err := storage.ScanRange[ticket.Acknowledged](l.db, keys.EpochTickets(id, epoch, start, end), nil)
	if nil != err {
		return nil, err
	}
	return values(items), nil
}

// GetUnacknowledgedTickets - relayed tickets waiting for acknowledgement,
// only those of filter when it is not nil
func (l *Ledger) GetUnacknowledgedTickets(filter *channel.Entry) ([]*ticket.Unacknowledged, error) {
	var id primitive.Hash
	if nil != filter {
		id = filter.ID()
	}
	items, err := storage.ScanTable(l.db, keys.PendingAcknowledgementPrefix, keys.PendingAcknowledgementLength, func(p *ticket.Pending) bool {
		if p.IsSender() {
			return false
		}
		return nil == filter || id == p.Relayer.Ticket.ChannelID
	})
	if nil != err {
		return nil, err
	}
	result := make([]*ticket.Unacknowledged, 0, len(items))
	for _, item := range items {
		result = append(result, item.Value.Relayer)
	}
	return result, nil
}

// GetTickets - acknowledged tickets by index followed by unacknowledged
// ones, only those signed by signer when it is not nil
func (l *Ledger) GetTickets(signer *primitive.Address) ([]*ticket.Ticket, error) {
	acknowledged, err := storage.ScanTable(l.db, keys.AcknowledgedTicketPrefix, keys.AcknowledgedTicketLength, func(a *ticket.Acknowledged) bool {
		return nil == signer || *signer == a.Signer
	})
	if nil != err {
		return nil, err
	}
	sort.SliceStable(acknowledged, func(i, j int) bool {
		return acknowledged[i].Value.Ticket.Index < acknowledged[j].Value.Ticket.Index
	})

	unacknowledged, err := l.GetUnacknowledgedTickets(nil)
	if nil != err {
		return nil, err
	}

	result := make([]*ticket.Ticket, 0, len(acknowledged)+len(unacknowledged))
	for _, item := range acknowledged {
		result = append(result, &item.Value.Ticket)
	}
	for _, u := range unacknowledged {
		if nil == signer || *signer == u.Signer {
			result = append(result, &u.Ticket)
		}
	}
	return result, nil
}

// UpdateAcknowledgedTicket - replace a stored acknowledged ticket
func (l *Ledger) UpdateAcknowledgedTicket(acknowledged *ticket.Acknowledged) error {
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		key := keys.AcknowledgedTicketOf(&acknowledged.Ticket)
		found, err := tx.Has(key)
		if nil != err {
			return nil, err
		}
		if !found {
			return nil, fault.ErrTicketNotFound
		}
		return nil, storage.PutRecord(tx, key, acknowledged)
	})
}

// MarkRedeemed - remove a ticket whose redemption confirmed on chain
//
// outstanding value is settled by the following channel balance
// update, so the cache is unchanged
func (l *Ledger) MarkRedeemed(acknowledged *ticket.Acknowledged) error {
	return l.update(true, func(tx *storage.Transaction) (func(), error) {
		tx.Delete(keys.AcknowledgedTicketOf(&acknowledged.Ticket))
		err := addCountAndValue(tx, keys.RedeemedTicketsCount, keys.RedeemedTicketsValue, 1, acknowledged.Ticket.Amount)
		if nil != err {
			return nil, err
		}
		return func() {
			l.metrics.count(EventRedeemed, 1)
		}, nil
	})
}

// MarkLosingAckedTicket - remove a ticket that will never pay out
func (l *Ledger) MarkLosingAckedTicket(acknowledged *ticket.Acknowledged) error {
	t := &acknowledged.Ticket
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		ch, err := storage.GetRecord[channel.Entry](tx, keys.Channel(t.ChannelID))
		if nil != err {
			return nil, err
		}
		if nil == ch {
			l.log.Errorf("losing ticket %d: channel %s not found", t.Index, t.ChannelID)
			return nil, fault.ErrChannelMissingForTicket
		}
		counterparty := ch.Counterparty(l.me)

		tx.Delete(keys.AcknowledgedTicketOf(t))
		if err := addCount(tx, keys.LosingTicketsCount, 1); nil != err {
			return nil, err
		}

		pending, err := getPendingBalance(tx, counterparty)
		if nil != err {
			return nil, err
		}
		pending = pending.Sub(t.Amount)
		if err := storage.PutRecord(tx, keys.PendingBalance(counterparty), &pending); nil != err {
			return nil, err
		}

		return func() {
			l.cache.sub(t.ChannelID, t.Amount)
			l.metrics.count(EventLosing, 1)
		}, nil
	})
}

// MarkAcknowledgedTicketsNeglected - remove every ticket of the channel
// with an epoch up to and including the epoch of ch
//
// ch is normally the entry just before its epoch advanced
func (l *Ledger) MarkAcknowledgedTicketsNeglected(ch *channel.Entry) error {
	id := ch.ID()
	return l.update(true, func(tx *storage.Transaction) (func(), error) {
		items, err := storage.ScanRange[ticket.Acknowledged](l.db, keys.TicketsUpToEpoch(id, ch.ChannelEpoch), nil)
		if nil != err {
			return nil, err
		}
		if 0 == len(items) {
			return nil, nil
		}

		removed, err := l.neglect(tx, id, items, nil)
		if nil != err {
			return nil, err
		}

		l.log.Debugf("neglected %d tickets in %s up to epoch %d", len(items), id, ch.ChannelEpoch)
		return func() {
			l.cache.sub(id, removed)
			l.metrics.count(EventNeglected, len(items))
		}, nil
	})
}

// CleanupInvalidChannelTickets - neglect acknowledged and unacknowledged
// tickets of a channel from epochs before its current one
func (l *Ledger) CleanupInvalidChannelTickets(ch *channel.Entry) error {
	id := ch.ID()
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		acknowledged, err := storage.ScanRange[ticket.Acknowledged](l.db, keys.TicketsBelowEpoch(id, ch.ChannelEpoch), nil)
		if nil != err {
			return nil, err
		}

		unacknowledged, err := storage.ScanTable(l.db, keys.PendingAcknowledgementPrefix, keys.PendingAcknowledgementLength, func(p *ticket.Pending) bool {
			return !p.IsSender() && id == p.Relayer.Ticket.ChannelID && p.Relayer.Ticket.ChannelEpoch < ch.ChannelEpoch
		})
		if nil != err {
			return nil, err
		}

		n := len(acknowledged) + len(unacknowledged)
		if 0 == n {
			return nil, nil
		}

		removed, err := l.neglect(tx, id, acknowledged, unacknowledged)
		if nil != err {
			return nil, err
		}

		l.log.Debugf("cleaned up %d acknowledged and %d unacknowledged tickets in %s before epoch %d",
			len(acknowledged), len(unacknowledged), id, ch.ChannelEpoch)
		return func() {
			l.cache.sub(id, removed)
			l.metrics.count(EventNeglected, n)
		}, nil
	})
}

// neglect - stage removal of tickets and add them to the neglected
// statistics, returning the value that was outstanding
func (l *Ledger) neglect(tx *storage.Transaction, id primitive.Hash, acknowledged []storage.Item[ticket.Acknowledged], unacknowledged []storage.Item[ticket.Pending]) (primitive.Balance, error) {
	current, err := storage.GetRecord[channel.Entry](tx, keys.Channel(id))
	if nil != err {
		return primitive.ZeroBalance(), err
	}

	total := primitive.ZeroBalance()
	removed := primitive.ZeroBalance()
	for _, item := range acknowledged {
		t := &item.Value.Ticket
		tx.Delete(item.Key)
		total = total.Add(t.Amount)
		if nil != current && counts(t, current.ChannelEpoch, current.TicketIndex) {
			removed = removed.Add(t.Amount)
		}
	}
	for _, item := range unacknowledged {
		tx.Delete(item.Key)
		total = total.Add(item.Value.Relayer.Ticket.Amount)
	}

	n := uint64(len(acknowledged) + len(unacknowledged))
	err = addCountAndValue(tx, keys.NeglectedTicketsCount, keys.NeglectedTicketsValue, n, total)
	return removed, err
}
