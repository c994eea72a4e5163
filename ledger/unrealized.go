// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/relaymesh/ticketledger/channel"
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/storage"
	"github.com/relaymesh/ticketledger/ticket"
)

// outstanding ticket value per channel
//
// holds the amount to subtract from the channel balance, never the
// unrealized balance itself
type unrealizedCache struct {
	sync.RWMutex
	outstanding map[primitive.Hash]primitive.Balance
}

func newUnrealizedCache() *unrealizedCache {
	return &unrealizedCache{
		outstanding: make(map[primitive.Hash]primitive.Balance),
	}
}

func (c *unrealizedCache) get(id primitive.Hash) (primitive.Balance, bool) {
	c.RLock()
	defer c.RUnlock()
	b, ok := c.outstanding[id]
	return b, ok
}

func (c *unrealizedCache) set(id primitive.Hash, b primitive.Balance) {
	c.Lock()
	c.outstanding[id] = b
	c.Unlock()
}

func (c *unrealizedCache) add(id primitive.Hash, amount primitive.Balance) {
	c.Lock()
	c.outstanding[id] = c.outstanding[id].Add(amount)
	c.Unlock()
}

// absent channels stay absent
func (c *unrealizedCache) sub(id primitive.Hash, amount primitive.Balance) {
	c.Lock()
	if b, ok := c.outstanding[id]; ok {
		c.outstanding[id] = b.Sub(amount)
	}
	c.Unlock()
}

func (c *unrealizedCache) replace(outstanding map[primitive.Hash]primitive.Balance) {
	c.Lock()
	c.outstanding = outstanding
	c.Unlock()
}

func (c *unrealizedCache) len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.outstanding)
}

// outstandingAfterUpdate - cached outstanding value once prev is replaced by next
//
// within an epoch a balance decrease (redemption) settles the same
// amount of outstanding value and an increase (funding) settles
// nothing; a new epoch starts with nothing outstanding
func outstandingAfterUpdate(cached primitive.Balance, found bool, prev *channel.Entry, next *channel.Entry) primitive.Balance {
	if nil == prev || prev.ChannelEpoch != next.ChannelEpoch || !found {
		return primitive.ZeroBalance()
	}
	return cached.Sub(prev.Balance.Sub(next.Balance))
}

// counts - ticket value is outstanding against this channel state
func counts(t *ticket.Ticket, epoch uint32, ticketIndex uint64) bool {
	return t.ChannelEpoch == epoch && t.Index >= ticketIndex
}

// GetUnrealizedBalance - channel balance not yet claimed by acknowledged tickets
//
// zero for an unknown channel
func (l *Ledger) GetUnrealizedBalance(id primitive.Hash) (primitive.Balance, error) {
	ch, err := storage.GetRecord[channel.Entry](l.db, keys.Channel(id))
	if nil != err {
		return primitive.ZeroBalance(), err
	}
	if nil == ch {
		return primitive.ZeroBalance(), nil
	}

	outstanding, ok := l.cache.get(id)
	if !ok {
		return ch.Balance, nil
	}
	return ch.Balance.Sub(outstanding), nil
}

// InitCache - rebuild the outstanding value of every channel from stored tickets
//
// tickets from an older epoch or below the channel ticket index are
// ignored but left in storage
func (l *Ledger) InitCache() error {
	l.Lock()
	defer l.Unlock()

	type position struct {
		epoch       uint32
		ticketIndex uint64
	}
	channels := make(map[primitive.Hash]position)
	outstanding := make(map[primitive.Hash]primitive.Balance)

	tickets, err := storage.ScanTable[ticket.Acknowledged](l.db, keys.AcknowledgedTicketPrefix, keys.AcknowledgedTicketLength, nil)
	if nil != err {
		return err
	}

	for _, item := range tickets {
		t := &item.Value.Ticket
		id := t.ChannelID

		p, seen := channels[id]
		if !seen {
			ch, err := storage.GetRecord[channel.Entry](l.db, keys.Channel(id))
			if nil != err {
				return err
			}
			if nil == ch {
				l.log.Warnf("init cache: ticket %d in unknown channel: %s", t.Index, id)
			} else {
				p = position{epoch: ch.ChannelEpoch, ticketIndex: ch.TicketIndex}
			}
			channels[id] = p
		}

		if counts(t, p.epoch, p.ticketIndex) {
			outstanding[id] = outstanding[id].Add(t.Amount)
		}
	}

	l.cache.replace(outstanding)
	l.metrics.cachedChannels.Set(float64(len(outstanding)))
	l.log.Infof("unrealized balance cache rebuilt: %d tickets  %d channels", len(tickets), len(outstanding))
	return nil
}
