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
)

// GetChannel - channel by id, nil if unknown
func (l *Ledger) GetChannel(id primitive.Hash) (*channel.Entry, error) {
	return storage.GetRecord[channel.Entry](l.db, keys.Channel(id))
}

// GetChannelX - channel between source and destination, nil if unknown
func (l *Ledger) GetChannelX(source primitive.Address, destination primitive.Address) (*channel.Entry, error) {
	return l.GetChannel(channel.ID(source, destination))
}

// GetChannelTo - outgoing channel of this node to destination
func (l *Ledger) GetChannelTo(destination primitive.Address) (*channel.Entry, error) {
	return l.GetChannelX(l.me, destination)
}

// GetChannelFrom - incoming channel to this node from source
func (l *Ledger) GetChannelFrom(source primitive.Address) (*channel.Entry, error) {
	return l.GetChannelX(source, l.me)
}

// GetChannelEpoch - current epoch of a channel
func (l *Ledger) GetChannelEpoch(id primitive.Hash) (uint32, error) {
	ch, err := l.GetChannel(id)
	if nil != err {
		return 0, err
	}
	if nil == ch {
		return 0, fault.ErrChannelNotFound
	}
	return ch.ChannelEpoch, nil
}

// channels accepted by keep, in channel id order
func (l *Ledger) filterChannels(keep func(*channel.Entry) bool) ([]*channel.Entry, error) {
	items, err := storage.ScanTable(l.db, keys.ChannelPrefix, keys.ChannelLength, keep)
	if nil != err {
		return nil, err
	}
	result := make([]*channel.Entry, 0, len(items))
	for _, item := range items {
		result = append(result, item.Value)
	}
	return result, nil
}

// GetChannels - every known channel
func (l *Ledger) GetChannels() ([]*channel.Entry, error) {
	return l.filterChannels(nil)
}

// GetChannelsOpen - channels in the Open state
func (l *Ledger) GetChannelsOpen() ([]*channel.Entry, error) {
	return l.filterChannels(func(c *channel.Entry) bool {
		return channel.Open == c.Status
	})
}

// GetChannelsFrom - channels funded by source
func (l *Ledger) GetChannelsFrom(source primitive.Address) ([]*channel.Entry, error) {
	return l.filterChannels(func(c *channel.Entry) bool {
		return source == c.Source
	})
}

// GetChannelsTo - channels paying destination
func (l *Ledger) GetChannelsTo(destination primitive.Address) ([]*channel.Entry, error) {
	return l.filterChannels(func(c *channel.Entry) bool {
		return destination == c.Destination
	})
}

// GetIncomingChannels - channels paying this node
func (l *Ledger) GetIncomingChannels() ([]*channel.Entry, error) {
	return l.GetChannelsTo(l.me)
}

// GetOutgoingChannels - channels funded by this node
func (l *Ledger) GetOutgoingChannels() ([]*channel.Entry, error) {
	return l.GetChannelsFrom(l.me)
}

// UpdateChannelAndSnapshot - store a channel entry applied from chain
// together with the position of the log that produced it
//
// the outstanding value of the channel is recomputed on every call
func (l *Ledger) UpdateChannelAndSnapshot(id primitive.Hash, entry *channel.Entry, snapshot primitive.Snapshot) error {
	return l.update(true, func(tx *storage.Transaction) (func(), error) {
		prev, err := storage.GetRecord[channel.Entry](tx, keys.Channel(id))
		if nil != err {
			return nil, err
		}

		cached, found := l.cache.get(id)
		outstanding := outstandingAfterUpdate(cached, found, prev, entry)

		if err := storage.PutRecord(tx, keys.Channel(id), entry); nil != err {
			return nil, err
		}
		if err := storage.PutRecord(tx, keys.Scalar(keys.LatestSnapshot), &snapshot); nil != err {
			return nil, err
		}

		return func() {
			l.cache.set(id, outstanding)
			l.metrics.cachedChannels.Set(float64(l.cache.len()))
		}, nil
	})
}

// GetLatestConfirmedSnapshot - position of the last applied chain log, nil if none
func (l *Ledger) GetLatestConfirmedSnapshot() (*primitive.Snapshot, error) {
	return storage.GetRecord[primitive.Snapshot](l.db, keys.Scalar(keys.LatestSnapshot))
}
