// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/storage"
)

// GetCurrentTicketIndex - next index for tickets issued on an outgoing channel
//
// found is false when no ticket has been issued yet
func (l *Ledger) GetCurrentTicketIndex(id primitive.Hash) (index uint64, found bool, err error) {
	n, err := storage.GetRecord[uint64](l.db, keys.CurrentTicketIndex(id))
	if nil != err || nil == n {
		return 0, false, err
	}
	return *n, true, nil
}

// SetCurrentTicketIndex - replace the next ticket index of a channel
func (l *Ledger) SetCurrentTicketIndex(id primitive.Hash, index uint64) error {
	return l.set(keys.CurrentTicketIndex(id), &index)
}

// IncreaseCurrentTicketIndex - advance the next ticket index by one, returning the new value
func (l *Ledger) IncreaseCurrentTicketIndex(id primitive.Hash) (uint64, error) {
	var index uint64
	err := l.update(false, func(tx *storage.Transaction) (func(), error) {
		n, err := storage.GetRecord[uint64](tx, keys.CurrentTicketIndex(id))
		if nil != err {
			return nil, err
		}
		if nil != n {
			index = *n
		}
		index += 1
		return nil, storage.PutRecord(tx, keys.CurrentTicketIndex(id), &index)
	})
	return index, err
}

// EnsureCurrentTicketIndexGTE - raise the next ticket index to at least index
func (l *Ledger) EnsureCurrentTicketIndexGTE(id primitive.Hash, index uint64) error {
	return l.update(true, func(tx *storage.Transaction) (func(), error) {
		n, err := storage.GetRecord[uint64](tx, keys.CurrentTicketIndex(id))
		if nil != err {
			return nil, err
		}
		if nil != n && *n >= index {
			return nil, nil
		}
		return nil, storage.PutRecord(tx, keys.CurrentTicketIndex(id), &index)
	})
}

// CheckAndSetPacketTag - mark a packet tag as processed, reporting
// whether it had been seen before
func (l *Ledger) CheckAndSetPacketTag(tag []byte) (bool, error) {
	key, err := keys.PacketTag(tag)
	if nil != err {
		return false, err
	}

	l.Lock()
	defer l.Unlock()

	old, err := l.db.Set(key, []byte{0x01})
	if nil != err {
		return false, err
	}
	return nil != old, nil
}
