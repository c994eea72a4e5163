// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/storage"
	"github.com/relaymesh/ticketledger/ticket"
)

// value pending towards a counterparty, zero if none
func getPendingBalance(r storage.Reader, counterparty primitive.Address) (primitive.Balance, error) {
	b, err := storage.GetRecord[primitive.Balance](r, keys.PendingBalance(counterparty))
	if nil != err || nil == b {
		return primitive.ZeroBalance(), err
	}
	return *b, nil
}

// MarkPending - add the value of a ticket to the balance pending towards counterparty
func (l *Ledger) MarkPending(counterparty primitive.Address, t *ticket.Ticket) error {
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		balance, err := getPendingBalance(tx, counterparty)
		if nil != err {
			return nil, err
		}
		balance = balance.Add(t.Amount)
		return nil, storage.PutRecord(tx, keys.PendingBalance(counterparty), &balance)
	})
}

// GetPendingBalanceTo - value pending towards counterparty
func (l *Ledger) GetPendingBalanceTo(counterparty primitive.Address) (primitive.Balance, error) {
	return getPendingBalance(l.db, counterparty)
}

// ResolvePending - settle part of the balance pending towards
// counterparty as observed on chain at snapshot
func (l *Ledger) ResolvePending(counterparty primitive.Address, amount primitive.Balance, snapshot primitive.Snapshot) error {
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		balance, err := getPendingBalance(tx, counterparty)
		if nil != err {
			return nil, err
		}
		balance = balance.Sub(amount)
		if err := storage.PutRecord(tx, keys.PendingBalance(counterparty), &balance); nil != err {
			return nil, err
		}
		return nil, storage.PutRecord(tx, keys.Scalar(keys.LatestSnapshot), &snapshot)
	})
}
