// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/storage"
)

// DomainSeparator - which signing domain a separator belongs to
type DomainSeparator int

// the signing domains
const (
	ChannelsDomain DomainSeparator = iota
	LedgerDomain
	SafeRegistryDomain
)

func (d DomainSeparator) key() ([]byte, error) {
	switch d {
	case ChannelsDomain:
		return keys.Scalar(keys.DomainSeparatorChannels), nil
	case LedgerDomain:
		return keys.Scalar(keys.DomainSeparatorLedger), nil
	case SafeRegistryDomain:
		return keys.Scalar(keys.DomainSeparatorRegistry), nil
	}
	return nil, fault.InvalidError("invalid domain separator")
}

// GetDomainSeparator - separator of a signing domain, nil if unset
func (l *Ledger) GetDomainSeparator(d DomainSeparator) (*primitive.Hash, error) {
	key, err := d.key()
	if nil != err {
		return nil, err
	}
	return storage.GetRecord[primitive.Hash](l.db, key)
}

// SetDomainSeparator - store the separator of a signing domain
func (l *Ledger) SetDomainSeparator(d DomainSeparator, separator primitive.Hash) error {
	key, err := d.key()
	if nil != err {
		return err
	}
	return l.set(key, &separator)
}

// GetLatestBlockNumber - last block processed, zero if none
func (l *Ledger) GetLatestBlockNumber() (uint64, error) {
	return getCount(l.db, keys.LatestBlockNumber)
}

// UpdateLatestBlockNumber - record the last block processed
func (l *Ledger) UpdateLatestBlockNumber(number uint64) error {
	return l.set(keys.Scalar(keys.LatestBlockNumber), &number)
}

// GetTicketPrice - current price of a ticket, nil if unset
func (l *Ledger) GetTicketPrice() (*primitive.Balance, error) {
	return storage.GetRecord[primitive.Balance](l.db, keys.Scalar(keys.TicketPrice))
}

// SetTicketPrice - record the current price of a ticket
func (l *Ledger) SetTicketPrice(price primitive.Balance) error {
	return l.set(keys.Scalar(keys.TicketPrice), &price)
}

// GetHoprBalance - token balance of the node
func (l *Ledger) GetHoprBalance() (primitive.Balance, error) {
	return getValue(l.db, keys.HoprBalance)
}

// SetHoprBalance - replace the token balance of the node
func (l *Ledger) SetHoprBalance(balance primitive.Balance) error {
	return l.set(keys.Scalar(keys.HoprBalance), &balance)
}

// AddHoprBalance - credit the node at snapshot
func (l *Ledger) AddHoprBalance(amount primitive.Balance, snapshot primitive.Snapshot) error {
	return l.adjustHoprBalance(amount, primitive.ZeroBalance(), snapshot)
}

// SubHoprBalance - debit the node at snapshot, never below zero
func (l *Ledger) SubHoprBalance(amount primitive.Balance, snapshot primitive.Snapshot) error {
	return l.adjustHoprBalance(primitive.ZeroBalance(), amount, snapshot)
}

func (l *Ledger) adjustHoprBalance(credit primitive.Balance, debit primitive.Balance, snapshot primitive.Snapshot) error {
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		balance, err := getValue(tx, keys.HoprBalance)
		if nil != err {
			return nil, err
		}
		balance = balance.Add(credit).Sub(debit)
		if err := storage.PutRecord(tx, keys.Scalar(keys.HoprBalance), &balance); nil != err {
			return nil, err
		}
		return nil, storage.PutRecord(tx, keys.Scalar(keys.LatestSnapshot), &snapshot)
	})
}

// set - store one record immediately, serialised with other writers
func (l *Ledger) set(key []byte, v interface{}) error {
	l.Lock()
	defer l.Unlock()
	return storage.SetRecord(l.db, key, v)
}
