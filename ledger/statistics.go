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

// Statistics - accumulated ticket outcomes
type Statistics struct {
	RedeemedCount  uint64            `json:"redeemedCount"`
	RedeemedValue  primitive.Balance `json:"redeemedValue"`
	NeglectedCount uint64            `json:"neglectedCount"`
	NeglectedValue primitive.Balance `json:"neglectedValue"`
	RejectedCount  uint64            `json:"rejectedCount"`
	RejectedValue  primitive.Balance `json:"rejectedValue"`
	LosingCount    uint64            `json:"losingCount"`
}

func getCount(r storage.Reader, name string) (uint64, error) {
	n, err := storage.GetRecord[uint64](r, keys.Scalar(name))
	if nil != err || nil == n {
		return 0, err
	}
	return *n, nil
}

func getValue(r storage.Reader, name string) (primitive.Balance, error) {
	b, err := storage.GetRecord[primitive.Balance](r, keys.Scalar(name))
	if nil != err || nil == b {
		return primitive.ZeroBalance(), err
	}
	return *b, nil
}

// stage count += n
func addCount(tx *storage.Transaction, name string, n uint64) error {
	count, err := getCount(tx, name)
	if nil != err {
		return err
	}
	count += n
	return storage.PutRecord(tx, keys.Scalar(name), &count)
}

// stage value += amount
func addValue(tx *storage.Transaction, name string, amount primitive.Balance) error {
	value, err := getValue(tx, name)
	if nil != err {
		return err
	}
	value = value.Add(amount)
	return storage.PutRecord(tx, keys.Scalar(name), &value)
}

func addCountAndValue(tx *storage.Transaction, countName string, valueName string, n uint64, amount primitive.Balance) error {
	if err := addCount(tx, countName, n); nil != err {
		return err
	}
	return addValue(tx, valueName, amount)
}

// MarkRejected - count a ticket refused on receipt
func (l *Ledger) MarkRejected(t *ticket.Ticket) error {
	return l.update(false, func(tx *storage.Transaction) (func(), error) {
		err := addCountAndValue(tx, keys.RejectedTicketsCount, keys.RejectedTicketsValue, 1, t.Amount)
		if nil != err {
			return nil, err
		}
		return func() {
			l.metrics.count(EventRejected, 1)
		}, nil
	})
}

// GetRedeemedTicketsCount - number of redeemed tickets
func (l *Ledger) GetRedeemedTicketsCount() (uint64, error) {
	return getCount(l.db, keys.RedeemedTicketsCount)
}

// GetRedeemedTicketsValue - total value of redeemed tickets
func (l *Ledger) GetRedeemedTicketsValue() (primitive.Balance, error) {
	return getValue(l.db, keys.RedeemedTicketsValue)
}

// GetNeglectedTicketsCount - number of neglected tickets
func (l *Ledger) GetNeglectedTicketsCount() (uint64, error) {
	return getCount(l.db, keys.NeglectedTicketsCount)
}

// GetNeglectedTicketsValue - total value of neglected tickets
func (l *Ledger) GetNeglectedTicketsValue() (primitive.Balance, error) {
	return getValue(l.db, keys.NeglectedTicketsValue)
}

// GetRejectedTicketsCount - number of rejected tickets
func (l *Ledger) GetRejectedTicketsCount() (uint64, error) {
	return getCount(l.db, keys.RejectedTicketsCount)
}

// GetRejectedTicketsValue - total value of rejected tickets
func (l *Ledger) GetRejectedTicketsValue() (primitive.Balance, error) {
	return getValue(l.db, keys.RejectedTicketsValue)
}

// GetLosingTicketsCount - number of losing tickets
func (l *Ledger) GetLosingTicketsCount() (uint64, error) {
	return getCount(l.db, keys.LosingTicketsCount)
}

// GetStatistics - all accumulated outcomes at once
func (l *Ledger) GetStatistics() (*Statistics, error) {
	s := &Statistics{}
	var err error

	countFields := []struct {
		name string
		to   *uint64
	}{
		{keys.RedeemedTicketsCount, &s.RedeemedCount},
		{keys.NeglectedTicketsCount, &s.NeglectedCount},
		{keys.RejectedTicketsCount, &s.RejectedCount},
		{keys.LosingTicketsCount, &s.LosingCount},
	}
	for _, c := range countFields {
		if *c.to, err = getCount(l.db, c.name); nil != err {
			return nil, err
		}
	}

	valueFields := []struct {
		name string
		to   *primitive.Balance
	}{
		{keys.RedeemedTicketsValue, &s.RedeemedValue},
		{keys.NeglectedTicketsValue, &s.NeglectedValue},
		{keys.RejectedTicketsValue, &s.RejectedValue},
	}
	for _, v := range valueFields {
		if *v.to, err = getValue(l.db, v.name); nil != err {
			return nil, err
		}
	}
	return s, nil
}
