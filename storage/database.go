// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=mocks/storage.go -package=mocks github.com/relaymesh/ticketledger/storage Database,Cache

package storage

import (
	"github.com/relaymesh/ticketledger/keys"
)

// Reader - point lookups, satisfied by Database and Transaction
type Reader interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// Database - ordered key value store underlying the ledger
//
// Get returns nil, nil for an absent key.  Iterate visits keys in
// byte order and passes copies that the callback may keep.
type Database interface {
	Reader
	Set(key []byte, value []byte) ([]byte, error)
	Write(batch *Batch, flush bool) error
	Iterate(r keys.Range, f func(key []byte, value []byte) error) error
	Flush() error
	Close() error
}

func clone(b []byte) []byte {
	if nil == b {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
