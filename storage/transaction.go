// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/relaymesh/ticketledger/fault"
)

// Transaction - writes staged for one atomic batch
//
// reads through a transaction see its own staged writes; nothing
// reaches the database before Commit
type Transaction struct {
	sync.Mutex
	inUse bool
	db    Database
	batch *Batch
	cache Cache
}

// NewTransaction - create a transaction on db, a nil cache selects the default
func NewTransaction(db Database, c Cache) *Transaction {
	if nil == c {
		c = newCache()
	}
	return &Transaction{
		inUse: false,
		db:    db,
		batch: NewBatch(),
		cache: c,
	}
}

// Begin - start staging
func (d *Transaction) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionInUse
	}

	d.inUse = true
	return nil
}

// Put - stage a write
func (d *Transaction) Put(key []byte, value []byte) {
	d.cache.Set(OpPut, string(key), value)
	d.batch.Put(key, value)
}

// Delete - stage a removal
func (d *Transaction) Delete(key []byte) {
	d.cache.Set(OpDelete, string(key), nil)
	d.batch.Delete(key)
}

// Len - number of staged operations
func (d *Transaction) Len() int {
	return d.batch.Len()
}

// Commit - write the staged batch and end the transaction
//
// the transaction ends whether or not the write succeeded
func (d *Transaction) Commit(flush bool) error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrTransactionNotInUse
	}

	err := d.db.Write(d.batch, flush)
	d.reset()
	return err
}

// Get - staged value, else the stored one
func (d *Transaction) Get(key []byte) ([]byte, error) {
	val, found := d.cache.Get(string(key))
	if found {
		return val, nil
	}
	return d.db.Get(key)
}

// Has - key is staged or stored, and not staged for removal
func (d *Transaction) Has(key []byte) (bool, error) {
	val, found := d.cache.Get(string(key))
	if found {
		return nil != val, nil
	}
	return d.db.Has(key)
}

// InUse - between Begin and Commit or Abort
func (d *Transaction) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

// Abort - discard everything staged
func (d *Transaction) Abort() {
	d.Lock()
	defer d.Unlock()
	d.reset()
}

func (d *Transaction) reset() {
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}
