// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
)

var ledgerBucket = []byte("ledger")

// Bolt - Database on a single bbolt bucket
//
// every bolt update commits with fsync, so the flush argument of
// Write is always honoured
type Bolt struct {
	db *bolt.DB
}

// OpenBolt - open or create a bbolt file
func OpenBolt(name string, readOnly bool) (*Bolt, error) {
	options := &bolt.Options{
		Timeout:  time.Second,
		ReadOnly: readOnly,
	}
	db, err := bolt.Open(name, 0o600, options)
	if nil != err {
		return nil, err
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(ledgerBucket)
			return err
		})
		if nil != err {
			db.Close()
			return nil, err
		}
	}
	return &Bolt{db: db}, nil
}

// Get - value of a key, nil if absent
func (b *Bolt) Get(key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(ledgerBucket)
		if nil == bucket {
			return fault.ErrWrongDatabaseBucket
		}
		value = clone(bucket.Get(key))
		return nil
	})
	return value, err
}

// Has - key is present
func (b *Bolt) Has(key []byte) (bool, error) {
	value, err := b.Get(key)
	return nil != value, err
}

// Set - store a value returning the one it replaced
func (b *Bolt) Set(key []byte, value []byte) ([]byte, error) {
	var old []byte
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(ledgerBucket)
		if nil == bucket {
			return fault.ErrWrongDatabaseBucket
		}
		old = clone(bucket.Get(key))
		return bucket.Put(key, value)
	})
	return old, err
}

// replays a batch into a bucket, keeping the first failure
type boltReplay struct {
	bucket *bolt.Bucket
	err    error
}

func (r *boltReplay) Put(key []byte, value []byte) {
	if nil == r.err {
		r.err = r.bucket.Put(key, value)
	}
}

func (r *boltReplay) Delete(key []byte) {
	if nil == r.err {
		r.err = r.bucket.Delete(key)
	}
}

// Write - apply a batch atomically in one bolt transaction
func (b *Bolt) Write(batch *Batch, flush bool) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(ledgerBucket)
		if nil == bucket {
			return fault.ErrWrongDatabaseBucket
		}
		r := &boltReplay{bucket: bucket}
		batch.Replay(r)
		return r.err
	})
}

// Iterate - visit keys of a range in order
func (b *Bolt) Iterate(r keys.Range, f func(key []byte, value []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(ledgerBucket)
		if nil == bucket {
			return fault.ErrWrongDatabaseBucket
		}
		c := bucket.Cursor()
		for k, v := c.Seek(r.Start); nil != k; k, v = c.Next() {
			if nil != r.Limit && bytes.Compare(k, r.Limit) >= 0 {
				break
			}
			if err := f(clone(k), clone(v)); nil != err {
				return err
			}
		}
		return nil
	})
}

// Flush - sync the file
func (b *Bolt) Flush() error {
	return b.db.Sync()
}

// Close - release the database
func (b *Bolt) Close() error {
	return b.db.Close()
}
