// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/relaymesh/ticketledger/keys"
)

// LevelDB - Database on a goleveldb store
type LevelDB struct {
	sync.Mutex // serialises Set
	db         *leveldb.DB
}

// OpenLevelDB - open or create a LevelDB directory
func OpenLevelDB(name string, readOnly bool) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

// NewMemoryLevelDB - LevelDB held entirely in memory
func NewMemoryLevelDB() (*LevelDB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

// Get - value of a key, nil if absent
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - key is present
func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

// Set - store a value returning the one it replaced
func (l *LevelDB) Set(key []byte, value []byte) ([]byte, error) {
	l.Lock()
	defer l.Unlock()

	old, err := l.Get(key)
	if nil != err {
		return nil, err
	}
	return old, l.db.Put(key, value, nil)
}

// Write - apply a batch atomically
func (l *LevelDB) Write(batch *Batch, flush bool) error {
	b := new(leveldb.Batch)
	batch.Replay(b)
	return l.db.Write(b, &ldb_opt.WriteOptions{Sync: flush})
}

// Iterate - visit keys of a range in order
func (l *LevelDB) Iterate(r keys.Range, f func(key []byte, value []byte) error) error {
	iter := l.db.NewIterator(&ldb_util.Range{Start: r.Start, Limit: r.Limit}, nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		err = f(clone(iter.Key()), clone(iter.Value()))
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

// Flush - force the journal to stable storage
//
// goleveldb only syncs as part of a write, so rewrite the version
func (l *LevelDB) Flush() error {
	version, err := l.Get(versionKey)
	if nil != err || nil == version {
		return err
	}
	return l.db.Put(versionKey, version, &ldb_opt.WriteOptions{Sync: true})
}

// Close - release the database
func (l *LevelDB) Close() error {
	return l.db.Close()
}
