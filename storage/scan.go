// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/record"
)

// GetRecord - decode the record at key, nil if absent
func GetRecord[T any](r Reader, key []byte) (*T, error) {
	buffer, err := r.Get(key)
	if nil != err || nil == buffer {
		return nil, err
	}
	v := new(T)
	if err := record.Unpack(buffer, v); nil != err {
		return nil, err
	}
	return v, nil
}

// PutRecord - stage the record of v at key
func PutRecord(tx *Transaction, key []byte, v interface{}) error {
	buffer, err := record.Pack(v)
	if nil != err {
		return err
	}
	tx.Put(key, buffer)
	return nil
}

// SetRecord - store the record of v at key immediately
func SetRecord(db Database, key []byte, v interface{}) error {
	buffer, err := record.Pack(v)
	if nil != err {
		return err
	}
	_, err = db.Set(key, buffer)
	return err
}

// Item - a decoded record with the full key it was stored under
type Item[T any] struct {
	Key   []byte
	Value *T
}

// ScanTable - decode every record of a fixed width table that keep accepts
//
// a nil keep accepts everything
func ScanTable[T any](db Database, prefix string, suffixLength int, keep func(*T) bool) ([]Item[T], error) {
	results := []Item[T]{}
	cursor := NewFetchCursor(db, prefix, suffixLength)
	err := cursor.Map(func(suffix []byte, value []byte) error {
		v := new(T)
		if err := record.Unpack(value, v); nil != err {
			return err
		}
		if nil != keep && !keep(v) {
			return nil
		}
		key := make([]byte, 0, len(prefix)+len(suffix))
		key = append(key, prefix...)
		results = append(results, Item[T]{Key: append(key, suffix...), Value: v})
		return nil
	})
	return results, err
}

// ScanRange - decode every record of a key range that keep accepts
func ScanRange[T any](db Database, r keys.Range, keep func(*T) bool) ([]Item[T], error) {
	results := []Item[T]{}
	err := db.Iterate(r, func(key []byte, value []byte) error {
		v := new(T)
		if err := record.Unpack(value, v); nil != err {
			return err
		}
		if nil != keep && !keep(v) {
			return nil
		}
		results = append(results, Item[T]{Key: key, Value: v})
		return nil
	})
	return results, err
}
