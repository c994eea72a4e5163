// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"errors"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
)

// Element - a key with the table prefix removed, and its value
type Element struct {
	Key   []byte
	Value []byte
}

// FetchCursor - cursor over one table
//
// only keys whose suffix has exactly suffixLength bytes are visited,
// a negative suffixLength accepts any suffix
type FetchCursor struct {
	db           Database
	prefix       string
	suffixLength int
	maxRange     keys.Range
}

// stops an iteration early without reporting an error
var errEnoughElements = errors.New("enough elements")

// NewFetchCursor - initialise a cursor to the start of a table
func NewFetchCursor(db Database, prefix string, suffixLength int) *FetchCursor {
	return &FetchCursor{
		db:           db,
		prefix:       prefix,
		suffixLength: suffixLength,
		maxRange:     keys.PrefixRange(prefix),
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(suffix []byte) *FetchCursor {
	start := make([]byte, 0, len(cursor.prefix)+len(suffix))
	start = append(start, cursor.prefix...)
	cursor.maxRange.Start = append(start, suffix...)
	return cursor
}

// Fetch - return some elements starting from the cursor position
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	if nil == cursor.db {
		return nil, fault.ErrDatabaseIsNotSet
	}

	results := make([]Element, 0, count)
	var last []byte
	err := cursor.db.Iterate(cursor.maxRange, func(key []byte, value []byte) error {
		last = key
		if !cursor.accept(key) {
			return nil
		}
		results = append(results, Element{
			Key:   key[len(cursor.prefix):],
			Value: value,
		})
		if len(results) >= count {
			return errEnoughElements
		}
		return nil
	})
	if errEnoughElements == err {
		err = nil
	}

	// the next fetch starts just after the last key seen
	if nil != last {
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}
	if nil == cursor.db {
		return fault.ErrDatabaseIsNotSet
	}

	return cursor.db.Iterate(cursor.maxRange, func(key []byte, value []byte) error {
		if !cursor.accept(key) {
			return nil
		}
		return f(key[len(cursor.prefix):], value)
	})
}

func (cursor *FetchCursor) accept(key []byte) bool {
	return cursor.suffixLength < 0 || len(key)-len(cursor.prefix) == cursor.suffixLength
}
