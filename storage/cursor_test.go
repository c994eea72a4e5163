// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/storage"
)

func TestFetchPagesThroughTable(t *testing.T) {
	db, err := storage.NewMemoryLevelDB()
	assert.Nil(t, err, "open error")
	defer db.Close()

	b := storage.NewBatch()
	for i := 0; i < 7; i += 1 {
		b.Put([]byte(fmt.Sprintf("t-%02d", i)), []byte{byte(i)})
	}
	b.Put([]byte("t-long-key"), []byte{99}) // wrong suffix length
	b.Put([]byte("u-00"), []byte{98})
	assert.Nil(t, db.Write(b, false), "write error")

	cursor := storage.NewFetchCursor(db, "t-", 2)

	seen := []byte{}
	for page := 0; page < 5; page += 1 {
		elements, err := cursor.Fetch(3)
		assert.Nil(t, err, "fetch error")
		if 0 == len(elements) {
			break
		}
		for _, e := range elements {
			assert.Equal(t, 2, len(e.Key), "prefix not stripped")
			seen = append(seen, e.Value[0])
		}
	}
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6}, seen, "wrong elements")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count accepted")
}

func TestMapFromSeekPosition(t *testing.T) {
	db, err := storage.NewMemoryLevelDB()
	assert.Nil(t, err, "open error")
	defer db.Close()

	b := storage.NewBatch()
	for _, k := range []string{"t-a", "t-b", "t-c"} {
		b.Put([]byte(k), []byte(k))
	}
	assert.Nil(t, db.Write(b, false), "write error")

	visited := []string{}
	err = storage.NewFetchCursor(db, "t-", -1).Seek([]byte("b")).Map(func(key []byte, value []byte) error {
		visited = append(visited, string(key))
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, []string{"b", "c"}, visited, "wrong keys")

	var nilCursor *storage.FetchCursor
	assert.Equal(t, fault.ErrInvalidCursor, nilCursor.Map(nil), "nil cursor accepted")
}
