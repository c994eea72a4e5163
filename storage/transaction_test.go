// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/storage"
	"github.com/relaymesh/ticketledger/storage/mocks"
)

func setupTransaction(t *testing.T) (storage.Database, *storage.Transaction) {
	db, err := storage.NewMemoryLevelDB()
	assert.Nil(t, err, "open error")
	t.Cleanup(func() { db.Close() })
	return db, storage.NewTransaction(db, nil)
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	_, tx := setupTransaction(t)

	err := tx.Begin()
	assert.Equal(t, nil, err, "first time Begin should with not error")

	err = tx.Begin()
	assert.Equal(t, fault.ErrTransactionInUse, err, "second time Begin should return error")
}

func TestCommitWithoutBeginErrors(t *testing.T) {
	_, tx := setupTransaction(t)
	assert.Equal(t, fault.ErrTransactionNotInUse, tx.Commit(false), "wrong error")
}

func TestStagedWritesVisibleOnlyThroughTransaction(t *testing.T) {
	db, tx := setupTransaction(t)
	_, _ = db.Set([]byte("old"), []byte("v"))

	assert.Nil(t, tx.Begin(), "begin error")
	tx.Put([]byte("new"), []byte("n"))
	tx.Delete([]byte("old"))

	value, err := tx.Get([]byte("new"))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("n"), value, "staged put not visible")

	value, err = tx.Get([]byte("old"))
	assert.Nil(t, err, "get error")
	assert.Nil(t, value, "staged delete not visible")
	found, _ := tx.Has([]byte("old"))
	assert.False(t, found, "deleted key reported present")

	stored, _ := db.Get([]byte("new"))
	assert.Nil(t, stored, "staged put reached database")

	assert.Nil(t, tx.Commit(true), "commit error")
	assert.False(t, tx.InUse(), "transaction still in use")

	stored, _ = db.Get([]byte("new"))
	assert.Equal(t, []byte("n"), stored, "committed put missing")
	found, _ = db.Has([]byte("old"))
	assert.False(t, found, "committed delete missing")
}

func TestAbortDiscardsStagedWrites(t *testing.T) {
	db, tx := setupTransaction(t)

	assert.Nil(t, tx.Begin(), "begin error")
	tx.Put([]byte("k"), []byte("v"))
	assert.Equal(t, 1, tx.Len(), "wrong staged length")
	tx.Abort()

	assert.Equal(t, 0, tx.Len(), "batch not reset")
	assert.False(t, tx.InUse(), "transaction still in use")

	value, _ := tx.Get([]byte("k"))
	assert.Nil(t, value, "aborted put visible")
	stored, _ := db.Get([]byte("k"))
	assert.Nil(t, stored, "aborted put stored")
}

func TestAbortClearsCache(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, err := storage.NewMemoryLevelDB()
	assert.Nil(t, err, "open error")
	defer db.Close()

	mockCache := mocks.NewMockCache(ctl)
	mockCache.EXPECT().Set(storage.OpPut, "k", []byte("v")).Times(1)
	mockCache.EXPECT().Clear().Times(1)

	tx := storage.NewTransaction(db, mockCache)
	assert.Nil(t, tx.Begin(), "begin error")
	tx.Put([]byte("k"), []byte("v"))
	tx.Abort()
}

func TestFailedCommitEndsTransaction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	writeError := errors.New("disk full")
	mockDB := mocks.NewMockDatabase(ctl)
	mockDB.EXPECT().Write(gomock.Any(), true).Return(writeError).Times(1)

	tx := storage.NewTransaction(mockDB, nil)
	assert.Nil(t, tx.Begin(), "begin error")
	tx.Put([]byte("k"), []byte("v"))

	assert.Equal(t, writeError, tx.Commit(true), "write error not returned")
	assert.False(t, tx.InUse(), "transaction still in use")
	assert.Equal(t, 0, tx.Len(), "batch not reset")
}
